package catalogsvc

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/khanh20003/BanHang-ChatBot/internal/api/base/service"
	catalogmodels "github.com/khanh20003/BanHang-ChatBot/internal/api/catalog/models"
	"github.com/khanh20003/BanHang-ChatBot/internal/common"
	"github.com/khanh20003/BanHang-ChatBot/internal/global"
	"github.com/khanh20003/BanHang-ChatBot/internal/search"
)

// CategoryService là cấu trúc chứa các phương thức liên quan đến danh mục sản phẩm
type CategoryService struct {
	*basesvc.BaseServiceMongoImpl[catalogmodels.Category]
}

// NewCategoryService tạo mới CategoryService
func NewCategoryService() (*CategoryService, error) {
	categoryCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Categories)
	if !exist {
		return nil, fmt.Errorf("failed to get categories collection: %v", common.ErrNotFound)
	}

	return &CategoryService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[catalogmodels.Category](categoryCollection),
	}, nil
}

// ResolveTitle tìm danh mục theo tên tự do: khớp chính xác (không phân biệt
// hoa thường) trước, không có thì so fuzzy trên toàn bộ title. Không tìm được
// trả về (nil, nil) — caller tự quyết định lọc theo text thay thế.
func (s *CategoryService) ResolveTitle(ctx context.Context, title string) (*primitive.ObjectID, error) {
	if title == "" {
		return nil, nil
	}

	exactFilter := bson.M{"title": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(title) + "$", Options: "i"}}
	cat, err := s.FindOne(ctx, exactFilter, nil)
	if err == nil {
		return &cat.ID, nil
	}
	if err != common.ErrNotFound {
		return nil, err
	}

	all, err := s.Find(ctx, bson.M{}, options.Find())
	if err != nil {
		return nil, err
	}

	queryNorm := search.Normalize(title)
	bestScore := 0
	var bestID *primitive.ObjectID
	for i := range all {
		score := search.Ratio(queryNorm, search.Normalize(all[i].Title))
		if score > bestScore {
			bestScore = score
			bestID = &all[i].ID
		}
	}
	if bestScore >= search.ThresholdCategory {
		return bestID, nil
	}
	return nil, nil
}
