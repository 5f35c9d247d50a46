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

// BrandService là cấu trúc chứa các phương thức liên quan đến thương hiệu
type BrandService struct {
	*basesvc.BaseServiceMongoImpl[catalogmodels.Brand]
}

// NewBrandService tạo mới BrandService
func NewBrandService() (*BrandService, error) {
	brandCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Brands)
	if !exist {
		return nil, fmt.Errorf("failed to get brands collection: %v", common.ErrNotFound)
	}

	return &BrandService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[catalogmodels.Brand](brandCollection),
	}, nil
}

// ResolveTitle tìm thương hiệu theo tên tự do: khớp chính xác trước, fuzzy sau.
// Ngưỡng fuzzy của thương hiệu cao hơn danh mục vì tên thương hiệu ngắn,
// sai một ký tự là sang thương hiệu khác.
func (s *BrandService) ResolveTitle(ctx context.Context, title string) (*primitive.ObjectID, error) {
	if title == "" {
		return nil, nil
	}

	exactFilter := bson.M{"title": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(title) + "$", Options: "i"}}
	brand, err := s.FindOne(ctx, exactFilter, nil)
	if err == nil {
		return &brand.ID, nil
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
	if bestScore >= search.ThresholdBrand {
		return bestID, nil
	}
	return nil, nil
}
