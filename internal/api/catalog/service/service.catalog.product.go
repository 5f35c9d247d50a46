package catalogsvc

import (
	"fmt"

	basesvc "github.com/khanh20003/BanHang-ChatBot/internal/api/base/service"
	catalogmodels "github.com/khanh20003/BanHang-ChatBot/internal/api/catalog/models"
	"github.com/khanh20003/BanHang-ChatBot/internal/common"
	"github.com/khanh20003/BanHang-ChatBot/internal/global"
)

// ProductService là cấu trúc chứa các phương thức liên quan đến sản phẩm
type ProductService struct {
	*basesvc.BaseServiceMongoImpl[catalogmodels.Product]
}

// NewProductService tạo mới ProductService
func NewProductService() (*ProductService, error) {
	productCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Products)
	if !exist {
		return nil, fmt.Errorf("failed to get products collection: %v", common.ErrNotFound)
	}

	return &ProductService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[catalogmodels.Product](productCollection),
	}, nil
}
