package cataloghdl

import (
	"fmt"

	basehdl "github.com/khanh20003/BanHang-ChatBot/internal/api/base/handler"
	catalogmodels "github.com/khanh20003/BanHang-ChatBot/internal/api/catalog/models"
	catalogsvc "github.com/khanh20003/BanHang-ChatBot/internal/api/catalog/service"
)

// BrandHandler xử lý các yêu cầu đọc dữ liệu thương hiệu
type BrandHandler struct {
	*basehdl.BaseHandler[catalogmodels.Brand]
	BrandService *catalogsvc.BrandService
}

// NewBrandHandler khởi tạo BrandHandler mới
func NewBrandHandler() (*BrandHandler, error) {
	service, err := catalogsvc.NewBrandService()
	if err != nil {
		return nil, fmt.Errorf("failed to create brand service: %v", err)
	}
	hdl := &BrandHandler{BrandService: service}
	hdl.BaseHandler = basehdl.NewBaseHandler[catalogmodels.Brand](service.BaseServiceMongoImpl)
	return hdl, nil
}
