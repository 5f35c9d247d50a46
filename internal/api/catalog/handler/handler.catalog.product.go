package cataloghdl

import (
	"fmt"

	basehdl "github.com/khanh20003/BanHang-ChatBot/internal/api/base/handler"
	catalogmodels "github.com/khanh20003/BanHang-ChatBot/internal/api/catalog/models"
	catalogsvc "github.com/khanh20003/BanHang-ChatBot/internal/api/catalog/service"
)

// ProductHandler xử lý các yêu cầu đọc dữ liệu sản phẩm
type ProductHandler struct {
	*basehdl.BaseHandler[catalogmodels.Product]
	ProductService *catalogsvc.ProductService
}

// NewProductHandler khởi tạo ProductHandler mới
func NewProductHandler() (*ProductHandler, error) {
	service, err := catalogsvc.NewProductService()
	if err != nil {
		return nil, fmt.Errorf("failed to create product service: %v", err)
	}
	hdl := &ProductHandler{ProductService: service}
	hdl.BaseHandler = basehdl.NewBaseHandler[catalogmodels.Product](service.BaseServiceMongoImpl)
	return hdl, nil
}
