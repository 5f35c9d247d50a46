package cataloghdl

import (
	"fmt"

	basehdl "github.com/khanh20003/BanHang-ChatBot/internal/api/base/handler"
	catalogmodels "github.com/khanh20003/BanHang-ChatBot/internal/api/catalog/models"
	catalogsvc "github.com/khanh20003/BanHang-ChatBot/internal/api/catalog/service"
)

// CategoryHandler xử lý các yêu cầu đọc dữ liệu danh mục
type CategoryHandler struct {
	*basehdl.BaseHandler[catalogmodels.Category]
	CategoryService *catalogsvc.CategoryService
}

// NewCategoryHandler khởi tạo CategoryHandler mới
func NewCategoryHandler() (*CategoryHandler, error) {
	service, err := catalogsvc.NewCategoryService()
	if err != nil {
		return nil, fmt.Errorf("failed to create category service: %v", err)
	}
	hdl := &CategoryHandler{CategoryService: service}
	hdl.BaseHandler = basehdl.NewBaseHandler[catalogmodels.Category](service.BaseServiceMongoImpl)
	return hdl, nil
}
