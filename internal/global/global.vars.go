package global

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/khanh20003/BanHang-ChatBot/config"
	"github.com/khanh20003/BanHang-ChatBot/internal/registry"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	Products   string // Tên collection cho sản phẩm
	Categories string // Tên collection cho danh mục
	Brands     string // Tên collection cho thương hiệu
}

// Các biến toàn cục
var Validate *validator.Validate               // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client              // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration         // Cấu hình của server
var MongoDB_ColNames MongoDB_CollectionName    // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
