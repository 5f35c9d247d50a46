// Package router đăng ký các route đọc dữ liệu catalog: Product, Category, Brand.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	cataloghdl "github.com/khanh20003/BanHang-ChatBot/internal/api/catalog/handler"
	apirouter "github.com/khanh20003/BanHang-ChatBot/internal/api/router"
)

// Register đăng ký tất cả route catalog lên v1. Catalog chỉ mở các route đọc —
// dữ liệu sản phẩm được hệ thống quản trị riêng ghi vào.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	productHandler, err := cataloghdl.NewProductHandler()
	if err != nil {
		return fmt.Errorf("create product handler: %w", err)
	}
	r.RegisterReadRoutes(v1, "/product", productHandler, apirouter.ReadOnlyConfig)

	categoryHandler, err := cataloghdl.NewCategoryHandler()
	if err != nil {
		return fmt.Errorf("create category handler: %w", err)
	}
	r.RegisterReadRoutes(v1, "/category", categoryHandler, apirouter.ReadOnlyConfig)

	brandHandler, err := cataloghdl.NewBrandHandler()
	if err != nil {
		return fmt.Errorf("create brand handler: %w", err)
	}
	r.RegisterReadRoutes(v1, "/brand", brandHandler, apirouter.ReadOnlyConfig)

	return nil
}
