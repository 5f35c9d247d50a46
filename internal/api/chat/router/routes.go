// Package router đăng ký route hội thoại của chatbot bán hàng.
package router

import (
	"github.com/gofiber/fiber/v3"

	chathdl "github.com/khanh20003/BanHang-ChatBot/internal/api/chat/handler"
	apirouter "github.com/khanh20003/BanHang-ChatBot/internal/api/router"
)

// Register đăng ký route chat lên v1. Handler được khởi tạo sẵn ở tầng bootstrap
// vì nó cần engine tìm kiếm và client NLU đã cấu hình.
func Register(handler *chathdl.ChatHandler) apirouter.RegisterFunc {
	return func(v1 fiber.Router, r *apirouter.Router) error {
		apirouter.RegisterRouteWithMiddleware(v1, "/chat", "POST", "/query", nil, handler.HandleQuery)
		return nil
	}
}
