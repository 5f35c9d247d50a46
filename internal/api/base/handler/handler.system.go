package basehdl

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/khanh20003/BanHang-ChatBot/internal/common"
	"github.com/khanh20003/BanHang-ChatBot/internal/global"
	"github.com/khanh20003/BanHang-ChatBot/internal/nlu"
)

// SystemHandler xử lý các route liên quan đến system operations
type SystemHandler struct{}

// NewSystemHandler tạo một instance mới của SystemHandler
func NewSystemHandler() (*SystemHandler, error) {
	return &SystemHandler{}, nil
}

// HandleHealth kiểm tra tình trạng hệ thống.
// Kiểm tra trạng thái của API, database connection và dịch vụ NLU bên ngoài.
// NLU degraded không làm hệ thống unhealthy vì engine vẫn chạy được bằng extractor nội bộ.
func (h *SystemHandler) HandleHealth(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	healthData := fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"services": fiber.Map{
			"api": "ok",
		},
	}
	services := healthData["services"].(fiber.Map)

	// Trạng thái dịch vụ NLU bên ngoài
	switch {
	case global.ServerConfig == nil || global.ServerConfig.GeminiAPIKey == "":
		services["nlu"] = "disabled"
	case nlu.QuotaExceeded():
		services["nlu"] = "quota_exceeded"
	default:
		services["nlu"] = "ok"
	}

	// Kiểm tra MongoDB connection
	if global.MongoDB_Session != nil {
		if err := global.MongoDB_Session.Ping(ctx, nil); err != nil {
			healthData["status"] = "degraded"
			services["database"] = "error"
			healthData["database_error"] = err.Error()
			return c.Status(common.StatusServiceUnavailable).JSON(fiber.Map{
				"code":    common.StatusServiceUnavailable,
				"message": "Hệ thống đang gặp sự cố",
				"data":    healthData,
				"status":  "error",
			})
		}
		services["database"] = "ok"
	} else {
		healthData["status"] = "degraded"
		services["database"] = "not_initialized"
	}

	return c.Status(common.StatusOK).JSON(fiber.Map{
		"code":    common.StatusOK,
		"message": common.MsgSuccess,
		"data":    healthData,
		"status":  "success",
	})
}
