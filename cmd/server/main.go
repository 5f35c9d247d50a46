package main

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/khanh20003/BanHang-ChatBot/internal/global"
	"github.com/khanh20003/BanHang-ChatBot/internal/logger"
)

// initLogger khởi tạo và cấu hình logger cho toàn bộ ứng dụng
func initLogger() {
	// Logger tự đọc environment variables để cấu hình
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	log := logger.GetAppLogger()
	log.Info("Logger system initialized successfully")
}

// main_thread khởi tạo và chạy Fiber server
func main_thread() {
	app, err := InitFiberApp()
	if err != nil {
		logger.GetAppLogger().Fatalf("Failed to initialize Fiber app: %v", err)
	}

	address := ":" + global.ServerConfig.Address

	log := logger.GetAppLogger()
	log.WithFields(map[string]interface{}{
		"address":  address,
		"protocol": "HTTP",
	}).Info("Starting Fiber server...")

	if err := app.Listen(address, fiber.ListenConfig{}); err != nil {
		log.Fatalf("Error in Fiber Listen: %v", err)
	}
}

// Hàm main
func main() {
	// Khởi tạo logger
	initLogger()

	// Khởi tạo các biến toàn cục
	InitGlobal()

	// Khởi tạo registry
	InitRegistry()

	// Đảm bảo index cho các collection catalog
	InitCatalogData()

	// Chạy Fiber server trên main thread
	main_thread()
}
