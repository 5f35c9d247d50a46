package main

import (
	"github.com/sirupsen/logrus"

	"github.com/khanh20003/BanHang-ChatBot/config"
	"github.com/khanh20003/BanHang-ChatBot/internal/database"
	"github.com/khanh20003/BanHang-ChatBot/internal/global"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	global.MongoDB_ColNames.Products = "products"
	global.MongoDB_ColNames.Categories = "categories"
	global.MongoDB_ColNames.Brands = "brands"

	logrus.Info("Initialized collection names")
}

// Hàm khởi tạo validator (dùng global.InitValidator để đăng ký custom validators: no_xss, ...)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("Failed to initialize config: %v", err)
	}
	global.ServerConfig = cfg
	logrus.Info("Initialized server config")
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")
}
