package main

import (
	"context"

	"github.com/khanh20003/BanHang-ChatBot/internal/database"
	"github.com/khanh20003/BanHang-ChatBot/internal/global"
	"github.com/khanh20003/BanHang-ChatBot/internal/logger"
)

// InitCatalogData đảm bảo các index cần thiết cho truy vấn catalog:
// filter theo status/stock/categoryId/brandId/productType và sort theo price.
// Index đã tồn tại thì bỏ qua, không coi là lỗi.
func InitCatalogData() {
	log := logger.GetAppLogger()

	db := global.MongoDB_Session.Database(global.ServerConfig.MongoDB_DBName)
	if err := database.CreateCatalogIndexes(context.Background(), db); err != nil {
		// Thiếu index chỉ làm truy vấn chậm, không chặn server khởi động
		log.WithError(err).Warn("Failed to create catalog indexes")
		return
	}

	log.Info("Ensured catalog indexes")
}
