package main

import (
	"github.com/sirupsen/logrus"

	"github.com/khanh20003/BanHang-ChatBot/internal/global"
)

// InitRegistry nạp các collection catalog vào registry để service tra cứu theo tên
func InitRegistry() {
	db := global.MongoDB_Session.Database(global.ServerConfig.MongoDB_DBName)

	collectionNames := []string{
		global.MongoDB_ColNames.Products,
		global.MongoDB_ColNames.Categories,
		global.MongoDB_ColNames.Brands,
	}

	for _, name := range collectionNames {
		if _, err := global.RegistryCollections.Register(name, db.Collection(name)); err != nil {
			logrus.Fatalf("Failed to register collection %s: %v", name, err)
		}
	}

	logrus.Infof("Initialized collection registry with %d collections", len(collectionNames))
}
