// Package database - Index cho catalog (products, categories, brands).
package database

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/khanh20003/BanHang-ChatBot/internal/global"
)

// CreateCatalogIndexes tạo các index phục vụ truy vấn của search engine.
// Planner lọc theo (categoryId, brandId, productType, price, stock) và
// regex trên title — index compound bám theo thứ tự ưu tiên của filter.
func CreateCatalogIndexes(ctx context.Context, db *mongo.Database) error {
	products := db.Collection(global.MongoDB_ColNames.Products)

	// products: (categoryId, stock) — mọi truy vấn đều có stock > 0
	if _, err := products.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "categoryId", Value: 1},
			{Key: "stock", Value: 1},
		},
		Options: options.Index().SetName("product_category_stock"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// products: (brandId, stock)
	if _, err := products.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "brandId", Value: 1},
			{Key: "stock", Value: 1},
		},
		Options: options.Index().SetName("product_brand_stock").SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// products: (productType, price) — lọc flash_sale/newest + khoảng giá
	if _, err := products.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "productType", Value: 1},
			{Key: "price", Value: 1},
		},
		Options: options.Index().SetName("product_type_price"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// categories/brands: title unique — resolution exact-match đi thẳng vào index
	for _, colName := range []string{global.MongoDB_ColNames.Categories, global.MongoDB_ColNames.Brands} {
		col := db.Collection(colName)
		if _, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "title", Value: 1}},
			Options: options.Index().SetName(colName + "_title").SetUnique(true),
		}); err != nil && !isIndexExistsError(err) {
			return err
		}
	}

	return nil
}

// isIndexExistsError kiểm tra lỗi do index đã tồn tại (tạo lại khi restart là bình thường)
func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "IndexOptionsConflict") ||
		strings.Contains(msg, "IndexKeySpecsConflict") ||
		strings.Contains(msg, "already exists")
}
