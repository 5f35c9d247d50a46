package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Brand lưu thông tin thương hiệu sản phẩm (ví dụ: "Apple", "Samsung")
type Brand struct {
	ID    primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của thương hiệu trong MongoDB
	Title string             `json:"title" bson:"title"`                // Tên thương hiệu, unique
	Image string             `json:"image" bson:"image"`                // URL logo

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
