package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category lưu thông tin danh mục sản phẩm (ví dụ: "điện thoại", "laptop")
type Category struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của danh mục trong MongoDB
	Title       string             `json:"title" bson:"title"`                // Tên danh mục, unique
	Description string             `json:"description" bson:"description"`    // Mô tả danh mục
	Image       string             `json:"image" bson:"image"`                // URL ảnh đại diện

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
