package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái sản phẩm
const (
	ProductStatusActive   = "active"   // Đang bán
	ProductStatusInactive = "inactive" // Ngừng bán
)

// Product lưu thông tin sản phẩm trong catalog.
// Catalog do hệ thống bán hàng ghi, chatbot chỉ đọc để tìm kiếm và tư vấn.
type Product struct {
	ID               primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`                  // ID của sản phẩm trong MongoDB
	Title            string              `json:"title" bson:"title"`                                 // Tên sản phẩm (ví dụ: "iPhone 15 Pro Max 256GB")
	Price            float64             `json:"price" bson:"price"`                                 // Giá niêm yết (VND)
	CurrentPrice     *float64            `json:"currentPrice,omitempty" bson:"currentPrice,omitempty"` // Giá sau giảm (VND), nil nếu không giảm giá
	Stock            int64               `json:"stock" bson:"stock"`                                 // Số lượng tồn kho
	Status           string              `json:"status" bson:"status"`                               // Trạng thái: active | inactive
	ProductType      string              `json:"productType" bson:"productType"`                     // Loại hiển thị: flash_sale | best_seller | newest | trending
	Rating           float64             `json:"rating" bson:"rating"`                               // Điểm đánh giá trung bình (0-5)
	Tag              string              `json:"tag" bson:"tag"`                                     // Nhãn tự do (ví dụ: "hot", "sale")
	Color            string              `json:"color" bson:"color"`                                 // Màu sắc (tiếng Việt, ví dụ: "đen", "xanh dương")
	ShortDescription string              `json:"shortDescription" bson:"shortDescription"`           // Mô tả ngắn, dùng cho fallback similarity
	Image            string              `json:"image" bson:"image"`                                 // URL ảnh đại diện
	CategoryID       *primitive.ObjectID `json:"categoryId,omitempty" bson:"categoryId,omitempty"`   // Tham chiếu danh mục
	BrandID          *primitive.ObjectID `json:"brandId,omitempty" bson:"brandId,omitempty"`         // Tham chiếu thương hiệu

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}

// EffectivePrice trả về giá thực bán: currentPrice nếu có giảm giá, ngược lại price
func (p *Product) EffectivePrice() float64 {
	if p.CurrentPrice != nil {
		return *p.CurrentPrice
	}
	return p.Price
}

// IsDiscounted kiểm tra sản phẩm có đang giảm giá hay không
func (p *Product) IsDiscounted() bool {
	return p.CurrentPrice != nil && *p.CurrentPrice < p.Price
}
