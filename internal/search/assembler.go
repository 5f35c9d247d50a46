package search

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	catalogmodels "github.com/khanh20003/BanHang-ChatBot/internal/api/catalog/models"
)

// Action là gợi ý hành động kèm theo một sản phẩm trong kết quả chat
type Action struct {
	Type      string             `json:"type"`
	Label     string             `json:"label"`
	ProductID primitive.ObjectID `json:"product_id"`
}

// ProductView là bản ghi sản phẩm trong response chat, kèm hành động gợi ý.
// Không chứa tham chiếu ngược về catalog — engine không bao giờ ghi catalog.
type ProductView struct {
	ID               primitive.ObjectID  `json:"id"`
	Title            string              `json:"title"`
	Image            string              `json:"image"`
	Price            float64             `json:"price"`
	CurrentPrice     *float64            `json:"currentPrice"`
	Status           string              `json:"status"`
	Stock            int64               `json:"stock"`
	CategoryID       *primitive.ObjectID `json:"categoryId,omitempty"`
	BrandID          *primitive.ObjectID `json:"brandId,omitempty"`
	Tag              string              `json:"tag,omitempty"`
	ShortDescription string              `json:"short_description"`
	ProductType      string              `json:"product_type"`
	Actions          []Action            `json:"actions"`
}

// DedupByTitle loại bản ghi trùng title, giữ bản ghi xuất hiện đầu tiên (ổn định)
func DedupByTitle(products []catalogmodels.Product) []catalogmodels.Product {
	seen := make(map[string]bool, len(products))
	out := make([]catalogmodels.Product, 0, len(products))
	for _, p := range products {
		if seen[p.Title] {
			continue
		}
		seen[p.Title] = true
		out = append(out, p)
	}
	return out
}

// Assemble khử trùng lặp theo title, cắt về limit và ánh xạ sang ProductView
// kèm hành động "Đặt hàng". Luôn trả về slice khác rỗng thay vì nil.
func Assemble(products []catalogmodels.Product, limit int) []ProductView {
	deduped := DedupByTitle(products)
	if limit > 0 && len(deduped) > limit {
		deduped = deduped[:limit]
	}

	views := make([]ProductView, 0, len(deduped))
	for _, p := range deduped {
		views = append(views, ProductView{
			ID:               p.ID,
			Title:            p.Title,
			Image:            p.Image,
			Price:            p.Price,
			CurrentPrice:     p.CurrentPrice,
			Status:           p.Status,
			Stock:            p.Stock,
			CategoryID:       p.CategoryID,
			BrandID:          p.BrandID,
			Tag:              p.Tag,
			ShortDescription: p.ShortDescription,
			ProductType:      p.ProductType,
			Actions: []Action{
				{Type: "add_to_cart", Label: "Đặt hàng", ProductID: p.ID},
			},
		})
	}
	return views
}
