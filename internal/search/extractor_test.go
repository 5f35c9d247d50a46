package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_BrandModel(t *testing.T) {
	e := NewExtractor()

	p := e.Extract("tôi muốn mua iphone 16 pro max")
	assert.Equal(t, "iphone", p.Brand)
	assert.Equal(t, "16 pro max", p.Model)
	assert.Empty(t, p.Name, "stopword không được lọt vào từ khóa tên")
	assert.Empty(t, p.Category)
}

func TestExtract_ConcatBrandModel(t *testing.T) {
	e := NewExtractor()

	// Token dính liền: alias thương hiệu + số + đuôi model
	p := e.Extract("ip16promax")
	assert.Equal(t, "iphone", p.Brand)
	assert.Equal(t, "16 pro max", p.Model)

	p = e.Extract("ss24ultra")
	assert.Equal(t, "samsung", p.Brand)
	assert.Equal(t, "24 ultra", p.Model)
}

func TestExtract_BrandAliasFuzzy(t *testing.T) {
	e := NewExtractor()

	p := e.Extract("điện thoại ss")
	assert.Equal(t, "samsung", p.Brand)
	assert.Equal(t, "điện thoại", p.Category)

	// Sai chính tả một ký tự vẫn resolve được qua fuzzy
	p = e.Extract("mua iphon")
	assert.Equal(t, "iphone", p.Brand)
}

func TestExtract_CategoryBeforeBrand(t *testing.T) {
	e := NewExtractor()

	// Cùng câu resolve được cả danh mục lẫn thương hiệu: giữ cả hai
	p := e.Extract("điện thoại samsung giảm giá")
	assert.Equal(t, "điện thoại", p.Category)
	assert.Equal(t, "samsung", p.Brand)
	assert.True(t, p.IsFlashSale, "câu giảm giá chung bật cờ IsFlashSale")
	assert.Empty(t, p.ProductType, "giảm giá chung không gán cứng product_type")
}

func TestExtract_DiscountIntents(t *testing.T) {
	e := NewExtractor()

	// "flash sale" tường minh → product_type chính xác
	p := e.Extract("điện thoại flash sale")
	assert.Equal(t, TypeFlashSale, p.ProductType)
	assert.False(t, p.IsFlashSale)

	p = e.Extract("laptop bán chạy")
	assert.Equal(t, TypeBestSeller, p.ProductType)

	p = e.Extract("tai nghe mới nhất")
	assert.Equal(t, TypeNewest, p.ProductType)
}

func TestExtract_GeneralPhrase(t *testing.T) {
	e := NewExtractor()

	p := e.Extract("xem tất cả sản phẩm")
	assert.True(t, p.IsEmpty(), "câu tổng quát không được sinh filter")

	// Câu tổng quát kèm danh mục: chỉ giữ danh mục
	p = e.Extract("xem tất cả điện thoại")
	assert.Equal(t, "điện thoại", p.Category)
	assert.Empty(t, p.Name)
	assert.Empty(t, p.Brand)
}

func TestExtract_PriceConsumed(t *testing.T) {
	e := NewExtractor()

	p := e.Extract("điện thoại dưới 5 triệu")
	assert.Equal(t, "điện thoại", p.Category)
	assert.Nil(t, p.MinPrice)
	if assert.NotNil(t, p.MaxPrice) {
		assert.Equal(t, 5_000_000.0, *p.MaxPrice)
	}
	assert.Empty(t, p.Name, "token giá và từ neo phải bị tiêu thụ")
}

func TestExtract_Color(t *testing.T) {
	e := NewExtractor()

	p := e.Extract("iphone màu tím")
	assert.Equal(t, "iphone", p.Brand)
	assert.Equal(t, "tím", p.Color)
	assert.Empty(t, p.Name)

	p = e.Extract("điện thoại màu xanh dương")
	assert.Equal(t, "xanh dương", p.Color)
}

func TestExtract_ColorStopwordCollision(t *testing.T) {
	e := NewExtractor()

	// "tìm" (bỏ dấu thành "tim") không được hiểu nhầm là màu tím
	// khi không đứng sau từ "màu"
	p := e.Extract("tìm điện thoại")
	assert.Empty(t, p.Color)
	assert.Equal(t, "điện thoại", p.Category)
}

func TestExtract_ConfigAttrs(t *testing.T) {
	e := NewExtractor()

	p := e.Extract("điện thoại ram 8gb pin trâu")
	assert.Equal(t, "điện thoại", p.Category)
	assert.Equal(t, "8gb", p.Ram)
	assert.Equal(t, 5000, p.MinPin)

	p = e.Extract("laptop chip i5 ssd 512 gb")
	assert.Equal(t, "laptop", p.Category)
	assert.Equal(t, "i5", p.Chip)
	assert.Equal(t, "512gb", p.Rom)

	p = e.Extract("điện thoại pin 5000 mah sạc nhanh 120w")
	assert.Equal(t, 5000, p.MinPin)
	assert.Equal(t, "120w", p.Charging)
}

func TestExtract_StockIntent(t *testing.T) {
	e := NewExtractor()

	p := e.Extract("iphone còn hàng")
	assert.Equal(t, "iphone", p.Brand)
	assert.True(t, p.InStock)
	assert.Empty(t, p.Name)
}

func TestExtract_SortByPrice(t *testing.T) {
	e := NewExtractor()

	p := e.Extract("điện thoại rẻ nhất")
	assert.Equal(t, SortPriceAsc, p.SortBy)
	assert.Equal(t, "điện thoại", p.Category)
	assert.Empty(t, p.Name, "cụm từ sắp xếp phải bị tiêu thụ")

	p = e.Extract("laptop giá cao nhất")
	assert.Equal(t, SortPriceDesc, p.SortBy)
	assert.Equal(t, "laptop", p.Category)
}

func TestExtract_ResidualName(t *testing.T) {
	e := NewExtractor()

	// Từ khóa tự do không resolve được thành thực thể nào → giữ làm Name
	p := e.Extract("tìm airpods")
	assert.Equal(t, "airpods", p.Name)
	assert.Empty(t, p.Brand)
}

func TestExtract_Deterministic(t *testing.T) {
	e := NewExtractor()
	query := "điện thoại samsung màu đen dưới 10 triệu còn hàng"

	first := e.Extract(query)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, e.Extract(query), "Extract phải deterministic")
	}
}
