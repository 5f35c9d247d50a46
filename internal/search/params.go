package search

// ProductType hợp lệ cho SearchParams.ProductType
const (
	TypeFlashSale  = "flash_sale"
	TypeBestSeller = "best_seller"
	TypeNewest     = "newest"
	TypeTrending   = "trending"
)

// SortBy hợp lệ cho SearchParams.SortBy
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// Params là kết quả phân tích một truy vấn — value object tạm thời theo từng
// request, không có identity và không được persist. Field nào có giá trị nghĩa
// là đã qua kiểm tra hợp lệ (không rỗng sau khi loại stopword/từ ý định).
type Params struct {
	Name     string // từ khóa tự do còn lại sau khi đã tách các thực thể khác
	Brand    string // tên thương hiệu chuẩn (sau alias resolution)
	Category string // tên danh mục chuẩn (có dấu, trùng title trong catalog)
	Model    string // model đi kèm thương hiệu, ví dụ "16 pro max"
	Color    string // màu chuẩn (có dấu)

	MinPrice *float64 // giá sàn (VND), inclusive
	MaxPrice *float64 // giá trần (VND), inclusive

	ProductType string   // flash_sale | best_seller | newest | trending
	Rating      *float64 // điểm đánh giá tối thiểu
	Tag         string   // nhãn tự do
	SortBy      string   // price_asc | price_desc

	IsFlashSale bool // ý định giảm giá chung (không nhất thiết product_type)
	InStock     bool // ý định "còn hàng"

	// Thuộc tính cấu hình
	Ram      string // ví dụ "8gb"
	Rom      string // ví dụ "256gb"
	Chip     string
	Gpu      string
	Display  string // ví dụ "6.7 inch"
	Camera   string // ví dụ "48mp"
	Charging string // ví dụ "120w"
	MinPin   int    // sàn dung lượng pin (mAh), 0 = không yêu cầu
}

// IsEmpty kiểm tra params có hoàn toàn trống hay không (không thực thể nào được trích)
func (p *Params) IsEmpty() bool {
	return p.Name == "" && p.Brand == "" && p.Category == "" && p.Model == "" &&
		p.Color == "" && p.MinPrice == nil && p.MaxPrice == nil &&
		p.ProductType == "" && p.Rating == nil && p.Tag == "" &&
		!p.IsFlashSale && !p.InStock && !p.hasConfigAttrs()
}

// HasEntity kiểm tra có thực thể đủ mạnh để kích hoạt fallback search hay không
func (p *Params) HasEntity() bool {
	return p.Name != "" || p.Brand != "" || p.Category != ""
}

func (p *Params) hasConfigAttrs() bool {
	return p.Ram != "" || p.Rom != "" || p.Chip != "" || p.Gpu != "" ||
		p.Display != "" || p.Camera != "" || p.Charging != "" || p.MinPin > 0
}

// configAttrValues trả về danh sách giá trị thuộc tính cấu hình đã có,
// dùng cho predicate substring của planner
func (p *Params) configAttrValues() []string {
	var values []string
	for _, v := range []string{p.Ram, p.Rom, p.Chip, p.Gpu, p.Display, p.Camera, p.Charging} {
		if v != "" {
			values = append(values, v)
		}
	}
	return values
}

// Entities là kết quả đã chuẩn hóa từ dịch vụ NLU bên ngoài.
// Mọi field đều nullable; field hỏng/không parse được sẽ là nil.
type Entities struct {
	Name        *string
	Brand       *string
	Category    *string
	Model       *string
	Color       *string
	MinPrice    *float64
	MaxPrice    *float64
	Rating      *float64
	ProductType *string
	IsFlashSale *bool
	SortBy      *string
}

// Merge bổ sung các thực thể NLU vào params, chỉ điền vào field còn trống.
// Extractor nội bộ luôn được ưu tiên vì kết quả của nó kiểm soát được.
func (p *Params) Merge(e *Entities) {
	if e == nil {
		return
	}
	if p.Name == "" && e.Name != nil && *e.Name != "" {
		p.Name = *e.Name
	}
	if p.Brand == "" && e.Brand != nil && *e.Brand != "" {
		p.Brand = *e.Brand
	}
	if p.Category == "" && e.Category != nil && *e.Category != "" {
		p.Category = *e.Category
	}
	if p.Model == "" && e.Model != nil && *e.Model != "" {
		p.Model = *e.Model
	}
	if p.Color == "" && e.Color != nil && *e.Color != "" {
		p.Color = *e.Color
	}
	if p.MinPrice == nil && e.MinPrice != nil {
		p.MinPrice = e.MinPrice
	}
	if p.MaxPrice == nil && e.MaxPrice != nil {
		p.MaxPrice = e.MaxPrice
	}
	if p.Rating == nil && e.Rating != nil {
		p.Rating = e.Rating
	}
	if p.ProductType == "" && e.ProductType != nil && *e.ProductType != "" {
		p.ProductType = *e.ProductType
	}
	if !p.IsFlashSale && e.IsFlashSale != nil {
		p.IsFlashSale = *e.IsFlashSale
	}
	if p.SortBy == "" && e.SortBy != nil && (*e.SortBy == SortPriceAsc || *e.SortBy == SortPriceDesc) {
		p.SortBy = *e.SortBy
	}
}
