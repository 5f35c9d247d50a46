package search

import (
	"context"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	catalogmodels "github.com/khanh20003/BanHang-ChatBot/internal/api/catalog/models"
	"github.com/khanh20003/BanHang-ChatBot/internal/utility"
)

// Fallback chạy tìm kiếm theo độ tương đồng khi tìm kiếm strict không ra kết quả.
// Chỉ được gọi khi params có thực thể (Name/Brand/Category) — caller chịu trách nhiệm
// kiểm tra điều kiện kích hoạt.
func Fallback(ctx context.Context, finder ProductFinder, rp ResolvedParams, limit int) ([]catalogmodels.Product, error) {
	// 1. Pool ứng viên rộng hơn: đang bán, còn hàng, giữ ràng buộc
	// danh mục/thương hiệu nếu đã resolve được
	poolFilter := bson.M{
		"status": catalogmodels.ProductStatusActive,
		"stock":  bson.M{"$gt": 0},
	}
	if rp.CategoryID != nil {
		poolFilter["categoryId"] = *rp.CategoryID
	}
	if rp.BrandID != nil {
		poolFilter["brandId"] = *rp.BrandID
	}

	pool, err := finder.Find(ctx, poolFilter, options.Find())
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return []catalogmodels.Product{}, nil
	}

	// 2. Tách từ ý định khỏi từ khóa để lấy "từ khóa chính"
	keyword := rp.Name
	if keyword == "" {
		keyword = strings.TrimSpace(rp.Brand + " " + rp.Model)
	}
	mainKeywords := mainKeywordsOf(keyword)

	// 3. Đoán thương hiệu từ từ khóa chính; chỉ thu hẹp pool theo thương hiệu
	// khi có thêm danh mục/loại hiển thị (đoán brand đơn lẻ không được phép
	// thu hẹp quá tay — ưu tiên precision chỉ khi có tín hiệu thứ hai)
	candidates := pool
	if brandKw := guessBrandKeyword(mainKeywords); brandKw != "" && (rp.Category != "" || rp.ProductType != "") {
		narrowed := filterByKeyword(pool, brandKw)
		if len(narrowed) > 0 {
			candidates = narrowed
		}
	}

	// 4. Lọc màu chính xác trước khi chấm điểm
	if rp.Color != "" {
		colorLower := strings.ToLower(rp.Color)
		candidates = utility.Filter(candidates, func(p catalogmodels.Product) bool {
			return strings.ToLower(p.Color) == colorLower
		})
	}

	// 5. Chấm điểm tương đồng giữa từ khóa và title + mô tả, lấy top limit
	type scored struct {
		product catalogmodels.Product
		score   int
	}
	queryNorm := Normalize(keyword)
	scoredList := make([]scored, 0, len(candidates))
	for _, p := range candidates {
		target := Normalize(p.Title + " " + p.ShortDescription)
		scoredList = append(scoredList, scored{product: p, score: Ratio(queryNorm, target)})
	}
	sort.SliceStable(scoredList, func(i, j int) bool {
		return scoredList[i].score > scoredList[j].score
	})

	results := make([]catalogmodels.Product, 0, limit)
	for _, s := range scoredList {
		if limit > 0 && len(results) >= limit {
			break
		}
		results = append(results, s.product)
	}

	// 6. Áp lại post-filter giảm giá/loại hiển thị như nhánh strict
	return applyPostFilter(results, rp.Params), nil
}

// mainKeywordsOf loại từ ý định khỏi chuỗi từ khóa
func mainKeywordsOf(keyword string) []string {
	intentSet := make(map[string]bool, len(intentKeywords))
	for _, kw := range intentKeywords {
		intentSet[RemoveAccents(kw)] = true
	}
	var out []string
	for _, w := range strings.Fields(strings.ToLower(keyword)) {
		if intentSet[RemoveAccents(w)] {
			continue
		}
		out = append(out, w)
	}
	return out
}

// guessBrandKeyword tìm từ khóa chứa tên thương hiệu trong danh sách từ khóa chính
func guessBrandKeyword(mainKeywords []string) string {
	for _, kw := range mainKeywords {
		kwNoaccent := RemoveAccents(strings.ToLower(kw))
		if utility.ContainsFunc(brandCanonical, func(b string) bool {
			return strings.Contains(kwNoaccent, b)
		}) {
			return kw
		}
	}
	return ""
}

// filterByKeyword giữ sản phẩm có keyword trong title hoặc mô tả
// (so cả dạng có dấu và không dấu)
func filterByKeyword(products []catalogmodels.Product, keyword string) []catalogmodels.Product {
	kwLower := strings.ToLower(keyword)
	kwNoaccent := RemoveAccents(kwLower)
	return utility.Filter(products, func(p catalogmodels.Product) bool {
		title := strings.ToLower(p.Title)
		desc := strings.ToLower(p.ShortDescription)
		return strings.Contains(title, kwLower) || strings.Contains(RemoveAccents(title), kwNoaccent) ||
			strings.Contains(desc, kwLower) || strings.Contains(RemoveAccents(desc), kwNoaccent)
	})
}

// applyPostFilter kiểm tra lại kết quả với ý định giảm giá/loại hiển thị
// và bất biến stock > 0
func applyPostFilter(products []catalogmodels.Product, p Params) []catalogmodels.Product {
	return utility.Filter(products, func(prod catalogmodels.Product) bool {
		return prod.Stock > 0 && matchesDiscountIntent(prod.ProductType, prod.Tag, p)
	})
}
