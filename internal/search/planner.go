package search

import (
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResolvedParams là Params kèm ID danh mục/thương hiệu đã resolve từ catalog.
// ID nil nghĩa là không resolve được — planner sẽ rơi về lọc gần đúng theo title.
type ResolvedParams struct {
	Params
	CategoryID *primitive.ObjectID
	BrandID    *primitive.ObjectID
}

// containsRegex tạo điều kiện substring không phân biệt hoa thường
func containsRegex(value string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(value), Options: "i"}
}

// exactRegex tạo điều kiện khớp nguyên chuỗi không phân biệt hoa thường
func exactRegex(value string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(value) + "$", Options: "i"}
}

// textSearchConds dựng điều kiện OR substring trên title/shortDescription
// cho cả dạng có dấu và không dấu của value
func textSearchConds(value string) []bson.M {
	conds := []bson.M{
		{"title": containsRegex(value)},
		{"shortDescription": containsRegex(value)},
	}
	noaccent := RemoveAccents(value)
	if noaccent != value {
		conds = append(conds,
			bson.M{"title": containsRegex(noaccent)},
			bson.M{"shortDescription": containsRegex(noaccent)},
		)
	}
	return conds
}

// BuildFilter dựng filter MongoDB từ params theo thứ tự ưu tiên cố định:
// danh mục → thương hiệu → thuộc tính cấu hình → giảm giá → các điều kiện vô hướng
// → cuối cùng luôn là stock > 0. Trả về nil khi không dựng được predicate nào —
// khi đó KHÔNG được chạy query (không bao giờ trả về toàn bộ catalog).
func BuildFilter(rp ResolvedParams) bson.M {
	var conds []bson.M

	// 1. Danh mục: ID nếu resolve được, nếu không thì lọc gần đúng theo synonyms
	if rp.CategoryID != nil {
		conds = append(conds, bson.M{"categoryId": *rp.CategoryID})
	} else if rp.Category != "" {
		synonyms, ok := CategorySynonyms[rp.Category]
		if !ok {
			synonyms = []string{rp.Category}
		}
		var synConds []bson.M
		for _, syn := range synonyms {
			synConds = append(synConds, textSearchConds(syn)...)
		}
		conds = append(conds, bson.M{"$or": synConds})
	}

	// 2. Thương hiệu, AND với danh mục khi có cả hai
	if rp.BrandID != nil {
		conds = append(conds, bson.M{"brandId": *rp.BrandID})
	} else if rp.Brand != "" {
		conds = append(conds, bson.M{"$or": textSearchConds(rp.Brand)})
	}

	// 3. Thuộc tính cấu hình: OR giữa các thuộc tính, AND với danh mục/thương hiệu.
	// Một thuộc tính lệch không được loại sản phẩm đã khớp danh mục/thương hiệu,
	// nên các thuộc tính gộp OR với nhau.
	attrValues := rp.configAttrValues()
	if rp.MinPin > 0 {
		// Dung lượng pin soi theo chuỗi "5000mAh" thường có trong title/mô tả
		attrValues = append(attrValues, fmt.Sprintf("%dmah", rp.MinPin))
	}
	if len(attrValues) > 0 {
		var attrConds []bson.M
		for _, v := range attrValues {
			or := textSearchConds(v)
			or = append(or, bson.M{"tag": containsRegex(v)})
			attrConds = append(attrConds, bson.M{"$or": or})
		}
		conds = append(conds, bson.M{"$or": attrConds})
	}

	// 4. Giảm giá: product_type == flash_sale khớp chính xác;
	// ý định giảm giá chung chấp nhận thêm tag chứa từ khóa giảm giá
	switch {
	case rp.ProductType == TypeFlashSale:
		conds = append(conds, bson.M{"productType": TypeFlashSale})
	case rp.IsFlashSale:
		discountOr := []bson.M{{"productType": TypeFlashSale}}
		for _, kw := range DiscountTagKeywords {
			discountOr = append(discountOr, bson.M{"tag": containsRegex(kw)})
		}
		conds = append(conds, bson.M{"$or": discountOr})
	case rp.ProductType != "":
		conds = append(conds, bson.M{"productType": rp.ProductType})
	}

	// 5. Các điều kiện vô hướng còn lại
	if rp.MinPrice != nil {
		conds = append(conds, bson.M{"price": bson.M{"$gte": *rp.MinPrice}})
	}
	if rp.MaxPrice != nil {
		conds = append(conds, bson.M{"price": bson.M{"$lte": *rp.MaxPrice}})
	}
	if rp.Rating != nil {
		conds = append(conds, bson.M{"rating": bson.M{"$gte": *rp.Rating}})
	}
	if rp.Tag != "" {
		conds = append(conds, bson.M{"tag": containsRegex(rp.Tag)})
	}
	if rp.Color != "" {
		conds = append(conds, bson.M{"color": exactRegex(rp.Color)})
	}
	if rp.Name != "" {
		conds = append(conds, bson.M{"$or": textSearchConds(rp.Name)})
	}
	if rp.Model != "" {
		conds = append(conds, bson.M{"$or": textSearchConds(rp.Model)})
	}

	if len(conds) == 0 {
		return nil
	}

	// 6. Bất biến, luôn đứng cuối: không bao giờ trả sản phẩm hết hàng.
	// Ý định "còn hàng" (InStock) được bao phủ luôn ở đây, không sinh predicate riêng.
	conds = append(conds, bson.M{"stock": bson.M{"$gt": 0}})

	return bson.M{"$and": conds}
}

// BuildSort dựng điều kiện sắp xếp từ SortBy, nil khi không yêu cầu
func BuildSort(p Params) bson.D {
	switch p.SortBy {
	case SortPriceAsc:
		return bson.D{{Key: "price", Value: 1}}
	case SortPriceDesc:
		return bson.D{{Key: "price", Value: -1}}
	}
	return nil
}

// matchesDiscountIntent kiểm tra lại một sản phẩm với ý định giảm giá/loại hiển thị
// (chống false positive từ các điều kiện substring)
func matchesDiscountIntent(productType, tag string, p Params) bool {
	switch {
	case p.ProductType == TypeFlashSale:
		return productType == TypeFlashSale
	case p.IsFlashSale:
		if productType == TypeFlashSale {
			return true
		}
		tagLower := strings.ToLower(tag)
		for _, kw := range DiscountTagKeywords {
			if strings.Contains(tagLower, strings.ToLower(kw)) {
				return true
			}
		}
		return false
	case p.ProductType != "":
		return productType == p.ProductType
	}
	return true
}
