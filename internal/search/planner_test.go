package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildFilter_EmptyParams(t *testing.T) {
	filter := BuildFilter(ResolvedParams{})
	assert.Nil(t, filter, "không có predicate thì không được dựng filter")
}

func TestBuildFilter_AlwaysEndsWithStock(t *testing.T) {
	rp := ResolvedParams{Params: Params{Brand: "samsung"}}
	filter := BuildFilter(rp)

	conds, ok := filter["$and"].([]bson.M)
	if !ok {
		t.Fatalf("filter phải là $and, có: %v", filter)
	}
	last := conds[len(conds)-1]
	assert.Equal(t, bson.M{"stock": bson.M{"$gt": 0}}, last, "điều kiện stock > 0 luôn đứng cuối")
}

func TestBuildFilter_InStockSubsumed(t *testing.T) {
	// "còn hàng" không phải predicate độc lập: stock > 0 luôn được áp,
	// nên InStock không đổi filter và một mình nó không đủ để chạy query
	assert.Nil(t, BuildFilter(ResolvedParams{Params: Params{InStock: true}}))

	with := BuildFilter(ResolvedParams{Params: Params{Brand: "samsung", InStock: true}})
	without := BuildFilter(ResolvedParams{Params: Params{Brand: "samsung"}})
	assert.Equal(t, without, with)
}

func TestBuildFilter_CategoryResolvedID(t *testing.T) {
	id := primitive.NewObjectID()
	rp := ResolvedParams{Params: Params{Category: "điện thoại"}, CategoryID: &id}
	filter := BuildFilter(rp)

	conds := filter["$and"].([]bson.M)
	assert.Equal(t, bson.M{"categoryId": id}, conds[0], "ID resolve được phải thắng lọc theo title")
}

func TestBuildFilter_CategorySynonymFallback(t *testing.T) {
	rp := ResolvedParams{Params: Params{Category: "điện thoại"}}
	filter := BuildFilter(rp)

	conds := filter["$and"].([]bson.M)
	synOr, ok := conds[0]["$or"].([]bson.M)
	if !ok {
		t.Fatalf("danh mục không resolve được ID phải lọc theo synonyms, có: %v", conds[0])
	}
	// Mỗi synonym sinh ít nhất điều kiện title + shortDescription
	assert.GreaterOrEqual(t, len(synOr), 2*len(CategorySynonyms["điện thoại"]))
}

func TestBuildFilter_DiscountSemantics(t *testing.T) {
	// "flash sale" tường minh → match chính xác productType
	rp := ResolvedParams{Params: Params{ProductType: TypeFlashSale}}
	conds := BuildFilter(rp)["$and"].([]bson.M)
	assert.Contains(t, conds, bson.M{"productType": TypeFlashSale})

	// Ý định giảm giá chung → OR giữa productType và tag
	rp = ResolvedParams{Params: Params{IsFlashSale: true}}
	conds = BuildFilter(rp)["$and"].([]bson.M)
	discountOr, ok := conds[0]["$or"].([]bson.M)
	if !ok {
		t.Fatalf("IsFlashSale phải sinh $or, có: %v", conds[0])
	}
	assert.Equal(t, bson.M{"productType": TypeFlashSale}, discountOr[0])
	assert.Equal(t, 1+len(DiscountTagKeywords), len(discountOr))
}

func TestBuildFilter_PriceAndScalars(t *testing.T) {
	minP, maxP, rating := 5_000_000.0, 10_000_000.0, 4.0
	rp := ResolvedParams{Params: Params{
		Brand:    "iphone",
		MinPrice: &minP,
		MaxPrice: &maxP,
		Rating:   &rating,
		Color:    "đen",
	}}
	conds := BuildFilter(rp)["$and"].([]bson.M)

	assert.Contains(t, conds, bson.M{"price": bson.M{"$gte": minP}})
	assert.Contains(t, conds, bson.M{"price": bson.M{"$lte": maxP}})
	assert.Contains(t, conds, bson.M{"rating": bson.M{"$gte": rating}})
	assert.Contains(t, conds, bson.M{"color": exactRegex("đen")})
}

func TestBuildFilter_ConfigAttrsAreOr(t *testing.T) {
	id := primitive.NewObjectID()
	rp := ResolvedParams{
		Params:     Params{Category: "điện thoại", Ram: "8gb", MinPin: 5000},
		CategoryID: &id,
	}
	conds := BuildFilter(rp)["$and"].([]bson.M)

	// conds[0] = categoryId, conds[1] = $or của các thuộc tính
	attrOr, ok := conds[1]["$or"].([]bson.M)
	if !ok {
		t.Fatalf("thuộc tính cấu hình phải gộp $or, có: %v", conds[1])
	}
	assert.Equal(t, 2, len(attrOr), "ram + pin là hai nhánh OR")
}

func TestBuildSort(t *testing.T) {
	assert.Nil(t, BuildSort(Params{}))
	assert.Equal(t, bson.D{{Key: "price", Value: 1}}, BuildSort(Params{SortBy: SortPriceAsc}))
	assert.Equal(t, bson.D{{Key: "price", Value: -1}}, BuildSort(Params{SortBy: SortPriceDesc}))
}

func TestBuildFilter_Deterministic(t *testing.T) {
	minP := 5_000_000.0
	rp := ResolvedParams{Params: Params{Brand: "samsung", Color: "đen", MinPrice: &minP, InStock: true}}

	first := BuildFilter(rp)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, BuildFilter(rp), "cùng params phải cho cùng filter")
	}
}

func TestMatchesDiscountIntent(t *testing.T) {
	// flash sale tường minh: chỉ chấp nhận đúng productType
	p := Params{ProductType: TypeFlashSale}
	assert.True(t, matchesDiscountIntent(TypeFlashSale, "", p))
	assert.False(t, matchesDiscountIntent(TypeBestSeller, "sale", p))

	// giảm giá chung: productType hoặc tag đều được
	p = Params{IsFlashSale: true}
	assert.True(t, matchesDiscountIntent(TypeFlashSale, "", p))
	assert.True(t, matchesDiscountIntent("", "đang sale sốc", p))
	assert.False(t, matchesDiscountIntent("", "hàng mới về", p))

	// không có ý định giảm giá: luôn qua
	assert.True(t, matchesDiscountIntent("", "", Params{}))
}
