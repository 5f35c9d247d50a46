package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	catalogmodels "github.com/khanh20003/BanHang-ChatBot/internal/api/catalog/models"
)

func TestFallback_PoolFilterKeepsResolvedIDs(t *testing.T) {
	id := primitive.NewObjectID()
	finder := &fakeFinder{results: [][]catalogmodels.Product{{}}}
	rp := ResolvedParams{Params: Params{Category: "điện thoại", Name: "iphone"}, CategoryID: &id}

	_, err := Fallback(context.Background(), finder, rp, 10)
	assert.NoError(t, err)

	if assert.Len(t, finder.filters, 1) {
		pool, ok := finder.filters[0].(bson.M)
		if !ok {
			t.Fatalf("pool filter phải là bson.M, có: %T", finder.filters[0])
		}
		assert.Equal(t, catalogmodels.ProductStatusActive, pool["status"])
		assert.Equal(t, bson.M{"$gt": 0}, pool["stock"])
		assert.Equal(t, id, pool["categoryId"], "ràng buộc danh mục đã resolve phải giữ trong pool")
	}
}

func TestFallback_RanksBySimilarity(t *testing.T) {
	best := activeProduct("iPhone 16 Pro Max 256GB")
	mid := activeProduct("iPhone 15")
	worst := activeProduct("Bàn phím cơ")

	finder := &fakeFinder{results: [][]catalogmodels.Product{{worst, mid, best}}}
	rp := ResolvedParams{Params: Params{Name: "iphone 16 pro max"}}

	out, err := Fallback(context.Background(), finder, rp, 2)
	assert.NoError(t, err)
	if assert.Len(t, out, 2, "cắt về limit sau khi xếp hạng") {
		assert.Equal(t, best.Title, out[0].Title)
		assert.Equal(t, mid.Title, out[1].Title)
	}
}

func TestFallback_ColorPreFilter(t *testing.T) {
	purple := activeProduct("iPhone 16 Tím")
	purple.Color = "tím"
	black := activeProduct("iPhone 16 Đen")
	black.Color = "đen"

	finder := &fakeFinder{results: [][]catalogmodels.Product{{purple, black}}}
	rp := ResolvedParams{Params: Params{Name: "iphone", Color: "tím"}}

	out, err := Fallback(context.Background(), finder, rp, 10)
	assert.NoError(t, err)
	if assert.Len(t, out, 1) {
		assert.Equal(t, purple.Title, out[0].Title)
	}
}

func TestFallback_DiscountPostFilter(t *testing.T) {
	flashSale := activeProduct("iPhone 16 Flash Sale")
	flashSale.ProductType = TypeFlashSale
	regular := activeProduct("iPhone 16")

	finder := &fakeFinder{results: [][]catalogmodels.Product{{regular, flashSale}}}
	rp := ResolvedParams{Params: Params{Brand: "iphone", IsFlashSale: true}}

	out, err := Fallback(context.Background(), finder, rp, 10)
	assert.NoError(t, err)
	if assert.Len(t, out, 1, "ý định giảm giá phải được kiểm tra lại sau khi xếp hạng") {
		assert.Equal(t, flashSale.Title, out[0].Title)
	}
}

func TestFallback_EmptyPool(t *testing.T) {
	finder := &fakeFinder{results: [][]catalogmodels.Product{{}}}
	rp := ResolvedParams{Params: Params{Name: "iphone"}}

	out, err := Fallback(context.Background(), finder, rp, 10)
	assert.NoError(t, err)
	assert.Empty(t, out)
}
