package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	catalogmodels "github.com/khanh20003/BanHang-ChatBot/internal/api/catalog/models"
)

func TestDedupByTitle(t *testing.T) {
	first := catalogmodels.Product{ID: primitive.NewObjectID(), Title: "iPhone 16", Price: 1}
	dup := catalogmodels.Product{ID: primitive.NewObjectID(), Title: "iPhone 16", Price: 2}
	other := catalogmodels.Product{ID: primitive.NewObjectID(), Title: "Galaxy S24"}

	out := DedupByTitle([]catalogmodels.Product{first, dup, other})
	if assert.Len(t, out, 2) {
		// Bản ghi xuất hiện đầu tiên được giữ
		assert.Equal(t, first.ID, out[0].ID)
		assert.Equal(t, other.ID, out[1].ID)
	}

	assert.Empty(t, DedupByTitle(nil))
}

func TestAssemble(t *testing.T) {
	products := []catalogmodels.Product{
		{ID: primitive.NewObjectID(), Title: "iPhone 16", Price: 25_000_000},
		{ID: primitive.NewObjectID(), Title: "iPhone 16", Price: 24_000_000}, // trùng title
		{ID: primitive.NewObjectID(), Title: "Galaxy S24", Price: 20_000_000},
		{ID: primitive.NewObjectID(), Title: "Xiaomi 14", Price: 15_000_000},
	}

	views := Assemble(products, 2)
	if assert.Len(t, views, 2, "khử trùng lặp rồi mới cắt limit") {
		assert.Equal(t, "iPhone 16", views[0].Title)
		assert.Equal(t, "Galaxy S24", views[1].Title)
	}

	// Mỗi sản phẩm kèm đúng một action đặt hàng trỏ về chính nó
	for _, v := range views {
		if assert.Len(t, v.Actions, 1) {
			assert.Equal(t, "add_to_cart", v.Actions[0].Type)
			assert.Equal(t, "Đặt hàng", v.Actions[0].Label)
			assert.Equal(t, v.ID, v.Actions[0].ProductID)
		}
	}
}

func TestAssemble_Empty(t *testing.T) {
	views := Assemble(nil, 10)
	assert.NotNil(t, views, "luôn trả slice, không trả nil")
	assert.Empty(t, views)
}
