package nlu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEntities_FlatMap(t *testing.T) {
	e := NormalizeEntities(map[string]interface{}{
		"name":      "iphone 16",
		"min_price": 5_000_000.0,
		"max_price": "10000000",
		"category":  "điện thoại",
	})
	if !assert.NotNil(t, e) {
		return
	}
	assert.Equal(t, "iphone 16", *e.Name)
	assert.Equal(t, 5_000_000.0, *e.MinPrice)
	assert.Equal(t, 10_000_000.0, *e.MaxPrice, "số dạng chuỗi vẫn parse được")
	assert.Equal(t, "điện thoại", *e.Category)
}

func TestNormalizeEntities_ProtoFields(t *testing.T) {
	e := NormalizeEntities(map[string]interface{}{
		"fields": map[string]interface{}{
			"brand":         map[string]interface{}{"stringValue": "samsung"},
			"rating":        map[string]interface{}{"numberValue": 4.5},
			"is_flash_sale": map[string]interface{}{"boolValue": true},
		},
	})
	if !assert.NotNil(t, e) {
		return
	}
	assert.Equal(t, "samsung", *e.Brand)
	assert.Equal(t, 4.5, *e.Rating)
	assert.True(t, *e.IsFlashSale)
}

func TestNormalizeEntities_FencedJSONText(t *testing.T) {
	e := NormalizeEntities("```json\n{\"name\": \"tai nghe\", \"max_price\": 500000}\n```")
	if !assert.NotNil(t, e) {
		return
	}
	assert.Equal(t, "tai nghe", *e.Name)
	assert.Equal(t, 500_000.0, *e.MaxPrice)
}

func TestNormalizeEntities_StatusKeyFallback(t *testing.T) {
	// Schema cũ dùng key "status" thay cho "product_type"
	e := NormalizeEntities(map[string]interface{}{"status": "best_seller"})
	if !assert.NotNil(t, e) {
		return
	}
	assert.Equal(t, "best_seller", *e.ProductType)

	// "product_type" thắng khi có cả hai
	e = NormalizeEntities(map[string]interface{}{
		"product_type": "newest",
		"status":       "best_seller",
	})
	assert.Equal(t, "newest", *e.ProductType)
}

func TestNormalizeEntities_GarbageFoldsToNil(t *testing.T) {
	assert.Nil(t, NormalizeEntities(nil))
	assert.Nil(t, NormalizeEntities(42))
	assert.Nil(t, NormalizeEntities("không phải json"))
	assert.Nil(t, NormalizeEntities(map[string]interface{}{}))
	// Field sai kiểu bị bỏ qua; không còn gì dùng được → nil
	assert.Nil(t, NormalizeEntities(map[string]interface{}{"name": 123, "min_price": true}))
	// Chuỗi rỗng không được tính là thực thể
	assert.Nil(t, NormalizeEntities(map[string]interface{}{"name": "   "}))
}
