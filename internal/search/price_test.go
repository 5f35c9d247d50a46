package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePriceRange_Anchored(t *testing.T) {
	min, max := ParsePriceRange("từ 5 triệu đến 10 triệu")
	if assert.NotNil(t, min) {
		assert.Equal(t, 5_000_000.0, *min)
	}
	if assert.NotNil(t, max) {
		assert.Equal(t, 10_000_000.0, *max)
	}

	min, max = ParsePriceRange("điện thoại dưới 3 triệu")
	assert.Nil(t, min)
	if assert.NotNil(t, max) {
		assert.Equal(t, 3_000_000.0, *max)
	}

	min, max = ParsePriceRange("laptop trên 15tr")
	if assert.NotNil(t, min) {
		assert.Equal(t, 15_000_000.0, *min)
	}
	assert.Nil(t, max)

	_, max = ParsePriceRange("khoảng 7 triệu")
	if assert.NotNil(t, max) {
		assert.Equal(t, 7_000_000.0, *max)
	}

	// "đến" còn nguyên "đ" sau khi bỏ dấu, vẫn phải neo được giá trần
	min, max = ParsePriceRange("giá đến 2 triệu")
	assert.Nil(t, min)
	if assert.NotNil(t, max) {
		assert.Equal(t, 2_000_000.0, *max)
	}
}

func TestParsePriceRange_Units(t *testing.T) {
	// Mỗi match quy đổi theo đơn vị riêng của nó
	min, max := ParsePriceRange("từ 500k đến 2 triệu")
	if assert.NotNil(t, min) {
		assert.Equal(t, 500_000.0, *min)
	}
	if assert.NotNil(t, max) {
		assert.Equal(t, 2_000_000.0, *max)
	}

	min, _ = ParsePriceRange("trên 5m")
	if assert.NotNil(t, min) {
		assert.Equal(t, 5_000_000.0, *min)
	}

	_, max = ParsePriceRange("dưới 900 nghìn")
	if assert.NotNil(t, max) {
		assert.Equal(t, 900_000.0, *max)
	}

	min, _ = ParsePriceRange("từ 1.5 triệu")
	if assert.NotNil(t, min) {
		assert.Equal(t, 1_500_000.0, *min)
	}

	// "đồng" cũng giữ nguyên "đ" sau khi bỏ dấu
	min, _ = ParsePriceRange("trên 500000 đồng")
	if assert.NotNil(t, min) {
		assert.Equal(t, 500_000.0, *min)
	}
}

func TestParsePriceRange_Unanchored(t *testing.T) {
	// Một giá trị không neo không phân định được chiều → dùng làm cả hai cận
	min, max := ParsePriceRange("điện thoại 5 triệu")
	if assert.NotNil(t, min) && assert.NotNil(t, max) {
		assert.Equal(t, 5_000_000.0, *min)
		assert.Equal(t, 5_000_000.0, *max)
	}

	// Hai giá trị không neo → (min, max) theo thứ tự xuất hiện
	min, max = ParsePriceRange("tầm 3 triệu 8 triệu")
	if assert.NotNil(t, min) && assert.NotNil(t, max) {
		assert.Equal(t, 3_000_000.0, *min)
		assert.Equal(t, 8_000_000.0, *max)
	}
}

func TestParsePriceRange_NoMatch(t *testing.T) {
	min, max := ParsePriceRange("điện thoại samsung màu đen")
	assert.Nil(t, min)
	assert.Nil(t, max)

	min, max = ParsePriceRange("")
	assert.Nil(t, min)
	assert.Nil(t, max)
}
