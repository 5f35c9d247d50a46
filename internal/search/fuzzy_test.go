package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio(t *testing.T) {
	assert.Equal(t, 100, Ratio("iphone", "iphone"))
	assert.Equal(t, 100, Ratio("", ""))
	assert.Equal(t, 0, Ratio("", "iphone"))

	// Sai một ký tự trên từ 6 ký tự vẫn trên ngưỡng thương hiệu
	assert.GreaterOrEqual(t, Ratio("iphon", "iphone"), ThresholdBrand)
	assert.GreaterOrEqual(t, Ratio("samsungg", "samsung"), ThresholdBrand)

	// Hai chuỗi khác hẳn nhau phải dưới mọi ngưỡng
	assert.Less(t, Ratio("laptop", "tai nghe"), ThresholdCategory)
}

func TestRatio_SymmetricRange(t *testing.T) {
	pairs := [][2]string{
		{"iphone", "samsung"},
		{"dien thoai", "dein thoai"},
		{"a", "b"},
	}
	for _, p := range pairs {
		r1 := Ratio(p[0], p[1])
		r2 := Ratio(p[1], p[0])
		assert.Equal(t, r1, r2, "Ratio phải đối xứng với (%q, %q)", p[0], p[1])
		assert.GreaterOrEqual(t, r1, 0)
		assert.LessOrEqual(t, r1, 100)
	}
}

func TestBestMatch(t *testing.T) {
	idx, score := BestMatch("iphon", []string{"samsung", "iphone", "oppo"})
	assert.Equal(t, 1, idx)
	assert.GreaterOrEqual(t, score, ThresholdBrand)

	idx, score = BestMatch("iphone", nil)
	assert.Equal(t, -1, idx)
	assert.Equal(t, -1, score)
}
