package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveAccents(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"điện thoại", "đien thoai"},
		{"tím", "tim"},
		{"laptop", "laptop"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RemoveAccents(tt.in), "RemoveAccents(%q)", tt.in)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Tôi muốn MUA iPhone!", "toi muon mua iphone"},
		{"giá 5.5 triệu", "gia 5.5 trieu"},
		{"  nhiều   khoảng    trắng  ", "nhieu khoang trang"},
		{"điện-thoại/samsung", "đien thoai samsung"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"đien", "thoai", "samsung"}, Tokenize("Điện thoại Samsung"))
	assert.Empty(t, Tokenize("   "))
}
