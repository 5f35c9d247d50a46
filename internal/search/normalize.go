// Package search chứa engine hiểu truy vấn và tìm kiếm sản phẩm:
// chuẩn hóa văn bản, trích xuất thực thể, phân tích khoảng giá,
// dựng filter MongoDB và tìm kiếm fallback theo độ tương đồng.
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// RemoveAccents bỏ dấu tiếng Việt bằng cách phân rã NFD rồi loại các ký tự kết hợp.
// Lưu ý "đ" không phân rã được nên giữ nguyên, khớp với hành vi NFKD của hệ thống cũ.
func RemoveAccents(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Normalize chuẩn hóa truy vấn: lowercase, bỏ dấu, thay dấu câu bằng khoảng trắng,
// gộp khoảng trắng thừa. Hàm thuần, không side-effect.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = RemoveAccents(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == ',' {
			b.WriteRune(r)
			continue
		}
		b.WriteRune(' ')
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokenize tách chuỗi đã chuẩn hóa thành danh sách token theo khoảng trắng
func Tokenize(s string) []string {
	return strings.Fields(Normalize(s))
}
