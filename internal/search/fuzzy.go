package search

import (
	"github.com/agnivade/levenshtein"
)

// Ngưỡng fuzzy match theo từng loại thực thể (thang 0-100).
// Mỗi loại dùng đúng một ngưỡng, kiểm chứng bằng property test thay vì
// rải nhiều ngưỡng khác nhau cho cùng một loại.
const (
	ThresholdBrand    = 70 // thương hiệu và alias viết tắt
	ThresholdCategory = 65 // danh mục (tên dài, chịu lỗi chính tả nhiều hơn)
	ThresholdColor    = 70 // màu sắc
)

// Ratio tính độ tương đồng giữa hai chuỗi theo thang 0-100
// dựa trên khoảng cách Levenshtein chuẩn hóa theo độ dài lớn hơn.
func Ratio(a, b string) int {
	if a == b {
		return 100
	}
	lenA := len([]rune(a))
	lenB := len([]rune(b))
	maxLen := lenA
	if lenB > maxLen {
		maxLen = lenB
	}
	if maxLen == 0 {
		return 100
	}

	dist := levenshtein.ComputeDistance(a, b)
	score := 100 - (100*dist)/maxLen
	if score < 0 {
		score = 0
	}
	return score
}

// BestMatch tìm candidate giống query nhất.
// Trả về index và điểm; index = -1 khi danh sách rỗng.
func BestMatch(query string, candidates []string) (int, int) {
	bestIdx := -1
	bestScore := -1
	for i, c := range candidates {
		score := Ratio(query, c)
		if score > bestScore {
			bestIdx = i
			bestScore = score
		}
	}
	return bestIdx, bestScore
}
