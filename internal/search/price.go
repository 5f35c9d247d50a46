package search

import (
	"regexp"
	"strconv"
	"strings"
)

// rePriceMatch khớp số + đơn vị tiền trên văn bản không dấu.
// Thứ tự alternation quan trọng: "trieu" phải đứng trước "tr", "vnd" trước "m".
var rePriceMatch = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(trieu|tr|nghin|vnd|đong|dong|k|m)\b`)

// Từ khóa neo khoảng giá (không dấu)
var (
	lowerAnchors = []string{"tu", "tren"}
	upperAnchors = []string{"den", "duoi", "khoang"}
)

type priceMatch struct {
	value  float64
	anchor string // "min", "max" hoặc "" khi không có từ khóa neo
}

// ParsePriceRange trích khoảng giá từ truy vấn.
// Đơn vị quy đổi theo từng match: triệu/tr/m ×1e6, nghìn/k ×1e3, đồng/vnd ×1.
// Từ khóa đứng trước match quyết định chiều: từ/trên → giá sàn, đến/dưới/khoảng → giá trần.
// Hai match không neo → (min, max) theo thứ tự xuất hiện; một match không neo →
// dùng làm cả hai cận; không match → cả hai unset.
func ParsePriceRange(text string) (*float64, *float64) {
	normalized := Normalize(text)

	locs := rePriceMatch.FindAllStringSubmatchIndex(normalized, -1)
	if len(locs) == 0 {
		return nil, nil
	}

	matches := make([]priceMatch, 0, len(locs))
	for _, loc := range locs {
		numStr := strings.ReplaceAll(normalized[loc[2]:loc[3]], ",", ".")
		value, err := strconv.ParseFloat(numStr, 64)
		if err != nil {
			continue
		}

		unit := normalized[loc[4]:loc[5]]
		switch unit {
		case "trieu", "tr", "m":
			value *= 1_000_000
		case "nghin", "k":
			value *= 1_000
		}

		matches = append(matches, priceMatch{
			value:  value,
			anchor: anchorBefore(normalized[:loc[0]]),
		})
	}
	if len(matches) == 0 {
		return nil, nil
	}

	var minPrice, maxPrice *float64

	// Gán các match có neo trước
	var unanchored []float64
	for _, m := range matches {
		switch m.anchor {
		case "min":
			if minPrice == nil {
				v := m.value
				minPrice = &v
			}
		case "max":
			if maxPrice == nil {
				v := m.value
				maxPrice = &v
			}
		default:
			unanchored = append(unanchored, m.value)
		}
	}

	// Match không neo: hai giá trị → (min, max) theo thứ tự;
	// một giá trị không phân định được → dùng làm cả hai cận
	switch {
	case len(unanchored) >= 2 && minPrice == nil && maxPrice == nil:
		minPrice = &unanchored[0]
		maxPrice = &unanchored[1]
	case len(unanchored) == 1:
		if minPrice == nil && maxPrice == nil {
			minPrice = &unanchored[0]
			maxPrice = &unanchored[0]
		} else if minPrice == nil {
			minPrice = &unanchored[0]
		} else if maxPrice == nil {
			maxPrice = &unanchored[0]
		}
	}

	return minPrice, maxPrice
}

// anchorBefore tìm từ khóa neo gần nhất đứng trước vị trí match
func anchorBefore(prefix string) string {
	words := strings.Fields(prefix)
	// Chỉ xét tối đa 3 từ ngay trước giá trị, tránh neo nhầm từ đầu câu
	start := len(words) - 3
	if start < 0 {
		start = 0
	}
	anchor := ""
	for _, w := range words[start:] {
		// Normalize giữ nguyên "đ" (NFD không phân rã được), nên "đến" → "đen".
		// Quy "đ" về "d" trước khi so với từ khóa neo.
		w = strings.ReplaceAll(w, "đ", "d")
		for _, a := range lowerAnchors {
			if w == a {
				anchor = "min"
			}
		}
		for _, a := range upperAnchors {
			if w == a {
				anchor = "max"
			}
		}
	}
	return anchor
}
