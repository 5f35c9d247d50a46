package search

import (
	"regexp"
	"sort"
	"strings"

	"github.com/khanh20003/BanHang-ChatBot/internal/utility"
)

// Extractor trích xuất SearchParams từ truy vấn tự do theo thứ tự ưu tiên cố định:
// câu tổng quát → ý định → danh mục → thương hiệu/model → thuộc tính cấu hình →
// màu sắc → từ khóa còn lại → khoảng giá → ý định còn hàng.
// Mỗi bước tiêu thụ các token đã match nên bước sau không nhìn thấy lại chúng.
// Hàm Extract thuần và deterministic với cùng bảng từ vựng.
type Extractor struct {
	intentPhrases [][]string // intentKeywords đã tách token, xếp dài trước
}

// NewExtractor tạo extractor với các bảng từ vựng tĩnh của package
func NewExtractor() *Extractor {
	phrases := make([][]string, 0, len(intentKeywords))
	for _, kw := range intentKeywords {
		phrases = append(phrases, strings.Fields(kw))
	}
	// Cụm dài ưu tiên trước để "giảm giá" không bị "giảm" ăn mất
	sort.SliceStable(phrases, func(i, j int) bool {
		return len(phrases[i]) > len(phrases[j])
	})
	return &Extractor{intentPhrases: phrases}
}

// Extract phân tích truy vấn thành Params. Thuần, không side-effect.
func (e *Extractor) Extract(text string) Params {
	var p Params
	noaccent := Normalize(text)

	// 1. Câu tổng quát "xem tất cả" — không filter theo tên, chỉ giữ danh mục nếu có
	for _, phrase := range generalPhrases {
		if strings.Contains(noaccent, phrase) {
			if cat, _, ok := findCategory(strings.Fields(noaccent)); ok {
				p.Category = cat
			}
			return p
		}
	}

	// 2. Ý định loại hiển thị, match đầu tiên thắng.
	// "flash sale" tường minh → product_type; câu giảm giá chung → cờ IsFlashSale
	switch {
	case reFlashSaleExplicit.MatchString(noaccent):
		p.ProductType = TypeFlashSale
	case reDiscountGeneric.MatchString(noaccent):
		p.IsFlashSale = true
	case reBestSeller.MatchString(noaccent):
		p.ProductType = TypeBestSeller
	case reNewest.MatchString(noaccent):
		p.ProductType = TypeNewest
	case reTrending.MatchString(noaccent):
		p.ProductType = TypeTrending
	}

	// 8. Khoảng giá chạy độc lập trên văn bản gốc rồi merge vào
	p.MinPrice, p.MaxPrice = ParsePriceRange(text)

	tokens := strings.Fields(noaccent)
	tokens = e.consumeIntentPhrases(tokens)
	tokens = consumePriceTokens(tokens)

	// 9. Ý định còn hàng
	for _, phrase := range stockPhrases {
		if next, ok := removePhrase(tokens, strings.Fields(phrase)); ok {
			p.InStock = true
			tokens = next
			break
		}
	}

	// Sắp xếp theo giá, cụm từ match bị tiêu thụ luôn
	for _, sp := range sortPhrases {
		if next, ok := removePhrase(tokens, strings.Fields(sp.Phrase)); ok {
			p.SortBy = sp.SortBy
			tokens = next
			break
		}
	}

	// 4. Danh mục trước thương hiệu: khi cùng một đoạn text resolve được cả hai,
	// danh mục được tiêu thụ trước nhưng cả hai đều giữ lại trong params
	if cat, rest, ok := findCategory(tokens); ok {
		p.Category = cat
		tokens = rest
	}

	// 3. Thương hiệu + model
	tokens = extractBrandModel(tokens, &p)

	// 5. Thuộc tính cấu hình, tiêu thụ dần từ working text
	tokens = extractConfigAttrs(tokens, &p)

	// 4. Danh mục lần hai sau khi đã gỡ thuộc tính cấu hình (tăng recall)
	if p.Category == "" {
		if cat, rest, ok := findCategory(tokens); ok {
			p.Category = cat
			tokens = rest
		}
	}

	// 6. Màu sắc
	tokens = extractColor(tokens, &p)

	// 7. Từ khóa còn lại sau khi loại stopword
	var nameWords []string
	for _, tok := range tokens {
		if stopwords[tok] {
			continue
		}
		nameWords = append(nameWords, tok)
	}
	if len(nameWords) > 0 {
		name := strings.Join(nameWords, " ")
		if !isIntentOrStopword(name) {
			p.Name = name
		}
	}

	return p
}

// consumeIntentPhrases gỡ các cụm từ ý định đã được bước 2 nhận diện khỏi token list
func (e *Extractor) consumeIntentPhrases(tokens []string) []string {
	for _, phrase := range e.intentPhrases {
		for {
			next, ok := removePhrase(tokens, phrase)
			if !ok {
				break
			}
			tokens = next
		}
	}
	return tokens
}

// consumePriceTokens gỡ các token giá (số + đơn vị, kèm từ neo đứng trước)
// để chúng không lọt vào từ khóa tên
func consumePriceTokens(tokens []string) []string {
	isAnchor := func(w string) bool {
		return w == "tu" || w == "tren" || w == "den" || w == "duoi" || w == "khoang"
	}

	var out []string
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		// "5trieu" dính liền
		if rePriceMatch.MatchString(tok) {
			if len(out) > 0 && isAnchor(out[len(out)-1]) {
				out = out[:len(out)-1]
			}
			continue
		}
		// "5 trieu" tách rời
		if i+1 < len(tokens) && rePriceMatch.MatchString(tok+" "+tokens[i+1]) {
			if len(out) > 0 && isAnchor(out[len(out)-1]) {
				out = out[:len(out)-1]
			}
			i++
			continue
		}
		out = append(out, tok)
	}
	return out
}

// removePhrase gỡ cửa sổ token đầu tiên trùng khớp phrase.
// Trả về token list mới và true nếu có gỡ.
func removePhrase(tokens []string, phrase []string) ([]string, bool) {
	if len(phrase) == 0 || len(tokens) < len(phrase) {
		return tokens, false
	}
	for i := 0; i+len(phrase) <= len(tokens); i++ {
		matched := true
		for j, w := range phrase {
			if tokens[i+j] != w {
				matched = false
				break
			}
		}
		if matched {
			out := make([]string, 0, len(tokens)-len(phrase))
			out = append(out, tokens[:i]...)
			out = append(out, tokens[i+len(phrase):]...)
			return out, true
		}
	}
	return tokens, false
}

// findCategory tìm danh mục trong token list: thử khớp chính xác trước,
// sau đó fuzzy theo cửa sổ cùng độ dài với ngưỡng ThresholdCategory.
// Trả về tên danh mục chuẩn (có dấu), token list đã tiêu thụ và cờ tìm thấy.
func findCategory(tokens []string) (string, []string, bool) {
	for _, cat := range categoryVocab {
		phrase := strings.Fields(cat.NoAccent)
		if rest, ok := removePhrase(tokens, phrase); ok {
			return cat.Title, rest, true
		}
	}
	// Fuzzy theo cửa sổ
	for _, cat := range categoryVocab {
		phrase := strings.Fields(cat.NoAccent)
		n := len(phrase)
		if len(tokens) < n {
			continue
		}
		for i := 0; i+n <= len(tokens); i++ {
			window := strings.Join(tokens[i:i+n], " ")
			if Ratio(window, cat.NoAccent) >= ThresholdCategory {
				out := make([]string, 0, len(tokens)-n)
				out = append(out, tokens[:i]...)
				out = append(out, tokens[i+n:]...)
				return cat.Title, out, true
			}
		}
	}
	return "", tokens, false
}

// resolveBrand resolve một token về tên thương hiệu chuẩn: alias exact trước,
// sau đó fuzzy ≥ ThresholdBrand trên cả alias lẫn tên chuẩn
func resolveBrand(tok string) (string, bool) {
	if len(tok) < 2 {
		return "", false
	}
	if canonical, ok := brandAliases[tok]; ok {
		return canonical, true
	}
	for _, b := range brandCanonical {
		if tok == b {
			return b, true
		}
	}

	best := ""
	bestScore := 0
	for alias, canonical := range brandAliases {
		if score := Ratio(tok, alias); score > bestScore {
			best = canonical
			bestScore = score
		}
	}
	for _, b := range brandCanonical {
		if score := Ratio(tok, b); score > bestScore {
			best = b
			bestScore = score
		}
	}
	if bestScore >= ThresholdBrand {
		return best, true
	}
	return "", false
}

// extractBrandModel tìm thương hiệu + model theo hai pattern:
// (a) token dính liền "ip16promax" → prefix chữ fuzzy với alias, phần còn lại là model;
// (b) token thương hiệu tách rời, theo sau tối đa 3 token nối tiếp model.
func extractBrandModel(tokens []string, p *Params) []string {
	for i, tok := range tokens {
		// (a) chữ + số dính liền
		if m := reConcatBrandModel.FindStringSubmatch(tok); m != nil {
			if brand, ok := resolveBrand(m[1]); ok {
				p.Brand = brand
				modelParts := []string{m[2]}
				modelParts = append(modelParts, splitModelSuffix(m[3])...)

				rest := append(append([]string{}, tokens[:i]...), tokens[i+1:]...)
				rest, more := absorbModelContinuation(rest, i)
				modelParts = append(modelParts, more...)
				p.Model = strings.Join(modelParts, " ")
				return rest
			}
		}

		// (b) thương hiệu tách rời
		if brand, ok := resolveBrand(tok); ok {
			p.Brand = brand
			rest := append(append([]string{}, tokens[:i]...), tokens[i+1:]...)
			rest, modelParts := absorbModelContinuation(rest, i)
			if len(modelParts) > 0 {
				p.Model = strings.Join(modelParts, " ")
			}
			return rest
		}
	}
	return tokens
}

// absorbModelContinuation lấy tối đa 3 token nối tiếp model bắt đầu từ vị trí pos
// (vị trí đứng ngay sau token thương hiệu vừa bị gỡ)
func absorbModelContinuation(tokens []string, pos int) ([]string, []string) {
	var parts []string
	for len(parts) < 3 && pos < len(tokens) && reModelContinuation.MatchString(tokens[pos]) {
		parts = append(parts, tokens[pos])
		tokens = append(append([]string{}, tokens[:pos]...), tokens[pos+1:]...)
	}
	return tokens, parts
}

// splitModelSuffix tách đuôi model dính liền thành các từ chuẩn ("promax" → ["pro","max"])
func splitModelSuffix(suffix string) []string {
	var parts []string
	for suffix != "" {
		matched := false
		for _, w := range modelSuffixWords {
			if strings.HasPrefix(suffix, w) {
				parts = append(parts, w)
				suffix = suffix[len(w):]
				matched = true
				break
			}
		}
		if !matched {
			parts = append(parts, suffix)
			break
		}
	}
	return parts
}

// extractConfigAttrs trích thuộc tính cấu hình theo thứ tự cố định,
// mỗi match bị gỡ khỏi working text trước khi chạy regex tiếp theo
func extractConfigAttrs(tokens []string, p *Params) []string {
	work := strings.Join(tokens, " ")

	// Cụm ngữ nghĩa về pin xử lý trước regex số
	for _, sem := range pinSemantic {
		if strings.Contains(work, sem.Phrase) {
			p.MinPin = sem.MinPin
			work = strings.Join(strings.Fields(strings.Replace(work, sem.Phrase, " ", 1)), " ")
			break
		}
	}

	take := func(re *regexp.Regexp) []string {
		m := re.FindStringSubmatch(work)
		if m == nil {
			return nil
		}
		loc := re.FindStringIndex(work)
		work = strings.Join(strings.Fields(work[:loc[0]]+" "+work[loc[1]:]), " ")
		return m
	}

	if m := take(reRAM); m != nil {
		p.Ram = firstGroup(m) + "gb"
	}
	if m := take(reROM); m != nil {
		num, unit := romGroups(m)
		p.Rom = num + unit
	}
	if m := take(reChip); m != nil {
		p.Chip = strings.TrimSpace(m[1])
	}
	if m := take(reGPU); m != nil {
		p.Gpu = strings.TrimSpace(m[1])
	}
	if m := take(reDisplay); m != nil {
		p.Display = strings.ReplaceAll(m[1], ",", ".") + " inch"
	}
	if m := take(reCamera); m != nil {
		p.Camera = firstGroup(m) + "mp"
	}
	if p.MinPin == 0 {
		if m := take(rePin); m != nil {
			p.MinPin = atoiSafe(m[1])
		}
	}
	if m := take(reCharging); m != nil {
		p.Charging = firstGroup(m) + "w"
	}

	return strings.Fields(work)
}

// firstGroup trả về capture group khác rỗng đầu tiên (regex có nhiều nhánh)
func firstGroup(m []string) string {
	for _, g := range m[1:] {
		if g != "" {
			return g
		}
	}
	return ""
}

// romGroups lấy (số, đơn vị) từ hai nhánh của reROM
func romGroups(m []string) (string, string) {
	if m[1] != "" {
		return m[1], m[2]
	}
	return m[3], m[4]
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// extractColor tìm màu theo cửa sổ 2 token trước rồi 1 token, exact trước fuzzy.
// Token trùng với stopword (ví dụ "tim" vừa là "tìm" vừa là "tím") chỉ được coi
// là màu khi đứng ngay sau từ "mau" (màu).
func extractColor(tokens []string, p *Params) []string {
	match := func(window string, prevIsMau bool) (string, bool) {
		if stopwords[window] && !prevIsMau {
			return "", false
		}
		if canonical, ok := colorVocab[window]; ok {
			return canonical, true
		}
		// Fuzzy chỉ cho cửa sổ đủ dài, tránh token 1-2 ký tự match bừa
		if len(window) < 3 {
			return "", false
		}
		for noaccent, canonical := range colorVocab {
			if Ratio(window, noaccent) >= ThresholdColor {
				return canonical, true
			}
		}
		return "", false
	}

	for size := 2; size >= 1; size-- {
		for i := 0; i+size <= len(tokens); i++ {
			window := strings.Join(tokens[i:i+size], " ")
			prevIsMau := i > 0 && tokens[i-1] == "mau"
			if canonical, ok := match(window, prevIsMau); ok {
				p.Color = canonical
				out := make([]string, 0, len(tokens)-size)
				out = append(out, tokens[:i]...)
				out = append(out, tokens[i+size:]...)
				// Gỡ luôn từ "mau" đứng trước
				if prevIsMau {
					out = append(out[:i-1], out[i:]...)
				}
				return out
			}
		}
	}
	return tokens
}

// isIntentOrStopword kiểm tra chuỗi tên có trùng nguyên vẹn với một từ ý định
// hoặc stopword hay không — các giá trị như vậy không được giữ làm từ khóa
func isIntentOrStopword(name string) bool {
	return stopwords[name] || utility.Contains(intentKeywords, name)
}
