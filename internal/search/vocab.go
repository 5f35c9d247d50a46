package search

import "regexp"

// Bảng từ vựng tĩnh của extractor. Toàn bộ là dữ liệu bất biến, nạp một lần
// khi process khởi động, dùng chung cho mọi request.

// generalPhrases là các câu "xem tất cả" — gặp là bỏ qua filter theo tên.
// Lưu dạng không dấu, so khớp trên văn bản đã chuẩn hóa.
var generalPhrases = []string{
	"xem tat ca",
	"toan bo shop",
	"toan bo san pham",
	"tat ca san pham",
	"co gi trong shop",
	"xem shop",
	"xem san pham",
}

// Regex nhận diện ý định theo loại hiển thị, khớp trên văn bản không dấu.
// Thứ tự kiểm tra cố định, match đầu tiên thắng (mutually exclusive).
var (
	reFlashSaleExplicit = regexp.MustCompile(`flash ?sale|flash_sale`)
	reDiscountGeneric   = regexp.MustCompile(`giam gia|dang giam|khuyen mai|sale`)
	reBestSeller        = regexp.MustCompile(`ban chay|best ?seller|best_seller`)
	reNewest            = regexp.MustCompile(`moi nhat|newest|moi`)
	reTrending          = regexp.MustCompile(`trending|hot|thinh hanh`)
)

// stopwords bị loại khỏi phần từ khóa còn lại (dạng không dấu)
var stopwords = map[string]bool{
	"toi": true, "muon": true, "mua": true, "cac": true,
	"san": true, "pham": true, "thuoc": true, "danh": true,
	"muc": true, "hang": true, "tim": true, "kiem": true,
	"gia": true, "bao": true, "nhieu": true, "cho": true,
	"can": true, "xem": true, "con": true, "co": true,
}

// intentKeywords là các cụm từ ý định, không được giữ lại làm từ khóa tên
var intentKeywords = []string{
	"ban chay", "best seller", "best_seller", "giam gia", "giam",
	"flash sale", "sale", "moi nhat", "newest", "trending", "hot",
	"thinh hanh", "khuyen mai",
}

// brandCanonical là danh sách thương hiệu chuẩn trong catalog
var brandCanonical = []string{
	"iphone", "samsung", "oppo", "xiaomi", "apple", "realme", "vivo",
	"asus", "nokia", "sony", "huawei", "itel", "mobell", "masstel",
	"lenovo", "motorola",
}

// brandAliases ánh xạ cách viết tắt/sai chính tả phổ biến về tên chuẩn
var brandAliases = map[string]string{
	"ip":     "iphone",
	"iphon":  "iphone",
	"iphone": "iphone",
	"ifone":  "iphone",
	"ss":     "samsung",
	"ssung":  "samsung",
	"sam":    "samsung",
	"galaxy": "samsung",
	"xm":     "xiaomi",
	"redmi":  "xiaomi",
	"mi":     "xiaomi",
	"rm":     "realme",
	"mac":    "apple",
}

// reModelContinuation khớp token nối tiếp model sau thương hiệu
// (ví dụ: "iphone 16 pro max" → model "16 pro max")
var reModelContinuation = regexp.MustCompile(`^(\d+|pro|max|plus|ultra|note|air|mini|se|lite)$`)

// reConcatBrandModel khớp token dính liền kiểu "ip16promax"
var reConcatBrandModel = regexp.MustCompile(`^([a-z]+)(\d+)([a-z]*)$`)

// modelSuffixWords dùng để tách phần đuôi dính liền ("promax" → "pro max")
var modelSuffixWords = []string{"pro", "max", "plus", "ultra", "note", "air", "mini", "se", "lite"}

// categoryVocab là danh mục cố định của shop, kèm dạng không dấu để so khớp
var categoryVocab = []struct {
	Title    string // tên chuẩn có dấu, trùng title trong catalog
	NoAccent string
}{
	{"điện thoại", "dien thoai"},
	{"laptop", "laptop"},
	{"máy tính bảng", "may tinh bang"},
	{"tai nghe", "tai nghe"},
	{"phụ kiện", "phu kien"},
}

// CategorySynonyms ánh xạ danh mục chuẩn sang các cách gọi tương đương.
// Planner dùng khi danh mục không resolve được ID để lọc theo title gần đúng.
var CategorySynonyms = map[string][]string{
	"điện thoại":    {"điện thoại", "phone", "mobile", "smartphone", "cellphone", "cell phone", "mobiles"},
	"laptop":        {"laptop", "notebook", "máy tính xách tay"},
	"máy tính bảng": {"máy tính bảng", "tablet", "ipad"},
}

// colorVocab ánh xạ các cách gọi màu (không dấu) về tên màu chuẩn trong catalog
var colorVocab = map[string]string{
	"den":        "đen",
	"black":      "đen",
	"trang":      "trắng",
	"white":      "trắng",
	"xanh":       "xanh",
	"blue":       "xanh dương",
	"xanh duong": "xanh dương",
	"xanh la":    "xanh lá",
	"green":      "xanh lá",
	"do":         "đỏ",
	"red":        "đỏ",
	"vang":       "vàng",
	"yellow":     "vàng",
	"gold":       "vàng",
	"hong":       "hồng",
	"pink":       "hồng",
	"tim":        "tím",
	"purple":     "tím",
	"xam":        "xám",
	"gray":       "xám",
	"grey":       "xám",
	"bac":        "bạc",
	"silver":     "bạc",
}

// DiscountTagKeywords là các từ khóa giảm giá soi trong tag của sản phẩm
var DiscountTagKeywords = []string{"sale", "giam gia", "giảm giá", "flash_sale", "khuyen mai", "khuyến mãi", "discount"}

// stockPhrases là các cụm từ thể hiện ý định "còn hàng" (dạng không dấu)
var stockPhrases = []string{"con hang", "co san", "co hang", "san hang"}

// Regex trích thuộc tính cấu hình, chạy theo thứ tự cố định trên văn bản không dấu.
// Mỗi regex khi match sẽ tiêu thụ đoạn text tương ứng trước khi chạy bước sau.
var (
	reRAM      = regexp.MustCompile(`ram\s*(\d+)\s*(?:gb|g)?|(\d+)\s*(?:gb|g)\s*ram`)
	reROM      = regexp.MustCompile(`(?:rom|bo nho|o cung|ssd)\s*(\d+)\s*(gb|tb)|(\d+)\s*(gb|tb)(?:\s|$)`)
	reChip     = regexp.MustCompile(`(?:chip|cpu|vi xu ly)\s+([a-z]+(?:\s?[a-z0-9]+)?)`)
	reGPU      = regexp.MustCompile(`(?:gpu|card roi|card do hoa|card)\s+([a-z]+(?:\s?[a-z0-9]+)?)`)
	reDisplay  = regexp.MustCompile(`(?:man hinh|man)\s*(\d+(?:[.,]\d+)?)\s*(?:inch|in)?`)
	reCamera   = regexp.MustCompile(`(?:camera|cam)\s*(\d+)\s*(?:mp|megapixel|cham)?|(\d+)\s*mp`)
	rePin      = regexp.MustCompile(`pin\s*(\d{3,6})\s*(?:mah)?`)
	reCharging = regexp.MustCompile(`sac(?:\s*nhanh)?\s*(\d+)\s*w|(\d+)\s*w(?:\s|$)`)
)

// sortPhrases ánh xạ cụm từ sắp xếp theo giá về SortBy (dạng không dấu).
// Cụm dài đứng trước để "gia re nhat" không bị "re nhat" ăn mất.
var sortPhrases = []struct {
	Phrase string
	SortBy string
}{
	{"gia re nhat", SortPriceAsc},
	{"gia thap nhat", SortPriceAsc},
	{"gia tang dan", SortPriceAsc},
	{"re nhat", SortPriceAsc},
	{"gia cao nhat", SortPriceDesc},
	{"gia giam dan", SortPriceDesc},
	{"dat nhat", SortPriceDesc},
}

// Cụm từ ngữ nghĩa về pin → sàn dung lượng (mAh)
var pinSemantic = []struct {
	Phrase string
	MinPin int
}{
	{"pin trau", 5000},
	{"pin khoe", 5000},
	{"pin yeu", 3000},
}
