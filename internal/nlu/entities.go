package nlu

import (
	"encoding/json"
	"strings"

	"github.com/khanh20003/BanHang-ChatBot/internal/search"
)

// NormalizeEntities chuyển mọi hình dạng response của dịch vụ NLU về
// *search.Entities có kiểu rõ ràng. Các đường parse được thử theo thứ tự cố định:
//  1. object args phẳng {"name": "iphone", "min_price": 5000000}
//  2. object bọc kiểu protobuf {"fields": {"name": {"stringValue": "iphone"}}}
//  3. chuỗi text chứa JSON
//
// Mọi field hỏng/parse không được đều gấp về nil thay vì báo lỗi —
// "không trích được thực thể" không phải là lỗi.
func NormalizeEntities(raw interface{}) *search.Entities {
	switch v := raw.(type) {
	case map[string]interface{}:
		if fields, ok := v["fields"].(map[string]interface{}); ok {
			return entitiesFromMap(unwrapProtoFields(fields))
		}
		return entitiesFromMap(v)
	case string:
		return entitiesFromText(v)
	case []byte:
		return entitiesFromText(string(v))
	}
	return nil
}

// entitiesFromText thử parse chuỗi text thành JSON object rồi chuẩn hóa
func entitiesFromText(text string) *search.Entities {
	text = strings.TrimSpace(text)
	// Gemini hay bọc JSON trong code fence
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var m map[string]interface{}
	if err := json.Unmarshal([]byte(text), &m); err != nil {
		return nil
	}
	return entitiesFromMap(m)
}

// unwrapProtoFields mở các value bọc kiểu protobuf Struct
// ({"stringValue": x} / {"numberValue": x} / {"boolValue": x})
func unwrapProtoFields(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		wrapped, ok := v.(map[string]interface{})
		if !ok {
			out[k] = v
			continue
		}
		for _, kind := range []string{"stringValue", "numberValue", "boolValue"} {
			if inner, exists := wrapped[kind]; exists {
				out[k] = inner
				break
			}
		}
	}
	return out
}

// entitiesFromMap đọc các field đã biết từ map, bỏ qua field sai kiểu
func entitiesFromMap(m map[string]interface{}) *search.Entities {
	if len(m) == 0 {
		return nil
	}
	e := &search.Entities{}
	got := false

	if s := stringField(m, "name"); s != nil {
		e.Name = s
		got = true
	}
	if s := stringField(m, "brand"); s != nil {
		e.Brand = s
		got = true
	}
	if s := stringField(m, "category"); s != nil {
		e.Category = s
		got = true
	}
	if s := stringField(m, "model"); s != nil {
		e.Model = s
		got = true
	}
	if s := stringField(m, "color"); s != nil {
		e.Color = s
		got = true
	}
	if f := numberField(m, "min_price"); f != nil {
		e.MinPrice = f
		got = true
	}
	if f := numberField(m, "max_price"); f != nil {
		e.MaxPrice = f
		got = true
	}
	if f := numberField(m, "rating"); f != nil {
		e.Rating = f
		got = true
	}
	// Schema cũ dùng key "status" cho loại hiển thị
	if s := stringField(m, "product_type"); s != nil {
		e.ProductType = s
		got = true
	} else if s := stringField(m, "status"); s != nil {
		e.ProductType = s
		got = true
	}
	if b, ok := m["is_flash_sale"].(bool); ok {
		e.IsFlashSale = &b
		got = true
	}
	if s := stringField(m, "sort_by"); s != nil && (*s == search.SortPriceAsc || *s == search.SortPriceDesc) {
		e.SortBy = s
		got = true
	}

	if !got {
		return nil
	}
	return e
}

func stringField(m map[string]interface{}, key string) *string {
	v, ok := m[key]
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func numberField(m map[string]interface{}, key string) *float64 {
	v, ok := m[key]
	if !ok {
		return nil
	}
	switch n := v.(type) {
	case float64:
		return &n
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return &f
		}
	case string:
		var f float64
		if err := json.Unmarshal([]byte(n), &f); err == nil {
			return &f
		}
	}
	return nil
}
