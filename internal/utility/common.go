package utility

import (
	"encoding/json"
)

// PrettyPrint in đẹp một interface dưới dạng JSON, dùng cho log debug
func PrettyPrint(i interface{}) string {
	s, _ := json.MarshalIndent(i, "", "\t")
	return string(s)
}
