package global

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	Validate = validator.New()

	// Đăng ký các custom validator
	_ = Validate.RegisterValidation("no_xss", validateNoXSS)
}

// validateNoXSS kiểm tra chuỗi đầu vào không chứa các pattern XSS phổ biến.
// Message chat được phản hồi lại cho frontend nên cần chặn script injection.
func validateNoXSS(fl validator.FieldLevel) bool {
	value := strings.ToLower(fl.Field().String())
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"onclick=",
		"eval(",
		"document.cookie",
		"document.write",
		"<iframe",
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}
