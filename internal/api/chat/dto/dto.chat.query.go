package chatdto

import (
	"github.com/khanh20003/BanHang-ChatBot/internal/search"
)

// ChatQueryInput dữ liệu đầu vào cho một câu hỏi chat
type ChatQueryInput struct {
	Message    string `json:"message" validate:"required,max=500,no_xss"`
	CustomerID string `json:"customerId,omitempty"` // Mã khách hàng (tùy chọn, phục vụ log)
}

// ChatQueryResponse câu trả lời của chatbot kèm danh sách sản phẩm gợi ý.
// Actions luôn null ở cấp response — action gắn theo từng sản phẩm.
type ChatQueryResponse struct {
	Response  string               `json:"response"`
	Products  []search.ProductView `json:"products"`
	Actions   interface{}          `json:"actions"`
	Timestamp string               `json:"timestamp"`
}
