package chathdl

import (
	"github.com/gofiber/fiber/v3"

	basehdl "github.com/khanh20003/BanHang-ChatBot/internal/api/base/handler"
	chatdto "github.com/khanh20003/BanHang-ChatBot/internal/api/chat/dto"
	chatsvc "github.com/khanh20003/BanHang-ChatBot/internal/api/chat/service"
	"github.com/khanh20003/BanHang-ChatBot/internal/common"
)

// ChatHandler xử lý các yêu cầu hội thoại của khách hàng
type ChatHandler struct {
	ChatService *chatsvc.ChatService
}

// NewChatHandler khởi tạo ChatHandler mới
func NewChatHandler(service *chatsvc.ChatService) *ChatHandler {
	return &ChatHandler{ChatService: service}
}

// HandleQuery xử lý POST /chat/query. Body hợp lệ thì trả thẳng response hội
// thoại (không bọc envelope — khung chat phía client đọc trực tiếp), body sai
// thì trả envelope lỗi chuẩn.
func (h *ChatHandler) HandleQuery(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		input := new(chatdto.ChatQueryInput)
		if err := basehdl.ParseRequestBody(c, input); err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				"Nội dung tin nhắn không hợp lệ",
				common.StatusBadRequest,
				err.Error(),
			))
			return nil
		}

		resp := h.ChatService.Query(c.Context(), input)
		return basehdl.JSONResponse(c, common.StatusOK, resp)
	})
}
