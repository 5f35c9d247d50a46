package chatsvc

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	chatdto "github.com/khanh20003/BanHang-ChatBot/internal/api/chat/dto"
	"github.com/khanh20003/BanHang-ChatBot/internal/search"
	"github.com/khanh20003/BanHang-ChatBot/internal/utility"
)

// Replier là phần sinh câu trả lời tự nhiên của dịch vụ NLU (tùy chọn).
// nlu.Client thỏa interface này; test dùng fake.
type Replier interface {
	GenerateReply(ctx context.Context, message string, products []search.ProductView) string
}

// IntentDetector phân loại một câu hỏi có phải ý định mua/hỏi sản phẩm không.
// nlu.Client thỏa interface này; replier không hỗ trợ thì bỏ qua bước phân loại.
type IntentDetector interface {
	DetectProductIntent(ctx context.Context, message string) bool
}

// MsgNotUnderstood là câu trả lời khi không hiểu được yêu cầu của khách
const MsgNotUnderstood = "Xin lỗi, tôi chưa hiểu yêu cầu của bạn. Bạn có thể nói rõ hơn không?"

// MsgDegraded là câu trả lời khi hệ thống gặp sự cố nhưng vẫn phải trả lời được
const MsgDegraded = "Xin lỗi, hệ thống đang gặp sự cố. Bạn vui lòng thử lại sau ít phút nhé."

// ChatService điều phối một lượt hội thoại: chạy engine tìm kiếm, dựng
// câu trả lời và gắn action cho từng sản phẩm gợi ý
type ChatService struct {
	engine  *search.Engine
	replier Replier // nil khi không cấu hình NLU
	log     *logrus.Logger
}

// NewChatService tạo ChatService. replier có thể nil.
func NewChatService(engine *search.Engine, replier Replier, log *logrus.Logger) *ChatService {
	return &ChatService{
		engine:  engine,
		replier: replier,
		log:     log,
	}
}

// Query xử lý một câu hỏi của khách và luôn trả về câu trả lời dùng được —
// lỗi bên trong được log và đổi thành câu xin lỗi, không bao giờ đẩy lỗi
// hệ thống lên khung chat.
func (s *ChatService) Query(ctx context.Context, input *chatdto.ChatQueryInput) *chatdto.ChatQueryResponse {
	resp := &chatdto.ChatQueryResponse{
		Products:  []search.ProductView{},
		Actions:   nil,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	products, params, err := s.engine.Search(ctx, input.Message)
	if err != nil {
		s.log.WithError(err).WithField("customerId", input.CustomerID).Error("Pipeline tìm kiếm thất bại")
		resp.Response = MsgDegraded
		return resp
	}
	s.log.WithField("params", utility.PrettyPrint(params)).Debug("Đã trích xuất tham số tìm kiếm")

	resp.Products = search.Assemble(products, s.engine.Limit())

	// Đã trích được thực thể thì luôn báo số lượng tìm thấy, kể cả 0 —
	// khách hỏi về sản phẩm và đã được tìm, chỉ là catalog không có hàng khớp
	if len(resp.Products) > 0 || !params.IsEmpty() {
		resp.Response = fmt.Sprintf("Tìm thấy %d sản phẩm phù hợp.", len(resp.Products))
		return resp
	}

	// Không trích được gì: câu hỏi ngoài phạm vi tìm kiếm.
	// Nếu có NLU thì nhờ nó trả lời tự nhiên, không thì dùng câu mặc định.
	if s.replier != nil {
		// Câu hỏi về sản phẩm mà không trích được thực thể nào thì xin khách
		// nói rõ hơn, không để NLU trả lời lan man
		if det, ok := s.replier.(IntentDetector); ok && det.DetectProductIntent(ctx, input.Message) {
			resp.Response = MsgNotUnderstood
			return resp
		}
		if reply := s.replier.GenerateReply(ctx, input.Message, nil); reply != "" {
			resp.Response = reply
			return resp
		}
	}
	resp.Response = MsgNotUnderstood
	return resp
}
