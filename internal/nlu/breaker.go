// Package nlu là adapter gọi dịch vụ NLU bên ngoài (Gemini) để trích xuất
// thực thể, phân loại ý định và sinh câu trả lời. Mọi lỗi từ dịch vụ này
// đều được nuốt tại chỗ — pipeline tìm kiếm luôn chạy được bằng extractor nội bộ.
package nlu

import (
	"strings"
	"sync"
	"sync/atomic"
)

// Breaker là circuit breaker cho dịch vụ NLU: khi quota cạn thì chặn mọi lời
// gọi tiếp theo cho đến khi được reset tường minh (ví dụ khi đổi API key).
// Đổi availability của AI-assisted extraction lấy sự ổn định của hệ thống.
type Breaker struct {
	open    atomic.Bool
	mu      sync.Mutex
	lastKey string
}

// NewBreaker tạo breaker đóng (cho phép gọi)
func NewBreaker() *Breaker {
	return &Breaker{}
}

// Open kiểm tra breaker đang mở (chặn gọi) hay không
func (b *Breaker) Open() bool {
	return b.open.Load()
}

// Trip mở breaker — dừng gọi dịch vụ NLU cho đến khi Reset
func (b *Breaker) Trip() {
	b.open.Store(true)
}

// Reset đóng breaker, cho phép gọi lại
func (b *Breaker) Reset() {
	b.open.Store(false)
}

// ObserveKey theo dõi API key đang dùng; key đổi nghĩa là người vận hành đã
// cập nhật credential nên breaker được reset tự động
func (b *Breaker) ObserveKey(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if key != b.lastKey {
		b.lastKey = key
		b.open.Store(false)
	}
}

// TripOnQuotaError mở breaker nếu err là lỗi hết quota. Trả về true nếu đã trip.
func (b *Breaker) TripOnQuotaError(err error) bool {
	if err == nil {
		return false
	}
	if IsQuotaError(err) {
		b.Trip()
		return true
	}
	return false
}

// IsQuotaError nhận diện lỗi hết quota từ message trả về của dịch vụ
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "resource_exhausted")
}

// defaultBreaker là breaker cấp process, dùng cho health check và client mặc định
var defaultBreaker = NewBreaker()

// DefaultBreaker trả về breaker cấp process
func DefaultBreaker() *Breaker {
	return defaultBreaker
}

// QuotaExceeded cho biết breaker cấp process đang mở (hết quota)
func QuotaExceeded() bool {
	return defaultBreaker.Open()
}
