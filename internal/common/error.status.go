package common

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// HTTP Status Code Constants
const (
	// Success Codes (2xx)
	StatusOK        = 200 // Thành công
	StatusCreated   = 201 // Tạo mới thành công
	StatusNoContent = 204 // Thành công nhưng không có nội dung trả về

	// Client Error Codes (4xx)
	StatusBadRequest      = 400 // Yêu cầu không hợp lệ
	StatusUnauthorized    = 401 // Chưa xác thực
	StatusForbidden       = 403 // Không có quyền truy cập
	StatusNotFound        = 404 // Không tìm thấy tài nguyên
	StatusConflict        = 409 // Xung đột dữ liệu
	StatusTooManyRequests = 429 // Quá nhiều yêu cầu

	// Server Error Codes (5xx)
	StatusInternalServerError = 500 // Lỗi server
	StatusServiceUnavailable  = 503 // Dịch vụ không khả dụng
	StatusGatewayTimeout      = 504 // Gateway timeout
)

// Response Messages
const (
	MsgSuccess = "Thao tác thành công"

	MsgBadRequest         = "Yêu cầu không hợp lệ"
	MsgNotFound           = "Không tìm thấy tài nguyên"
	MsgTooManyRequests    = "Quá nhiều yêu cầu"
	MsgInternalError      = "Lỗi hệ thống"
	MsgServiceUnavailable = "Dịch vụ không khả dụng"

	MsgValidationError = "Dữ liệu không hợp lệ"
	MsgDatabaseError   = "Lỗi tương tác với cơ sở dữ liệu"
	MsgInvalidFormat   = "Định dạng dữ liệu không hợp lệ"
)

// ErrorCode định nghĩa mã lỗi chi tiết
type ErrorCode struct {
	Code        string // Mã lỗi (ví dụ: VAL_001)
	Category    string // Phân loại lỗi (ví dụ: Validation)
	SubCategory string // Phân loại con (ví dụ: Input)
	Description string // Mô tả chi tiết
}

// Định nghĩa các mã lỗi theo hệ thống phân cấp
var (
	// System Errors (SYS_xxx)
	ErrCodeInternalServer = ErrorCode{
		Code:        "SYS_001",
		Category:    "System",
		SubCategory: "Internal",
		Description: "Lỗi hệ thống nội bộ",
	}

	// Validation Errors (VAL_xxx)
	ErrCodeValidation = ErrorCode{
		Code:        "VAL",
		Category:    "Validation",
		SubCategory: "General",
		Description: "Lỗi xác thực dữ liệu chung",
	}

	ErrCodeValidationInput = ErrorCode{
		Code:        "VAL_001",
		Category:    "Validation",
		SubCategory: "Input",
		Description: "Lỗi dữ liệu đầu vào",
	}

	ErrCodeValidationFormat = ErrorCode{
		Code:        "VAL_002",
		Category:    "Validation",
		SubCategory: "Format",
		Description: "Lỗi định dạng dữ liệu",
	}

	// Database Errors (DB_xxx)
	ErrCodeDatabase = ErrorCode{
		Code:        "DB",
		Category:    "Database",
		SubCategory: "General",
		Description: "Lỗi cơ sở dữ liệu chung",
	}

	ErrCodeDatabaseConnection = ErrorCode{
		Code:        "DB_001",
		Category:    "Database",
		SubCategory: "Connection",
		Description: "Lỗi kết nối cơ sở dữ liệu",
	}

	ErrCodeDatabaseQuery = ErrorCode{
		Code:        "DB_002",
		Category:    "Database",
		SubCategory: "Query",
		Description: "Lỗi truy vấn dữ liệu",
	}

	// External Service Errors (EXT_xxx)
	ErrCodeExternalService = ErrorCode{
		Code:        "EXT",
		Category:    "External",
		SubCategory: "General",
		Description: "Lỗi dịch vụ bên ngoài chung",
	}

	ErrCodeExternalQuota = ErrorCode{
		Code:        "EXT_001",
		Category:    "External",
		SubCategory: "Quota",
		Description: "Dịch vụ bên ngoài hết quota",
	}

	ErrCodeExternalTimeout = ErrorCode{
		Code:        "EXT_002",
		Category:    "External",
		SubCategory: "Timeout",
		Description: "Dịch vụ bên ngoài timeout",
	}
)

// Error định nghĩa cấu trúc lỗi chi tiết
type Error struct {
	Code       ErrorCode // Mã lỗi chi tiết
	Message    string    // Thông báo lỗi
	StatusCode int       // HTTP status code
	Details    any       // Thông tin chi tiết thêm về lỗi
}

// Error trả về message của lỗi
func (e *Error) Error() string {
	return e.Message
}

// Is kiểm tra xem error có phải là target error không (hỗ trợ errors.Is)
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if targetErr, ok := target.(*Error); ok {
		return e.Code.Code == targetErr.Code.Code && e.Message == targetErr.Message
	}
	return false
}

// NewError tạo một error mới với đầy đủ thông tin
func NewError(code ErrorCode, message string, statusCode int, details any) error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// Custom errors
var (
	// Validation Errors
	ErrInvalidInput  = NewError(ErrCodeValidationInput, "Dữ liệu đầu vào không hợp lệ", StatusBadRequest, nil)
	ErrInvalidFormat = NewError(ErrCodeValidationFormat, "Định dạng dữ liệu không hợp lệ", StatusBadRequest, nil)
	ErrRequiredField = NewError(ErrCodeValidationInput, "Thiếu thông tin bắt buộc", StatusBadRequest, nil)

	// Database Errors
	ErrNotFound   = NewError(ErrCodeDatabaseQuery, "Không tìm thấy dữ liệu", StatusNotFound, nil)
	ErrConnection = NewError(ErrCodeDatabaseConnection, "Lỗi kết nối cơ sở dữ liệu", StatusServiceUnavailable, nil)

	// External Service Errors
	ErrQuotaExceeded   = NewError(ErrCodeExternalQuota, "Dịch vụ AI đã hết quota", StatusTooManyRequests, nil)
	ErrExternalTimeout = NewError(ErrCodeExternalTimeout, "Dịch vụ bên ngoài không phản hồi kịp", StatusGatewayTimeout, nil)
)

// ConvertMongoError chuyển đổi lỗi từ MongoDB driver sang *common.Error thống nhất.
// Mọi truy vấn catalog đi qua hàm này để lớp trên chỉ cần xử lý một loại lỗi.
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	// Document không tồn tại
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}

	// Timeout / context bị hủy
	if errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err) {
		return NewError(ErrCodeDatabaseConnection, MsgDatabaseError, StatusGatewayTimeout, err)
	}

	// Lỗi mạng
	if mongo.IsNetworkError(err) {
		return NewError(ErrCodeDatabaseConnection, MsgDatabaseError, StatusServiceUnavailable, err)
	}

	return NewError(ErrCodeDatabaseQuery, MsgDatabaseError, StatusInternalServerError, err)
}
