package basehdl

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"

	"github.com/khanh20003/BanHang-ChatBot/internal/common"
)

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8.
// Message tiếng Việt phải có charset=utf-8 để client hiển thị đúng.
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// HandleResponse xử lý và chuẩn hóa response trả về cho client.
// Đảm bảo format response thống nhất trong toàn bộ ứng dụng:
// {code, message, data, status}.
func HandleResponse(c fiber.Ctx, data interface{}, err error) {
	if err != nil {
		var customErr *common.Error
		if errors.As(err, &customErr) {
			JSONResponse(c, customErr.StatusCode, fiber.Map{
				"code":    customErr.Code.Code,
				"message": customErr.Message,
				"details": customErr.Details,
				"status":  "error",
			})
			return
		}
		// Không phải custom error, trả về internal server error
		JSONResponse(c, common.StatusInternalServerError, fiber.Map{
			"code":    common.ErrCodeInternalServer.Code,
			"message": err.Error(),
			"status":  "error",
		})
		return
	}

	JSONResponse(c, common.StatusOK, fiber.Map{
		"code":    common.StatusOK,
		"message": common.MsgSuccess,
		"data":    data,
		"status":  "success",
	})
}

// SafeHandler bọc handler với recover để bắt panic và trả về lỗi an toàn.
// Đảm bảo server luôn trả về response cho client, kể cả khi có panic xảy ra.
func SafeHandler(c fiber.Ctx, handler func() error) error {
	defer func() {
		if r := recover(); r != nil {
			// Log stack trace để debug
			debug.PrintStack()

			HandleResponse(c, nil, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Lỗi hệ thống không mong muốn: %v", r),
				common.StatusInternalServerError,
				nil,
			))
		}
	}()
	return handler()
}

// HandleResponse trên BaseHandler giữ cùng signature với hàm package-level để handler domain gọi qua receiver.
func (h *BaseHandler[T]) HandleResponse(c fiber.Ctx, data interface{}, err error) {
	HandleResponse(c, data, err)
}

// SafeHandler trên BaseHandler, xem hàm package-level.
func (h *BaseHandler[T]) SafeHandler(c fiber.Ctx, handler func() error) error {
	return SafeHandler(c, handler)
}
