// Package basehdl cung cấp base handler cho các endpoint đọc catalog.
// Package này chứa các tiện ích parse filter/options từ query string và chuẩn hóa response.
package basehdl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/khanh20003/BanHang-ChatBot/internal/api/base/service"
	"github.com/khanh20003/BanHang-ChatBot/internal/common"
	"github.com/khanh20003/BanHang-ChatBot/internal/global"
)

// BaseHandler xử lý các request đọc dữ liệu cơ bản cho một collection.
// Các handler domain embed struct này để có sẵn Find/FindOne/Count... qua HTTP.
type BaseHandler[T any] struct {
	BaseService basesvc.BaseServiceMongo[T]
}

// NewBaseHandler tạo mới một BaseHandler trên service cho trước
func NewBaseHandler[T any](service basesvc.BaseServiceMongo[T]) *BaseHandler[T] {
	return &BaseHandler[T]{
		BaseService: service,
	}
}

// ParseRequestBody parse và validate dữ liệu từ request body.
// Sử dụng json.Decoder với UseNumber() để xử lý chính xác các số.
func ParseRequestBody(c fiber.Ctx, input interface{}) error {
	body := c.Body()
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
	}

	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
	}

	return nil
}

// ProcessFilter parse và chuẩn hóa filter từ query string.
// Filter phải được encode dưới dạng JSON, ví dụ: {"status": "active"}.
func (h *BaseHandler[T]) ProcessFilter(c fiber.Ctx) (map[string]interface{}, error) {
	var filter map[string]interface{}

	filterStr := c.Query("filter", "{}")
	if err := json.Unmarshal([]byte(filterStr), &filter); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Filter không đúng định dạng JSON. Chi tiết lỗi: %v. Giá trị filter nhận được: %s", err, filterStr),
			common.StatusBadRequest,
			err,
		)
	}

	return normalizeObjectIDs(filter), nil
}

// normalizeObjectIDs chuyển các string hex 24 ký tự ở field _id/*Id thành primitive.ObjectID.
// Client gửi ObjectID dưới dạng string trong JSON nên phải convert trước khi query.
func normalizeObjectIDs(filter map[string]interface{}) map[string]interface{} {
	for key, value := range filter {
		switch v := value.(type) {
		case string:
			if isObjectIDField(key) && primitive.IsValidObjectID(v) {
				oid, err := primitive.ObjectIDFromHex(v)
				if err == nil {
					filter[key] = oid
				}
			}
		case map[string]interface{}:
			filter[key] = normalizeObjectIDs(v)
		}
	}
	return filter
}

func isObjectIDField(key string) bool {
	return key == "_id" || strings.HasSuffix(key, "Id")
}

// processMongoOptions parse options từ query string (projection, sort, limit, skip).
// Sort được parse bằng json.Decoder theo token để giữ nguyên thứ tự field trong JSON gốc.
func (h *BaseHandler[T]) processMongoOptions(c fiber.Ctx, isFindOne bool) (interface{}, error) {
	optionsStr := c.Query("options", "{}")

	var rawOptions map[string]json.RawMessage
	if err := json.Unmarshal([]byte(optionsStr), &rawOptions); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Options không đúng định dạng JSON. Chi tiết lỗi: %v. Giá trị options nhận được: %s", err, optionsStr),
			common.StatusBadRequest,
			err,
		)
	}

	var projection bson.M
	if raw, ok := rawOptions["projection"]; ok {
		if err := json.Unmarshal(raw, &projection); err != nil {
			return nil, common.NewError(common.ErrCodeValidationFormat, "Projection không đúng định dạng", common.StatusBadRequest, err)
		}
	}

	sortBson, err := parseSortOrdered(rawOptions["sort"])
	if err != nil {
		return nil, err
	}

	if isFindOne {
		opts := mongoopts.FindOne()
		if projection != nil {
			opts.SetProjection(projection)
		}
		if len(sortBson) > 0 {
			opts.SetSort(sortBson)
		}
		return opts, nil
	}

	opts := mongoopts.Find()
	if projection != nil {
		opts.SetProjection(projection)
	}
	if len(sortBson) > 0 {
		opts.SetSort(sortBson)
	}
	if raw, ok := rawOptions["limit"]; ok {
		var limit int64
		if err := json.Unmarshal(raw, &limit); err == nil && limit > 0 {
			opts.SetLimit(limit)
		}
	}
	if raw, ok := rawOptions["skip"]; ok {
		var skip int64
		if err := json.Unmarshal(raw, &skip); err == nil && skip > 0 {
			opts.SetSkip(skip)
		}
	}
	return opts, nil
}

// parseSortOrdered parse sort object thành bson.D, giữ nguyên thứ tự key như trong JSON.
// Map của Go không giữ thứ tự nên phải đọc từng token từ JSON gốc.
func parseSortOrdered(raw json.RawMessage) (bson.D, error) {
	sortBson := bson.D{}
	if len(raw) == 0 {
		return sortBson, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	token, err := decoder.Token()
	if err != nil || token != json.Delim('{') {
		return nil, common.NewError(common.ErrCodeValidationFormat, "Sort phải là một JSON object", common.StatusBadRequest, err)
	}

	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			break
		}
		field, ok := keyToken.(string)
		if !ok {
			continue
		}

		valueToken, err := decoder.Token()
		if err != nil {
			break
		}
		num, ok := valueToken.(json.Number)
		if !ok {
			continue
		}
		sortValue, err := num.Int64()
		if err != nil {
			continue
		}
		// Chỉ chấp nhận 1 (tăng dần) hoặc -1 (giảm dần)
		if sortValue != 1 && sortValue != -1 {
			continue
		}
		sortBson = append(sortBson, bson.E{Key: field, Value: int(sortValue)})
	}

	return sortBson, nil
}
