// Package basesvc cung cấp service truy vấn MongoDB dùng chung cho các collection catalog.
// Catalog (products, categories, brands) do hệ thống bán hàng quản lý, chatbot chỉ đọc
// nên service này chỉ có các thao tác Read.
package basesvc

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "github.com/khanh20003/BanHang-ChatBot/internal/api/base/models"
	"github.com/khanh20003/BanHang-ChatBot/internal/common"
)

// BaseServiceMongo định nghĩa interface các thao tác đọc cơ bản trên một collection MongoDB.
// Các service domain (product, category, brand) embed implementation của interface này.
type BaseServiceMongo[T any] interface {
	// Collection trả về collection gốc (dùng cho các truy vấn đặc thù của domain)
	Collection() *mongo.Collection

	// Read
	FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error)
	Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error)
	FindOneById(ctx context.Context, id primitive.ObjectID) (T, error)
	FindManyByIds(ctx context.Context, ids []primitive.ObjectID) ([]T, error)
	FindWithPagination(ctx context.Context, filter interface{}, page, limit int64, opts *options.FindOptions) (*basemodels.PaginateResult[T], error)

	// Other
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
	Distinct(ctx context.Context, fieldName string, filter interface{}) ([]interface{}, error)
	DocumentExists(ctx context.Context, filter interface{}) (bool, error)
}

// BaseServiceMongoImpl là implementation mặc định của BaseServiceMongo
type BaseServiceMongoImpl[T any] struct {
	collection *mongo.Collection
}

// NewBaseServiceMongo tạo mới một BaseServiceMongoImpl trên collection cho trước
func NewBaseServiceMongo[T any](collection *mongo.Collection) *BaseServiceMongoImpl[T] {
	return &BaseServiceMongoImpl[T]{
		collection: collection,
	}
}

// Collection trả về collection gốc
func (s *BaseServiceMongoImpl[T]) Collection() *mongo.Collection {
	return s.collection
}

// normalizeFilter xử lý filter nil hoặc map rỗng, chuyển thành bson.D{} để driver chấp nhận
func normalizeFilter(filter interface{}) interface{} {
	if filter == nil {
		return bson.D{}
	}
	if filterMap, ok := filter.(map[string]interface{}); ok && len(filterMap) == 0 {
		return bson.D{}
	}
	return filter
}

// FindOne tìm một bản ghi theo điều kiện lọc
func (s *BaseServiceMongoImpl[T]) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error) {
	var zero T
	var result T

	filter = normalizeFilter(filter)
	if opts == nil {
		opts = options.FindOne()
	}

	findResult := s.collection.FindOne(ctx, filter, opts)
	if err := findResult.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, common.ErrNotFound
		}
		return zero, common.ConvertMongoError(err)
	}

	if err := findResult.Decode(&result); err != nil {
		// Lỗi decode BSON là lỗi format dữ liệu, không phải lỗi MongoDB command
		return zero, common.NewError(
			common.ErrCodeValidationFormat,
			"Lỗi định dạng dữ liệu khi decode từ MongoDB",
			common.StatusBadRequest,
			err,
		)
	}

	return result, nil
}

// Find tìm tất cả bản ghi theo điều kiện lọc
func (s *BaseServiceMongoImpl[T]) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error) {
	filter = normalizeFilter(filter)
	if opts == nil {
		opts = options.Find()
	}

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var results []T
	if err = cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}

	// Đảm bảo luôn trả về mảng, không phải nil
	if results == nil {
		results = []T{}
	}

	return results, nil
}

// FindOneById tìm một bản ghi theo ObjectID
func (s *BaseServiceMongoImpl[T]) FindOneById(ctx context.Context, id primitive.ObjectID) (T, error) {
	return s.FindOne(ctx, bson.M{"_id": id}, nil)
}

// FindManyByIds tìm nhiều bản ghi theo danh sách ObjectID
func (s *BaseServiceMongoImpl[T]) FindManyByIds(ctx context.Context, ids []primitive.ObjectID) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}
	return s.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, nil)
}

// FindWithPagination tìm bản ghi có phân trang.
// Skip và limit được tính từ page/limit ở đây để đảm bảo nhất quán, handler không tự set.
func (s *BaseServiceMongoImpl[T]) FindWithPagination(ctx context.Context, filter interface{}, page, limit int64, opts *options.FindOptions) (*basemodels.PaginateResult[T], error) {
	filter = normalizeFilter(filter)
	if opts == nil {
		opts = options.Find()
	}
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	total, err := s.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts.SetSkip((page - 1) * limit)
	opts.SetLimit(limit)

	items, err := s.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	totalPage := total / limit
	if total%limit != 0 {
		totalPage++
	}

	return &basemodels.PaginateResult[T]{
		Page:      page,
		Limit:     limit,
		ItemCount: int64(len(items)),
		Items:     items,
		Total:     total,
		TotalPage: totalPage,
	}, nil
}

// CountDocuments đếm số bản ghi theo điều kiện lọc
func (s *BaseServiceMongoImpl[T]) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	filter = normalizeFilter(filter)
	count, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return count, nil
}

// Distinct lấy danh sách giá trị duy nhất của một field
func (s *BaseServiceMongoImpl[T]) Distinct(ctx context.Context, fieldName string, filter interface{}) ([]interface{}, error) {
	filter = normalizeFilter(filter)
	values, err := s.collection.Distinct(ctx, fieldName, filter)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return values, nil
}

// DocumentExists kiểm tra có bản ghi nào thỏa điều kiện lọc hay không
func (s *BaseServiceMongoImpl[T]) DocumentExists(ctx context.Context, filter interface{}) (bool, error) {
	filter = normalizeFilter(filter)
	opts := options.Count().SetLimit(1)
	count, err := s.collection.CountDocuments(ctx, filter, opts)
	if err != nil {
		return false, common.ConvertMongoError(err)
	}
	return count > 0, nil
}
