package search

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	catalogmodels "github.com/khanh20003/BanHang-ChatBot/internal/api/catalog/models"
)

// fakeFinder trả kết quả theo thứ tự gọi, ghi lại filter và options của từng lần
type fakeFinder struct {
	filters []interface{}
	opts    []*options.FindOptions
	results [][]catalogmodels.Product
	errs    []error
}

func (f *fakeFinder) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]catalogmodels.Product, error) {
	i := len(f.filters)
	f.filters = append(f.filters, filter)
	f.opts = append(f.opts, opts)
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i < len(f.results) {
		return f.results[i], nil
	}
	return nil, nil
}

type fakeResolver struct {
	categoryID *primitive.ObjectID
	brandID    *primitive.ObjectID
}

func (r *fakeResolver) ResolveCategory(ctx context.Context, title string) (*primitive.ObjectID, error) {
	return r.categoryID, nil
}

func (r *fakeResolver) ResolveBrand(ctx context.Context, title string) (*primitive.ObjectID, error) {
	return r.brandID, nil
}

type fakeEntitySource struct {
	entities *Entities
	err      error
}

func (s *fakeEntitySource) Entities(ctx context.Context, message string) (*Entities, error) {
	return s.entities, s.err
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func activeProduct(title string) catalogmodels.Product {
	return catalogmodels.Product{
		ID:     primitive.NewObjectID(),
		Title:  title,
		Status: catalogmodels.ProductStatusActive,
		Stock:  10,
	}
}

func TestEngineSearch_EmptyParamsNoQuery(t *testing.T) {
	finder := &fakeFinder{}
	engine := NewEngine(finder, &fakeResolver{}, nil, 10, testLogger())

	products, params, err := engine.Search(context.Background(), "xem tất cả sản phẩm")
	assert.NoError(t, err)
	assert.Empty(t, products)
	assert.True(t, params.IsEmpty())
	assert.Empty(t, finder.filters, "không có predicate thì không được chạy query")
}

func TestEngineSearch_StrictPath(t *testing.T) {
	finder := &fakeFinder{
		results: [][]catalogmodels.Product{{
			activeProduct("iPhone 16"),
			activeProduct("iPhone 16"), // trùng title, phải bị khử
			activeProduct("iPhone 16 Pro"),
		}},
	}
	engine := NewEngine(finder, &fakeResolver{}, nil, 10, testLogger())

	products, params, err := engine.Search(context.Background(), "mua iphone")
	assert.NoError(t, err)
	assert.Equal(t, "iphone", params.Brand)
	if assert.Len(t, products, 2) {
		assert.Equal(t, "iPhone 16", products[0].Title)
		assert.Equal(t, "iPhone 16 Pro", products[1].Title)
	}

	// Overfetch 2x limit để còn chỗ khử trùng lặp
	if assert.Len(t, finder.opts, 1) && assert.NotNil(t, finder.opts[0].Limit) {
		assert.Equal(t, int64(20), *finder.opts[0].Limit)
	}
}

func TestEngineSearch_FinderErrorReturnsEmpty(t *testing.T) {
	finder := &fakeFinder{errs: []error{errors.New("connection reset")}}
	engine := NewEngine(finder, &fakeResolver{}, nil, 10, testLogger())

	products, _, err := engine.Search(context.Background(), "mua iphone")
	assert.NoError(t, err, "lỗi catalog không được đẩy lên tầng hội thoại")
	assert.Empty(t, products)
}

func TestEngineSearch_FallbackWhenStrictEmpty(t *testing.T) {
	matching := activeProduct("iPhone 16 Pro Max")
	other := activeProduct("Chuột không dây")
	finder := &fakeFinder{
		results: [][]catalogmodels.Product{
			{},                // strict không ra kết quả
			{other, matching}, // pool cho fallback
		},
	}
	engine := NewEngine(finder, &fakeResolver{}, nil, 10, testLogger())

	products, _, err := engine.Search(context.Background(), "mua iphone 16 pro max")
	assert.NoError(t, err)
	assert.Len(t, finder.filters, 2, "strict rỗng + có thực thể → chạy fallback")
	if assert.NotEmpty(t, products) {
		assert.Equal(t, matching.Title, products[0].Title, "fallback xếp theo độ tương đồng")
	}
}

func TestEngineSearch_NoFallbackWithoutEntity(t *testing.T) {
	finder := &fakeFinder{results: [][]catalogmodels.Product{{}}}
	engine := NewEngine(finder, &fakeResolver{}, nil, 10, testLogger())

	// Chỉ có khoảng giá, không có Name/Brand/Category → không fallback
	products, params, err := engine.Search(context.Background(), "dưới 5 triệu")
	assert.NoError(t, err)
	assert.False(t, params.HasEntity())
	assert.Empty(t, products)
	assert.Len(t, finder.filters, 1, "không có thực thể thì không được chạy fallback")
}

func TestEngineSearch_NLUMergeFillsEmptyFields(t *testing.T) {
	minP := 5_000_000.0
	source := &fakeEntitySource{entities: &Entities{MinPrice: &minP}}
	finder := &fakeFinder{results: [][]catalogmodels.Product{{activeProduct("iPhone 16")}}}
	engine := NewEngine(finder, &fakeResolver{}, source, 10, testLogger())

	_, params, err := engine.Search(context.Background(), "mua iphone")
	assert.NoError(t, err)
	assert.Equal(t, "iphone", params.Brand, "extractor nội bộ được ưu tiên")
	if assert.NotNil(t, params.MinPrice) {
		assert.Equal(t, minP, *params.MinPrice)
	}
}

func TestEngineSearch_NLUErrorIgnored(t *testing.T) {
	source := &fakeEntitySource{err: errors.New("quota exceeded")}
	finder := &fakeFinder{results: [][]catalogmodels.Product{{activeProduct("iPhone 16")}}}
	engine := NewEngine(finder, &fakeResolver{}, source, 10, testLogger())

	products, params, err := engine.Search(context.Background(), "mua iphone")
	assert.NoError(t, err, "NLU hỏng không được chặn pipeline")
	assert.Equal(t, "iphone", params.Brand)
	assert.Len(t, products, 1)
}

func TestEngineSearch_PostFilterDropsOutOfStock(t *testing.T) {
	inStock := activeProduct("iPhone 16")
	outOfStock := activeProduct("iPhone 15")
	outOfStock.Stock = 0

	finder := &fakeFinder{results: [][]catalogmodels.Product{{inStock, outOfStock}}}
	engine := NewEngine(finder, &fakeResolver{}, nil, 10, testLogger())

	products, _, err := engine.Search(context.Background(), "mua iphone")
	assert.NoError(t, err)
	if assert.Len(t, products, 1) {
		assert.Equal(t, inStock.Title, products[0].Title)
	}
}
