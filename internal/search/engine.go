package search

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	catalogmodels "github.com/khanh20003/BanHang-ChatBot/internal/api/catalog/models"
)

// ProductFinder là phần catalog mà engine cần: truy vấn đọc theo filter tùy ý.
// ProductService của catalog thỏa interface này; test dùng fake.
type ProductFinder interface {
	Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]catalogmodels.Product, error)
}

// CatalogResolver resolve tên danh mục/thương hiệu tự do về ID chuẩn trong catalog.
// Không resolve được không phải lỗi — trả về (nil, nil).
type CatalogResolver interface {
	ResolveCategory(ctx context.Context, title string) (*primitive.ObjectID, error)
	ResolveBrand(ctx context.Context, title string) (*primitive.ObjectID, error)
}

// EntitySource là dịch vụ NLU bên ngoài (tùy chọn). Lỗi từ source này
// không bao giờ chặn pipeline — engine âm thầm rơi về extractor nội bộ.
type EntitySource interface {
	Entities(ctx context.Context, message string) (*Entities, error)
}

// Engine điều phối toàn bộ pipeline: trích xuất → resolve → dựng filter →
// truy vấn strict → fallback tương đồng → khử trùng lặp. Stateless theo từng
// request; các bảng từ vựng là dữ liệu bất biến cấp process.
type Engine struct {
	extractor *Extractor
	finder    ProductFinder
	resolver  CatalogResolver
	entities  EntitySource // nil khi không cấu hình NLU
	limit     int
	log       *logrus.Logger
}

// NewEngine tạo engine tìm kiếm. entities có thể nil (chạy thuần rule-based).
func NewEngine(finder ProductFinder, resolver CatalogResolver, entities EntitySource, limit int, log *logrus.Logger) *Engine {
	if limit <= 0 {
		limit = 10
	}
	return &Engine{
		extractor: NewExtractor(),
		finder:    finder,
		resolver:  resolver,
		entities:  entities,
		limit:     limit,
		log:       log,
	}
}

// Search chạy pipeline cho một truy vấn và trả về danh sách sản phẩm đã
// khử trùng lặp cùng params đã trích xuất (để tầng chat dựng câu trả lời).
// Lỗi catalog được chặn tại đây: log rồi trả về danh sách rỗng, không bao giờ
// đẩy lỗi chết người lên tầng hội thoại.
func (e *Engine) Search(ctx context.Context, message string) ([]catalogmodels.Product, Params, error) {
	params := e.extractor.Extract(message)

	// NLU chỉ bổ sung field còn trống, và thất bại thì bỏ qua
	if e.entities != nil {
		if ents, err := e.entities.Entities(ctx, message); err == nil {
			params.Merge(ents)
		} else {
			e.log.WithError(err).Debug("NLU extraction failed, dùng kết quả rule-based")
		}
	}

	rp := e.resolve(ctx, params)

	filter := BuildFilter(rp)
	if filter == nil {
		// Không có predicate nào — không chạy query, không trả catalog dump
		return []catalogmodels.Product{}, params, nil
	}

	// Overfetch 2x limit để còn chỗ khử trùng lặp theo title
	findOpts := options.Find().SetLimit(int64(e.limit * 2))
	if sortDoc := BuildSort(params); sortDoc != nil {
		findOpts.SetSort(sortDoc)
	}

	products, err := e.finder.Find(ctx, filter, findOpts)
	if err != nil {
		e.log.WithError(err).Error("Truy vấn catalog thất bại, trả về kết quả rỗng")
		return []catalogmodels.Product{}, params, nil
	}

	products = applyPostFilter(products, params)
	products = DedupByTitle(products)
	if len(products) > e.limit {
		products = products[:e.limit]
	}

	// Fallback chỉ khi strict rỗng VÀ có thực thể đáng tìm
	if len(products) == 0 && params.HasEntity() {
		fallbackResults, err := Fallback(ctx, e.finder, rp, e.limit)
		if err != nil {
			e.log.WithError(err).Error("Fallback search thất bại, trả về kết quả rỗng")
			return []catalogmodels.Product{}, params, nil
		}
		products = DedupByTitle(fallbackResults)
		if len(products) > e.limit {
			products = products[:e.limit]
		}
	}

	return products, params, nil
}

// Limit trả về số kết quả tối đa mỗi truy vấn
func (e *Engine) Limit() int {
	return e.limit
}

// resolve đổi tên danh mục/thương hiệu trong params thành ID catalog.
// Resolver lỗi hoặc không tìm thấy → ID nil, planner rơi về lọc theo title.
func (e *Engine) resolve(ctx context.Context, params Params) ResolvedParams {
	rp := ResolvedParams{Params: params}
	if e.resolver == nil {
		return rp
	}
	if params.Category != "" {
		if id, err := e.resolver.ResolveCategory(ctx, params.Category); err == nil {
			rp.CategoryID = id
		}
	}
	if params.Brand != "" {
		if id, err := e.resolver.ResolveBrand(ctx, params.Brand); err == nil {
			rp.BrandID = id
		}
	}
	return rp
}
