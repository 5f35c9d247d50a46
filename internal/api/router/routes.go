// Package router cung cấp hạ tầng đăng ký route dùng chung cho các domain.
package router

import (
	"github.com/gofiber/fiber/v3"
)

// ReadHandler định nghĩa interface cho các handler đọc dữ liệu catalog
type ReadHandler interface {
	Find(c fiber.Ctx) error
	FindOne(c fiber.Ctx) error
	FindOneById(c fiber.Ctx) error
	FindManyByIds(c fiber.Ctx) error
	FindWithPagination(c fiber.Ctx) error
	CountDocuments(c fiber.Ctx) error
	Distinct(c fiber.Ctx) error
	DocumentExists(c fiber.Ctx) error
}

// Router quản lý việc định tuyến cho API
type Router struct {
	app *fiber.App
}

// ReadConfig cấu hình các operation đọc được phép cho mỗi collection
type ReadConfig struct {
	Find     bool // Find All
	FindOne  bool // Find One
	FindById bool // Find By Id
	FindIds  bool // Find Many By Ids
	Paginate bool // Find With Pagination
	Count    bool // Count Documents
	Distinct bool // Distinct
	Exists   bool // Document Exists
}

// ReadOnlyConfig cho phép đầy đủ các operation đọc. Dùng cho products/categories/brands.
var ReadOnlyConfig = ReadConfig{
	Find: true, FindOne: true, FindById: true,
	FindIds: true, Paginate: true,
	Count: true, Distinct: true, Exists: true,
}

// RoutePrefix chứa các prefix cơ bản cho API
type RoutePrefix struct {
	Base string // Prefix cơ bản (/api)
	V1   string // Prefix cho API version 1 (/api/v1)
}

// NewRoutePrefix tạo mới một instance của RoutePrefix với các giá trị mặc định
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// NewRouter tạo mới một instance của Router
func NewRouter(app *fiber.App) *Router {
	return &Router{
		app: app,
	}
}

// RegisterRouteWithMiddleware đăng ký route với middleware qua .Use() trên group.
// Fiber v3 không gọi middleware khi truyền trực tiếp vào router.Get(path, middleware, handler),
// nên mọi route có middleware riêng phải đi qua hàm này.
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	routeGroup := router.Group(prefix)
	for _, mw := range middlewares {
		routeGroup.Use(mw)
	}

	switch method {
	case "GET":
		routeGroup.Get(path, handler)
	case "POST":
		routeGroup.Post(path, handler)
	case "PUT":
		routeGroup.Put(path, handler)
	case "DELETE":
		routeGroup.Delete(path, handler)
	}
}

// RegisterReadRoutes đăng ký các route đọc cho một collection theo config.
// Dùng từ domain router (catalog).
func (r *Router) RegisterReadRoutes(router fiber.Router, prefix string, h ReadHandler, config ReadConfig) {
	if config.Find {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/find", nil, h.Find)
	}
	if config.FindOne {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/find-one", nil, h.FindOne)
	}
	if config.FindById {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/find-by-id/:id", nil, h.FindOneById)
	}
	if config.FindIds {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/find-by-ids", nil, h.FindManyByIds)
	}
	if config.Paginate {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/find-with-pagination", nil, h.FindWithPagination)
	}
	if config.Count {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/count", nil, h.CountDocuments)
	}
	if config.Distinct {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/distinct", nil, h.Distinct)
	}
	if config.Exists {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/exists", nil, h.DocumentExists)
	}
}

// RegisterFunc là hàm đăng ký route của một domain (do domain/router export).
type RegisterFunc func(v1 fiber.Router, r *Router) error

// SetupRoutes thiết lập tất cả các route cho ứng dụng.
// Caller truyền lần lượt Register của từng domain để tránh import cycle.
func SetupRoutes(app *fiber.App, regs ...RegisterFunc) error {
	prefix := NewRoutePrefix()
	v1 := app.Group(prefix.V1)
	r := NewRouter(app)
	for _, reg := range regs {
		if err := reg(v1, r); err != nil {
			return err
		}
	}
	return nil
}
