package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"

	basehdl "github.com/khanh20003/BanHang-ChatBot/internal/api/base/handler"
	catalogrouter "github.com/khanh20003/BanHang-ChatBot/internal/api/catalog/router"
	catalogsvc "github.com/khanh20003/BanHang-ChatBot/internal/api/catalog/service"
	chathdl "github.com/khanh20003/BanHang-ChatBot/internal/api/chat/handler"
	chatrouter "github.com/khanh20003/BanHang-ChatBot/internal/api/chat/router"
	chatsvc "github.com/khanh20003/BanHang-ChatBot/internal/api/chat/service"
	apirouter "github.com/khanh20003/BanHang-ChatBot/internal/api/router"
	"github.com/khanh20003/BanHang-ChatBot/internal/common"
	"github.com/khanh20003/BanHang-ChatBot/internal/global"
	"github.com/khanh20003/BanHang-ChatBot/internal/logger"
	"github.com/khanh20003/BanHang-ChatBot/internal/nlu"
	"github.com/khanh20003/BanHang-ChatBot/internal/search"
)

// InitFiberApp khởi tạo ứng dụng Fiber với các middleware cần thiết
// và dựng toàn bộ cây phụ thuộc của chatbot (catalog → engine → chat).
func InitFiberApp() (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		// =========================================
		// 1. CẤU HÌNH CƠ BẢN
		// =========================================
		AppName:       "BanHang ChatBot API",
		ServerHeader:  "BanHang ChatBot API",
		StrictRouting: true,  // /foo và /foo/ là khác nhau
		CaseSensitive: true,  // /Foo và /foo là khác nhau
		UnescapePath:  true,  // Tự động decode URL-encoded paths
		Immutable:     false, // Tính năng immutable cho ctx

		// =========================================
		// 2. CẤU HÌNH PERFORMANCE
		// =========================================
		BodyLimit:       1 * 1024 * 1024, // Câu hỏi chat tối đa 500 ký tự, 1MB là quá đủ
		Concurrency:     256 * 1024,
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,

		// =========================================
		// 3. CẤU HÌNH TIMEOUT
		// =========================================
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,

		// =========================================
		// 4. CẤU HÌNH ERROR HANDLING
		// =========================================
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal Server Error"
			errorCode := common.ErrCodeInternalServer.Code

			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
				switch code {
				case fiber.StatusBadRequest:
					errorCode = common.ErrCodeValidationInput.Code
				case fiber.StatusNotFound:
					errorCode = common.ErrCodeDatabaseQuery.Code
				case fiber.StatusTooManyRequests:
					errorCode = common.ErrCodeExternalQuota.Code
				}
			}

			logger.WithRequest(c).WithFields(map[string]interface{}{
				"code":      code,
				"errorCode": errorCode,
				"message":   message,
			}).Error("Request error")

			return c.Status(code).JSON(fiber.Map{
				"code":    errorCode,
				"message": message,
				"status":  "error",
			})
		},
	})

	// =========================================
	// MIDDLEWARE STACK
	// =========================================

	// 1. Request ID Middleware - Tạo ID duy nhất cho mỗi request để trace
	app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return uuid.NewString()
		},
	}))

	// 2. CORS Middleware - đặt trước các middleware khác để xử lý preflight
	corsOrigins := global.ServerConfig.CORS_Origins
	var allowOrigins []string
	if corsOrigins == "*" {
		allowOrigins = []string{"*"}
	} else {
		allowOrigins = strings.Split(corsOrigins, ",")
		for i, origin := range allowOrigins {
			allowOrigins[i] = strings.TrimSpace(origin)
		}
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"X-Request-ID",
			"X-Requested-With",
		},
		AllowCredentials: global.ServerConfig.CORS_AllowCredentials,
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		MaxAge:           24 * 60 * 60, // Cache preflight requests 24 giờ
	}))

	// 3. Security Headers Middleware
	app.Use(func(c fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	})

	// 4. Rate Limiting Middleware - chat là endpoint public, giới hạn theo IP
	if global.ServerConfig.RateLimit_Enabled && global.ServerConfig.RateLimit_Max > 0 {
		rateLimitMax := global.ServerConfig.RateLimit_Max
		rateLimitWindow := time.Duration(global.ServerConfig.RateLimit_Window) * time.Second
		app.Use(limiter.New(limiter.Config{
			Max:        rateLimitMax,
			Expiration: rateLimitWindow,
			KeyGenerator: func(c fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"code":    common.ErrCodeExternalQuota.Code,
					"message": common.MsgTooManyRequests,
					"status":  "error",
				})
			},
			Next: func(c fiber.Ctx) bool {
				// Bỏ qua rate limit cho health check và preflight
				return c.Path() == "/api/v1/system/health" || c.Method() == "OPTIONS"
			},
		}))
		logger.GetAppLogger().Infof("Rate limiting enabled: %d requests per %d seconds", rateLimitMax, global.ServerConfig.RateLimit_Window)
	} else {
		logger.GetAppLogger().Info("Rate limiting disabled")
	}

	// 5. Recover Middleware
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			logger.WithRequest(c).WithFields(map[string]interface{}{
				"panic": e,
			}).Error("Panic recovered")
		},
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/api/v1/system/health"
		},
	}))

	// =========================================
	// ROUTES
	// =========================================
	if err := setupRoutes(app); err != nil {
		return nil, fmt.Errorf("setup routes: %w", err)
	}

	return app, nil
}

// setupRoutes dựng cây phụ thuộc chat và đăng ký route của tất cả các domain
func setupRoutes(app *fiber.App) error {
	log := logger.GetAppLogger()
	cfg := global.ServerConfig

	// Catalog services cho engine tìm kiếm
	productService, err := catalogsvc.NewProductService()
	if err != nil {
		return fmt.Errorf("create product service: %w", err)
	}
	resolver, err := catalogsvc.NewCatalogResolver()
	if err != nil {
		return fmt.Errorf("create catalog resolver: %w", err)
	}

	// NLU là tùy chọn: thiếu API key thì engine chạy thuần rule-based
	var entitySource search.EntitySource
	var replier chatsvc.Replier
	if cfg.GeminiAPIKey != "" {
		client := nlu.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTimeout, nil, log)
		entitySource = client
		replier = client
		log.Infof("NLU enabled with model %s", cfg.GeminiModel)
	} else {
		log.Info("NLU disabled (GEMINI_API_KEY not set), running rule-based extraction only")
	}

	engine := search.NewEngine(productService, resolver, entitySource, cfg.ChatResultLimit, log)
	chatService := chatsvc.NewChatService(engine, replier, log)
	chatHandler := chathdl.NewChatHandler(chatService)

	// System health route
	systemHandler, err := basehdl.NewSystemHandler()
	if err != nil {
		return fmt.Errorf("create system handler: %w", err)
	}

	systemRegister := func(v1 fiber.Router, r *apirouter.Router) error {
		apirouter.RegisterRouteWithMiddleware(v1, "/system", "GET", "/health", nil, systemHandler.HandleHealth)
		return nil
	}

	return apirouter.SetupRoutes(app,
		systemRegister,
		catalogrouter.Register,
		chatrouter.Register(chatHandler),
	)
}
