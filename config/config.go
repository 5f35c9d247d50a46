package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng.
// Các giá trị được đọc từ biến môi trường (file .env theo GO_ENV).
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:"8080"`                 // Cổng server
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`           // URL kết nối cơ sở dữ liệu
	MongoDB_DBName        string `env:"MONGODB_DBNAME" envDefault:"banhang"`       // Tên cơ sở dữ liệu catalog
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Các origins được phép (phân cách bởi dấu phẩy)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Cho phép gửi credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Số request tối đa trong window (0 = disable)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Bật/tắt rate limiting

	// Gemini (NLU) Configuration — optional, engine tự fallback rule-based khi thiếu key
	GeminiAPIKey  string `env:"GEMINI_API_KEY"`                             // API key Gemini (optional)
	GeminiModel   string `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"` // Model Gemini
	GeminiTimeout int    `env:"GEMINI_TIMEOUT" envDefault:"8"`              // Timeout gọi Gemini (giây)

	// Chat engine
	ChatResultLimit int `env:"CHAT_RESULT_LIMIT" envDefault:"10"` // Số sản phẩm tối đa trả về cho mỗi câu hỏi
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	goEnv := os.Getenv("GO_ENV")
	if goEnv == "" {
		goEnv = "development"
	}

	// Tìm thư mục config/env đi lên từ working directory
	currentDir, err := os.Getwd()
	if err != nil {
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	for i := 0; i < 5; i++ {
		candidate := filepath.Join(currentDir, "config", "env", goEnv+".env")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}
	return ""
}

// NewConfig đọc file .env (nếu có) và parse cấu hình từ biến môi trường.
// Biến môi trường đã set từ bên ngoài luôn được ưu tiên hơn giá trị trong file.
func NewConfig() (*Configuration, error) {
	if envPath := getEnvPath(); envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Printf("Không thể load file env %s: %v\n", envPath, err)
		}
	}

	cfg := &Configuration{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return cfg, nil
}
