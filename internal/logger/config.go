package logger

import (
	"os"
	"strings"
)

// LogConfig chứa cấu hình cho hệ thống logging
type LogConfig struct {
	Level  string // trace, debug, info, warn, error, fatal
	Format string // json, text
	Output string // file, stdout, both

	// Log Rotation
	MaxSize    int  // MB
	MaxBackups int  // Số file cũ giữ lại
	MaxAge     int  // Số ngày giữ lại
	Compress   bool // Nén file cũ

	// Log Paths
	LogPath   string
	AppFile   string
	ErrorFile string
}

// DefaultConfig trả về cấu hình mặc định theo môi trường (GO_ENV)
func DefaultConfig() *LogConfig {
	goEnv := os.Getenv("GO_ENV")
	if goEnv == "" {
		goEnv = "development"
	}

	config := &LogConfig{
		Level:      "info",
		Format:     "text",
		Output:     "both",
		MaxSize:    100,
		MaxBackups: 7,
		MaxAge:     7,
		Compress:   true,
		LogPath:    "./logs",
		AppFile:    "app.log",
		ErrorFile:  "error.log",
	}

	// Development log chi tiết hơn, production log JSON để gom tập trung
	if goEnv == "development" {
		config.Level = "debug"
		config.Format = "text"
	} else {
		config.Level = "info"
		config.Format = "json"
	}

	// Override từ environment variables
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Level = strings.ToLower(level)
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		config.Format = strings.ToLower(format)
	}
	if output := os.Getenv("LOG_OUTPUT"); output != "" {
		config.Output = strings.ToLower(output)
	}

	return config
}
