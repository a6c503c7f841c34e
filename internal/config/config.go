package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shouni/gemini-floorplan-kit/pkg/generator"
	"github.com/shouni/gemini-floorplan-kit/pkg/status"
)

// ErrMissingAPIKey は API キーが設定されていない場合に返されます。
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY (or API_KEY) is required")

// Config はアプリケーション全体の設定です。
type Config struct {
	Gemini  GeminiConfig
	Server  ServerConfig
	Logging LoggingConfig
	// StatusInterval は読み込み中メッセージの切り替え間隔です。
	StatusInterval time.Duration
}

// GeminiConfig は画像生成サービスの設定です。
type GeminiConfig struct {
	APIKey string
	Model  string
}

// ServerConfig は HTTP サーバーの設定です。
type ServerConfig struct {
	Host           string
	Port           int
	GinMode        string
	AllowedOrigins string
}

// LoggingConfig はログ出力の設定です。
type LoggingConfig struct {
	Level  string
	Format string
}

// Load は環境変数から設定を読み込みます。.env ファイルがあればそれも読み込みます。
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", getEnv("API_KEY", "")),
			Model:  getEnv("IMAGEN_MODEL", generator.DefaultModel),
		},
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		StatusInterval: getEnvAsDuration("STATUS_INTERVAL", status.DefaultInterval),
	}

	if cfg.Gemini.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	return cfg, nil
}

// SlogLevel は LOG_LEVEL を slog.Level に変換します。
func (c LoggingConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		slog.Warn("整数として解釈できないため既定値を使います", "key", key, "default", defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil || value <= 0 {
		slog.Warn("期間として解釈できないため既定値を使います", "key", key, "default", defaultValue)
		return defaultValue
	}
	return value
}
