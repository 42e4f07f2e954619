package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/antonvlasov/hookah-mix-helper/internal/logger"
)

type Config struct {
	TelegramToken string
	LLM           LLMConfig
	DB            DBConfig
	HTTP          HTTPConfig
	State         StateConfig
	Logger        LoggerConfig
}

type LLMConfig struct {
	APIURL      string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
}

type DBConfig struct {
	Driver     string // "sqlite" or "postgres"
	SQLitePath string
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
}

type HTTPConfig struct {
	Port        string
	CORSOrigins string
}

type StateConfig struct {
	Backend   string // "memory" or "redis"
	RedisHost string
	RedisPort string
}

type LoggerConfig struct {
	Level      logger.LogLevel
	OutputPath string
	Format     string
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(f)
		}
	}
	return defaultValue
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.LevelDebug
	case "info":
		return logger.LevelInfo
	case "warn", "warning":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}

func Load() (*Config, error) {
	return &Config{
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		LLM: LLMConfig{
			APIURL:      getEnvOrDefault("LLM_API_URL", "https://api.openai.com/v1"),
			APIKey:      os.Getenv("LLM_API_KEY"),
			Model:       getEnvOrDefault("LLM_MODEL", "gpt-4o-mini"),
			MaxTokens:   getEnvInt("LLM_MAX_TOKENS", 1000),
			Temperature: getEnvFloat32("LLM_TEMPERATURE", 0.8),
		},
		DB: DBConfig{
			Driver:     getEnvOrDefault("DB_DRIVER", "sqlite"),
			SQLitePath: getEnvOrDefault("SQLITE_PATH", "hookah_helper.db"),
			Host:       getEnvOrDefault("DB_HOST", "localhost"),
			Port:       getEnvOrDefault("DB_PORT", "5432"),
			User:       getEnvOrDefault("DB_USER", "postgres"),
			Password:   getEnvOrDefault("DB_PASSWORD", "postgres"),
			DBName:     getEnvOrDefault("DB_NAME", "hookah_helper"),
		},
		HTTP: HTTPConfig{
			Port:        getEnvOrDefault("HTTP_PORT", "8080"),
			CORSOrigins: getEnvOrDefault("CORS_ORIGINS", "*"),
		},
		State: StateConfig{
			Backend:   getEnvOrDefault("STATE_BACKEND", "memory"),
			RedisHost: getEnvOrDefault("REDIS_HOST", "localhost"),
			RedisPort: getEnvOrDefault("REDIS_PORT", "6379"),
		},
		Logger: LoggerConfig{
			Level:      parseLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "stdout"),
			Format:     getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}, nil
}
