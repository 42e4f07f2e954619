package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/antonvlasov/hookah-mix-helper/internal/config"
)

func main() {
	fmt.Println("🔍 Проверка конфигурации...")

	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️  .env файл не найден: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Ошибка загрузки конфигурации:\n%v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Конфигурация загружена!")
	fmt.Printf("📋 Детали конфигурации:\n")
	fmt.Printf("  - Telegram Token: %s\n", maskToken(cfg.TelegramToken))
	fmt.Printf("  - LLM API URL: %s\n", cfg.LLM.APIURL)
	fmt.Printf("  - LLM API Key: %s\n", maskToken(cfg.LLM.APIKey))
	fmt.Printf("  - LLM Model: %s\n", cfg.LLM.Model)
	fmt.Printf("  - LLM Max Tokens: %d\n", cfg.LLM.MaxTokens)
	fmt.Printf("  - LLM Temperature: %.2f\n", cfg.LLM.Temperature)
	fmt.Printf("  - DB Driver: %s\n", cfg.DB.Driver)
	if cfg.DB.Driver == "sqlite" {
		fmt.Printf("  - SQLite Path: %s\n", cfg.DB.SQLitePath)
	} else {
		fmt.Printf("  - DB Host: %s\n", cfg.DB.Host)
		fmt.Printf("  - DB Port: %s\n", cfg.DB.Port)
		fmt.Printf("  - DB User: %s\n", cfg.DB.User)
		fmt.Printf("  - DB Name: %s\n", cfg.DB.DBName)
	}
	fmt.Printf("  - HTTP Port: %s\n", cfg.HTTP.Port)
	fmt.Printf("  - CORS Origins: %s\n", cfg.HTTP.CORSOrigins)
	fmt.Printf("  - State Backend: %s\n", cfg.State.Backend)
	if cfg.State.Backend == "redis" {
		fmt.Printf("  - Redis: %s:%s\n", cfg.State.RedisHost, cfg.State.RedisPort)
	}
	fmt.Printf("  - Log Level: %v\n", cfg.Logger.Level)
	fmt.Printf("  - Log Output: %s\n", cfg.Logger.OutputPath)
	fmt.Printf("  - Log Format: %s\n", cfg.Logger.Format)
}

func maskToken(token string) string {
	if token == "" {
		return "<не установлен>"
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
