package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/antonvlasov/hookah-mix-helper/internal/config"
	"github.com/antonvlasov/hookah-mix-helper/internal/logger"
)

// Flavor categories seeded once when the table is empty.
var seedCategories = []Category{
	{Name: "Ягодные", Emoji: "🍓", TasteProfile: "сладкий"},
	{Name: "Цитрусовые", Emoji: "🍊", TasteProfile: "кислый"},
	{Name: "Фруктовые", Emoji: "🍎", TasteProfile: "сладкий"},
	{Name: "Тропические", Emoji: "🥭", TasteProfile: "сладкий"},
	{Name: "Мятные", Emoji: "🍃", TasteProfile: "свежий"},
	{Name: "Холодок", Emoji: "❄️", TasteProfile: "свежий"},
	{Name: "Десертные", Emoji: "🍬", TasteProfile: "сладкий"},
	{Name: "Напитки", Emoji: "🥤", TasteProfile: "разный"},
	{Name: "Цветочные", Emoji: "🌸", TasteProfile: "нейтральный"},
	{Name: "Пряные", Emoji: "🌶", TasteProfile: "терпкий"},
}

// NewDB opens the configured database, migrates the schema and seeds
// reference data.
func NewDB(cfg config.DBConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName)
		dialector = postgres.Open(dsn)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	logger.Info("Database connection established and migrations completed")
	return db, nil
}

// Migrate creates the schema and seeds categories. Exposed separately so
// tests can run it against their own connections.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&User{}, &Category{}, &Tobacco{}, &Mix{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	if err := seedCategoriesIfEmpty(db); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	return nil
}

func seedCategoriesIfEmpty(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	cats := make([]Category, len(seedCategories))
	copy(cats, seedCategories)
	return db.Create(&cats).Error
}
