package interfaces

import (
	"context"

	"github.com/antonvlasov/hookah-mix-helper/internal/database"
	"github.com/antonvlasov/hookah-mix-helper/internal/services"
)

// UserServiceInterface defines the contract for user operations
type UserServiceInterface interface {
	RegisterUser(ctx context.Context, telegramID int64, username, firstName string) (*database.User, error)
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*database.User, error)
	Stats(ctx context.Context, userID uint) (*services.UserStats, error)
}

// TobaccoServiceInterface defines the contract for collection operations
type TobaccoServiceInterface interface {
	ListCategories(ctx context.Context) ([]database.Category, error)
	ListTobaccos(ctx context.Context, userID uint) ([]database.Tobacco, error)
	GetTobacco(ctx context.Context, userID, tobaccoID uint) (*database.Tobacco, error)
	FindTobaccoByName(ctx context.Context, userID uint, name string) (*database.Tobacco, error)
	AddTobacco(ctx context.Context, userID uint, input services.TobaccoInput) (*database.Tobacco, error)
	UpdateTobacco(ctx context.Context, userID, tobaccoID uint, update services.TobaccoUpdate) (*database.Tobacco, error)
	DeleteTobacco(ctx context.Context, userID, tobaccoID uint) error
	DeleteAllTobaccos(ctx context.Context, userID uint) (int64, error)
	BulkAdd(ctx context.Context, userID uint, items []services.TobaccoInput) (*services.BulkResult, error)
	BulkImport(ctx context.Context, userID uint, text string) (*services.BulkResult, error)
}

// MixServiceInterface defines the contract for mix operations
type MixServiceInterface interface {
	GenerateMix(ctx context.Context, userID uint, req services.MixRequest) (*database.Mix, error)
	GetMix(ctx context.Context, userID, mixID uint) (*database.Mix, error)
	ListMixes(ctx context.Context, userID uint, limit int) ([]database.Mix, error)
	ListFavorites(ctx context.Context, userID uint) ([]database.Mix, error)
	Rate(ctx context.Context, userID, mixID uint, rating int) (*database.Mix, error)
	SetFavorite(ctx context.Context, userID, mixID uint, favorite bool) (*database.Mix, error)
	ToggleFavorite(ctx context.Context, userID, mixID uint) (*database.Mix, error)
	ClearFavorites(ctx context.Context, userID uint) (int64, error)
}
