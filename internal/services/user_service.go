package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/antonvlasov/hookah-mix-helper/internal/database"
	apperrors "github.com/antonvlasov/hookah-mix-helper/internal/errors"
)

// UserStats are the collection counters shown on the profile screen.
type UserStats struct {
	TobaccosCount  int64 `json:"tobaccos_count"`
	MixesCount     int64 `json:"mixes_count"`
	FavoritesCount int64 `json:"favorites_count"`
}

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// RegisterUser creates a user on first contact and refreshes display fields
// on later ones.
func (s *UserService) RegisterUser(ctx context.Context, telegramID int64, username, firstName string) (*database.User, error) {
	var user database.User
	err := s.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = database.User{
			TelegramID: telegramID,
			Username:   username,
			FirstName:  firstName,
		}
		if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
			return nil, apperrors.NewDatabaseError(err)
		}
		return &user, nil
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	if (username != "" && username != user.Username) || (firstName != "" && firstName != user.FirstName) {
		updates := map[string]interface{}{}
		if username != "" {
			updates["username"] = username
		}
		if firstName != "" {
			updates["first_name"] = firstName
		}
		if err := s.db.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
			return nil, apperrors.NewDatabaseError(err)
		}
	}

	return &user, nil
}

// GetUserByTelegramID returns the user for an external identity key.
func (s *UserService) GetUserByTelegramID(ctx context.Context, telegramID int64) (*database.User, error) {
	var user database.User
	err := s.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFound("user")
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return &user, nil
}

// Stats counts the user's tobaccos, mixes and favorites.
func (s *UserService) Stats(ctx context.Context, userID uint) (*UserStats, error) {
	stats := &UserStats{}
	db := s.db.WithContext(ctx)

	if err := db.Model(&database.Tobacco{}).Where("user_id = ?", userID).Count(&stats.TobaccosCount).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	if err := db.Model(&database.Mix{}).Where("user_id = ?", userID).Count(&stats.MixesCount).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	if err := db.Model(&database.Mix{}).Where("user_id = ? AND is_favorite = ?", userID, true).Count(&stats.FavoritesCount).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	return stats, nil
}
