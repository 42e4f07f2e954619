package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/antonvlasov/hookah-mix-helper/internal/database"
	apperrors "github.com/antonvlasov/hookah-mix-helper/internal/errors"
	"github.com/antonvlasov/hookah-mix-helper/internal/logger"
)

// Temperature used for surprise requests regardless of the configured default.
const surpriseTemperature = 1.0

type MixService struct {
	llm Completer
	db  *gorm.DB
}

func NewMixService(llm Completer, db *gorm.DB) *MixService {
	return &MixService{llm: llm, db: db}
}

// GenerateMix builds a prompt from the user's collection and history, asks
// the completion endpoint for a recommendation, and persists it. Creation is
// all-or-nothing: any failure before the final insert leaves no rows behind.
// No store transaction stays open across the completion call.
func (s *MixService) GenerateMix(ctx context.Context, userID uint, req MixRequest) (*database.Mix, error) {
	var tobaccos []database.Tobacco
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Category").
		Order("name").
		Find(&tobaccos).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	if len(tobaccos) < 2 {
		return nil, apperrors.NewInsufficientTobaccos()
	}

	collection := make([]TobaccoInfo, 0, len(tobaccos))
	for _, t := range tobaccos {
		info := TobaccoInfo{Name: t.Name, Brand: t.Brand}
		if t.Category != nil {
			info.Category = t.Category.Name
		}
		collection = append(collection, info)
	}

	liked, disliked, err := s.ratedMixNames(ctx, userID)
	if err != nil {
		return nil, err
	}

	previous, err := s.recentMixNames(ctx, userID, 10)
	if err != nil {
		return nil, err
	}

	systemPrompt, userPrompt := BuildPrompt(PromptInputs{
		Collection: collection,
		Request:    req,
		Liked:      liked,
		Disliked:   disliked,
		Previous:   previous,
	})

	temperature := s.llm.DefaultTemperature()
	if req.Type == RequestSurprise {
		temperature = surpriseTemperature
	}

	// All reads are done; the slow call runs with no store handle open.
	raw, err := s.llm.Complete(ctx, systemPrompt, userPrompt, temperature)
	if err != nil {
		return nil, err
	}

	recommendation, err := ParseRecommendation(raw)
	if err != nil {
		logger.Warn("Failed to parse mix recommendation", "user_id", userID, "error", err)
		return nil, err
	}

	mix := &database.Mix{
		UserID:      userID,
		Name:        recommendation.Name,
		Components:  recommendation.Components,
		Description: recommendation.Description,
		Tips:        recommendation.Tips,
		RequestType: string(req.Type),
	}
	if err := s.db.WithContext(ctx).Create(mix).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	logger.Infof("Generated mix %q (id=%d) for user %d", mix.Name, mix.ID, userID)
	return mix, nil
}

// ratedMixNames splits all historically rated mixes into liked and disliked
// name lists.
func (s *MixService) ratedMixNames(ctx context.Context, userID uint) (liked, disliked []string, err error) {
	var rated []database.Mix
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND rating IS NOT NULL", userID).
		Find(&rated).Error; err != nil {
		return nil, nil, apperrors.NewDatabaseError(err)
	}
	for _, m := range rated {
		switch {
		case m.Rating != nil && *m.Rating == 1:
			liked = append(liked, m.Name)
		case m.Rating != nil && *m.Rating == -1:
			disliked = append(disliked, m.Name)
		}
	}
	return liked, disliked, nil
}

// recentMixNames returns up to limit most recent mix names, newest first.
func (s *MixService) recentMixNames(ctx context.Context, userID uint, limit int) ([]string, error) {
	var recent []database.Mix
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&recent).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	names := make([]string, 0, len(recent))
	for _, m := range recent {
		names = append(names, m.Name)
	}
	return names, nil
}

// GetMix returns a mix owned by the user.
func (s *MixService) GetMix(ctx context.Context, userID, mixID uint) (*database.Mix, error) {
	var mix database.Mix
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", mixID, userID).
		First(&mix).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFound("mix")
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return &mix, nil
}

// ListMixes returns the user's mixes, newest first.
func (s *MixService) ListMixes(ctx context.Context, userID uint, limit int) ([]database.Mix, error) {
	var mixes []database.Mix
	q := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&mixes).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return mixes, nil
}

// ListFavorites returns the user's favorited mixes, newest first.
func (s *MixService) ListFavorites(ctx context.Context, userID uint) ([]database.Mix, error) {
	var mixes []database.Mix
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_favorite = ?", userID, true).
		Order("created_at DESC").
		Find(&mixes).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return mixes, nil
}

// Rate sets the rating on a mix. Last write wins; repeated calls with the
// same value are no-ops.
func (s *MixService) Rate(ctx context.Context, userID, mixID uint, rating int) (*database.Mix, error) {
	if rating < -1 || rating > 1 {
		return nil, apperrors.NewValidationError("rating must be between -1 and 1")
	}
	mix, err := s.GetMix(ctx, userID, mixID)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).
		Model(mix).
		Update("rating", rating).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	mix.Rating = &rating
	return mix, nil
}

// SetFavorite sets the favorite flag to an explicit value.
func (s *MixService) SetFavorite(ctx context.Context, userID, mixID uint, favorite bool) (*database.Mix, error) {
	mix, err := s.GetMix(ctx, userID, mixID)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).
		Model(mix).
		Update("is_favorite", favorite).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	mix.IsFavorite = favorite
	return mix, nil
}

// ToggleFavorite flips the current favorite flag. Read and write run in one
// transaction.
func (s *MixService) ToggleFavorite(ctx context.Context, userID, mixID uint) (*database.Mix, error) {
	var mix database.Mix
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND user_id = ?", mixID, userID).First(&mix).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("mix")
		}
		if err != nil {
			return apperrors.NewDatabaseError(err)
		}
		mix.IsFavorite = !mix.IsFavorite
		return tx.Model(&mix).Update("is_favorite", mix.IsFavorite).Error
	})
	if err != nil {
		return nil, err
	}
	return &mix, nil
}

// ClearFavorites unsets the favorite flag on every favorited mix and returns
// how many were affected. Rows are never deleted.
func (s *MixService) ClearFavorites(ctx context.Context, userID uint) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&database.Mix{}).
		Where("user_id = ? AND is_favorite = ?", userID, true).
		Update("is_favorite", false)
	if result.Error != nil {
		return 0, apperrors.NewDatabaseError(result.Error)
	}
	return result.RowsAffected, nil
}
