package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/antonvlasov/hookah-mix-helper/internal/database"
	apperrors "github.com/antonvlasov/hookah-mix-helper/internal/errors"
)

// Name length bounds, counted in runes (collection names are mostly Cyrillic).
const (
	minNameLength = 2
	maxNameLength = 100
)

// TobaccoInput describes one tobacco to add.
type TobaccoInput struct {
	Name       string
	Brand      string
	CategoryID *uint
	Notes      string
}

// TobaccoUpdate carries optional field updates; nil means "leave as is".
type TobaccoUpdate struct {
	Name       *string
	Brand      *string
	CategoryID *uint
	Notes      *string
}

// BulkResult classifies every line of a bulk import.
type BulkResult struct {
	Added   []string
	Skipped []string
	Errors  []string
}

type TobaccoService struct {
	db *gorm.DB
}

func NewTobaccoService(db *gorm.DB) *TobaccoService {
	return &TobaccoService{db: db}
}

func (s *TobaccoService) ListCategories(ctx context.Context) ([]database.Category, error) {
	var categories []database.Category
	if err := s.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return categories, nil
}

// ListTobaccos returns the user's collection with categories, ordered by name.
func (s *TobaccoService) ListTobaccos(ctx context.Context, userID uint) ([]database.Tobacco, error) {
	var tobaccos []database.Tobacco
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Category").
		Order("name").
		Find(&tobaccos).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return tobaccos, nil
}

func (s *TobaccoService) GetTobacco(ctx context.Context, userID, tobaccoID uint) (*database.Tobacco, error) {
	var tobacco database.Tobacco
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", tobaccoID, userID).
		Preload("Category").
		First(&tobacco).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFound("tobacco")
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return &tobacco, nil
}

// FindTobaccoByName looks a tobacco up case-insensitively.
func (s *TobaccoService) FindTobaccoByName(ctx context.Context, userID uint, name string) (*database.Tobacco, error) {
	var tobacco database.Tobacco
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, name).
		Preload("Category").
		First(&tobacco).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFound("tobacco")
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return &tobacco, nil
}

// AddTobacco adds one tobacco, rejecting case-insensitive duplicates before
// any write.
func (s *TobaccoService) AddTobacco(ctx context.Context, userID uint, input TobaccoInput) (*database.Tobacco, error) {
	name := strings.TrimSpace(input.Name)
	if err := validateName(name); err != nil {
		return nil, err
	}

	if _, err := s.FindTobaccoByName(ctx, userID, name); err == nil {
		return nil, apperrors.NewDuplicateName(name)
	} else if apperrors.Code(err) != apperrors.CodeNotFound {
		return nil, err
	}

	tobacco := &database.Tobacco{
		UserID:     userID,
		Name:       name,
		Brand:      strings.TrimSpace(input.Brand),
		CategoryID: input.CategoryID,
		Notes:      input.Notes,
	}
	if err := s.db.WithContext(ctx).Create(tobacco).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	return s.GetTobacco(ctx, userID, tobacco.ID)
}

// UpdateTobacco applies the provided fields to an owned tobacco. A name
// change re-checks uniqueness against the rest of the collection.
func (s *TobaccoService) UpdateTobacco(ctx context.Context, userID, tobaccoID uint, update TobaccoUpdate) (*database.Tobacco, error) {
	tobacco, err := s.GetTobacco(ctx, userID, tobaccoID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
		var count int64
		if err := s.db.WithContext(ctx).Model(&database.Tobacco{}).
			Where("user_id = ? AND LOWER(name) = LOWER(?) AND id <> ?", userID, name, tobaccoID).
			Count(&count).Error; err != nil {
			return nil, apperrors.NewDatabaseError(err)
		}
		if count > 0 {
			return nil, apperrors.NewDuplicateName(name)
		}
		updates["name"] = name
	}
	if update.Brand != nil {
		updates["brand"] = strings.TrimSpace(*update.Brand)
	}
	if update.CategoryID != nil {
		updates["category_id"] = *update.CategoryID
	}
	if update.Notes != nil {
		updates["notes"] = *update.Notes
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(tobacco).Updates(updates).Error; err != nil {
			return nil, apperrors.NewDatabaseError(err)
		}
	}

	return s.GetTobacco(ctx, userID, tobaccoID)
}

func (s *TobaccoService) DeleteTobacco(ctx context.Context, userID, tobaccoID uint) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", tobaccoID, userID).
		Delete(&database.Tobacco{})
	if result.Error != nil {
		return apperrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("tobacco")
	}
	return nil
}

// DeleteAllTobaccos removes the user's whole collection and returns the count.
func (s *TobaccoService) DeleteAllTobaccos(ctx context.Context, userID uint) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&database.Tobacco{})
	if result.Error != nil {
		return 0, apperrors.NewDatabaseError(result.Error)
	}
	return result.RowsAffected, nil
}

// BulkAdd classifies every item independently into added, skipped
// (duplicate) or errored (invalid) and never fails the batch for one bad
// item. All inserts run in a single transaction.
func (s *TobaccoService) BulkAdd(ctx context.Context, userID uint, items []TobaccoInput) (*BulkResult, error) {
	var existing []string
	if err := s.db.WithContext(ctx).Model(&database.Tobacco{}).
		Where("user_id = ?", userID).
		Pluck("name", &existing).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	existingNames := make(map[string]bool, len(existing))
	for _, name := range existing {
		existingNames[strings.ToLower(name)] = true
	}

	result := &BulkResult{}
	var toCreate []database.Tobacco

	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		if err := validateName(name); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("«%s» — слишком короткое название", name))
			continue
		}
		if existingNames[strings.ToLower(name)] {
			result.Skipped = append(result.Skipped, name)
			continue
		}
		toCreate = append(toCreate, database.Tobacco{
			UserID:     userID,
			Name:       name,
			Brand:      strings.TrimSpace(item.Brand),
			CategoryID: item.CategoryID,
		})
		// Guards against duplicates within the same batch.
		existingNames[strings.ToLower(name)] = true
		result.Added = append(result.Added, name)
	}

	if len(toCreate) > 0 {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return tx.Create(&toCreate).Error
		})
		if err != nil {
			return nil, apperrors.NewDatabaseError(err)
		}
	}

	return result, nil
}

// BulkImport parses "Название | Бренд | Категория" lines and feeds them to
// BulkAdd. Blank lines are ignored entirely and land in no bucket. Unknown
// category names are silently dropped, matching the single-add flow where
// the category is optional.
func (s *TobaccoService) BulkImport(ctx context.Context, userID uint, text string) (*BulkResult, error) {
	categories, err := s.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	categoryIDs := make(map[string]uint, len(categories))
	for _, c := range categories {
		categoryIDs[strings.ToLower(c.Name)] = c.ID
	}

	var items []TobaccoInput
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Split(line, "|")
		item := TobaccoInput{Name: strings.TrimSpace(parts[0])}
		if len(parts) > 1 {
			item.Brand = strings.TrimSpace(parts[1])
		}
		if len(parts) > 2 {
			if id, ok := categoryIDs[strings.ToLower(strings.TrimSpace(parts[2]))]; ok {
				categoryID := id
				item.CategoryID = &categoryID
			}
		}
		items = append(items, item)
	}

	return s.BulkAdd(ctx, userID, items)
}

func validateName(name string) error {
	length := utf8.RuneCountInString(name)
	if length < minNameLength || length > maxNameLength {
		return apperrors.NewValidationError(
			fmt.Sprintf("name must be %d-%d characters, got %d", minNameLength, maxNameLength, length))
	}
	return nil
}
