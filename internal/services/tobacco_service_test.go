package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonvlasov/hookah-mix-helper/internal/database"
	apperrors "github.com/antonvlasov/hookah-mix-helper/internal/errors"
)

func TestListCategories_Seeded(t *testing.T) {
	db := newTestDB(t)
	svc := NewTobaccoService(db)

	categories, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 10)

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.Name] = c.TasteProfile
	}
	assert.Equal(t, "сладкий", names["Ягодные"])
	assert.Equal(t, "кислый", names["Цитрусовые"])
	assert.Equal(t, "свежий", names["Мятные"])
	assert.Equal(t, "терпкий", names["Пряные"])
}

func TestAddTobacco(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, 200)
	svc := NewTobaccoService(db)
	ctx := context.Background()

	var category database.Category
	require.NoError(t, db.Where("name = ?", "Ягодные").First(&category).Error)

	tobacco, err := svc.AddTobacco(ctx, user.ID, TobaccoInput{
		Name:       "  Малина  ",
		Brand:      "Darkside",
		CategoryID: &category.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "Малина", tobacco.Name, "name is trimmed")
	assert.Equal(t, "Darkside", tobacco.Brand)
	require.NotNil(t, tobacco.Category, "category is preloaded")
	assert.Equal(t, "Ягодные", tobacco.Category.Name)
}

func TestAddTobacco_NameValidation(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, 201)
	svc := NewTobaccoService(db)
	ctx := context.Background()

	// One-rune names fail even in Cyrillic, two-rune names pass.
	_, err := svc.AddTobacco(ctx, user.ID, TobaccoInput{Name: "А"})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.Code(err))

	_, err = svc.AddTobacco(ctx, user.ID, TobaccoInput{Name: "Ай"})
	require.NoError(t, err)
}

func TestAddTobacco_CaseInsensitiveDuplicate(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, 202)
	svc := NewTobaccoService(db)
	ctx := context.Background()

	_, err := svc.AddTobacco(ctx, user.ID, TobaccoInput{Name: "Mango"})
	require.NoError(t, err)

	_, err = svc.AddTobacco(ctx, user.ID, TobaccoInput{Name: "MANGO"})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeDuplicateName, apperrors.Code(err))

	// A different user may hold the same name.
	other := createTestUser(t, db, 203)
	_, err = svc.AddTobacco(ctx, other.ID, TobaccoInput{Name: "mango"})
	require.NoError(t, err)
}

func TestUpdateTobacco(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, 204)
	svc := NewTobaccoService(db)
	ctx := context.Background()

	tobacco, err := svc.AddTobacco(ctx, user.ID, TobaccoInput{Name: "Lemon", Brand: "Sebero"})
	require.NoError(t, err)
	_, err = svc.AddTobacco(ctx, user.ID, TobaccoInput{Name: "Mint"})
	require.NoError(t, err)

	newBrand := "Darkside"
	updated, err := svc.UpdateTobacco(ctx, user.ID, tobacco.ID, TobaccoUpdate{Brand: &newBrand})
	require.NoError(t, err)
	assert.Equal(t, "Darkside", updated.Brand)
	assert.Equal(t, "Lemon", updated.Name, "untouched fields survive")

	// Renaming onto another collection entry is rejected.
	clash := "MINT"
	_, err = svc.UpdateTobacco(ctx, user.ID, tobacco.ID, TobaccoUpdate{Name: &clash})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeDuplicateName, apperrors.Code(err))

	// Renaming to itself (case change) passes the exclusion check.
	self := "LEMON"
	updated, err = svc.UpdateTobacco(ctx, user.ID, tobacco.ID, TobaccoUpdate{Name: &self})
	require.NoError(t, err)
	assert.Equal(t, "LEMON", updated.Name)
}

func TestDeleteTobacco(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, 205)
	svc := NewTobaccoService(db)
	ctx := context.Background()

	tobacco, err := svc.AddTobacco(ctx, user.ID, TobaccoInput{Name: "Мята"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTobacco(ctx, user.ID, tobacco.ID))

	err = svc.DeleteTobacco(ctx, user.ID, tobacco.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.Code(err))
}

func TestDeleteAllTobaccos(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, 206)
	other := createTestUser(t, db, 207)
	svc := NewTobaccoService(db)
	ctx := context.Background()

	for _, name := range []string{"Мята", "Малина", "Лимон"} {
		_, err := svc.AddTobacco(ctx, user.ID, TobaccoInput{Name: name})
		require.NoError(t, err)
	}
	_, err := svc.AddTobacco(ctx, other.ID, TobaccoInput{Name: "Манго"})
	require.NoError(t, err)

	deleted, err := svc.DeleteAllTobaccos(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	remaining, err := svc.ListTobaccos(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, remaining, 1, "other users keep their collections")
}

func TestBulkImport_Classification(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, 208)
	svc := NewTobaccoService(db)
	ctx := context.Background()

	_, err := svc.AddTobacco(ctx, user.ID, TobaccoInput{Name: "Мята"})
	require.NoError(t, err)

	text := "Манго | Darkside | Тропические\n\nмята\nА\nЛимон | Sebero"
	result, err := svc.BulkImport(ctx, user.ID, text)
	require.NoError(t, err)

	assert.Equal(t, []string{"Манго", "Лимон"}, result.Added)
	assert.Equal(t, []string{"мята"}, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "«А»")

	// Parsed fields land in the store.
	mango, err := svc.FindTobaccoByName(ctx, user.ID, "Манго")
	require.NoError(t, err)
	assert.Equal(t, "Darkside", mango.Brand)
	require.NotNil(t, mango.Category)
	assert.Equal(t, "Тропические", mango.Category.Name)

	lemon, err := svc.FindTobaccoByName(ctx, user.ID, "Лимон")
	require.NoError(t, err)
	assert.Equal(t, "Sebero", lemon.Brand)
	assert.Nil(t, lemon.Category)
}

func TestBulkAdd_BatchLocalDuplicates(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, 209)
	svc := NewTobaccoService(db)

	result, err := svc.BulkAdd(context.Background(), user.ID, []TobaccoInput{
		{Name: "Мята"},
		{Name: "МЯТА"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Мята"}, result.Added)
	assert.Equal(t, []string{"МЯТА"}, result.Skipped)
}

func TestBulkImport_UnknownCategoryDropped(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, 210)
	svc := NewTobaccoService(db)
	ctx := context.Background()

	result, err := svc.BulkImport(ctx, user.ID, "Манго | Darkside | Несуществующая")
	require.NoError(t, err)
	assert.Equal(t, []string{"Манго"}, result.Added)

	mango, err := svc.FindTobaccoByName(ctx, user.ID, "Манго")
	require.NoError(t, err)
	assert.Nil(t, mango.CategoryID)
}
