package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonvlasov/hookah-mix-helper/internal/database"
	apperrors "github.com/antonvlasov/hookah-mix-helper/internal/errors"
)

func TestRegisterUser_CreatesOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	first, err := svc.RegisterUser(ctx, 42, "smoker", "Вася")
	require.NoError(t, err)
	assert.NotZero(t, first.ID)

	second, err := svc.RegisterUser(ctx, 42, "smoker", "Вася")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&database.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRegisterUser_RefreshesDisplayFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, 42, "old_name", "Вася")
	require.NoError(t, err)

	_, err = svc.RegisterUser(ctx, 42, "new_name", "Василий")
	require.NoError(t, err)

	stored, err := svc.GetUserByTelegramID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "new_name", stored.Username)
	assert.Equal(t, "Василий", stored.FirstName)

	// Empty values never wipe what is already stored.
	_, err = svc.RegisterUser(ctx, 42, "", "")
	require.NoError(t, err)
	stored, err = svc.GetUserByTelegramID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "new_name", stored.Username)
}

func TestGetUserByTelegramID_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	_, err := svc.GetUserByTelegramID(context.Background(), 999)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.Code(err))
}

func TestStats(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	user := createTestUser(t, db, 300)

	createTestTobacco(t, db, user.ID, "Мята", "")
	createTestTobacco(t, db, user.ID, "Малина", "")
	require.NoError(t, db.Create(&database.Mix{UserID: user.ID, Name: "А", IsFavorite: true}).Error)
	require.NoError(t, db.Create(&database.Mix{UserID: user.ID, Name: "Б"}).Error)

	stats, err := svc.Stats(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TobaccosCount)
	assert.Equal(t, int64(2), stats.MixesCount)
	assert.Equal(t, int64(1), stats.FavoritesCount)
}
