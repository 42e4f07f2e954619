package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonvlasov/hookah-mix-helper/internal/database"
	apperrors "github.com/antonvlasov/hookah-mix-helper/internal/errors"
)

func TestGenerateMix_PersistsRecommendation(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, 100)
	createTestTobacco(t, db, user.ID, "Малина", "Darkside")
	createTestTobacco(t, db, user.ID, "Мята", "")

	llm := &fakeCompleter{reply: validReply}
	svc := NewMixService(llm, db)

	mix, err := svc.GenerateMix(context.Background(), user.ID, MixRequest{Type: RequestByProfile, TasteProfile: "сладкий"})
	require.NoError(t, err)

	assert.NotZero(t, mix.ID)
	assert.Equal(t, "Ягодный бриз", mix.Name)
	assert.Equal(t, "profile", mix.RequestType)
	assert.Nil(t, mix.Rating)
	assert.False(t, mix.IsFavorite)

	// The JSON column round-trips through the store.
	stored, err := svc.GetMix(context.Background(), user.ID, mix.ID)
	require.NoError(t, err)
	require.Len(t, stored.Components, 2)
	assert.Equal(t, "Малина", stored.Components[0].Tobacco)
	assert.Equal(t, 50, stored.Components[0].Portion)

	assert.Equal(t, float32(0.8), llm.lastTemp)
}

func TestGenerateMix_InsufficientTobaccos(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, 101)
	createTestTobacco(t, db, user.ID, "Мята", "")

	llm := &fakeCompleter{reply: validReply}
	svc := NewMixService(llm, db)

	_, err := svc.GenerateMix(context.Background(), user.ID, MixRequest{Type: RequestSurprise})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInsufficientTobaccos, apperrors.Code(err))
	assert.Zero(t, llm.calls, "completion endpoint must not be called")

	var count int64
	require.NoError(t, db.Model(&database.Mix{}).Count(&count).Error)
	assert.Zero(t, count, "nothing may be persisted")
}

func TestGenerateMix_SurpriseTemperature(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, 102)
	createTestTobacco(t, db, user.ID, "Малина", "")
	createTestTobacco(t, db, user.ID, "Мята", "")

	llm := &fakeCompleter{reply: validReply}
	svc := NewMixService(llm, db)

	_, err := svc.GenerateMix(context.Background(), user.ID, MixRequest{Type: RequestSurprise})
	require.NoError(t, err)
	assert.Equal(t, float32(1.0), llm.lastTemp)
}

func TestGenerateMix_ParseFailureWritesNothing(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, 103)
	createTestTobacco(t, db, user.ID, "Малина", "")
	createTestTobacco(t, db, user.ID, "Мята", "")

	llm := &fakeCompleter{reply: "извините, я не могу"}
	svc := NewMixService(llm, db)

	_, err := svc.GenerateMix(context.Background(), user.ID, MixRequest{Type: RequestSurprise})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeMalformedJSON, apperrors.Code(err))

	var count int64
	require.NoError(t, db.Model(&database.Mix{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGenerateMix_UpstreamFailure(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, 104)
	createTestTobacco(t, db, user.ID, "Малина", "")
	createTestTobacco(t, db, user.ID, "Мята", "")

	llm := &fakeCompleter{err: apperrors.NewUpstreamUnavailable(nil)}
	svc := NewMixService(llm, db)

	_, err := svc.GenerateMix(context.Background(), user.ID, MixRequest{Type: RequestSurprise})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUpstreamUnavailable, apperrors.Code(err))
}

func TestGenerateMix_OddPortionsAccepted(t *testing.T) {
	// Semantic checks (portion sum, membership) are not enforced before
	// persistence; a shape-valid reply is stored as-is.
	db := newTestDB(t)
	user := createTestUser(t, db, 105)
	createTestTobacco(t, db, user.ID, "Малина", "")
	createTestTobacco(t, db, user.ID, "Мята", "")

	reply := `{"name":"Кривой","components":[{"tobacco":"Чужой табак","portion":93,"role":"база"}],"description":"d","tips":"t"}`
	svc := NewMixService(&fakeCompleter{reply: reply}, db)

	mix, err := svc.GenerateMix(context.Background(), user.ID, MixRequest{Type: RequestSurprise})
	require.NoError(t, err)
	assert.Equal(t, 93, mix.Components[0].Portion)
}

func TestGenerateMix_PreferencesReachPrompt(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, 106)
	createTestTobacco(t, db, user.ID, "Малина", "")
	createTestTobacco(t, db, user.ID, "Мята", "")

	one := 1
	minusOne := -1
	require.NoError(t, db.Create(&database.Mix{UserID: user.ID, Name: "Любимый", Rating: &one}).Error)
	require.NoError(t, db.Create(&database.Mix{UserID: user.ID, Name: "Противный", Rating: &minusOne}).Error)

	llm := &fakeCompleter{reply: validReply}
	svc := NewMixService(llm, db)

	_, err := svc.GenerateMix(context.Background(), user.ID, MixRequest{Type: RequestByProfile, TasteProfile: "сладкий"})
	require.NoError(t, err)

	assert.Contains(t, llm.lastUser, "Мне нравились миксы: Любимый")
	assert.Contains(t, llm.lastUser, "Мне не понравились миксы: Противный")
	assert.Contains(t, llm.lastUser, "НЕ предлагай эти миксы")
}

func TestRate_LastWriteWins(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, 107)
	require.NoError(t, db.Create(&database.Mix{UserID: user.ID, Name: "Микс"}).Error)
	var mix database.Mix
	require.NoError(t, db.First(&mix).Error)

	svc := NewMixService(&fakeCompleter{}, db)
	ctx := context.Background()

	_, err := svc.Rate(ctx, user.ID, mix.ID, 1)
	require.NoError(t, err)
	updated, err := svc.Rate(ctx, user.ID, mix.ID, -1)
	require.NoError(t, err)
	require.NotNil(t, updated.Rating)
	assert.Equal(t, -1, *updated.Rating)

	stored, err := svc.GetMix(ctx, user.ID, mix.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Rating)
	assert.Equal(t, -1, *stored.Rating)
}

func TestRate_Validation(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, 108)
	svc := NewMixService(&fakeCompleter{}, db)

	_, err := svc.Rate(context.Background(), user.ID, 1, 2)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.Code(err))
}

func TestRate_NotFound(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, 109)
	svc := NewMixService(&fakeCompleter{}, db)

	_, err := svc.Rate(context.Background(), user.ID, 999, 1)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.Code(err))
}

func TestToggleFavorite_TwiceRestores(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, 110)
	require.NoError(t, db.Create(&database.Mix{UserID: user.ID, Name: "Микс"}).Error)
	var mix database.Mix
	require.NoError(t, db.First(&mix).Error)

	svc := NewMixService(&fakeCompleter{}, db)
	ctx := context.Background()

	toggled, err := svc.ToggleFavorite(ctx, user.ID, mix.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsFavorite)

	toggled, err = svc.ToggleFavorite(ctx, user.ID, mix.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsFavorite)
}

func TestClearFavorites(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, 111)
	for i, favorite := range []bool{true, true, true, false, false} {
		require.NoError(t, db.Create(&database.Mix{
			UserID:     user.ID,
			Name:       "Микс " + string(rune('А'+i)),
			IsFavorite: favorite,
		}).Error)
	}

	svc := NewMixService(&fakeCompleter{}, db)
	cleared, err := svc.ClearFavorites(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), cleared)

	favorites, err := svc.ListFavorites(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, favorites)

	// History stays intact.
	mixes, err := svc.ListMixes(context.Background(), user.ID, 0)
	require.NoError(t, err)
	assert.Len(t, mixes, 5)
}

func TestMixOwnership(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, 112)
	other := createTestUser(t, db, 113)
	require.NoError(t, db.Create(&database.Mix{UserID: owner.ID, Name: "Чужой"}).Error)
	var mix database.Mix
	require.NoError(t, db.First(&mix).Error)

	svc := NewMixService(&fakeCompleter{}, db)

	_, err := svc.GetMix(context.Background(), other.ID, mix.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.Code(err))

	_, err = svc.ToggleFavorite(context.Background(), other.ID, mix.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.Code(err))
}
