package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/antonvlasov/hookah-mix-helper/internal/database"
)

// newTestDB opens a fresh in-memory SQLite database with the schema and seed
// categories in place. A named shared-cache DSN keeps GORM's pool connections
// pointed at the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, telegramID int64) *database.User {
	t.Helper()
	user := &database.User{TelegramID: telegramID, FirstName: "Тест"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestTobacco(t *testing.T, db *gorm.DB, userID uint, name, brand string) *database.Tobacco {
	t.Helper()
	tobacco := &database.Tobacco{UserID: userID, Name: name, Brand: brand}
	require.NoError(t, db.Create(tobacco).Error)
	return tobacco
}

// fakeCompleter returns a scripted reply and records what it was asked.
type fakeCompleter struct {
	reply       string
	err         error
	calls       int
	lastSystem  string
	lastUser    string
	lastTemp    float32
	defaultTemp float32
}

func (f *fakeCompleter) Complete(ctx context.Context, system, user string, temperature float32) (string, error) {
	f.calls++
	f.lastSystem = system
	f.lastUser = user
	f.lastTemp = temperature
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeCompleter) DefaultTemperature() float32 {
	if f.defaultTemp != 0 {
		return f.defaultTemp
	}
	return 0.8
}

const validReply = `{
  "name": "Ягодный бриз",
  "components": [
    {"tobacco": "Малина", "portion": 50, "role": "база"},
    {"tobacco": "Мята", "portion": 50, "role": "акцент"}
  ],
  "description": "Сладкая малина с холодной мятой.",
  "tips": "Забивайте воздушно."
}`
