package database

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// Mix request types, persisted on every generated mix.
const (
	RequestTypeBase     = "base"
	RequestTypeProfile  = "profile"
	RequestTypeSurprise = "surprise"
)

type User struct {
	gorm.Model
	TelegramID int64 `gorm:"uniqueIndex"`
	Username   string
	FirstName  string
}

// Category is immutable reference data seeded at startup.
type Category struct {
	gorm.Model
	Name         string `gorm:"uniqueIndex"`
	Emoji        string
	TasteProfile string // сладкий/кислый/свежий/терпкий/нейтральный/разный
}

type Tobacco struct {
	gorm.Model
	UserID     uint `gorm:"index"`
	User       User
	Name       string
	Brand      string
	CategoryID *uint
	Category   *Category
	Notes      string
}

// MixComponent is one tobacco's share within a mix. Tobacco is the lookup
// key and stays unique within a mix's component list.
type MixComponent struct {
	Tobacco string `json:"tobacco"`
	Portion int    `json:"portion"`
	Role    string `json:"role"` // база/дополнение/акцент
}

// MixComponents is an ordered component list stored as a JSON column.
type MixComponents []MixComponent

func (c MixComponents) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *MixComponents) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	case nil:
		*c = nil
		return nil
	default:
		return fmt.Errorf("unsupported components column type %T", value)
	}
}

type Mix struct {
	gorm.Model
	UserID      uint `gorm:"index"`
	User        User
	Name        string
	Components  MixComponents `gorm:"type:json"`
	Description string
	Tips        string
	Rating      *int // nil = unrated, -1 disliked, 1 liked
	IsFavorite  bool
	RequestType string
}
