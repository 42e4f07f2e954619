package keyboards

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/antonvlasov/hookah-mix-helper/internal/database"
)

// CollectionPageSize is how many tobaccos one collection page shows.
const CollectionPageSize = 8

// MainMenu creates the main menu keyboard
func MainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📦 Моя коллекция", "collection"),
			tgbotapi.NewInlineKeyboardButtonData("➕ Добавить табак", "add_tobacco"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 Добавить список", "add_tobacco_bulk"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎨 Подобрать микс", "mix_menu"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📜 История", "history"),
			tgbotapi.NewInlineKeyboardButtonData("⭐ Избранное", "favorites"),
		),
	)
}

// MixMenu creates the mix intent picker keyboard
func MixMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 На основе табака", "mix_by_tobacco"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🍬 Сладкий", "mix_profile:сладкий"),
			tgbotapi.NewInlineKeyboardButtonData("🍋 Кислый", "mix_profile:кислый"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🌿 Свежий", "mix_profile:свежий"),
			tgbotapi.NewInlineKeyboardButtonData("🎲 Удиви меня", "mix_surprise"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Назад", "main_menu"),
		),
	)
}

// CollectionMenu creates the paginated collection keyboard
func CollectionMenu(tobaccos []database.Tobacco, page int) tgbotapi.InlineKeyboardMarkup {
	totalPages := (len(tobaccos) + CollectionPageSize - 1) / CollectionPageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 0 {
		page = 0
	}
	if page >= totalPages {
		page = totalPages - 1
	}

	start := page * CollectionPageSize
	end := start + CollectionPageSize
	if end > len(tobaccos) {
		end = len(tobaccos)
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, tobacco := range tobaccos[start:end] {
		emoji := "🔸"
		if tobacco.Category != nil {
			emoji = tobacco.Category.Emoji
		}
		text := fmt.Sprintf("%s %s", emoji, tobacco.Name)
		if tobacco.Brand != "" {
			text += " • " + tobacco.Brand
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(text, fmt.Sprintf("tobacco:%d", tobacco.ID)),
		))
	}

	if totalPages > 1 {
		var pagination []tgbotapi.InlineKeyboardButton
		if page > 0 {
			pagination = append(pagination,
				tgbotapi.NewInlineKeyboardButtonData("◀️", fmt.Sprintf("collection_page:%d", page-1)))
		}
		pagination = append(pagination,
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%d/%d", page+1, totalPages), "noop"))
		if page < totalPages-1 {
			pagination = append(pagination,
				tgbotapi.NewInlineKeyboardButtonData("▶️", fmt.Sprintf("collection_page:%d", page+1)))
		}
		rows = append(rows, pagination)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("➕ Добавить", "add_tobacco"),
		tgbotapi.NewInlineKeyboardButtonData("◀️ Меню", "main_menu"),
	))
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🗑 Очистить коллекцию", "clear_collection"),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// ConfirmClearCollectionMenu asks to confirm wiping the whole collection
func ConfirmClearCollectionMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Да, удалить всё", "confirm_clear_collection"),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", "collection"),
		),
	)
}

// TobaccoPickerMenu lists tobaccos to pick the mix base from.
func TobaccoPickerMenu(tobaccos []database.Tobacco) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, tobacco := range tobaccos {
		emoji := "🔸"
		if tobacco.Category != nil {
			emoji = tobacco.Category.Emoji
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s %s", emoji, tobacco.Name),
				fmt.Sprintf("mix_with:%d", tobacco.ID),
			),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("◀️ Назад", "mix_menu"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// TobaccoDetailMenu creates the single-tobacco action keyboard
func TobaccoDetailMenu(tobaccoID uint) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎨 Микс с ним", fmt.Sprintf("mix_with:%d", tobaccoID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Переименовать", fmt.Sprintf("rename_tobacco:%d", tobaccoID)),
			tgbotapi.NewInlineKeyboardButtonData("🗑 Удалить", fmt.Sprintf("delete_tobacco:%d", tobaccoID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ К коллекции", "collection"),
		),
	)
}

// CategoriesMenu creates the category picker keyboard
func CategoriesMenu(categories []database.Category) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, category := range categories {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%s %s", category.Emoji, category.Name),
			fmt.Sprintf("category:%d", category.ID),
		))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⏭ Пропустить", "category:skip"),
	))
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", "main_menu"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// MixRatingMenu creates the rate/favorite/retry keyboard under a fresh mix
func MixRatingMenu(mixID uint) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👍", fmt.Sprintf("rate_mix:%d:1", mixID)),
			tgbotapi.NewInlineKeyboardButtonData("👎", fmt.Sprintf("rate_mix:%d:-1", mixID)),
			tgbotapi.NewInlineKeyboardButtonData("⭐ В избранное", fmt.Sprintf("favorite_mix:%d", mixID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Другой вариант", "mix_retry"),
			tgbotapi.NewInlineKeyboardButtonData("◀️ Меню", "main_menu"),
		),
	)
}

// ConfirmDeleteMenu asks to confirm deleting one tobacco
func ConfirmDeleteMenu(tobaccoID uint) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Да, удалить", fmt.Sprintf("confirm_delete:%d", tobaccoID)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", fmt.Sprintf("tobacco:%d", tobaccoID)),
		),
	)
}

// FavoritesMenu creates the favorites screen keyboard
func FavoritesMenu(hasFavorites bool) tgbotapi.InlineKeyboardMarkup {
	if !hasFavorites {
		return BackToMenu()
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Очистить избранное", "clear_favorites"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Главное меню", "main_menu"),
		),
	)
}

// ConfirmClearFavoritesMenu asks to confirm clearing all favorites
func ConfirmClearFavoritesMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Да, очистить", "confirm_clear_favorites"),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", "favorites"),
		),
	)
}

// SkipBrandMenu creates the brand-step keyboard in the add flow
func SkipBrandMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏭ Пропустить", "skip_brand"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", "main_menu"),
		),
	)
}

// BackToMenu creates a single back-to-main-menu button
func BackToMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Главное меню", "main_menu"),
		),
	)
}
