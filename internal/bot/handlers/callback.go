package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/antonvlasov/hookah-mix-helper/internal/bot/keyboards"
	"github.com/antonvlasov/hookah-mix-helper/internal/bot/menus"
	"github.com/antonvlasov/hookah-mix-helper/internal/bot/state"
	"github.com/antonvlasov/hookah-mix-helper/internal/database"
	"github.com/antonvlasov/hookah-mix-helper/internal/logger"
	"github.com/antonvlasov/hookah-mix-helper/internal/services"
)

// CallbackHandler handles callback query messages
type CallbackHandler struct {
	api          *tgbotapi.BotAPI
	deps         Dependencies
	stateManager state.StateManager
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *CallbackHandler {
	return &CallbackHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a callback query
func (h *CallbackHandler) Handle(ctx context.Context, query *tgbotapi.CallbackQuery, user *database.User) error {
	callback := tgbotapi.NewCallback(query.ID, "")
	if _, err := h.api.Request(callback); err != nil {
		return err
	}
	if query.Message == nil {
		return nil
	}

	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID
	data := query.Data

	switch {
	case data == "noop":
		return nil
	case data == "main_menu":
		return h.handleMainMenu(ctx, chatID, messageID, user)
	case data == "collection":
		return h.handleCollection(ctx, chatID, messageID, user, 0)
	case strings.HasPrefix(data, "collection_page:"):
		page, err := strconv.Atoi(strings.TrimPrefix(data, "collection_page:"))
		if err != nil {
			return h.sendText(chatID, "Неизвестная команда")
		}
		return h.handleCollection(ctx, chatID, messageID, user, page)
	case strings.HasPrefix(data, "tobacco:"):
		return h.handleTobaccoDetail(ctx, chatID, user, strings.TrimPrefix(data, "tobacco:"))
	case strings.HasPrefix(data, "rename_tobacco:"):
		return h.handleRenameTobacco(ctx, chatID, user, strings.TrimPrefix(data, "rename_tobacco:"))
	case strings.HasPrefix(data, "delete_tobacco:"):
		return h.handleDeleteTobacco(chatID, strings.TrimPrefix(data, "delete_tobacco:"))
	case strings.HasPrefix(data, "confirm_delete:"):
		return h.handleConfirmDelete(ctx, chatID, user, strings.TrimPrefix(data, "confirm_delete:"))
	case data == "clear_collection":
		return h.handleClearCollection(chatID)
	case data == "confirm_clear_collection":
		return h.handleConfirmClearCollection(ctx, chatID, user)
	case data == "add_tobacco":
		return h.handleAddTobacco(chatID, user)
	case data == "add_tobacco_bulk":
		return h.handleAddTobaccoBulk(chatID, user)
	case data == "skip_brand":
		return h.handleSkipBrand(ctx, chatID, user)
	case strings.HasPrefix(data, "category:"):
		return h.handleCategoryPick(ctx, chatID, user, strings.TrimPrefix(data, "category:"))
	case data == "mix_menu":
		h.stateManager.ClearFlow(user.TelegramID)
		return menus.EditToMixMenu(h.api, chatID, messageID)
	case data == "mix_by_tobacco":
		return h.handleMixByTobacco(ctx, chatID, user)
	case strings.HasPrefix(data, "mix_with:"):
		return h.handleMixWith(ctx, chatID, user, strings.TrimPrefix(data, "mix_with:"))
	case strings.HasPrefix(data, "mix_profile:"):
		return h.generateMix(ctx, chatID, user, services.MixRequest{
			Type:         services.RequestByProfile,
			TasteProfile: strings.TrimPrefix(data, "mix_profile:"),
		})
	case data == "mix_surprise":
		return h.generateMix(ctx, chatID, user, services.MixRequest{Type: services.RequestSurprise})
	case data == "mix_retry":
		return h.handleMixRetry(ctx, chatID, messageID, user)
	case strings.HasPrefix(data, "rate_mix:"):
		return h.handleRateMix(ctx, chatID, user, strings.TrimPrefix(data, "rate_mix:"))
	case strings.HasPrefix(data, "favorite_mix:"):
		return h.handleFavoriteMix(ctx, chatID, user, strings.TrimPrefix(data, "favorite_mix:"))
	case data == "history":
		return h.handleHistory(ctx, chatID, user)
	case data == "favorites":
		return h.handleFavorites(ctx, chatID, user)
	case data == "clear_favorites":
		return h.handleClearFavorites(chatID)
	case data == "confirm_clear_favorites":
		return h.handleConfirmClearFavorites(ctx, chatID, user)
	default:
		return h.sendText(chatID, "Неизвестная команда")
	}
}

func (h *CallbackHandler) handleMainMenu(ctx context.Context, chatID int64, messageID int, user *database.User) error {
	h.stateManager.ClearFlow(user.TelegramID)
	stats, err := h.deps.UserService.Stats(ctx, user.ID)
	if err != nil {
		return h.sendText(chatID, errorText(err))
	}
	if err := menus.EditToMainMenu(h.api, chatID, messageID, stats.TobaccosCount); err != nil {
		return menus.SendMainMenu(h.api, chatID, stats.TobaccosCount)
	}
	return nil
}

func (h *CallbackHandler) handleCollection(ctx context.Context, chatID int64, messageID int, user *database.User, page int) error {
	h.stateManager.ClearFlow(user.TelegramID)
	tobaccos, err := h.deps.TobaccoService.ListTobaccos(ctx, user.ID)
	if err != nil {
		return h.sendText(chatID, errorText(err))
	}
	if err := menus.EditToCollection(h.api, chatID, messageID, tobaccos, page); err != nil {
		return menus.SendCollection(h.api, chatID, tobaccos, page)
	}
	return nil
}

func (h *CallbackHandler) handleTobaccoDetail(ctx context.Context, chatID int64, user *database.User, rawID string) error {
	tobaccoID, err := parseID(rawID)
	if err != nil {
		return h.sendText(chatID, "Неизвестная команда")
	}
	tobacco, err := h.deps.TobaccoService.GetTobacco(ctx, user.ID, tobaccoID)
	if err != nil {
		return h.sendText(chatID, errorText(err))
	}

	msg := tgbotapi.NewMessage(chatID, formatTobaccoDetail(tobacco))
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboards.TobaccoDetailMenu(tobacco.ID)
	_, err = h.api.Send(msg)
	return err
}

func (h *CallbackHandler) handleRenameTobacco(ctx context.Context, chatID int64, user *database.User, rawID string) error {
	tobaccoID, err := parseID(rawID)
	if err != nil {
		return h.sendText(chatID, "Неизвестная команда")
	}
	tobacco, err := h.deps.TobaccoService.GetTobacco(ctx, user.ID, tobaccoID)
	if err != nil {
		return h.sendText(chatID, errorText(err))
	}

	h.stateManager.ClearFlow(user.TelegramID)
	h.stateManager.SetPendingTobacco(user.TelegramID, state.PendingTobacco{TobaccoID: tobacco.ID})
	h.stateManager.SetUserState(user.TelegramID, state.WaitingTobaccoRename)
	return h.sendText(chatID, fmt.Sprintf("Введите новое название для «%s»:", tobacco.Name))
}

func (h *CallbackHandler) handleDeleteTobacco(chatID int64, rawID string) error {
	tobaccoID, err := parseID(rawID)
	if err != nil {
		return h.sendText(chatID, "Неизвестная команда")
	}
	msg := tgbotapi.NewMessage(chatID, "Удалить этот табак из коллекции?")
	msg.ReplyMarkup = keyboards.ConfirmDeleteMenu(tobaccoID)
	_, err = h.api.Send(msg)
	return err
}

func (h *CallbackHandler) handleConfirmDelete(ctx context.Context, chatID int64, user *database.User, rawID string) error {
	tobaccoID, err := parseID(rawID)
	if err != nil {
		return h.sendText(chatID, "Неизвестная команда")
	}
	if err := h.deps.TobaccoService.DeleteTobacco(ctx, user.ID, tobaccoID); err != nil {
		return h.sendText(chatID, errorText(err))
	}

	tobaccos, err := h.deps.TobaccoService.ListTobaccos(ctx, user.ID)
	if err != nil {
		return h.sendText(chatID, errorText(err))
	}
	if err := h.sendText(chatID, "🗑 Табак удалён"); err != nil {
		return err
	}
	return menus.SendCollection(h.api, chatID, tobaccos, 0)
}

func (h *CallbackHandler) handleClearCollection(chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, "⚠️ Удалить ВСЕ табаки из коллекции? Это действие необратимо.")
	msg.ReplyMarkup = keyboards.ConfirmClearCollectionMenu()
	_, err := h.api.Send(msg)
	return err
}

func (h *CallbackHandler) handleConfirmClearCollection(ctx context.Context, chatID int64, user *database.User) error {
	deleted, err := h.deps.TobaccoService.DeleteAllTobaccos(ctx, user.ID)
	if err != nil {
		return h.sendText(chatID, errorText(err))
	}
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("🗑 Коллекция очищена (удалено табаков: %d)", deleted))
	msg.ReplyMarkup = keyboards.BackToMenu()
	_, err = h.api.Send(msg)
	return err
}

func (h *CallbackHandler) handleAddTobacco(chatID int64, user *database.User) error {
	h.stateManager.ClearFlow(user.TelegramID)
	h.stateManager.SetUserState(user.TelegramID, state.WaitingTobaccoName)
	return h.sendText(chatID, "Введите название табака (например, Двойное яблоко):")
}

func (h *CallbackHandler) handleAddTobaccoBulk(chatID int64, user *database.User) error {
	h.stateManager.ClearFlow(user.TelegramID)
	h.stateManager.SetUserState(user.TelegramID, state.WaitingBulkList)

	text := `📋 Отправьте список табаков, по одному на строку.

Формат строки: Название | Бренд | Категория
Бренд и категория необязательны.

Пример:
Манго | Darkside | Фруктовые
Мята
Лимон | Sebero`
	return h.sendText(chatID, text)
}

func (h *CallbackHandler) handleSkipBrand(ctx context.Context, chatID int64, user *database.User) error {
	if h.stateManager.GetUserState(user.TelegramID) != state.WaitingTobaccoBrand {
		return h.sendText(chatID, "Неизвестная команда")
	}
	h.stateManager.SetUserState(user.TelegramID, state.WaitingTobaccoCategory)
	return h.sendCategoryPicker(ctx, chatID)
}

func (h *CallbackHandler) sendCategoryPicker(ctx context.Context, chatID int64) error {
	categories, err := h.deps.TobaccoService.ListCategories(ctx)
	if err != nil {
		return h.sendText(chatID, errorText(err))
	}
	msg := tgbotapi.NewMessage(chatID, "Выберите категорию вкуса:")
	msg.ReplyMarkup = keyboards.CategoriesMenu(categories)
	_, err = h.api.Send(msg)
	return err
}

func (h *CallbackHandler) handleCategoryPick(ctx context.Context, chatID int64, user *database.User, raw string) error {
	if h.stateManager.GetUserState(user.TelegramID) != state.WaitingTobaccoCategory {
		return h.sendText(chatID, "Неизвестная команда")
	}
	pending, ok := h.stateManager.GetPendingTobacco(user.TelegramID)
	if !ok {
		h.stateManager.ClearFlow(user.TelegramID)
		return h.sendText(chatID, "Добавление прервано, начните заново.")
	}

	input := services.TobaccoInput{Name: pending.Name, Brand: pending.Brand}
	if raw != "skip" {
		categoryID, err := parseID(raw)
		if err != nil {
			return h.sendText(chatID, "Неизвестная команда")
		}
		input.CategoryID = &categoryID
	}

	h.stateManager.ClearFlow(user.TelegramID)

	tobacco, err := h.deps.TobaccoService.AddTobacco(ctx, user.ID, input)
	if err != nil {
		return h.sendText(chatID, errorText(err))
	}

	msg := tgbotapi.NewMessage(chatID, "✅ Добавлено:\n\n"+formatTobaccoDetail(tobacco))
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboards.BackToMenu()
	_, err = h.api.Send(msg)
	return err
}

func (h *CallbackHandler) handleMixByTobacco(ctx context.Context, chatID int64, user *database.User) error {
	tobaccos, err := h.deps.TobaccoService.ListTobaccos(ctx, user.ID)
	if err != nil {
		return h.sendText(chatID, errorText(err))
	}
	if len(tobaccos) < 2 {
		msg := tgbotapi.NewMessage(chatID, "🤏 В коллекции меньше двух табаков - добавьте ещё, и я смогу собрать микс.")
		msg.ReplyMarkup = keyboards.BackToMenu()
		_, err := h.api.Send(msg)
		return err
	}

	msg := tgbotapi.NewMessage(chatID, "🎯 Вокруг какого табака собрать микс?")
	msg.ReplyMarkup = keyboards.TobaccoPickerMenu(tobaccos)
	_, err = h.api.Send(msg)
	return err
}

func (h *CallbackHandler) handleMixWith(ctx context.Context, chatID int64, user *database.User, rawID string) error {
	tobaccoID, err := parseID(rawID)
	if err != nil {
		return h.sendText(chatID, "Неизвестная команда")
	}
	tobacco, err := h.deps.TobaccoService.GetTobacco(ctx, user.ID, tobaccoID)
	if err != nil {
		return h.sendText(chatID, errorText(err))
	}
	return h.generateMix(ctx, chatID, user, services.MixRequest{
		Type:        services.RequestByTobacco,
		BaseTobacco: tobacco.Name,
	})
}

// generateMix runs the full generation flow and remembers the request so the
// retry button can replay it.
func (h *CallbackHandler) generateMix(ctx context.Context, chatID int64, user *database.User, req services.MixRequest) error {
	h.stateManager.SetLastMixRequest(user.TelegramID, req)

	waiting := tgbotapi.NewMessage(chatID, "🔮 Подбираю микс из вашей коллекции...")
	waitingMsg, err := h.api.Send(waiting)
	if err != nil {
		return err
	}

	mix, err := h.deps.MixService.GenerateMix(ctx, user.ID, req)
	if err != nil {
		logger.Errorf("Mix generation failed for user %d: %v", user.ID, err)
		edit := tgbotapi.NewEditMessageText(chatID, waitingMsg.MessageID, errorText(err))
		keyboard := keyboards.MixMenu()
		edit.ReplyMarkup = &keyboard
		_, sendErr := h.api.Send(edit)
		return sendErr
	}

	edit := tgbotapi.NewEditMessageText(chatID, waitingMsg.MessageID, formatMix(mix))
	edit.ParseMode = "Markdown"
	keyboard := keyboards.MixRatingMenu(mix.ID)
	edit.ReplyMarkup = &keyboard
	_, err = h.api.Send(edit)
	return err
}

func (h *CallbackHandler) handleMixRetry(ctx context.Context, chatID int64, messageID int, user *database.User) error {
	req, ok := h.stateManager.GetLastMixRequest(user.TelegramID)
	if !ok {
		return menus.EditToMixMenu(h.api, chatID, messageID)
	}
	return h.generateMix(ctx, chatID, user, req)
}

func (h *CallbackHandler) handleRateMix(ctx context.Context, chatID int64, user *database.User, raw string) error {
	parts := strings.Split(raw, ":")
	if len(parts) != 2 {
		return h.sendText(chatID, "Неизвестная команда")
	}
	mixID, err := parseID(parts[0])
	if err != nil {
		return h.sendText(chatID, "Неизвестная команда")
	}
	rating, err := strconv.Atoi(parts[1])
	if err != nil {
		return h.sendText(chatID, "Неизвестная команда")
	}

	if _, err := h.deps.MixService.Rate(ctx, user.ID, mixID, rating); err != nil {
		return h.sendText(chatID, errorText(err))
	}
	if rating > 0 {
		return h.sendText(chatID, "👍 Запомнил, такие миксы вам нравятся!")
	}
	return h.sendText(chatID, "👎 Понял, больше такого не предложу.")
}

func (h *CallbackHandler) handleFavoriteMix(ctx context.Context, chatID int64, user *database.User, rawID string) error {
	mixID, err := parseID(rawID)
	if err != nil {
		return h.sendText(chatID, "Неизвестная команда")
	}
	mix, err := h.deps.MixService.ToggleFavorite(ctx, user.ID, mixID)
	if err != nil {
		return h.sendText(chatID, errorText(err))
	}
	if mix.IsFavorite {
		return h.sendText(chatID, "⭐ Микс добавлен в избранное")
	}
	return h.sendText(chatID, "Микс убран из избранного")
}

func (h *CallbackHandler) handleHistory(ctx context.Context, chatID int64, user *database.User) error {
	mixes, err := h.deps.MixService.ListMixes(ctx, user.ID, 10)
	if err != nil {
		return h.sendText(chatID, errorText(err))
	}
	if len(mixes) == 0 {
		msg := tgbotapi.NewMessage(chatID, "📜 История пуста - попросите первый микс!")
		msg.ReplyMarkup = keyboards.BackToMenu()
		_, err := h.api.Send(msg)
		return err
	}

	var b strings.Builder
	b.WriteString("📜 *Последние миксы:*\n\n")
	for i := range mixes {
		b.WriteString(formatMixLine(&mixes[i]))
		b.WriteString("\n\n")
	}
	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboards.BackToMenu()
	_, err = h.api.Send(msg)
	return err
}

func (h *CallbackHandler) handleFavorites(ctx context.Context, chatID int64, user *database.User) error {
	mixes, err := h.deps.MixService.ListFavorites(ctx, user.ID)
	if err != nil {
		return h.sendText(chatID, errorText(err))
	}
	if len(mixes) == 0 {
		msg := tgbotapi.NewMessage(chatID, "⭐ В избранном пока пусто. Отмечайте удачные миксы звёздочкой!")
		msg.ReplyMarkup = keyboards.FavoritesMenu(false)
		_, err := h.api.Send(msg)
		return err
	}

	var b strings.Builder
	b.WriteString("⭐ *Избранные миксы:*\n\n")
	for i := range mixes {
		b.WriteString(formatMixLine(&mixes[i]))
		b.WriteString("\n\n")
	}
	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboards.FavoritesMenu(true)
	_, err = h.api.Send(msg)
	return err
}

func (h *CallbackHandler) handleClearFavorites(chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, "Убрать все миксы из избранного? Сами миксы останутся в истории.")
	msg.ReplyMarkup = keyboards.ConfirmClearFavoritesMenu()
	_, err := h.api.Send(msg)
	return err
}

func (h *CallbackHandler) handleConfirmClearFavorites(ctx context.Context, chatID int64, user *database.User) error {
	cleared, err := h.deps.MixService.ClearFavorites(ctx, user.ID)
	if err != nil {
		return h.sendText(chatID, errorText(err))
	}
	msg := tgbotapi.NewMessage(chatID, "✅ Избранное очищено (убрано миксов: "+strconv.FormatInt(cleared, 10)+")")
	msg.ReplyMarkup = keyboards.BackToMenu()
	_, err = h.api.Send(msg)
	return err
}

func (h *CallbackHandler) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := h.api.Send(msg)
	return err
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
