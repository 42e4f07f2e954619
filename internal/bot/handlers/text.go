package handlers

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/antonvlasov/hookah-mix-helper/internal/bot/keyboards"
	"github.com/antonvlasov/hookah-mix-helper/internal/bot/state"
	"github.com/antonvlasov/hookah-mix-helper/internal/database"
	"github.com/antonvlasov/hookah-mix-helper/internal/services"
)

// TextHandler handles plain text messages inside input flows
type TextHandler struct {
	api          *tgbotapi.BotAPI
	deps         Dependencies
	stateManager state.StateManager
}

// NewTextHandler creates a new text handler
func NewTextHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *TextHandler {
	return &TextHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a text message according to the user's current state
func (h *TextHandler) Handle(ctx context.Context, message *tgbotapi.Message, user *database.User) error {
	text := strings.TrimSpace(message.Text)
	chatID := message.Chat.ID

	switch h.stateManager.GetUserState(user.TelegramID) {
	case state.WaitingTobaccoName:
		return h.handleTobaccoName(chatID, user, text)
	case state.WaitingTobaccoBrand:
		return h.handleTobaccoBrand(ctx, chatID, user, text)
	case state.WaitingTobaccoRename:
		return h.handleTobaccoRename(ctx, chatID, user, text)
	case state.WaitingBulkList:
		return h.handleBulkList(ctx, chatID, user, message.Text)
	default:
		msg := tgbotapi.NewMessage(chatID, "Я понимаю только кнопки и команды. Нажмите /start, чтобы открыть меню.")
		msg.ReplyMarkup = keyboards.BackToMenu()
		_, err := h.api.Send(msg)
		return err
	}
}

func (h *TextHandler) handleTobaccoName(chatID int64, user *database.User, name string) error {
	if name == "" {
		return h.sendText(chatID, "Название не может быть пустым. Введите название табака:")
	}

	h.stateManager.SetPendingTobacco(user.TelegramID, state.PendingTobacco{Name: name})
	h.stateManager.SetUserState(user.TelegramID, state.WaitingTobaccoBrand)

	msg := tgbotapi.NewMessage(chatID, "Укажите бренд (например, Darkside) или пропустите этот шаг:")
	msg.ReplyMarkup = keyboards.SkipBrandMenu()
	_, err := h.api.Send(msg)
	return err
}

func (h *TextHandler) handleTobaccoBrand(ctx context.Context, chatID int64, user *database.User, brand string) error {
	pending, ok := h.stateManager.GetPendingTobacco(user.TelegramID)
	if !ok {
		h.stateManager.ClearFlow(user.TelegramID)
		return h.sendText(chatID, "Добавление прервано, начните заново.")
	}

	pending.Brand = brand
	h.stateManager.SetPendingTobacco(user.TelegramID, pending)
	h.stateManager.SetUserState(user.TelegramID, state.WaitingTobaccoCategory)

	categories, err := h.deps.TobaccoService.ListCategories(ctx)
	if err != nil {
		return h.sendText(chatID, errorText(err))
	}
	msg := tgbotapi.NewMessage(chatID, "Выберите категорию вкуса:")
	msg.ReplyMarkup = keyboards.CategoriesMenu(categories)
	_, err = h.api.Send(msg)
	return err
}

func (h *TextHandler) handleTobaccoRename(ctx context.Context, chatID int64, user *database.User, name string) error {
	pending, ok := h.stateManager.GetPendingTobacco(user.TelegramID)
	if !ok || pending.TobaccoID == 0 {
		h.stateManager.ClearFlow(user.TelegramID)
		return h.sendText(chatID, "Переименование прервано, начните заново.")
	}
	if name == "" {
		return h.sendText(chatID, "Название не может быть пустым. Введите новое название:")
	}

	h.stateManager.ClearFlow(user.TelegramID)

	tobacco, err := h.deps.TobaccoService.UpdateTobacco(ctx, user.ID, pending.TobaccoID, services.TobaccoUpdate{Name: &name})
	if err != nil {
		return h.sendText(chatID, errorText(err))
	}

	msg := tgbotapi.NewMessage(chatID, "✏️ Переименовано:\n\n"+formatTobaccoDetail(tobacco))
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboards.TobaccoDetailMenu(tobacco.ID)
	_, err = h.api.Send(msg)
	return err
}

func (h *TextHandler) handleBulkList(ctx context.Context, chatID int64, user *database.User, text string) error {
	h.stateManager.ClearFlow(user.TelegramID)

	result, err := h.deps.TobaccoService.BulkImport(ctx, user.ID, text)
	if err != nil {
		return h.sendText(chatID, errorText(err))
	}

	msg := tgbotapi.NewMessage(chatID, formatBulkReport(result))
	msg.ReplyMarkup = keyboards.BackToMenu()
	_, err = h.api.Send(msg)
	return err
}

func (h *TextHandler) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := h.api.Send(msg)
	return err
}
