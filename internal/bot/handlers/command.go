package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/antonvlasov/hookah-mix-helper/internal/bot/keyboards"
	"github.com/antonvlasov/hookah-mix-helper/internal/bot/menus"
	"github.com/antonvlasov/hookah-mix-helper/internal/bot/state"
	"github.com/antonvlasov/hookah-mix-helper/internal/database"
	"github.com/antonvlasov/hookah-mix-helper/internal/logger"
)

// CommandHandler handles bot commands
type CommandHandler struct {
	api          *tgbotapi.BotAPI
	deps         Dependencies
	stateManager state.StateManager
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *CommandHandler {
	return &CommandHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a command message
func (h *CommandHandler) Handle(ctx context.Context, message *tgbotapi.Message, user *database.User) error {
	logger.Infof("Handling command %s from user %d", message.Command(), user.ID)

	switch message.Command() {
	case "start":
		return h.handleStart(ctx, message.Chat.ID, user)
	case "collection":
		h.stateManager.ClearFlow(user.TelegramID)
		tobaccos, err := h.deps.TobaccoService.ListTobaccos(ctx, user.ID)
		if err != nil {
			return h.sendText(message.Chat.ID, errorText(err))
		}
		return menus.SendCollection(h.api, message.Chat.ID, tobaccos, 0)
	case "add":
		h.stateManager.ClearFlow(user.TelegramID)
		h.stateManager.SetUserState(user.TelegramID, state.WaitingTobaccoName)
		return h.sendText(message.Chat.ID, "Введите название табака:")
	case "mix":
		h.stateManager.ClearFlow(user.TelegramID)
		return menus.SendMixMenu(h.api, message.Chat.ID)
	case "help":
		return h.handleHelp(message.Chat.ID)
	default:
		return h.handleUnknownCommand(message.Chat.ID)
	}
}

func (h *CommandHandler) handleStart(ctx context.Context, chatID int64, user *database.User) error {
	h.stateManager.ClearFlow(user.TelegramID)

	stats, err := h.deps.UserService.Stats(ctx, user.ID)
	if err != nil {
		return h.sendText(chatID, errorText(err))
	}
	if stats.TobaccosCount == 0 {
		return menus.SendWelcome(h.api, chatID, user.FirstName)
	}
	return menus.SendMainMenu(h.api, chatID, stats.TobaccosCount)
}

// handleHelp handles the /help command
func (h *CommandHandler) handleHelp(chatID int64) error {
	text := `Доступные команды:
/start - Главное меню
/collection - Моя коллекция табаков
/add - Добавить табак
/mix - Подобрать микс
/help - Показать это сообщение

Как это работает:
1. Добавьте табаки из своей коллекции (по одному или списком)
2. Выберите "Подобрать микс" и укажите, чего хочется
3. Оценивайте миксы 👍/👎 - я учту предпочтения в следующих подборах`

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboards.BackToMenu()
	_, err := h.api.Send(msg)
	return err
}

// handleUnknownCommand handles unknown commands
func (h *CommandHandler) handleUnknownCommand(chatID int64) error {
	return h.sendText(chatID, "Неизвестная команда. Используйте /help для просмотра доступных команд.")
}

func (h *CommandHandler) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := h.api.Send(msg)
	return err
}
