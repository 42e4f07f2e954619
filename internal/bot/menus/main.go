package menus

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/antonvlasov/hookah-mix-helper/internal/bot/keyboards"
	"github.com/antonvlasov/hookah-mix-helper/internal/database"
)

const welcomeText = `👋 Привет, %s!

Я помогу тебе с кальянными миксами:
• Веди коллекцию своих табаков
• Получай миксы от ИИ из того, что есть под рукой
• Сохраняй удачные сочетания в избранное

Начни с добавления пары табаков в коллекцию.`

const mainMenuText = `🎛 *Главное меню*

Табаков в коллекции: %d

Выберите действие:`

// SendWelcome greets a user on /start.
func SendWelcome(api *tgbotapi.BotAPI, chatID int64, firstName string) error {
	name := firstName
	if name == "" {
		name = "кальянщик"
	}
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf(welcomeText, name))
	msg.ReplyMarkup = keyboards.MainMenu()
	_, err := api.Send(msg)
	return err
}

// SendMainMenu sends the main menu to a chat
func SendMainMenu(api *tgbotapi.BotAPI, chatID int64, tobaccoCount int64) error {
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf(mainMenuText, tobaccoCount))
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboards.MainMenu()
	_, err := api.Send(msg)
	return err
}

// EditToMainMenu rewrites an existing bot message into the main menu
func EditToMainMenu(api *tgbotapi.BotAPI, chatID int64, messageID int, tobaccoCount int64) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, fmt.Sprintf(mainMenuText, tobaccoCount))
	edit.ParseMode = "Markdown"
	keyboard := keyboards.MainMenu()
	edit.ReplyMarkup = &keyboard
	_, err := api.Send(edit)
	return err
}

// SendMixMenu sends the mix intent picker
func SendMixMenu(api *tgbotapi.BotAPI, chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, "🎨 Какой микс подобрать?")
	msg.ReplyMarkup = keyboards.MixMenu()
	_, err := api.Send(msg)
	return err
}

// EditToMixMenu rewrites an existing bot message into the mix intent picker
func EditToMixMenu(api *tgbotapi.BotAPI, chatID int64, messageID int) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, "🎨 Какой микс подобрать?")
	keyboard := keyboards.MixMenu()
	edit.ReplyMarkup = &keyboard
	_, err := api.Send(edit)
	return err
}

func collectionText(tobaccos []database.Tobacco) string {
	if len(tobaccos) == 0 {
		return "📦 Коллекция пока пуста.\n\nДобавьте первый табак, чтобы я мог подбирать миксы."
	}
	return fmt.Sprintf("📦 *Ваша коллекция* (%d шт.)\n\nНажмите на табак, чтобы открыть его.", len(tobaccos))
}

// SendCollection sends the paginated collection screen
func SendCollection(api *tgbotapi.BotAPI, chatID int64, tobaccos []database.Tobacco, page int) error {
	msg := tgbotapi.NewMessage(chatID, collectionText(tobaccos))
	msg.ParseMode = "Markdown"
	if len(tobaccos) == 0 {
		msg.ReplyMarkup = keyboards.MainMenu()
	} else {
		msg.ReplyMarkup = keyboards.CollectionMenu(tobaccos, page)
	}
	_, err := api.Send(msg)
	return err
}

// EditToCollection rewrites an existing bot message into the collection screen
func EditToCollection(api *tgbotapi.BotAPI, chatID int64, messageID int, tobaccos []database.Tobacco, page int) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, collectionText(tobaccos))
	edit.ParseMode = "Markdown"
	var keyboard tgbotapi.InlineKeyboardMarkup
	if len(tobaccos) == 0 {
		keyboard = keyboards.MainMenu()
	} else {
		keyboard = keyboards.CollectionMenu(tobaccos, page)
	}
	edit.ReplyMarkup = &keyboard
	_, err := api.Send(edit)
	return err
}
