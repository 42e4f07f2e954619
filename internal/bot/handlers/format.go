package handlers

import (
	"fmt"
	"strings"

	"github.com/antonvlasov/hookah-mix-helper/internal/database"
	apperrors "github.com/antonvlasov/hookah-mix-helper/internal/errors"
	"github.com/antonvlasov/hookah-mix-helper/internal/services"
)

// roleEmoji marks the component role in a mix card.
func roleEmoji(role string) string {
	switch role {
	case "база":
		return "🔵"
	case "дополнение":
		return "🟢"
	case "акцент":
		return "🟡"
	default:
		return "▫️"
	}
}

// formatMix renders a mix card shown after generation and in history.
func formatMix(mix *database.Mix) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎨 *%s*\n\n", mix.Name)
	for _, component := range mix.Components {
		fmt.Fprintf(&b, "%s %s — %d%% (%s)\n", roleEmoji(component.Role), component.Tobacco, component.Portion, component.Role)
	}
	fmt.Fprintf(&b, "\n%s\n", mix.Description)
	if mix.Tips != "" {
		fmt.Fprintf(&b, "\n💡 %s\n", mix.Tips)
	}
	return b.String()
}

// formatMixLine renders a single history/favorites list entry.
func formatMixLine(mix *database.Mix) string {
	mark := ""
	if mix.Rating != nil {
		switch {
		case *mix.Rating > 0:
			mark = " 👍"
		case *mix.Rating < 0:
			mark = " 👎"
		}
	}
	if mix.IsFavorite {
		mark += " ⭐"
	}

	var parts []string
	for _, component := range mix.Components {
		parts = append(parts, fmt.Sprintf("%s %d%%", component.Tobacco, component.Portion))
	}
	return fmt.Sprintf("*%s*%s\n%s", mix.Name, mark, strings.Join(parts, " + "))
}

// formatTobaccoDetail renders the single-tobacco screen.
func formatTobaccoDetail(tobacco *database.Tobacco) string {
	var b strings.Builder
	emoji := "🔸"
	if tobacco.Category != nil {
		emoji = tobacco.Category.Emoji
	}
	fmt.Fprintf(&b, "%s *%s*\n", emoji, tobacco.Name)
	if tobacco.Brand != "" {
		fmt.Fprintf(&b, "Бренд: %s\n", tobacco.Brand)
	}
	if tobacco.Category != nil {
		fmt.Fprintf(&b, "Категория: %s (%s)\n", tobacco.Category.Name, tobacco.Category.TasteProfile)
	}
	if tobacco.Notes != "" {
		fmt.Fprintf(&b, "Заметки: %s\n", tobacco.Notes)
	}
	return b.String()
}

// Caps for the bulk import report so it fits in one telegram message.
const (
	bulkReportAddedCap   = 15
	bulkReportSkippedCap = 5
	bulkReportErrorsCap  = 5
)

// formatBulkReport renders the per-line outcome of a bulk import.
func formatBulkReport(result *services.BulkResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 Импорт завершён: добавлено %d, пропущено %d, ошибок %d\n", len(result.Added), len(result.Skipped), len(result.Errors))

	if len(result.Added) > 0 {
		b.WriteString("\n✅ Добавлены:\n")
		for i, name := range result.Added {
			if i == bulkReportAddedCap {
				fmt.Fprintf(&b, "… и ещё %d\n", len(result.Added)-bulkReportAddedCap)
				break
			}
			fmt.Fprintf(&b, "• %s\n", name)
		}
	}
	if len(result.Skipped) > 0 {
		b.WriteString("\n⏭ Уже в коллекции:\n")
		for i, name := range result.Skipped {
			if i == bulkReportSkippedCap {
				fmt.Fprintf(&b, "… и ещё %d\n", len(result.Skipped)-bulkReportSkippedCap)
				break
			}
			fmt.Fprintf(&b, "• %s\n", name)
		}
	}
	if len(result.Errors) > 0 {
		b.WriteString("\n⚠️ Не удалось добавить:\n")
		for i, line := range result.Errors {
			if i == bulkReportErrorsCap {
				fmt.Fprintf(&b, "… и ещё %d\n", len(result.Errors)-bulkReportErrorsCap)
				break
			}
			fmt.Fprintf(&b, "• %s\n", line)
		}
	}
	return b.String()
}

// errorText maps a service error to the user-facing message.
func errorText(err error) string {
	switch apperrors.Code(err) {
	case apperrors.CodeInsufficientTobaccos:
		return "🤏 В коллекции меньше двух табаков - добавьте ещё, и я смогу собрать микс."
	case apperrors.CodeUpstreamUnavailable:
		return "😔 Сервис подбора сейчас недоступен, попробуйте через пару минут."
	case apperrors.CodeMalformedJSON, apperrors.CodeMissingField:
		return "🤖 ИИ ответил что-то невнятное. Попробуйте ещё раз."
	case apperrors.CodeNotFound:
		return "Не нашёл такую запись. Возможно, она уже удалена."
	case apperrors.CodeDuplicateName:
		return "Такой табак уже есть в коллекции."
	case apperrors.CodeValidation:
		return "Не получилось: проверьте введённые данные."
	default:
		return "Что-то пошло не так. Попробуйте ещё раз."
	}
}
