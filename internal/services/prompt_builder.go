package services

import (
	"fmt"
	"math/rand"
	"strings"
)

// RequestType selects how a mix is asked for.
type RequestType string

const (
	RequestByTobacco RequestType = "base"
	RequestByProfile RequestType = "profile"
	RequestSurprise  RequestType = "surprise"
)

// MixRequest is the caller's generation intent. For RequestByTobacco the
// BaseTobacco field carries the anchor name, for RequestByProfile the
// TasteProfile field carries the profile label.
type MixRequest struct {
	Type         RequestType `json:"type"`
	BaseTobacco  string      `json:"base_tobacco,omitempty"`
	TasteProfile string      `json:"taste_profile,omitempty"`
}

// TobaccoInfo is the slice of the collection the prompt needs.
type TobaccoInfo struct {
	Name     string
	Brand    string
	Category string
}

// PromptInputs collects everything the prompt is built from.
type PromptInputs struct {
	Collection []TobaccoInfo
	Request    MixRequest
	Liked      []string
	Disliked   []string
	// Previous holds recent mix names, newest first; up to the last 5 go
	// into the exclusion section.
	Previous []string
}

// Styles injected into surprise requests, re-rolled on every call.
var mixStyles = []string{
	"классический и проверенный",
	"экспериментальный и смелый",
	"лёгкий и освежающий",
	"насыщенный и яркий",
	"сбалансированный и гармоничный",
	"сладкий и десертный",
	"тропический и экзотический",
	"мятно-холодный",
	"фруктово-ягодный",
	"необычный и креативный",
}

const systemPrompt = `Ты — эксперт по кальянным миксам с 10-летним опытом. Твоя задача — составлять идеальные миксы ТОЛЬКО из табаков, которые есть у пользователя.

ПРАВИЛА СОСТАВЛЕНИЯ МИКСОВ:
• 2-4 компонента в миксе
• Сумма пропорций ВСЕГДА = 100%
• Роли компонентов:
  - "база" (40-50%) — основной вкус микса
  - "дополнение" (25-35%) — поддерживает и обогащает базу
  - "акцент" (10-25%) — добавляет изюминку
• Объясняй почему выбранные вкусы хорошо сочетаются

ФОРМАТ ОТВЕТА — СТРОГО JSON без markdown-разметки:
{
  "name": "Название микса",
  "components": [
    {"tobacco": "точное название табака", "portion": 45, "role": "база"},
    {"tobacco": "точное название табака", "portion": 35, "role": "дополнение"},
    {"tobacco": "точное название табака", "portion": 20, "role": "акцент"}
  ],
  "description": "Описание вкусового профиля и ощущений",
  "tips": "Практический совет по забивке или подаче"
}

ВАЖНО: Используй ТОЛЬКО табаки из списка пользователя. Названия должны совпадать точно!`

// BuildPrompt assembles the system and user prompt parts. It performs no
// I/O; the only nondeterminism is the surprise style roll.
func BuildPrompt(in PromptInputs) (system, user string) {
	var request string
	switch in.Request.Type {
	case RequestByTobacco:
		request = fmt.Sprintf("Составь микс на основе табака '%s'", in.Request.BaseTobacco)
	case RequestByProfile:
		request = fmt.Sprintf("Составь %s микс", in.Request.TasteProfile)
	default:
		style := mixStyles[rand.Intn(len(mixStyles))]
		request = fmt.Sprintf("Удиви меня! Предложи %s микс. Будь креативным!", style)
	}

	var preferences []string
	if len(in.Liked) > 0 {
		preferences = append(preferences, "Мне нравились миксы: "+strings.Join(in.Liked, ", "))
	}
	if len(in.Disliked) > 0 {
		preferences = append(preferences, "Мне не понравились миксы: "+strings.Join(in.Disliked, ", "))
	}
	if len(in.Previous) > 0 {
		previous := in.Previous
		if len(previous) > 5 {
			previous = previous[:5]
		}
		preferences = append(preferences, "НЕ предлагай эти миксы (уже были): "+strings.Join(previous, ", "))
	}

	var b strings.Builder
	b.WriteString("Моя коллекция табаков:\n")
	b.WriteString(formatCollection(in.Collection))
	b.WriteString("\n\n")
	b.WriteString(request)
	if len(preferences) > 0 {
		b.WriteString("\n\nМои предпочтения:\n")
		b.WriteString(strings.Join(preferences, "\n"))
	}

	return systemPrompt, b.String()
}

func formatCollection(tobaccos []TobaccoInfo) string {
	lines := make([]string, 0, len(tobaccos))
	for _, t := range tobaccos {
		line := "- " + t.Name
		if t.Brand != "" {
			line += fmt.Sprintf(" (%s)", t.Brand)
		}
		if t.Category != "" {
			line += fmt.Sprintf(" [%s]", t.Category)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
