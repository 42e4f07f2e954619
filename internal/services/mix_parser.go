package services

import (
	"encoding/json"
	"strings"

	apperrors "github.com/antonvlasov/hookah-mix-helper/internal/errors"

	"github.com/antonvlasov/hookah-mix-helper/internal/database"
)

// MixRecommendation is the structured result parsed from a completion reply.
type MixRecommendation struct {
	Name        string
	Components  []database.MixComponent
	Description string
	Tips        string
}

// Pointer fields distinguish absent keys from zero values.
type rawRecommendation struct {
	Name        *string        `json:"name"`
	Components  []rawComponent `json:"components"`
	Description *string        `json:"description"`
	Tips        *string        `json:"tips"`
}

type rawComponent struct {
	Tobacco *string `json:"tobacco"`
	Portion *int    `json:"portion"`
	Role    *string `json:"role"`
}

// ParseRecommendation turns a raw completion reply into a MixRecommendation.
// It validates shape only: required keys must be present, but portion sums,
// role values and tobacco-name membership are not checked here.
func ParseRecommendation(raw string) (*MixRecommendation, error) {
	content := stripCodeFence(raw)

	var parsed rawRecommendation
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, apperrors.NewMalformedJSON(err)
	}

	if parsed.Name == nil || *parsed.Name == "" {
		return nil, apperrors.NewMissingField("name")
	}
	if len(parsed.Components) == 0 {
		return nil, apperrors.NewMissingField("components")
	}
	if parsed.Description == nil {
		return nil, apperrors.NewMissingField("description")
	}
	if parsed.Tips == nil {
		return nil, apperrors.NewMissingField("tips")
	}

	components := make([]database.MixComponent, 0, len(parsed.Components))
	for _, c := range parsed.Components {
		if c.Tobacco == nil {
			return nil, apperrors.NewMissingField("tobacco")
		}
		if c.Portion == nil {
			return nil, apperrors.NewMissingField("portion")
		}
		if c.Role == nil {
			return nil, apperrors.NewMissingField("role")
		}
		components = append(components, database.MixComponent{
			Tobacco: *c.Tobacco,
			Portion: *c.Portion,
			Role:    *c.Role,
		})
	}

	return &MixRecommendation{
		Name:        *parsed.Name,
		Components:  components,
		Description: *parsed.Description,
		Tips:        *parsed.Tips,
	}, nil
}

// stripCodeFence removes a surrounding ``` fence, tolerating an optional
// language tag after the opening marker. Models wrap JSON in fences despite
// instructions often enough that this has to be transparent.
func stripCodeFence(s string) string {
	content := strings.TrimSpace(s)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```")
	if idx := strings.Index(content, "\n"); idx >= 0 {
		firstLine := strings.TrimSpace(content[:idx])
		// A short first line with no JSON is a language tag ("json", "JSON").
		if firstLine != "" && !strings.ContainsAny(firstLine, "{}") {
			content = content[idx+1:]
		}
	}
	content = strings.TrimPrefix(strings.TrimSpace(content), "json")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
