package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/antonvlasov/hookah-mix-helper/internal/errors"
)

func TestParseRecommendation_PlainJSON(t *testing.T) {
	rec, err := ParseRecommendation(validReply)
	require.NoError(t, err)

	assert.Equal(t, "Ягодный бриз", rec.Name)
	require.Len(t, rec.Components, 2)
	assert.Equal(t, "Малина", rec.Components[0].Tobacco)
	assert.Equal(t, 50, rec.Components[0].Portion)
	assert.Equal(t, "база", rec.Components[0].Role)
	assert.Equal(t, "Сладкая малина с холодной мятой.", rec.Description)
	assert.Equal(t, "Забивайте воздушно.", rec.Tips)
}

func TestParseRecommendation_CodeFences(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"json fence", "```json\n" + validReply + "\n```"},
		{"bare fence", "```\n" + validReply + "\n```"},
		{"fence without newline", "```json" + validReply + "```"},
		{"surrounding whitespace", "\n\n  " + validReply + "  \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseRecommendation(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, "Ягодный бриз", rec.Name)
			assert.Len(t, rec.Components, 2)
		})
	}
}

func TestParseRecommendation_MalformedJSON(t *testing.T) {
	for _, raw := range []string{
		"не могу составить микс, извините",
		`{"name": "обрыв`,
		"",
	} {
		_, err := ParseRecommendation(raw)
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeMalformedJSON, apperrors.Code(err))
	}
}

func TestParseRecommendation_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			"no name",
			`{"components":[{"tobacco":"Мята","portion":100,"role":"база"}],"description":"d","tips":"t"}`,
		},
		{
			"empty name",
			`{"name":"","components":[{"tobacco":"Мята","portion":100,"role":"база"}],"description":"d","tips":"t"}`,
		},
		{
			"no components",
			`{"name":"Микс","description":"d","tips":"t"}`,
		},
		{
			"empty components",
			`{"name":"Микс","components":[],"description":"d","tips":"t"}`,
		},
		{
			"no description",
			`{"name":"Микс","components":[{"tobacco":"Мята","portion":100,"role":"база"}],"tips":"t"}`,
		},
		{
			"no tips",
			`{"name":"Микс","components":[{"tobacco":"Мята","portion":100,"role":"база"}],"description":"d"}`,
		},
		{
			"component without tobacco",
			`{"name":"Микс","components":[{"portion":100,"role":"база"}],"description":"d","tips":"t"}`,
		},
		{
			"component without portion",
			`{"name":"Микс","components":[{"tobacco":"Мята","role":"база"}],"description":"d","tips":"t"}`,
		},
		{
			"component without role",
			`{"name":"Мята","components":[{"tobacco":"Мята","portion":100}],"description":"d","tips":"t"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRecommendation(tt.raw)
			require.Error(t, err)
			assert.Equal(t, apperrors.CodeMissingField, apperrors.Code(err))
		})
	}
}

func TestParseRecommendation_ShapeOnly(t *testing.T) {
	// Portion sums and role labels are not validated at this layer.
	raw := `{"name":"Странный","components":[{"tobacco":"Нечто","portion":93,"role":"loud"}],"description":"d","tips":"t"}`
	rec, err := ParseRecommendation(raw)
	require.NoError(t, err)
	assert.Equal(t, 93, rec.Components[0].Portion)
	assert.Equal(t, "loud", rec.Components[0].Role)
}
