package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCollection() []TobaccoInfo {
	return []TobaccoInfo{
		{Name: "Малина", Brand: "Darkside", Category: "Ягодные"},
		{Name: "Мята", Brand: "", Category: "Мятные"},
		{Name: "Лимон"},
	}
}

func TestBuildPrompt_ByTobacco(t *testing.T) {
	system, user := BuildPrompt(PromptInputs{
		Collection: testCollection(),
		Request:    MixRequest{Type: RequestByTobacco, BaseTobacco: "Малина"},
	})

	assert.Contains(t, system, "СТРОГО JSON")
	assert.Contains(t, user, "Составь микс на основе табака 'Малина'")
	assert.Contains(t, user, "- Малина (Darkside) [Ягодные]")
	assert.Contains(t, user, "- Мята [Мятные]")
	assert.Contains(t, user, "- Лимон")
	assert.NotContains(t, user, "Мои предпочтения")
}

func TestBuildPrompt_ByProfile(t *testing.T) {
	_, user := BuildPrompt(PromptInputs{
		Collection: testCollection(),
		Request:    MixRequest{Type: RequestByProfile, TasteProfile: "сладкий"},
	})
	assert.Contains(t, user, "Составь сладкий микс")
}

func TestBuildPrompt_SurpriseUsesKnownStyle(t *testing.T) {
	// The style is random; every roll must come from the fixed set.
	for i := 0; i < 20; i++ {
		_, user := BuildPrompt(PromptInputs{
			Collection: testCollection(),
			Request:    MixRequest{Type: RequestSurprise},
		})
		require.Contains(t, user, "Удиви меня!")

		found := false
		for _, style := range mixStyles {
			if strings.Contains(user, style) {
				found = true
				break
			}
		}
		assert.True(t, found, "style phrase not from the known set: %s", user)
	}
}

func TestBuildPrompt_PreferenceSections(t *testing.T) {
	_, user := BuildPrompt(PromptInputs{
		Collection: testCollection(),
		Request:    MixRequest{Type: RequestByProfile, TasteProfile: "свежий"},
		Liked:      []string{"Ягодный бриз"},
		Disliked:   []string{"Пряный шторм"},
		Previous:   []string{"Микс 1", "Микс 2"},
	})

	assert.Contains(t, user, "Мои предпочтения:")
	assert.Contains(t, user, "Мне нравились миксы: Ягодный бриз")
	assert.Contains(t, user, "Мне не понравились миксы: Пряный шторм")
	assert.Contains(t, user, "НЕ предлагай эти миксы (уже были): Микс 1, Микс 2")
}

func TestBuildPrompt_ExclusionCappedAtFive(t *testing.T) {
	previous := []string{"М1", "М2", "М3", "М4", "М5", "М6", "М7"}
	_, user := BuildPrompt(PromptInputs{
		Collection: testCollection(),
		Request:    MixRequest{Type: RequestByProfile, TasteProfile: "сладкий"},
		Previous:   previous,
	})

	assert.Contains(t, user, "НЕ предлагай эти миксы (уже были): М1, М2, М3, М4, М5")
	assert.NotContains(t, user, "М6")
	assert.NotContains(t, user, "М7")
}

func TestBuildPrompt_EmptySectionsOmitted(t *testing.T) {
	_, user := BuildPrompt(PromptInputs{
		Collection: testCollection(),
		Request:    MixRequest{Type: RequestByProfile, TasteProfile: "сладкий"},
		Liked:      []string{"Хороший"},
	})

	assert.Contains(t, user, "Мне нравились миксы")
	assert.NotContains(t, user, "Мне не понравились миксы")
	assert.NotContains(t, user, "НЕ предлагай")
}
