package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonvlasov/hookah-mix-helper/internal/services"
)

func TestManager_StateDefaultsToNone(t *testing.T) {
	m := NewManager()
	assert.Equal(t, None, m.GetUserState(1))
}

func TestManager_AddFlowRoundTrip(t *testing.T) {
	m := NewManager()

	m.SetUserState(1, WaitingTobaccoBrand)
	m.SetPendingTobacco(1, PendingTobacco{Name: "Малина", Brand: "Darkside"})

	assert.Equal(t, WaitingTobaccoBrand, m.GetUserState(1))
	pending, ok := m.GetPendingTobacco(1)
	require.True(t, ok)
	assert.Equal(t, "Малина", pending.Name)

	// A second user is unaffected.
	assert.Equal(t, None, m.GetUserState(2))
	_, ok = m.GetPendingTobacco(2)
	assert.False(t, ok)
}

func TestManager_ClearFlowKeepsLastMixRequest(t *testing.T) {
	m := NewManager()

	req := services.MixRequest{Type: services.RequestByProfile, TasteProfile: "сладкий"}
	m.SetLastMixRequest(1, req)
	m.SetUserState(1, WaitingTobaccoName)
	m.SetPendingTobacco(1, PendingTobacco{Name: "Мята"})

	m.ClearFlow(1)

	assert.Equal(t, None, m.GetUserState(1))
	_, ok := m.GetPendingTobacco(1)
	assert.False(t, ok)

	// Retry still works after leaving a flow.
	remembered, ok := m.GetLastMixRequest(1)
	require.True(t, ok)
	assert.Equal(t, req, remembered)
}

func TestManager_NoLastMixRequest(t *testing.T) {
	m := NewManager()
	_, ok := m.GetLastMixRequest(7)
	assert.False(t, ok)
}

func TestManager_ConcurrentAccess(t *testing.T) {
	m := NewManager()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			m.SetUserState(userID, WaitingBulkList)
			m.SetLastMixRequest(userID, services.MixRequest{Type: services.RequestSurprise})
			_ = m.GetUserState(userID)
			m.ClearFlow(userID)
		}(int64(i % 5))
	}
	wg.Wait()
}
