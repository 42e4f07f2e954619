package state

import (
	"sync"

	"github.com/antonvlasov/hookah-mix-helper/internal/services"
)

// User states for the interactive add-tobacco flows.
const (
	None                   = "none"
	WaitingTobaccoName     = "waiting_tobacco_name"
	WaitingTobaccoBrand    = "waiting_tobacco_brand"
	WaitingTobaccoCategory = "waiting_tobacco_category"
	WaitingTobaccoRename   = "waiting_tobacco_rename"
	WaitingBulkList        = "waiting_bulk_list"
)

// PendingTobacco holds the partially entered tobacco during the add flow.
// TobaccoID is set only in the rename flow and points at the entry being
// edited.
type PendingTobacco struct {
	TobaccoID uint   `json:"tobacco_id,omitempty"`
	Name      string `json:"name"`
	Brand     string `json:"brand"`
}

// StateManager tracks per-user conversation state: the active input flow,
// partially entered data, and the last mix request (used by the retry
// button). Implementations must be safe for concurrent use.
type StateManager interface {
	SetUserState(userID int64, state string)
	GetUserState(userID int64) string
	SetPendingTobacco(userID int64, pending PendingTobacco)
	GetPendingTobacco(userID int64) (PendingTobacco, bool)
	SetLastMixRequest(userID int64, req services.MixRequest)
	GetLastMixRequest(userID int64) (services.MixRequest, bool)
	// ClearFlow resets the input state and pending data but keeps the last
	// mix request so retry still works after leaving a flow.
	ClearFlow(userID int64)
}

// Manager is the in-memory StateManager.
type Manager struct {
	userStates      map[int64]string
	pendingTobaccos map[int64]PendingTobacco
	lastMixRequests map[int64]services.MixRequest
	mu              sync.RWMutex
}

// NewManager creates a new in-memory state manager
func NewManager() *Manager {
	return &Manager{
		userStates:      make(map[int64]string),
		pendingTobaccos: make(map[int64]PendingTobacco),
		lastMixRequests: make(map[int64]services.MixRequest),
	}
}

func (m *Manager) SetUserState(userID int64, state string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userStates[userID] = state
}

func (m *Manager) GetUserState(userID int64) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, exists := m.userStates[userID]
	if !exists {
		return None
	}
	return state
}

func (m *Manager) SetPendingTobacco(userID int64, pending PendingTobacco) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pendingTobaccos[userID] = pending
}

func (m *Manager) GetPendingTobacco(userID int64) (PendingTobacco, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	pending, exists := m.pendingTobaccos[userID]
	return pending, exists
}

func (m *Manager) SetLastMixRequest(userID int64, req services.MixRequest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastMixRequests[userID] = req
}

func (m *Manager) GetLastMixRequest(userID int64) (services.MixRequest, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	req, exists := m.lastMixRequests[userID]
	return req, exists
}

func (m *Manager) ClearFlow(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.userStates, userID)
	delete(m.pendingTobaccos, userID)
}
