package state

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/antonvlasov/hookah-mix-helper/internal/services"
)

// TTL for all conversation keys; inactive sessions clean themselves up.
const sessionTTL = 24 * time.Hour

// RedisManager is a StateManager backed by Redis, for running several bot
// instances against one conversation state.
type RedisManager struct {
	client *redis.Client
}

// NewRedisManager creates a Redis-based state manager and verifies the
// connection.
func NewRedisManager(redisHost, redisPort string) (*RedisManager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", redisHost, redisPort),
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisManager{client: client}, nil
}

func stateKey(userID int64) string {
	return fmt.Sprintf("user:%d:state", userID)
}

func pendingKey(userID int64) string {
	return fmt.Sprintf("user:%d:pending_tobacco", userID)
}

func mixRequestKey(userID int64) string {
	return fmt.Sprintf("user:%d:last_mix_request", userID)
}

func (m *RedisManager) SetUserState(userID int64, state string) {
	m.client.Set(context.Background(), stateKey(userID), state, sessionTTL)
}

func (m *RedisManager) GetUserState(userID int64) string {
	result := m.client.Get(context.Background(), stateKey(userID))
	if result.Err() != nil {
		return None
	}
	return result.Val()
}

func (m *RedisManager) SetPendingTobacco(userID int64, pending PendingTobacco) {
	data, err := json.Marshal(pending)
	if err != nil {
		return
	}
	m.client.Set(context.Background(), pendingKey(userID), data, sessionTTL)
}

func (m *RedisManager) GetPendingTobacco(userID int64) (PendingTobacco, bool) {
	result := m.client.Get(context.Background(), pendingKey(userID))
	if result.Err() != nil {
		return PendingTobacco{}, false
	}
	var pending PendingTobacco
	if err := json.Unmarshal([]byte(result.Val()), &pending); err != nil {
		return PendingTobacco{}, false
	}
	return pending, true
}

func (m *RedisManager) SetLastMixRequest(userID int64, req services.MixRequest) {
	data, err := json.Marshal(req)
	if err != nil {
		return
	}
	m.client.Set(context.Background(), mixRequestKey(userID), data, sessionTTL)
}

func (m *RedisManager) GetLastMixRequest(userID int64) (services.MixRequest, bool) {
	result := m.client.Get(context.Background(), mixRequestKey(userID))
	if result.Err() != nil {
		return services.MixRequest{}, false
	}
	var req services.MixRequest
	if err := json.Unmarshal([]byte(result.Val()), &req); err != nil {
		return services.MixRequest{}, false
	}
	return req, true
}

func (m *RedisManager) ClearFlow(userID int64) {
	ctx := context.Background()
	m.client.Del(ctx, stateKey(userID), pendingKey(userID))
}

// Close closes the Redis connection
func (m *RedisManager) Close() error {
	return m.client.Close()
}
