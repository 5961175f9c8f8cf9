package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"medlease/models"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "workflow:"

// sessionTTL bounds how long an idle session survives. Every save refreshes
// it, so the session lives for the duration of active operator work and is
// lost afterwards, matching the one-browser-session lifecycle.
const sessionTTL = 30 * time.Minute

// RedisSessionStore implements SessionStore on Redis.
type RedisSessionStore struct {
	Client *redis.Client
}

// NewRedisSessionStore creates a SessionStore backed by the given Redis client.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{Client: client}
}

func (s *RedisSessionStore) Get(sessionID string) (*models.WorkflowSession, error) {
	ctx := context.Background()
	data, err := s.Client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to fetch workflow session: %w", err)
	}
	var session models.WorkflowSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse workflow session: %w", err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Save(session *models.WorkflowSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal workflow session: %w", err)
	}
	ctx := context.Background()
	if err := s.Client.Set(ctx, sessionKeyPrefix+session.SessionID, data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to store workflow session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Delete(sessionID string) error {
	ctx := context.Background()
	if err := s.Client.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete workflow session: %w", err)
	}
	return nil
}
