package verification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"medlease/models"

	"github.com/go-redis/redis/v8"
)

const otpKeyPrefix = "otp:"

// RedisCodeStore implements CodeStore on Redis. Entries expire with the code.
type RedisCodeStore struct {
	Client *redis.Client
}

// NewRedisCodeStore creates a CodeStore backed by the given Redis client.
func NewRedisCodeStore(client *redis.Client) *RedisCodeStore {
	return &RedisCodeStore{Client: client}
}

func (s *RedisCodeStore) Put(key string, tx *models.OTPTransaction, ttl time.Duration) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal OTP transaction: %w", err)
	}
	ctx := context.Background()
	if err := s.Client.Set(ctx, otpKeyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache OTP: %w", err)
	}
	return nil
}

func (s *RedisCodeStore) Get(key string) (*models.OTPTransaction, error) {
	ctx := context.Background()
	data, err := s.Client.Get(ctx, otpKeyPrefix+key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to retrieve OTP: %w", err)
	}
	var tx models.OTPTransaction
	if err := json.Unmarshal([]byte(data), &tx); err != nil {
		return nil, fmt.Errorf("failed to parse OTP transaction: %w", err)
	}
	return &tx, nil
}

func (s *RedisCodeStore) Delete(key string) error {
	ctx := context.Background()
	return s.Client.Del(ctx, otpKeyPrefix+key).Err()
}
