package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	healthSweepInterval = 60 * time.Second
	healthSweepTimeout  = 5 * time.Second
)

// HealthStatus is a point-in-time snapshot of the backing services: MongoDB
// and the named Redis clients (cache, auth, otp, session).
type HealthStatus struct {
	Mongo     bool            `json:"mongo"`
	Redis     map[string]bool `json:"redis"`
	CheckedAt time.Time       `json:"checked_at"`
}

// Healthy reports whether every checked dependency responded on the last sweep.
func (h HealthStatus) Healthy() bool {
	if !h.Mongo {
		return false
	}
	for _, up := range h.Redis {
		if !up {
			return false
		}
	}
	return true
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// probeHealth pings every dependency once. A nil client counts as down.
func probeHealth(ctx context.Context, redisClients map[string]*redis.Client, mongoClient *mongo.Client) HealthStatus {
	redisHealth := make(map[string]bool, len(redisClients))
	for name, client := range redisClients {
		redisHealth[name] = client != nil && client.Ping(ctx).Err() == nil
	}
	return HealthStatus{
		Mongo:     mongoClient != nil && mongoClient.Ping(ctx, nil) == nil,
		Redis:     redisHealth,
		CheckedAt: time.Now(),
	}
}

// StartHealthMonitor sweeps the named dependencies immediately and then on an
// interval, keeping the in-memory snapshot current for the health endpoint.
func StartHealthMonitor(redisClients map[string]*redis.Client, mongoClient *mongo.Client) {
	sweep := func() {
		ctx, cancel := context.WithTimeout(context.Background(), healthSweepTimeout)
		defer cancel()

		status := probeHealth(ctx, redisClients, mongoClient)
		healthMu.Lock()
		currentHealth = status
		healthMu.Unlock()
	}

	sweep()
	go func() {
		ticker := time.NewTicker(healthSweepInterval)
		defer ticker.Stop()

		for range ticker.C {
			sweep()
		}
	}()
}
