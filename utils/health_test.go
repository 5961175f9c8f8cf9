package utils

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
)

func TestHealthStatusHealthy(t *testing.T) {
	cases := []struct {
		name   string
		status HealthStatus
		want   bool
	}{
		{"all up", HealthStatus{Mongo: true, Redis: map[string]bool{"cache": true, "auth": true}}, true},
		{"mongo down", HealthStatus{Mongo: false, Redis: map[string]bool{"cache": true}}, false},
		{"one redis down", HealthStatus{Mongo: true, Redis: map[string]bool{"cache": true, "otp": false}}, false},
		{"no redis checked", HealthStatus{Mongo: true}, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.status.Healthy(), tc.name)
	}
}

func TestProbeHealthReportsUnreachableDependencies(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	clients := map[string]*redis.Client{
		"cache": redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond}),
		"auth":  nil,
	}
	status := probeHealth(ctx, clients, nil)

	assert.False(t, status.Mongo)
	assert.False(t, status.Redis["cache"])
	assert.False(t, status.Redis["auth"])
	assert.False(t, status.Healthy())
	assert.WithinDuration(t, time.Now(), status.CheckedAt, 5*time.Second)
}
