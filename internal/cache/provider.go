package cache

// Package cache provides caching for service option lists and processed
// payment callbacks.

import (
	"context"
	"fmt"
	"time"
)

// Provider defines the interface for the shared cache.
type Provider interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type Config struct {
	Provider              string
	RedisConnectionString string
}

func NewProvider(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "memory", "":
		return NewMemoryProvider()
	case "redis":
		return NewRedisProvider(cfg.RedisConnectionString)
	default:
		return nil, fmt.Errorf("unsupported cache provider: %s", cfg.Provider)
	}
}

// ServiceOptionsKey caches the active option list of a pro service.
func ServiceOptionsKey(serviceID string) string {
	return fmt.Sprintf("service_options:%s", serviceID)
}

// PaymentCallbackKey marks a payment-success callback as processed.
func PaymentCallbackKey(orderID string) string {
	return fmt.Sprintf("payment_callback:%s", orderID)
}
