package ports

import (
	"context"
	"time"
)

// IdempotencyCache remembers which order a client idempotency key produced.
// Get returns "" and a nil error for an unknown key. SetNX stores value only
// when key is absent and reports whether it did.
type IdempotencyCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
	GenerateKey(operation, key string) string
}
