package cache

import (
	"context"
	"encoding/json"
)

// Service defines the interface for the train payload cache
// External packages should use this interface, not the concrete implementations
type Service interface {
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Put(ctx context.Context, key string, payload json.RawMessage) error
	Size() int
}
