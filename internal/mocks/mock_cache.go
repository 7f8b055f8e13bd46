package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"
)

// MockCache is a mock implementation of cache.Service
type MockCache struct {
	mock.Mock
}

// Get mocks the Get method of cache.Service
func (m *MockCache) Get(ctx context.Context, key string) (json.RawMessage, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

// Put mocks the Put method of cache.Service
func (m *MockCache) Put(ctx context.Context, key string, payload json.RawMessage) error {
	args := m.Called(ctx, key, payload)
	return args.Error(0)
}

// Size mocks the Size method of cache.Service
func (m *MockCache) Size() int {
	args := m.Called()
	return args.Int(0)
}
