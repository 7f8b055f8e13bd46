package mocks

import (
	"context"
	"net/url"
	"time"

	"SNCF_Proxy/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockUpstream is a mock implementation of upstream.Service
type MockUpstream struct {
	mock.Mock
}

// Call mocks the Call method of upstream.Service
func (m *MockUpstream) Call(ctx context.Context, endpointPath string, params url.Values, timeout time.Duration) models.UpstreamResult {
	args := m.Called(ctx, endpointPath, params, timeout)
	return args.Get(0).(models.UpstreamResult)
}
