package mocks

import (
	"context"

	"SNCF_Proxy/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockProxyService is a mock implementation of transit.ProxyService
type MockProxyService struct {
	mock.Mock
}

// FetchTrain mocks the FetchTrain method of transit.ProxyService
func (m *MockProxyService) FetchTrain(ctx context.Context, numero string) models.ProxyResponse {
	args := m.Called(ctx, numero)
	return args.Get(0).(models.ProxyResponse)
}

// SearchPlaces mocks the SearchPlaces method of transit.ProxyService
func (m *MockProxyService) SearchPlaces(ctx context.Context, query string) models.ProxyResponse {
	args := m.Called(ctx, query)
	return args.Get(0).(models.ProxyResponse)
}

// FetchBoard mocks the FetchBoard method of transit.ProxyService
func (m *MockProxyService) FetchBoard(ctx context.Context, stationID, boardType, datetime string) models.ProxyResponse {
	args := m.Called(ctx, stationID, boardType, datetime)
	return args.Get(0).(models.ProxyResponse)
}

// CacheEntries mocks the CacheEntries method of transit.ProxyService
func (m *MockProxyService) CacheEntries() int {
	args := m.Called()
	return args.Int(0)
}
