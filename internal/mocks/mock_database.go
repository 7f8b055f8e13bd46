package mocks

import (
	"context"

	"SNCF_Proxy/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockDatabaseConnection is a mock implementation of logger.DatabaseConnection
type MockDatabaseConnection struct {
	mock.Mock
}

// InsertLog mocks the InsertLog method of logger.DatabaseConnection
func (m *MockDatabaseConnection) InsertLog(ctx context.Context, entry *models.LogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// Close mocks the Close method of logger.DatabaseConnection
func (m *MockDatabaseConnection) Close() error {
	args := m.Called()
	return args.Error(0)
}

// Ping mocks the Ping method of logger.DatabaseConnection
func (m *MockDatabaseConnection) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
