package http

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpMocks "SNCF_Proxy/internal/http/mocks"
	"SNCF_Proxy/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestServer_NewServerConfiguration(t *testing.T) {
	mockLogger := &mocks.MockLogger{}
	handler := NewHandler(&httpMocks.MockProxyService{}, mockLogger)

	server := NewServer("localhost:3000", handler, mockLogger, 15*time.Second, 30*time.Second)

	assert.Equal(t, "localhost:3000", server.server.Addr)
	assert.Equal(t, 15*time.Second, server.server.ReadTimeout)
	assert.Equal(t, 30*time.Second, server.server.WriteTimeout)
	assert.NotNil(t, server.server.Handler)
	assert.Equal(t, handler, server.handler)
	assert.Equal(t, mockLogger, server.logger)
}

func TestServer_StartWithInvalidAddr(t *testing.T) {
	// Arrange
	mockLogger := &mocks.MockLogger{}
	handler := NewHandler(&httpMocks.MockProxyService{}, mockLogger)

	server := NewServer("invalid-address:99999", handler, mockLogger, 10*time.Second, 10*time.Second)

	mockLogger.On("LogInfo", mock.Anything, "server_start", "Starting HTTP server", mock.MatchedBy(func(metadata map[string]interface{}) bool {
		return metadata["addr"] == "invalid-address:99999"
	})).Return()

	// Act
	err := server.Start()

	// Assert
	assert.Error(t, err)
	mockLogger.AssertExpectations(t)
}

func TestServer_StartWithPortInUse(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	mockLogger := &mocks.MockLogger{}
	handler := NewHandler(&httpMocks.MockProxyService{}, mockLogger)
	server := NewServer(listener.Addr().String(), handler, mockLogger, 10*time.Second, 10*time.Second)

	mockLogger.On("LogInfo", mock.Anything, "server_start", "Starting HTTP server", mock.Anything).Return()

	err = server.Start()

	assert.Error(t, err)
	mockLogger.AssertExpectations(t)
}

func TestServer_StartAndShutdown(t *testing.T) {
	// Arrange
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	mockLogger := &mocks.MockLogger{}
	handler := NewHandler(&httpMocks.MockProxyService{}, mockLogger)
	server := NewServer(addr, handler, mockLogger, 10*time.Second, 10*time.Second)

	mockLogger.On("LogInfo", mock.Anything, "server_start", "Starting HTTP server", mock.Anything).Return()
	mockLogger.On("LogInfo", mock.Anything, "server_shutdown", "Shutting down HTTP server", mock.Anything).Return()

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	// Wait for the listener to come up
	require.Eventually(t, func() bool {
		conn, err := net.Dial("tcp", addr)
		if err != nil {
			return false
		}
		conn.Close()
		return true
	}, 2*time.Second, 10*time.Millisecond)

	// Act
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, server.Shutdown(ctx))

	// Assert
	assert.ErrorIs(t, <-errCh, http.ErrServerClosed)
	mockLogger.AssertExpectations(t)
}

func TestServer_ShutdownWithoutStart(t *testing.T) {
	mockLogger := &mocks.MockLogger{}
	handler := NewHandler(&httpMocks.MockProxyService{}, mockLogger)
	server := NewServer("localhost:0", handler, mockLogger, 10*time.Second, 10*time.Second)

	mockLogger.On("LogInfo", mock.Anything, "server_shutdown", "Shutting down HTTP server", mock.Anything).Return()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	assert.NoError(t, server.Shutdown(ctx))
	mockLogger.AssertExpectations(t)
}

func TestRouterRegistration(t *testing.T) {
	mockProxy := &httpMocks.MockProxyService{}
	mockLogger := &mocks.MockLogger{}
	handler := NewHandler(mockProxy, mockLogger)
	server := NewServer("localhost:0", handler, mockLogger, 10*time.Second, 10*time.Second)

	mockLogger.On("LogInfo", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return().Maybe()
	mockProxy.On("FetchTrain", mock.Anything, mock.Anything).Return(okResponse()).Maybe()
	mockProxy.On("SearchPlaces", mock.Anything, mock.Anything).Return(okResponse()).Maybe()
	mockProxy.On("FetchBoard", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(okResponse()).Maybe()
	mockProxy.On("CacheEntries").Return(0).Maybe()

	testCases := []struct {
		method   string
		path     string
		expected int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/api/train", http.StatusOK},
		{http.MethodGet, "/api/places", http.StatusOK},
		{http.MethodGet, "/api/board", http.StatusOK},
		{http.MethodOptions, "/api/train", http.StatusOK},
		{http.MethodPost, "/api/train", http.StatusMethodNotAllowed},
		{http.MethodPut, "/health", http.StatusMethodNotAllowed},
		{http.MethodGet, "/nonexistent", http.StatusNotFound},
		{http.MethodGet, "/api/train/6607", http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.method+"_"+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			server.server.Handler.ServeHTTP(w, req)

			assert.Equal(t, tc.expected, w.Code)
		})
	}
}
