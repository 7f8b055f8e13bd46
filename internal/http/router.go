package http

import (
	"context"
	"net/http"
	"time"

	"SNCF_Proxy/internal/logger"

	"github.com/gorilla/mux"
)

// Server represents the HTTP server with all dependencies
type Server struct {
	handler *Handler
	logger  logger.Service
	server  *http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	addr string,
	handler *Handler,
	logger logger.Service,
	readTimeout, writeTimeout time.Duration,
) *Server {
	router := mux.NewRouter()

	srv := &Server{
		handler: handler,
		logger:  logger,
		server: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
	}

	// Order matters: logging -> cors -> recovery
	middlewares := []mux.MiddlewareFunc{
		loggingMiddleware(logger),
		corsMiddleware(),
		recoveryMiddleware(logger),
	}
	router.Use(middlewares...)

	// mux skips router middlewares when no route matches, so the fallback
	// handlers get the same chain explicitly
	router.NotFoundHandler = chain(http.HandlerFunc(handler.NotFound), middlewares...)
	router.MethodNotAllowedHandler = chain(http.HandlerFunc(handler.MethodNotAllowed), middlewares...)

	srv.registerRoutes(router)

	return srv
}

// registerRoutes sets up all API routes. OPTIONS is accepted so the cors
// middleware can answer preflight requests.
func (s *Server) registerRoutes(router *mux.Router) {
	router.HandleFunc("/health", s.handler.HealthCheck).Methods(http.MethodGet, http.MethodOptions)

	router.HandleFunc("/api/train", s.handler.Train).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/api/places", s.handler.Places).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/api/board", s.handler.Board).Methods(http.MethodGet, http.MethodOptions)

	router.HandleFunc("/", s.handler.ServiceInfo).Methods(http.MethodGet, http.MethodOptions)
}

// chain wraps h so that middlewares[0] runs first
func chain(h http.Handler, middlewares ...mux.MiddlewareFunc) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.LogInfo(context.Background(), logger.OpServerStart, "Starting HTTP server", map[string]interface{}{
		"addr": s.server.Addr,
	})

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.LogInfo(ctx, logger.OpServerShutdown, "Shutting down HTTP server", nil)
	return s.server.Shutdown(ctx)
}
