package http

import (
	"context"
	"net/http"
	"time"

	"SNCF_Proxy/internal/logger"
	"SNCF_Proxy/internal/models"
	"SNCF_Proxy/internal/transit"

	"github.com/goccy/go-json"
)

const (
	serviceVersion = "1.0.0"

	healthPingTimeout = 2 * time.Second
)

// Handler contains the HTTP handlers for the API
type Handler struct {
	proxyService transit.ProxyService
	logger       logger.Service
}

// NewHandler creates a new HTTP handler
func NewHandler(
	proxyService transit.ProxyService,
	logger logger.Service,
) *Handler {
	return &Handler{
		proxyService: proxyService,
		logger:       logger,
	}
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
	Version      string    `json:"version"`
	CacheEntries int       `json:"cache_entries"`
	Database     string    `json:"database,omitempty"`
}

// ServiceInfoResponse describes the service on GET /
type ServiceInfoResponse struct {
	Message   string   `json:"message"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}

// Train handles GET /api/train?numero=
func (h *Handler) Train(w http.ResponseWriter, r *http.Request) {
	resp := h.proxyService.FetchTrain(r.Context(), r.URL.Query().Get("numero"))
	h.writeProxyResponse(w, r, logger.OpTrainLookup, resp)
}

// Places handles GET /api/places?q=
func (h *Handler) Places(w http.ResponseWriter, r *http.Request) {
	resp := h.proxyService.SearchPlaces(r.Context(), r.URL.Query().Get("q"))
	h.writeProxyResponse(w, r, logger.OpPlaceSearch, resp)
}

// Board handles GET /api/board?station_id=&type=&datetime=
func (h *Handler) Board(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp := h.proxyService.FetchBoard(r.Context(), query.Get("station_id"), query.Get("type"), query.Get("datetime"))
	h.writeProxyResponse(w, r, logger.OpBoardLookup, resp)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	response := HealthResponse{
		Status:       "healthy",
		Timestamp:    time.Now().UTC(),
		Version:      serviceVersion,
		CacheEntries: h.proxyService.CacheEntries(),
	}

	// Only set when logs go to Postgres
	if pinger, ok := h.logger.(logger.Pinger); ok {
		pingCtx, cancel := context.WithTimeout(ctx, healthPingTimeout)
		err := pinger.Ping(pingCtx)
		cancel()

		if err != nil {
			response.Status = "degraded"
			response.Database = "unreachable"
			h.logger.LogError(ctx, logger.OpHealthCheck, "", "Log database unreachable", err, models.LogSeverityMedium, nil)
		} else {
			response.Database = "ok"
		}
	}

	if err := h.writeJSONResponse(w, r, http.StatusOK, response); err != nil {
		h.logger.LogError(ctx, logger.OpHealthCheck, "", "Failed to encode health response", err, models.LogSeverityLow, nil)
		return
	}

	h.logger.LogInfo(ctx, logger.OpHealthCheck, "Health check performed successfully", map[string]interface{}{
		"cache_entries": response.CacheEntries,
	})
}

// ServiceInfo handles GET /
func (h *Handler) ServiceInfo(w http.ResponseWriter, r *http.Request) {
	info := ServiceInfoResponse{
		Message:   "SNCF Proxy API",
		Version:   serviceVersion,
		Endpoints: []string{"/health", "/api/train", "/api/places", "/api/board"},
	}

	if err := h.writeJSONResponse(w, r, http.StatusOK, info); err != nil {
		h.logger.LogError(r.Context(), "response_encoding", "", "Failed to encode service info", err, models.LogSeverityLow, nil)
	}
}

// NotFound answers requests that match no route
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.writeErrorResponse(w, r, http.StatusNotFound, "not found", "no route for "+r.URL.Path)
}

// MethodNotAllowed answers requests whose path matches but method does not
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.writeErrorResponse(w, r, http.StatusMethodNotAllowed, "method not allowed", r.Method+" is not supported on "+r.URL.Path)
}

// writeProxyResponse sends the body produced by the proxy service as-is
func (h *Handler) writeProxyResponse(w http.ResponseWriter, r *http.Request, operation string, resp models.ProxyResponse) {
	logEvent := logger.GetLogEvent(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", logEvent.ProcessID)
	w.WriteHeader(resp.StatusCode)

	if _, err := w.Write(resp.Body); err != nil {
		h.logger.LogError(r.Context(), operation, "", "Failed to write response", err, models.LogSeverityLow, map[string]interface{}{
			"status_code": resp.StatusCode,
		})
	}
}

// writeJSONResponse writes a JSON response with standard headers including X-Request-ID
func (h *Handler) writeJSONResponse(w http.ResponseWriter, r *http.Request, statusCode int, data interface{}) error {
	logEvent := logger.GetLogEvent(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", logEvent.ProcessID)
	w.WriteHeader(statusCode)

	return json.NewEncoder(w).Encode(data)
}

// writeErrorResponse writes a standardized error response
func (h *Handler) writeErrorResponse(w http.ResponseWriter, r *http.Request, statusCode int, error, message string) {
	response := models.ErrorResponse{
		Error:   error,
		Message: message,
	}

	if err := h.writeJSONResponse(w, r, statusCode, response); err != nil {
		h.logger.LogError(r.Context(), "response_encoding", "", "Failed to encode error response", err, models.LogSeverityLow, nil)
	}
}
