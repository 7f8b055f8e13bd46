package transit

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"SNCF_Proxy/internal/cache"
	"SNCF_Proxy/internal/logger"
	"SNCF_Proxy/internal/models"
	"SNCF_Proxy/internal/upstream"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/singleflight"
)

const (
	trainEndpoint  = "vehicle_journeys"
	placesEndpoint = "places"
)

// Timeouts bounds each upstream call per endpoint
type Timeouts struct {
	Train  time.Duration
	Places time.Duration
	Board  time.Duration
}

// Service implements the ProxyService interface
type Service struct {
	upstream upstream.Service
	cache    cache.Service
	logger   logger.Service
	timeouts Timeouts

	// inflight collapses concurrent cache misses for the same train number
	inflight singleflight.Group
}

// NewService creates a new transit proxy service
func NewService(
	upstream upstream.Service,
	cache cache.Service,
	logger logger.Service,
	timeouts Timeouts,
) ProxyService {
	return newService(upstream, cache, logger, timeouts)
}

func newService(
	upstream upstream.Service,
	cache cache.Service,
	logger logger.Service,
	timeouts Timeouts,
) *Service {
	return &Service{
		upstream: upstream,
		cache:    cache,
		logger:   logger,
		timeouts: timeouts,
	}
}

// FetchTrain returns the vehicle journeys for a train number, served from
// the cache while the entry is fresh.
func (s *Service) FetchTrain(ctx context.Context, numero string) models.ProxyResponse {
	start := time.Now()

	if err := validateTrainNumber(numero); err != nil {
		s.logger.LogError(ctx, logger.OpTrainLookup, numero, "Rejected train number", err, models.LogSeverityLow, nil)
		return InvalidInput(err.Error())
	}

	if cached, err := s.cache.Get(ctx, numero); err == nil {
		s.logger.LogSuccess(ctx, logger.OpCacheHit, numero, "Served train from cache", map[string]interface{}{
			"payload_size": len(cached),
			"duration_ms":  time.Since(start).Milliseconds(),
		})
		return models.ProxyResponse{StatusCode: http.StatusOK, Body: cached}
	}

	s.logger.LogInfo(ctx, logger.OpCacheMiss, fmt.Sprintf("Cache miss for train: %s", numero), map[string]interface{}{
		"numero": numero,
	})

	value, _, shared := s.inflight.Do(numero, func() (interface{}, error) {
		result := s.callUpstream(ctx, trainEndpoint, url.Values{"headsign": {numero}}, s.timeouts.Train)
		if result.OK() {
			if err := s.cache.Put(ctx, numero, result.Payload); err != nil {
				s.logger.LogError(ctx, logger.OpCacheSet, numero, "Failed to cache train payload", err, models.LogSeverityLow, nil)
			}
		}
		return result, nil
	})
	result := value.(models.UpstreamResult)

	if !result.OK() {
		s.logFailure(ctx, logger.OpTrainLookup, numero, result, time.Since(start))
		return Translate(result, TrainPolicy)
	}

	s.logger.LogSuccess(ctx, logger.OpTrainLookup, numero, "Fetched train from upstream", map[string]interface{}{
		"journeys":    gjson.GetBytes(result.Payload, "vehicle_journeys.#").Int(),
		"shared":      shared,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return Translate(result, TrainPolicy)
}

// SearchPlaces looks up stations matching query. It never fails: any
// problem yields an empty place list.
func (s *Service) SearchPlaces(ctx context.Context, query string) models.ProxyResponse {
	start := time.Now()

	query = strings.TrimSpace(query)
	if query == "" {
		return models.ProxyResponse{StatusCode: http.StatusOK, Body: PlacesPolicy.EmptyBody}
	}

	params := url.Values{
		"q":      {query},
		"type[]": {"stop_area"},
	}
	result := s.callUpstream(ctx, placesEndpoint, params, s.timeouts.Places)

	if !result.OK() {
		s.logFailure(ctx, logger.OpPlaceSearch, query, result, time.Since(start))
		return Translate(result, PlacesPolicy)
	}

	s.logger.LogSuccess(ctx, logger.OpPlaceSearch, query, "Fetched places from upstream", map[string]interface{}{
		"places":      gjson.GetBytes(result.Payload, "places.#").Int(),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return Translate(result, PlacesPolicy)
}

// FetchBoard returns the departures or arrivals of a station. datetime is
// forwarded as from_datetime when set.
func (s *Service) FetchBoard(ctx context.Context, stationID, boardType, datetime string) models.ProxyResponse {
	start := time.Now()

	stationID = strings.TrimSpace(stationID)
	if err := validateStationID(stationID); err != nil {
		s.logger.LogError(ctx, logger.OpBoardLookup, "", "Rejected board request", err, models.LogSeverityLow, nil)
		return InvalidInput(err.Error())
	}

	board := resolveBoardType(boardType)
	endpoint := boardEndpoint(stationID, board)

	params := url.Values{}
	if datetime != "" {
		params.Set("from_datetime", datetime)
	}

	result := s.callUpstream(ctx, endpoint, params, s.timeouts.Board)

	if !result.OK() {
		s.logFailure(ctx, logger.OpBoardLookup, stationID, result, time.Since(start))
		return Translate(result, BoardPolicy)
	}

	s.logger.LogSuccess(ctx, logger.OpBoardLookup, stationID, "Fetched board from upstream", map[string]interface{}{
		"board":       string(board),
		"entries":     gjson.GetBytes(result.Payload, string(board)+".#").Int(),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return Translate(result, BoardPolicy)
}

// CacheEntries reports how many train payloads are held, fresh or stale
func (s *Service) CacheEntries() int {
	return s.cache.Size()
}

// callUpstream performs one upstream request and records its outcome
func (s *Service) callUpstream(ctx context.Context, endpoint string, params url.Values, timeout time.Duration) models.UpstreamResult {
	start := time.Now()
	result := s.upstream.Call(ctx, endpoint, params, timeout)

	s.logger.LogInfo(ctx, logger.OpUpstreamCall, fmt.Sprintf("Upstream call to %s", endpoint), map[string]interface{}{
		"endpoint":    endpoint,
		"result":      result.Kind.String(),
		"status_code": result.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return result
}

func boardEndpoint(stationID string, board models.BoardType) string {
	return "stop_areas/" + url.PathEscape(stationID) + "/" + string(board)
}

// logFailure records a failed upstream result. Transport problems and 5xx
// answers are more severe than client errors.
func (s *Service) logFailure(ctx context.Context, operation, target string, result models.UpstreamResult, elapsed time.Duration) {
	severity := models.LogSeverityMedium
	if result.Kind == models.ResultUpstreamError && result.StatusCode < 500 {
		severity = models.LogSeverityLow
	}

	s.logger.LogError(ctx, operation, target, "Upstream call failed", result.AsError(), severity, map[string]interface{}{
		"result":      result.Kind.String(),
		"status_code": result.StatusCode,
		"duration_ms": elapsed.Milliseconds(),
	})
}
