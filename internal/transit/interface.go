package transit

import (
	"context"

	"SNCF_Proxy/internal/models"
)

// ProxyService defines the proxied transit operations
// External packages should use this interface, not the concrete implementations
type ProxyService interface {
	FetchTrain(ctx context.Context, numero string) models.ProxyResponse
	SearchPlaces(ctx context.Context, query string) models.ProxyResponse
	FetchBoard(ctx context.Context, stationID, boardType, datetime string) models.ProxyResponse
	CacheEntries() int
}
