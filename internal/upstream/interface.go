package upstream

import (
	"context"
	"net/url"
	"time"

	"SNCF_Proxy/internal/models"
)

// Service defines the interface for calling the transit API
// External packages should use this interface, not the concrete implementations
type Service interface {
	Call(ctx context.Context, endpointPath string, params url.Values, timeout time.Duration) models.UpstreamResult
}
