package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"SNCF_Proxy/internal/models"

	"github.com/goccy/go-json"
)

const (
	userAgent = "SNCF-Proxy/1.0"

	// maxBodySize caps how much of an upstream response is read
	maxBodySize = 10 * 1024 * 1024
)

// HTTPClient implements Service against the SNCF Navitia API
type HTTPClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewHTTPClient creates a client that authenticates with apiKey against baseURL
func NewHTTPClient(baseURL, apiKey string) Service {
	return newHTTPClient(baseURL, apiKey, http.DefaultTransport)
}

// newHTTPClient creates the concrete implementation
func newHTTPClient(baseURL, apiKey string, transport http.RoundTripper) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Allow up to 5 redirects
				if len(via) >= 5 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// Call performs a GET against endpointPath. Every failure is folded into the
// returned result; no error escapes to the caller.
func (c *HTTPClient) Call(ctx context.Context, endpointPath string, params url.Values, timeout time.Duration) models.UpstreamResult {
	fullURL, err := url.JoinPath(c.baseURL, endpointPath)
	if err != nil {
		return models.TransportFailure(endpointPath, fmt.Errorf("failed to build upstream URL: %w", err))
	}
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	// The inbound request going away does not abort a started call
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodGet, fullURL, nil)
	if err != nil {
		return models.TransportFailure(endpointPath, fmt.Errorf("failed to create request: %w", err))
	}

	req.SetBasicAuth(c.apiKey, "")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return models.TransportFailure(endpointPath, fmt.Errorf("%w after %s: %v", models.ErrUpstreamTimeout, timeout, err))
		}
		return models.TransportFailure(endpointPath, fmt.Errorf("failed to call upstream API: %w", err))
	}
	defer resp.Body.Close()

	body, err := c.readBodyWithLimit(resp.Body, maxBodySize)
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return models.TransportFailure(endpointPath, fmt.Errorf("%w while reading body: %v", models.ErrUpstreamTimeout, err))
		}
		return models.TransportFailure(endpointPath, fmt.Errorf("failed to read response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.UpstreamFailure(endpointPath, resp.StatusCode, string(body))
	}

	if !json.Valid(body) {
		return models.TransportFailure(endpointPath, fmt.Errorf("%w: HTTP %d with %d bytes", models.ErrMalformedPayload, resp.StatusCode, len(body)))
	}

	return models.Success(endpointPath, resp.StatusCode, body)
}

// readBodyWithLimit reads the response body with a size limit
func (c *HTTPClient) readBodyWithLimit(body io.Reader, maxSize int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(body, maxSize+1))
	if err != nil {
		return nil, err
	}

	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%w (exceeds %d bytes)", models.ErrPayloadTooLarge, maxSize)
	}

	return data, nil
}
