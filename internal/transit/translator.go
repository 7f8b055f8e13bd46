package transit

import (
	"net/http"

	"SNCF_Proxy/internal/models"

	"github.com/goccy/go-json"
)

// Policy controls how one endpoint turns upstream failures into responses
type Policy struct {
	// ErrorLabel is the "error" field of failure bodies
	ErrorLabel string

	// SurfaceErrors false means every failure becomes 200 with EmptyBody
	SurfaceErrors bool
	EmptyBody     []byte

	// TransportStatus and TransportLabel describe an unreachable upstream
	TransportStatus int
	TransportLabel  string

	// EchoUpstreamBody copies the upstream error body into the response
	EchoUpstreamBody bool
}

var (
	TrainPolicy = Policy{
		ErrorLabel:       "SNCF API error",
		SurfaceErrors:    true,
		TransportStatus:  http.StatusBadGateway,
		TransportLabel:   "connection error to SNCF API",
		EchoUpstreamBody: true,
	}

	PlacesPolicy = Policy{
		SurfaceErrors: false,
		EmptyBody:     []byte(`{"places":[]}`),
	}

	BoardPolicy = Policy{
		ErrorLabel:      "board lookup failed",
		SurfaceErrors:   true,
		TransportStatus: http.StatusInternalServerError,
		TransportLabel:  "board lookup failed",
	}
)

// Translate maps an upstream outcome to the response sent to the browser.
// Successful payloads are passed through byte for byte.
func Translate(result models.UpstreamResult, policy Policy) models.ProxyResponse {
	if result.OK() {
		return models.ProxyResponse{StatusCode: http.StatusOK, Body: result.Payload}
	}

	if !policy.SurfaceErrors {
		return models.ProxyResponse{StatusCode: http.StatusOK, Body: policy.EmptyBody}
	}

	switch result.Kind {
	case models.ResultUpstreamError:
		body := models.ErrorResponse{
			Error:      policy.ErrorLabel,
			StatusCode: result.StatusCode,
		}
		if policy.EchoUpstreamBody {
			body.Body = result.Body
		}
		return errorResponse(result.StatusCode, body)

	default:
		body := models.ErrorResponse{Error: policy.TransportLabel}
		if result.Err != nil {
			body.Message = result.Err.Error()
		}
		return errorResponse(policy.TransportStatus, body)
	}
}

// InvalidInput builds the 400 response for a rejected parameter
func InvalidInput(message string) models.ProxyResponse {
	return errorResponse(http.StatusBadRequest, models.ErrorResponse{
		Error:   "invalid parameter",
		Message: message,
	})
}

func errorResponse(statusCode int, body models.ErrorResponse) models.ProxyResponse {
	encoded, err := json.Marshal(body)
	if err != nil {
		encoded = []byte(`{"error":"internal server error"}`)
	}
	return models.ProxyResponse{StatusCode: statusCode, Body: encoded}
}
