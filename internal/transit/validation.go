package transit

import (
	"errors"
	"fmt"

	"SNCF_Proxy/internal/models"

	"github.com/go-playground/validator/v10"
)

// validate is safe for concurrent use and caches parsed tags
var validate = validator.New()

// paramError is a rejected query parameter. It matches models.ErrInvalidInput.
type paramError struct {
	message string
}

func (e *paramError) Error() string {
	return e.message
}

func (e *paramError) Unwrap() error {
	return models.ErrInvalidInput
}

// checkParam runs tag against value and turns the first failure into a
// message the caller can show as-is.
func checkParam(name, value, tag string) error {
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return &paramError{message: fmt.Sprintf("parameter '%s': %v", name, err)}
	}

	switch validationErrs[0].Tag() {
	case "required":
		return &paramError{message: fmt.Sprintf("parameter '%s' is required", name)}
	case "alphanum":
		return &paramError{message: fmt.Sprintf("parameter '%s' must contain only letters and digits", name)}
	case "ne":
		return &paramError{message: fmt.Sprintf("parameter '%s' is not a valid identifier", name)}
	default:
		return &paramError{message: fmt.Sprintf("parameter '%s' failed '%s' validation", name, validationErrs[0].Tag())}
	}
}

// validateTrainNumber accepts a non-empty ASCII alphanumeric train number
func validateTrainNumber(numero string) error {
	return checkParam("numero", numero, "required,alphanum")
}

// validateStationID rejects dot segments, which would move the board path
// once the upstream URL is joined and cleaned.
func validateStationID(stationID string) error {
	return checkParam("station_id", stationID, "required,ne=.,ne=..")
}

// resolveBoardType maps anything other than "departures" to arrivals; an
// empty value means departures.
func resolveBoardType(boardType string) models.BoardType {
	if boardType == "" || boardType == string(models.BoardDepartures) {
		return models.BoardDepartures
	}
	return models.BoardArrivals
}
