package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Sentinel errors for the failure classes the API reports. Wrap them with
// fmt.Errorf("...: %w", Err...) so handlers can map them to status codes.
var (
	ErrValidation      = errors.New("validation error")
	ErrUnauthenticated = errors.New("user authentication required")
	ErrAccessDenied    = errors.New("session not found or access denied")
	ErrPdfParse        = errors.New("pdf parse error")
	ErrUpstreamModel   = errors.New("upstream model error")
	ErrUpstreamTimeout = errors.New("upstream timeout")
	ErrAnalysisParse   = errors.New("analysis parse error")
	ErrEvaluationParse = errors.New("evaluation parse error")
)

// StatusCode maps an error to the HTTP status the API responds with.
// Unknown errors are treated as internal failures.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrAccessDenied):
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}
