package sheets

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

// Sentinel errors for the upstream spreadsheet service.
var (
	// ErrUnauthorized indicates a missing or invalid API key.
	ErrUnauthorized = errors.New("sheets: unauthorized (invalid API key)")

	// ErrForbidden indicates the spreadsheet is not readable with this key.
	ErrForbidden = errors.New("sheets: forbidden (spreadsheet not shared)")

	// ErrNotFound indicates the spreadsheet or range does not exist.
	ErrNotFound = errors.New("sheets: spreadsheet or range not found")

	// ErrRateLimited indicates the Sheets API quota was exceeded.
	ErrRateLimited = errors.New("sheets: rate limit exceeded")
)

// mapAPIError translates googleapi status codes into sentinel errors so
// callers can branch without importing the Google client.
func mapAPIError(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("sheets: fetch values: %w", err)
	}
	switch apiErr.Code {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, apiErr.Message)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, apiErr.Message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, apiErr.Message)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, apiErr.Message)
	default:
		return fmt.Errorf("sheets: fetch values: %w", err)
	}
}
