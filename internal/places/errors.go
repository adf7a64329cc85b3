package places

import (
	"errors"
	"fmt"
)

// エラー定義
var (
	ErrAPIKeyRequired  = errors.New("Google Places API key not configured")
	ErrInvalidResponse = errors.New("invalid response from Places API")
)

// APIError はPlaces APIからのHTTPエラー
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("places api error (status %d): %s", e.StatusCode, e.Message)
}
