package market

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is a configuration error: no credential, no request.
var ErrMissingAPIKey = errors.New("missing Alpha Vantage API key. Set ALPHA_VANTAGE_API_KEY in your environment")

// UpstreamError carries the provider's own message or note verbatim.
type UpstreamError struct {
	Message string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

// StatusError reports a non-2xx response the provider did not explain.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("alphavantage: unexpected status code %d", e.StatusCode)
}
