package tools

import (
	"errors"

	"top-movers-server/internal/market"
)

var (
	ErrUnknownTool      = errors.New("unknown tool")
	ErrInvalidArguments = errors.New("invalid tool arguments")
)

type ErrorKind string

const (
	ErrorConfig           ErrorKind = "config"
	ErrorUpstream         ErrorKind = "upstream"
	ErrorTransport        ErrorKind = "transport"
	ErrorUnknownTool      ErrorKind = "unknown_tool"
	ErrorInvalidArguments ErrorKind = "invalid_arguments"
)

// Classify buckets a tool error. Anything not recognised is a transport
// failure: it came from the network or from decoding the provider's reply.
func Classify(err error) ErrorKind {
	var upstream *market.UpstreamError
	switch {
	case errors.Is(err, market.ErrMissingAPIKey):
		return ErrorConfig
	case errors.As(err, &upstream):
		return ErrorUpstream
	case errors.Is(err, ErrUnknownTool):
		return ErrorUnknownTool
	case errors.Is(err, ErrInvalidArguments):
		return ErrorInvalidArguments
	default:
		return ErrorTransport
	}
}
