package market

import (
	"context"
	"fmt"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// Service shapes provider data into TopMovers. It keeps no state between
// calls, so concurrent invocations never interact.
type Service struct {
	provider MoversProvider
}

func NewService(provider MoversProvider) *Service {
	return &Service{provider: provider}
}

func (s *Service) TopMovers(ctx context.Context, limit *float64) (TopMovers, error) {
	if s.provider == nil {
		return TopMovers{}, fmt.Errorf("market provider not configured")
	}
	n := NormalizeLimit(limit)

	payload, err := s.provider.TopGainersLosers(ctx)
	if err != nil {
		hlog.CtxWarnf(ctx, "market top movers error: %v", err)
		return TopMovers{}, err
	}

	return TopMovers{
		Limit:              n,
		TopGainers:         head(payload.TopGainers, n),
		TopLosers:          head(payload.TopLosers, n),
		MostActivelyTraded: head(payload.MostActivelyTraded, n),
	}, nil
}

// head returns a copy of the first n quotes in provider order. A missing
// list becomes an empty, non-nil slice.
func head(quotes []Quote, n int) []Quote {
	if len(quotes) > n {
		quotes = quotes[:n]
	}
	out := make([]Quote, len(quotes))
	copy(out, quotes)
	return out
}
