// Package app wires configuration into the services shared by the binaries.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"top-movers-server/internal/config"
	"top-movers-server/internal/market"
	"top-movers-server/internal/tools"
)

const userAgent = "top-movers-server/0.1"

func SetupLogging(cfg *config.Config) {
	hlog.SetLevel(cfg.Log.HlogLevel())
}

// NewRegistry builds the tool registry. A missing API key is only logged:
// each invocation reports it as a configuration error instead.
func NewRegistry(ctx context.Context, cfg *config.Config) (*tools.Registry, error) {
	av := cfg.AlphaVantage
	client := market.NewAlphaVantageClient(av.APIKey,
		market.WithBaseURL(av.BaseURL),
		market.WithTimeout(time.Duration(av.TimeoutMs)*time.Millisecond),
		market.WithHeader(http.Header{"User-Agent": []string{userAgent}}),
	)
	if !client.HasAPIKey() {
		hlog.Warnf("ALPHA_VANTAGE_API_KEY not set; topMovers calls will fail until it is")
	}
	return tools.NewRegistry(ctx, tools.NewTopMoversTool(market.NewService(client)))
}
