package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
	"github.com/tidwall/gjson"

	"top-movers-server/internal/market"
)

const TopMoversName = "topMovers"

const topMoversDesc = "Fetches the top market movers using Alpha Vantage's TOP_GAINERS_LOSERS endpoint."

const limitDesc = "Maximum number of rows to return (between 1 and 20)."

type MoversFetcher interface {
	TopMovers(ctx context.Context, limit *float64) (market.TopMovers, error)
}

// TopMoversTool adapts a MoversFetcher to eino's InvokableTool.
type TopMoversTool struct {
	fetcher MoversFetcher
}

func NewTopMoversTool(fetcher MoversFetcher) *TopMoversTool {
	return &TopMoversTool{fetcher: fetcher}
}

func (t *TopMoversTool) Info(_ context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name: TopMoversName,
		Desc: topMoversDesc,
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"limit": {
				Type:     schema.Number,
				Desc:     limitDesc,
				Required: false,
			},
		}),
	}, nil
}

// InputSchema is the JSON schema advertised to tool hosts.
func (t *TopMoversTool) InputSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"limit": map[string]any{
				"type":        "number",
				"description": limitDesc,
				"minimum":     market.MinLimit,
				"maximum":     market.MaxLimit,
				"default":     market.DefaultLimit,
			},
		},
	}
}

// InvokableRun returns the TopMovers result as JSON. Arguments that are not a
// JSON object fail with ErrInvalidArguments; a bad limit inside a valid
// object is coerced, not rejected.
func (t *TopMoversTool) InvokableRun(ctx context.Context, argumentsInJSON string, _ ...tool.Option) (string, error) {
	args := strings.TrimSpace(argumentsInJSON)
	if args == "" || args == "null" {
		args = "{}"
	}
	if !gjson.Valid(args) || !gjson.Parse(args).IsObject() {
		return "", fmt.Errorf("%w: expected a JSON object", ErrInvalidArguments)
	}

	res, err := t.fetcher.TopMovers(ctx, market.LimitFromArgs(args))
	if err != nil {
		return "", err
	}
	out, err := json.Marshal(res)
	if err != nil {
		return "", fmt.Errorf("marshal top movers: %w", err)
	}
	return string(out), nil
}
