package render

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"top-movers-server/internal/market"
	"top-movers-server/internal/tools"
)

const (
	MsgSDKUnavailable     = "OpenAI Apps SDK is not available in this environment."
	MsgLoading            = "Loading latest market movers…"
	MsgUnexpectedResponse = "Received an unexpected response from the topMovers tool."
	MsgUnableToLoad       = "Unable to load market movers. Please try again."

	MissingVolume = "—"
)

var (
	Columns = []string{"Ticker", "Price", "Change", "% Change", "Volume"}

	ErrSDKUnavailable = errors.New("tool caller not available")
)

// Surface is where a Renderer draws. Implementations own their output; the
// renderer only issues these calls, in order.
type Surface interface {
	// Reset clears previously rendered results.
	Reset()
	AppendTable(title string, rows []market.Quote)
	// ShowError replaces the results with a single message.
	ShowError(message string)
	SetStatus(text string)
}

// Cells returns the table cells for q. Values are passed through untouched;
// only an absent volume is replaced.
func Cells(q market.Quote) []string {
	volume := MissingVolume
	if q.Volume != nil {
		volume = *q.Volume
	}
	return []string{q.Ticker, q.Price, q.ChangeAmount, q.ChangePercentage, volume}
}

type Renderer struct {
	caller ToolCaller
}

func New(caller ToolCaller) *Renderer {
	return &Renderer{caller: caller}
}

// Invoke runs one request/validate/render cycle against surface. Every
// failure ends up on the surface as a message; the returned error only tells
// the caller which one it was.
func (r *Renderer) Invoke(ctx context.Context, surface Surface, rawLimit string) error {
	if r == nil || r.caller == nil {
		surface.ShowError(MsgSDKUnavailable)
		surface.SetStatus("")
		return ErrSDKUnavailable
	}

	limit := ParseLimitField(rawLimit)
	surface.SetStatus(MsgLoading)
	surface.Reset()

	env, err := r.call(ctx, limit)
	if err != nil {
		hlog.CtxErrorf(ctx, "render tool call error: %v", err)
		surface.ShowError(MsgUnableToLoad)
		surface.SetStatus("")
		return err
	}

	payload, err := ParsePayload(env)
	if err != nil {
		hlog.CtxWarnf(ctx, "render payload error: %v", err)
		surface.ShowError(MsgUnexpectedResponse)
		surface.SetStatus("")
		return err
	}

	Draw(surface, payload)
	return nil
}

// Draw renders a validated payload.
func Draw(surface Surface, p Payload) {
	surface.Reset()
	surface.AppendTable("Top Gainers", p.TopGainers)
	surface.AppendTable("Top Losers", p.TopLosers)
	surface.AppendTable("Most Actively Traded", p.MostActivelyTraded)
	surface.SetStatus(fmt.Sprintf("Showing top %d results from Alpha Vantage.", p.Limit))
}

func (r *Renderer) call(ctx context.Context, limit int) (env *tools.Envelope, err error) {
	defer func() {
		if v := recover(); v != nil {
			env, err = nil, fmt.Errorf("tool caller panic: %v", v)
		}
	}()
	return r.caller.CallTool(ctx, tools.TopMoversName, map[string]any{"limit": limit})
}
