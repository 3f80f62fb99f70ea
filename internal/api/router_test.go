package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/stretchr/testify/require"

	"top-movers-server/internal/api"
	"top-movers-server/internal/market"
	"top-movers-server/internal/render"
	"top-movers-server/internal/tools"
)

const shell = `<!doctype html><html><body>
<form id="controls"><input id="limit" name="limit" type="number" value="5"></form>
<p id="status"></p><div id="results"></div>
</body></html>`

type stubProvider struct {
	payload *market.MoversPayload
	err     error
}

func (s stubProvider) TopGainersLosers(context.Context) (*market.MoversPayload, error) {
	return s.payload, s.err
}

func sample(n int) []market.Quote {
	out := make([]market.Quote, n)
	for i := range out {
		out[i] = market.Quote{Ticker: "T" + string(rune('A'+i)), Price: "1", ChangeAmount: "0.1", ChangePercentage: "10%"}
	}
	return out
}

func newServer(t *testing.T, p market.MoversProvider) *server.Hertz {
	t.Helper()

	public := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(public, "index.html"), []byte(shell), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(public, "styles.css"), []byte("body{}"), 0o644))

	registry, err := tools.NewRegistry(t.Context(), tools.NewTopMoversTool(market.NewService(p)))
	require.NoError(t, err)

	h := server.New()
	api.RegisterRoutes(h, registry, api.Options{
		PublicDir: public,
		Page:      render.NewPage([]byte(shell)),
		Caller:    registry,
	})
	return h
}

func callTool(h *server.Hertz, body string) (int, map[string]any) {
	w := ut.PerformRequest(h.Engine, http.MethodPost, "/mcp",
		&ut.Body{Body: bytes.NewBufferString(body), Len: len(body)},
		ut.Header{Key: "Content-Type", Value: "application/json"},
	)
	resp := w.Result()
	var out map[string]any
	_ = json.Unmarshal(resp.Body(), &out)
	return resp.StatusCode(), out
}

func TestHealth(t *testing.T) {
	t.Parallel()

	h := newServer(t, stubProvider{})
	w := ut.PerformRequest(h.Engine, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Result().StatusCode())
	require.JSONEq(t, `{"status":"ok"}`, string(w.Result().Body()))
}

func TestToolCall_Success(t *testing.T) {
	t.Parallel()

	h := newServer(t, stubProvider{payload: &market.MoversPayload{
		TopGainers: sample(8),
		TopLosers:  sample(1),
	}})

	status, out := callTool(h, `{"name":"topMovers","arguments":{"limit":3}}`)
	require.Equal(t, http.StatusOK, status)

	content := out["content"].([]any)
	require.Len(t, content, 1)
	msg := content[0].(map[string]any)
	require.Equal(t, "json", msg["type"])

	data := msg["data"].(map[string]any)
	require.EqualValues(t, 3, data["limit"])
	require.Len(t, data["topGainers"], 3)
	require.Len(t, data["topLosers"], 1)
	require.Len(t, data["mostActivelyTraded"], 0)
}

func TestToolCall_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		provider market.MoversProvider
		body     string
		status   int
		kind     string
		errText  string
	}{
		{
			name:     "missing key",
			provider: market.NewAlphaVantageClient(""),
			body:     `{"name":"topMovers"}`,
			status:   http.StatusInternalServerError,
			kind:     "config",
			errText:  market.ErrMissingAPIKey.Error(),
		},
		{
			name:     "upstream message",
			provider: stubProvider{err: &market.UpstreamError{Message: "Invalid API call."}},
			body:     `{"name":"topMovers","arguments":{}}`,
			status:   http.StatusBadGateway,
			kind:     "upstream",
			errText:  "Invalid API call.",
		},
		{
			name:     "transport",
			provider: stubProvider{err: &market.StatusError{StatusCode: 503}},
			body:     `{"name":"topMovers","arguments":{}}`,
			status:   http.StatusBadGateway,
			kind:     "transport",
		},
		{
			name:     "unknown tool",
			provider: stubProvider{},
			body:     `{"name":"bottomMovers"}`,
			status:   http.StatusNotFound,
			kind:     "unknown_tool",
		},
		{
			name:     "bad body",
			provider: stubProvider{},
			body:     `{not json`,
			status:   http.StatusBadRequest,
			kind:     "invalid_arguments",
		},
		{
			name:     "arguments not an object",
			provider: stubProvider{},
			body:     `{"name":"topMovers","arguments":[1]}`,
			status:   http.StatusBadRequest,
			kind:     "invalid_arguments",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			status, out := callTool(newServer(t, tc.provider), tc.body)
			require.Equal(t, tc.status, status)
			require.Equal(t, false, out["ok"])
			require.Equal(t, tc.kind, out["kind"])
			if tc.errText != "" {
				require.Equal(t, tc.errText, out["error"])
			}
		})
	}
}

func TestListTools(t *testing.T) {
	t.Parallel()

	w := ut.PerformRequest(newServer(t, stubProvider{}).Engine, http.MethodGet, "/mcp/tools", nil)
	require.Equal(t, http.StatusOK, w.Result().StatusCode())

	var out struct {
		Tools []tools.Descriptor `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(w.Result().Body(), &out))
	require.Len(t, out.Tools, 1)
	require.Equal(t, "topMovers", out.Tools[0].Name)
}

func TestPage_RendersTables(t *testing.T) {
	t.Parallel()

	h := newServer(t, stubProvider{payload: &market.MoversPayload{
		TopGainers:         sample(4),
		TopLosers:          sample(4),
		MostActivelyTraded: sample(4),
	}})

	w := ut.PerformRequest(h.Engine, http.MethodGet, "/?limit=2", nil)
	resp := w.Result()
	require.Equal(t, http.StatusOK, resp.StatusCode())

	body := string(resp.Body())
	require.Equal(t, 3, strings.Count(body, `<section class="table-wrapper">`))
	require.Equal(t, 3*3, strings.Count(body, "<tr>"))
	require.Contains(t, body, "Showing top 2 results from Alpha Vantage.")
}

func TestPage_UpstreamFailureShowsMessage(t *testing.T) {
	t.Parallel()

	h := newServer(t, stubProvider{err: &market.UpstreamError{Message: "rate limited"}})
	w := ut.PerformRequest(h.Engine, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Result().StatusCode())
	require.Contains(t, string(w.Result().Body()), render.MsgUnableToLoad)
}

func TestNoRoute_ServesAssetsThenPage(t *testing.T) {
	t.Parallel()

	h := newServer(t, stubProvider{payload: &market.MoversPayload{}})

	w := ut.PerformRequest(h.Engine, http.MethodGet, "/styles.css", nil)
	require.Equal(t, http.StatusOK, w.Result().StatusCode())
	require.Equal(t, "body{}", string(w.Result().Body()))

	w = ut.PerformRequest(h.Engine, http.MethodGet, "/some/client/route", nil)
	require.Equal(t, http.StatusOK, w.Result().StatusCode())
	require.Contains(t, string(w.Result().Body()), `id="results"`)

	w = ut.PerformRequest(h.Engine, http.MethodDelete, "/nothing", nil)
	require.Equal(t, http.StatusNotFound, w.Result().StatusCode())
}
