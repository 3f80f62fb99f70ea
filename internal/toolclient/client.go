package toolclient

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/tidwall/gjson"

	"top-movers-server/internal/tools"
)

// Client invokes tools over the server's POST /mcp endpoint.
type Client struct {
	endpoint string
	hc       *client.Client
}

type callRequest struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

func New(endpoint string, timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	hc, err := client.NewClient(client.WithDialTimeout(timeout), client.WithClientReadTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("create http client: %w", err)
	}
	return &Client{endpoint: strings.TrimRight(endpoint, "/") + "/mcp", hc: hc}, nil
}

// CallTool returns the decoded envelope on 200. Any other status is an
// error carrying the server's error text when it sent one.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (*tools.Envelope, error) {
	if args == nil {
		args = map[string]any{}
	}
	body, err := json.Marshal(callRequest{Name: name, Arguments: args})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer protocol.ReleaseRequest(req)
	defer protocol.ReleaseResponse(resp)

	req.SetRequestURI(c.endpoint)
	req.SetMethod(consts.MethodPost)
	req.Header.SetContentTypeBytes([]byte(consts.MIMEApplicationJSON))
	req.SetBody(body)

	if err := c.hc.Do(ctx, req, resp); err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}

	raw := resp.Body()
	if status := resp.StatusCode(); status != consts.StatusOK {
		if msg := gjson.GetBytes(raw, "error").String(); msg != "" {
			return nil, fmt.Errorf("tool %s failed (%d): %s", name, status, msg)
		}
		return nil, fmt.Errorf("tool %s failed: status %d", name, status)
	}

	var env tools.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &env, nil
}
