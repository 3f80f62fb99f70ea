package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	defaultBaseURL = "https://www.alphavantage.co"
	queryPath      = "/query"
	moversFunction = "TOP_GAINERS_LOSERS"
)

//go:generate mockgen -package=market_test -destination=mock_http_client_test.go -source=alphavantage.go HTTPClient

// HTTPClient describes an HTTP client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// AlphaVantageClient fetches the TOP_GAINERS_LOSERS dataset.
type AlphaVantageClient struct {
	baseURL    string
	apiKey     string
	httpClient HTTPClient
	header     http.Header
}

// AlphaVantageOption is a configuration option for AlphaVantageClient.
type AlphaVantageOption func(*AlphaVantageClient)

// WithBaseURL overrides the provider host, mostly for tests and proxies.
func WithBaseURL(baseURL string) AlphaVantageOption {
	return func(c *AlphaVantageClient) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func WithHTTPClient(httpClient HTTPClient) AlphaVantageOption {
	return func(c *AlphaVantageClient) {
		c.httpClient = httpClient
	}
}

// WithTimeout swaps in a plain http.Client with the given timeout.
func WithTimeout(timeout time.Duration) AlphaVantageOption {
	return func(c *AlphaVantageClient) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithHeader adds headers sent with each request.
func WithHeader(header http.Header) AlphaVantageOption {
	return func(c *AlphaVantageClient) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

func NewAlphaVantageClient(apiKey string, options ...AlphaVantageOption) *AlphaVantageClient {
	c := &AlphaVantageClient{
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
		header:     http.Header{},
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *AlphaVantageClient) HasAPIKey() bool {
	return c.apiKey != ""
}

// TopGainersLosers performs exactly one GET against the provider. A payload
// carrying "message" or "note" fails with an *UpstreamError before anything
// else is decoded.
func (c *AlphaVantageClient) TopGainersLosers(ctx context.Context) (*MoversPayload, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	u, err := url.Parse(c.baseURL + queryPath)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	q := u.Query()
	q.Set("function", moversFunction)
	q.Set("apikey", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for key, values := range c.header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request alphavantage: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read alphavantage: %w", err)
	}

	doc := gjson.ParseBytes(body)
	isObject := gjson.ValidBytes(body) && doc.IsObject()
	if isObject {
		if msg := providerMessage(doc); msg != "" {
			return nil, &UpstreamError{Message: msg}
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}
	if !isObject {
		return nil, errors.New("decode alphavantage: body is not a JSON object")
	}

	var payload MoversPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode alphavantage: %w", err)
	}
	return &payload, nil
}

// providerMessage returns the first non-empty string among "message" and
// "note". Values of any other JSON type are ignored.
func providerMessage(doc gjson.Result) string {
	for _, key := range []string{"message", "note"} {
		if v := doc.Get(key); v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
	}
	return ""
}
