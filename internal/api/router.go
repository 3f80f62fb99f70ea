package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/hertz-contrib/cors"

	"top-movers-server/internal/render"
	"top-movers-server/internal/tools"
)

type ToolCallRequest struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

type Options struct {
	PublicDir string
	ClientDir string
	Page      *render.Page
	// Caller drives the server-rendered page. Nil renders the page with the
	// "not available" message.
	Caller render.ToolCaller
}

func RegisterRoutes(h *server.Hertz, registry *tools.Registry, opts Options) {
	h.Use(cors.Default())

	h.GET("/health", func(_ context.Context, c *app.RequestContext) {
		c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	h.GET("/mcp/tools", func(ctx context.Context, c *app.RequestContext) {
		descs, err := registry.Descriptors(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, map[string]any{
				"ok":    false,
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, map[string]any{"tools": descs})
	})

	h.POST("/mcp", func(ctx context.Context, c *app.RequestContext) {
		var req ToolCallRequest
		if err := json.Unmarshal(c.Request.Body(), &req); err != nil || req.Name == "" {
			c.JSON(http.StatusBadRequest, map[string]any{
				"ok":    false,
				"kind":  tools.ErrorInvalidArguments,
				"error": "invalid json body",
			})
			return
		}

		env, err := registry.Call(ctx, req.Name, string(req.Arguments))
		if err != nil {
			kind := tools.Classify(err)
			c.JSON(statusFor(kind), map[string]any{
				"ok":    false,
				"kind":  kind,
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, env)
	})

	page := func(ctx context.Context, c *app.RequestContext) {
		if opts.Page == nil {
			c.File(filepath.Join(opts.PublicDir, "index.html"))
			return
		}
		var limit *string
		if c.QueryArgs().Has("limit") {
			v := string(c.Query("limit"))
			limit = &v
		}
		var buf bytes.Buffer
		if err := opts.Page.Render(ctx, &buf, render.New(opts.Caller), limit); err != nil {
			hlog.CtxErrorf(ctx, "render page error: %v", err)
			c.String(http.StatusInternalServerError, "render error")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
	}
	h.GET("/", page)
	h.GET("/index.html", page)

	if opts.ClientDir != "" {
		h.Static("/client", opts.ClientDir)
	}

	// Public assets first, then the page for anything else.
	h.NoRoute(func(ctx context.Context, c *app.RequestContext) {
		if !strings.EqualFold(string(c.Method()), http.MethodGet) {
			c.JSON(http.StatusNotFound, map[string]any{"ok": false, "error": "not found"})
			return
		}
		if opts.PublicDir != "" {
			name := filepath.Join(opts.PublicDir, filepath.FromSlash(path.Clean("/"+string(c.Path()))))
			if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
				c.File(name)
				return
			}
		}
		page(ctx, c)
	})
}

func statusFor(kind tools.ErrorKind) int {
	switch kind {
	case tools.ErrorConfig:
		return http.StatusInternalServerError
	case tools.ErrorUpstream, tools.ErrorTransport:
		return http.StatusBadGateway
	case tools.ErrorUnknownTool:
		return http.StatusNotFound
	case tools.ErrorInvalidArguments:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
