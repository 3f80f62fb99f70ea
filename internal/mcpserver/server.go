package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"top-movers-server/internal/tools"
)

// New builds an MCP server exposing the registry's tools with their own
// input schemas. Arguments are passed through unvalidated so an out-of-range
// or non-numeric limit is coerced by the tool instead of being rejected.
func New(ctx context.Context, name, version string, registry *tools.Registry) (*mcp.Server, error) {
	descs, err := registry.Descriptors(ctx)
	if err != nil {
		return nil, err
	}

	s := mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, nil)
	for _, d := range descs {
		toolName := d.Name
		s.AddTool(&mcp.Tool{
			Name:        toolName,
			Description: d.Description,
			InputSchema: d.InputSchema,
		}, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			var args string
			if req.Params != nil {
				args = string(req.Params.Arguments)
			}
			return call(ctx, registry, toolName, args), nil
		})
	}
	return s, nil
}

// call forwards to the registry and re-encodes the envelope as MCP content:
// json messages become text content holding the JSON document. Tool failures
// are reported in the result, not as protocol errors.
func call(ctx context.Context, registry *tools.Registry, name, args string) *mcp.CallToolResult {
	env, err := registry.Call(ctx, name, args)
	if err != nil {
		return errorResult(err)
	}

	res := &mcp.CallToolResult{}
	for _, c := range env.Content {
		switch c.Kind {
		case tools.KindJSON:
			res.Content = append(res.Content, &mcp.TextContent{Text: string(c.Data)})
		case tools.KindText:
			res.Content = append(res.Content, &mcp.TextContent{Text: c.Text})
		default:
			return errorResult(fmt.Errorf("%w: %q", tools.ErrUnknownContentKind, c.Kind))
		}
	}
	return res
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
		IsError: true,
	}
}

// RunStdio serves s over stdin/stdout until ctx is done or the peer hangs up.
func RunStdio(ctx context.Context, s *mcp.Server) error {
	return s.Run(ctx, &mcp.StdioTransport{})
}
