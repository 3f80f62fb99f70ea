package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
)

// Tool is an eino tool that can also describe its input as JSON schema.
type Tool interface {
	tool.InvokableTool
	InputSchema() map[string]any
}

type Descriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// Registry dispatches invocations by tool name. It is read-only after
// construction and safe for concurrent use.
type Registry struct {
	tools map[string]Tool
	order []string
}

func NewRegistry(ctx context.Context, ts ...Tool) (*Registry, error) {
	r := &Registry{tools: make(map[string]Tool, len(ts))}
	for _, t := range ts {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("tool info: %w", err)
		}
		if _, dup := r.tools[info.Name]; dup {
			return nil, fmt.Errorf("duplicate tool: %s", info.Name)
		}
		r.tools[info.Name] = t
		r.order = append(r.order, info.Name)
	}
	return r, nil
}

func (r *Registry) Lookup(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

func (r *Registry) Descriptors(ctx context.Context) ([]Descriptor, error) {
	out := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		info, err := t.Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("tool info: %w", err)
		}
		out = append(out, Descriptor{
			Name:        info.Name,
			Description: info.Desc,
			InputSchema: t.InputSchema(),
		})
	}
	return out, nil
}

// Call runs the named tool with raw JSON arguments and wraps its output as a
// single json message.
func (r *Registry) Call(ctx context.Context, name, argumentsJSON string) (*Envelope, error) {
	t, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	callID := uuid.NewString()
	start := time.Now()
	out, err := t.InvokableRun(ctx, argumentsJSON)
	if err != nil {
		hlog.CtxErrorf(ctx, "tool call error: id=%s tool=%s kind=%s err=%v", callID, name, Classify(err), err)
		return nil, err
	}
	hlog.CtxDebugf(ctx, "tool call: id=%s tool=%s latency_ms=%d", callID, name, time.Since(start).Milliseconds())
	return RawJSONEnvelope([]byte(out)), nil
}

// CallTool is Call with structured arguments.
func (r *Registry) CallTool(ctx context.Context, name string, args map[string]any) (*Envelope, error) {
	if args == nil {
		args = map[string]any{}
	}
	raw, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	return r.Call(ctx, name, string(raw))
}
