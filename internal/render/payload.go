package render

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"top-movers-server/internal/market"
	"top-movers-server/internal/tools"
)

// ToolCaller is the host's tool-invocation capability.
type ToolCaller interface {
	CallTool(ctx context.Context, name string, args map[string]any) (*tools.Envelope, error)
}

var ErrNoPayload = errors.New("no payload")

type Payload = market.TopMovers

var requiredLists = []string{"topGainers", "topLosers", "mostActivelyTraded"}

// ParsePayload extracts the TopMovers object from the first json message.
// The check is all-or-nothing: a missing list or a zero limit rejects the
// whole envelope.
func ParsePayload(env *tools.Envelope) (Payload, error) {
	if env == nil {
		return Payload{}, ErrNoPayload
	}

	var msg *tools.Content
	for i := range env.Content {
		switch env.Content[i].Kind {
		case tools.KindJSON:
			if msg == nil {
				msg = &env.Content[i]
			}
		case tools.KindText:
		default:
			return Payload{}, env.Content[i].Validate()
		}
	}
	if msg == nil {
		return Payload{}, ErrNoPayload
	}

	if !gjson.ValidBytes(msg.Data) {
		return Payload{}, fmt.Errorf("%w: invalid json", ErrNoPayload)
	}
	data := gjson.ParseBytes(msg.Data)
	if !data.IsObject() {
		return Payload{}, fmt.Errorf("%w: data is not an object", ErrNoPayload)
	}
	for _, field := range requiredLists {
		if !data.Get(field).IsArray() {
			return Payload{}, fmt.Errorf("%w: missing %s", ErrNoPayload, field)
		}
	}
	if limit := data.Get("limit"); limit.Type != gjson.Number || limit.Float() == 0 {
		return Payload{}, fmt.Errorf("%w: missing limit", ErrNoPayload)
	}

	var p Payload
	if err := json.Unmarshal(msg.Data, &p); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrNoPayload, err)
	}
	return p, nil
}
