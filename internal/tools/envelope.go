package tools

import (
	"encoding/json"
	"errors"
	"fmt"
)

type ContentKind string

const (
	KindJSON ContentKind = "json"
	KindText ContentKind = "text"
)

var ErrUnknownContentKind = errors.New("unknown content kind")

// Content is one tagged message. Data is set for KindJSON, Text for KindText.
type Content struct {
	Kind ContentKind     `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
	Text string          `json:"text,omitempty"`
}

// Validate reports ErrUnknownContentKind for kinds outside the enum.
func (c Content) Validate() error {
	switch c.Kind {
	case KindJSON, KindText:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownContentKind, c.Kind)
	}
}

type Envelope struct {
	Content []Content `json:"content"`
}

// RawJSONEnvelope wraps an encoded JSON document as a single KindJSON message.
func RawJSONEnvelope(data []byte) *Envelope {
	return &Envelope{Content: []Content{{Kind: KindJSON, Data: json.RawMessage(data)}}}
}
