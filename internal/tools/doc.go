// Package tools exposes the topMovers operation as an invocable tool and
// defines the result envelope that carries tool output to callers.
//
// # Envelope
//
// A tool result is an Envelope: an ordered list of Content messages, each
// tagged with a ContentKind. Only KindJSON carries structured data; KindText
// carries human-readable text. Consumers switch over the kind and reject
// anything else with ErrUnknownContentKind instead of skipping it.
//
// # Errors
//
// Tool failures keep their original error values. Classify maps an error to
// an ErrorKind so transports can choose a status code without string matching.
package tools
