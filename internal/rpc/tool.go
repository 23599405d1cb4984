package rpc

import (
	"context"
	"encoding/json"
)

// ContentItem is a single typed item in a tool result content array.
type ContentItem struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Tool describes a callable operation exposed to the agent.
type Tool struct {
	Name        string
	Description string
	InputSchema map[string]any
	Call        func(ctx context.Context, args json.RawMessage) ([]ContentItem, error)
}

// Module represents a bounded context that contributes tools to the server.
// Each domain module implements this interface to encapsulate its own
// tool definitions, keeping the server decoupled from specific operations.
type Module interface {
	// Name returns the module's identifier for logging purposes.
	Name() string
	// Tools returns the tool definitions this module exposes.
	Tools() []Tool
}

// TextResult marshals a payload as indented JSON wrapped in a single text
// content item, the shape agents expect for every tool response.
func TextResult(payload any) ([]ContentItem, error) {
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, err
	}
	return []ContentItem{{Type: "text", Text: string(b)}}, nil
}

// TextMessage wraps a plain string in a single text content item. Used for
// user-visible outcomes such as "Cart not found".
func TextMessage(text string) []ContentItem {
	return []ContentItem{{Type: "text", Text: text}}
}
