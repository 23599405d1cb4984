package handoff

import (
	"context"
	"encoding/json"
	"fmt"

	"commerce_agent_backend/internal/handoff/service"
	"commerce_agent_backend/internal/handoff/transport"
	"commerce_agent_backend/internal/rpc"
	"commerce_agent_backend/platform/validator"
)

func handoffTool(svc *service.Service, val *validator.Validator) rpc.Tool {
	return rpc.Tool{
		Name:        "handoff_to_human",
		Description: "Escalate a conversation to a human operator: tags the conversation, leaves a private note with the reason and context, and reopens it.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"conversation_id": map[string]any{
					"type":        "string",
					"description": "Conversation identifier. A bare number or a decorated id embedding one.",
					"minLength":   1,
				},
				"reason": map[string]any{
					"type":        "string",
					"description": "Short reason for the escalation.",
					"minLength":   1,
				},
				"context": map[string]any{
					"type":        "string",
					"description": "Conversation context for the operator.",
					"minLength":   1,
					"maxLength":   4000,
				},
				"labels": map[string]any{
					"type":        "array",
					"description": "Extra labels to tag the conversation with.",
					"items":       map[string]any{"type": "string"},
				},
			},
			"required":             []string{"conversation_id", "reason", "context"},
			"additionalProperties": false,
		},
		Call: func(ctx context.Context, args json.RawMessage) ([]rpc.ContentItem, error) {
			var req transport.HandoffRequest
			if err := unmarshalArgs(args, &req, val); err != nil {
				return nil, err
			}

			return rpc.TextResult(svc.Handoff(ctx, req))
		},
	}
}

func unmarshalArgs(args json.RawMessage, dest interface{}, val *validator.Validator) error {
	if len(args) == 0 {
		return fmt.Errorf("missing arguments")
	}
	if err := json.Unmarshal(args, dest); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return val.Struct(dest)
}
