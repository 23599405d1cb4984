package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"commerce_agent_backend/internal/cart/service"
	"commerce_agent_backend/internal/cart/transport"
	"commerce_agent_backend/internal/rpc"
	"commerce_agent_backend/platform/apperr"
	"commerce_agent_backend/platform/validator"
)

const cartNotFoundText = "Cart not found"

var conversationIDProperty = map[string]any{
	"type":        "string",
	"description": "Conversation identifier owning the cart.",
	"minLength":   1,
}

func createCartTool(svc *service.Service, val *validator.Validator) rpc.Tool {
	return rpc.Tool{
		Name:        "create_cart",
		Description: "Get or create the cart for a conversation. Idempotent: an existing cart is returned unchanged.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"conversation_id": conversationIDProperty,
			},
			"required":             []string{"conversation_id"},
			"additionalProperties": false,
		},
		Call: func(ctx context.Context, args json.RawMessage) ([]rpc.ContentItem, error) {
			var req transport.CreateCartRequest
			if err := unmarshalArgs(args, &req, val); err != nil {
				return nil, err
			}

			cart, err := svc.Create(ctx, req)
			if err != nil {
				return nil, err
			}
			return rpc.TextResult(cart)
		},
	}
}

func updateCartTool(svc *service.Service, val *validator.Validator) rpc.Tool {
	return rpc.Tool{
		Name:        "update_cart",
		Description: "Set the quantity of a product in an existing cart. qty <= 0 removes the item; a positive qty overwrites the stored quantity.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"conversation_id": conversationIDProperty,
				"product_id": map[string]any{
					"type":        "integer",
					"description": "Catalog product identifier.",
				},
				"qty": map[string]any{
					"type":        "integer",
					"description": "New quantity. Zero or negative removes the item.",
				},
			},
			"required":             []string{"conversation_id", "product_id", "qty"},
			"additionalProperties": false,
		},
		Call: func(ctx context.Context, args json.RawMessage) ([]rpc.ContentItem, error) {
			var req transport.UpdateCartRequest
			if err := unmarshalArgs(args, &req, val); err != nil {
				return nil, err
			}

			result, err := svc.Update(ctx, req)
			if err != nil {
				if apperr.Is(err, apperr.KindNotFound) {
					return rpc.TextMessage(cartNotFoundText), nil
				}
				return nil, err
			}
			return rpc.TextResult(result)
		},
	}
}

func getCartTool(svc *service.Service, val *validator.Validator) rpc.Tool {
	return rpc.Tool{
		Name:        "get_cart",
		Description: "Read the contents of an existing cart, including product name and price per item.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"conversation_id": conversationIDProperty,
			},
			"required":             []string{"conversation_id"},
			"additionalProperties": false,
		},
		Call: func(ctx context.Context, args json.RawMessage) ([]rpc.ContentItem, error) {
			var req transport.GetCartRequest
			if err := unmarshalArgs(args, &req, val); err != nil {
				return nil, err
			}

			contents, err := svc.Get(ctx, req)
			if err != nil {
				if apperr.Is(err, apperr.KindNotFound) {
					return rpc.TextMessage(cartNotFoundText), nil
				}
				return nil, err
			}
			return rpc.TextResult(contents)
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
	if err := val.Struct(dest); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}
