package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"commerce_agent_backend/internal/catalog/service"
	"commerce_agent_backend/internal/catalog/transport"
	"commerce_agent_backend/internal/rpc"
	"commerce_agent_backend/platform/apperr"
	"commerce_agent_backend/platform/validator"
)

func listProductsTool(svc *service.Service, val *validator.Validator) rpc.Tool {
	return rpc.Tool{
		Name:        "list_products",
		Description: "Search the product catalog. Matching is case-, accent- and plural-insensitive; results are ranked by stock, then price, then recency.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "Free-text search query (e.g. \"pantalones de lino\").",
				},
				"terms": map[string]any{
					"type":        "array",
					"description": "Explicit search tokens; takes precedence over query. At most 6.",
					"items":       map[string]any{"type": "string", "minLength": 1},
					"maxItems":    6,
				},
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of results (1-50, default 20).",
					"minimum":     1,
					"maximum":     50,
				},
				"min_price": map[string]any{
					"type":        "integer",
					"description": "Lower price bound in the smallest currency unit.",
					"minimum":     0,
				},
				"max_price": map[string]any{
					"type":        "integer",
					"description": "Upper price bound in the smallest currency unit.",
					"minimum":     0,
				},
			},
			"additionalProperties": false,
		},
		Call: func(ctx context.Context, args json.RawMessage) ([]rpc.ContentItem, error) {
			var req transport.ListProductsRequest
			if len(args) > 0 {
				if err := json.Unmarshal(args, &req); err != nil {
					return nil, fmt.Errorf("invalid arguments: %w", err)
				}
			}
			if err := val.Struct(req); err != nil {
				return nil, fmt.Errorf("invalid arguments: %w", err)
			}

			items, err := svc.Search(ctx, req)
			if err != nil {
				if apperr.Is(err, apperr.KindUnavailable) {
					return rpc.TextMessage("Product search failed"), nil
				}
				return nil, err
			}
			return rpc.TextResult(items)
		},
	}
}
