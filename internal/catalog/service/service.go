// Package service provides the catalog search logic: term normalization,
// predicate construction and ranked product lookup.
package service

import (
	"context"
	"fmt"
	"strings"

	"commerce_agent_backend/internal/catalog/cache"
	"commerce_agent_backend/internal/catalog/repository"
	"commerce_agent_backend/internal/catalog/transport"
	"commerce_agent_backend/platform/apperr"
	"commerce_agent_backend/platform/logger"

	"golang.org/x/sync/singleflight"
)

const (
	defaultLimit = 20
	maxLimit     = 50
)

// Service provides business logic for catalog search.
type Service struct {
	repo  repository.Repository
	cache *cache.Cache
	log   *logger.Logger
	group singleflight.Group
}

// New creates a new catalog service. The cache may be nil, which disables it.
func New(repo repository.Repository, searchCache *cache.Cache, log *logger.Logger) *Service {
	return &Service{repo: repo, cache: searchCache, log: log}
}

// Search runs a normalized, ranked product search. Identical concurrent
// queries are collapsed into a single store round trip.
func (s *Service) Search(ctx context.Context, req transport.ListProductsRequest) ([]transport.ProductResponse, error) {
	limit := req.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	params := repository.SearchParams{
		TermGroups: BuildTermGroups(req.Query, req.Terms),
		MinPrice:   req.MinPrice,
		MaxPrice:   req.MaxPrice,
		Limit:      limit,
	}

	key := searchKey(params)
	if items, ok := s.cache.Get(ctx, key); ok {
		return items, nil
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		products, err := s.repo.SearchProducts(ctx, params)
		if err != nil {
			s.log.DatabaseError("search products", err)
			return nil, apperr.Wrap(apperr.KindUnavailable, "product search failed", err)
		}

		items := toProductResponses(products)
		s.cache.Set(ctx, key, items)
		return items, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]transport.ProductResponse), nil
}

// searchKey builds a deterministic signature for a search so that equivalent
// queries share cache entries and singleflight slots.
func searchKey(params repository.SearchParams) string {
	var b strings.Builder
	b.WriteString("catalog:search:")
	for i, group := range params.TermGroups {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(strings.Join(group, ","))
	}
	b.WriteByte(';')
	if params.MinPrice != nil {
		fmt.Fprintf(&b, "min=%d", *params.MinPrice)
	}
	b.WriteByte(';')
	if params.MaxPrice != nil {
		fmt.Fprintf(&b, "max=%d", *params.MaxPrice)
	}
	fmt.Fprintf(&b, ";limit=%d", params.Limit)
	return b.String()
}

func toProductResponses(products []repository.Product) []transport.ProductResponse {
	items := make([]transport.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, transport.ProductResponse{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Stock:       p.Stock,
		})
	}
	return items
}
