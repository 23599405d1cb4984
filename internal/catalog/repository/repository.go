package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo implements the catalog repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// SearchProducts executes a predicate-built product search.
func (r *Repo) SearchProducts(ctx context.Context, params SearchParams) ([]Product, error) {
	query, args := buildProductSearchQuery(params)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	items := make([]Product, 0)
	for rows.Next() {
		var product Product
		if err := rows.Scan(
			&product.ID, &product.Name, &product.Description, &product.Price, &product.Stock,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		items = append(items, product)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate products: %w", rows.Err())
	}

	return items, nil
}

// buildProductSearchQuery composes the WHERE clause, ordering and limit for
// a search. Term variants match against the folded name and description
// columns (see the fold_accents migration); price bounds are reordered so
// the arithmetic minimum is always the lower bound. Every literal is bound
// positionally, never interpolated.
func buildProductSearchQuery(params SearchParams) (string, []interface{}) {
	whereClauses := []string{}
	args := []interface{}{}
	argIdx := 1

	for _, group := range params.TermGroups {
		if len(group) == 0 {
			continue
		}
		ors := make([]string, 0, len(group))
		for _, variant := range group {
			ors = append(ors, fmt.Sprintf("(name_folded LIKE $%d OR description_folded LIKE $%d)", argIdx, argIdx))
			args = append(args, "%"+variant+"%")
			argIdx++
		}
		whereClauses = append(whereClauses, "("+strings.Join(ors, " OR ")+")")
	}

	minPrice, maxPrice := normalizeBounds(params.MinPrice, params.MaxPrice)
	if minPrice != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("price >= $%d", argIdx))
		args = append(args, *minPrice)
		argIdx++
	}
	if maxPrice != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("price <= $%d", argIdx))
		args = append(args, *maxPrice)
		argIdx++
	}

	whereClause := ""
	if len(whereClauses) > 0 {
		whereClause = "WHERE " + strings.Join(whereClauses, " AND ")
	}

	args = append(args, params.Limit)
	query := fmt.Sprintf(`
		SELECT id, name, description, price, stock
		FROM products
		%s
		ORDER BY stock DESC, price ASC, id DESC
		LIMIT $%d
	`, whereClause, argIdx)

	return query, args
}

// normalizeBounds applies the arithmetic minimum as the lower bound and the
// arithmetic maximum as the upper bound when both are supplied, regardless
// of the order the caller used.
func normalizeBounds(min, max *int64) (*int64, *int64) {
	if min != nil && max != nil && *min > *max {
		return max, min
	}
	return min, max
}
