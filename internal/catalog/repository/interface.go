package repository

import "context"

// Product represents a catalog product row. Products are owned by an
// external catalog-management process and are read-only here.
type Product struct {
	ID          int64   `db:"id"`
	Name        string  `db:"name"`
	Description *string `db:"description"`
	Price       int64   `db:"price"`
	Stock       int     `db:"stock"`
}

// SearchParams defines the filters for a product search. TermGroups holds
// normalized match variants: conjunctive across groups, disjunctive within.
type SearchParams struct {
	TermGroups [][]string
	MinPrice   *int64
	MaxPrice   *int64
	Limit      int
}

// Repository defines the data access interface for the catalog.
type Repository interface {
	SearchProducts(ctx context.Context, params SearchParams) ([]Product, error)
}
