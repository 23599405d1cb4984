package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"commerce_agent_backend/platform/apperr"
)

const cartNotFoundMessage = "cart not found"

// ErrConflict indicates another invocation created the cart first.
var ErrConflict = errors.New("cart already exists for conversation")

// Repo implements the cart repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new cart repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// GetByConversationID retrieves the cart bound to a conversation.
func (r *Repo) GetByConversationID(ctx context.Context, conversationID string) (Cart, error) {
	query := `
		SELECT id, conversation_id, created_at, updated_at
		FROM carts
		WHERE conversation_id = $1
		LIMIT 1`

	var cart Cart
	if err := r.pool.QueryRow(ctx, query, conversationID).Scan(
		&cart.ID, &cart.ConversationID, &cart.CreatedAt, &cart.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Cart{}, apperr.NotFound(cartNotFoundMessage)
		}
		return Cart{}, fmt.Errorf("get cart by conversation id: %w", err)
	}

	return cart, nil
}

// InsertCart persists a new cart. The conversation_id uniqueness constraint
// makes concurrent creates race-safe: the loser gets ErrConflict and should
// re-read the winner's row.
func (r *Repo) InsertCart(ctx context.Context, params InsertCartParams) (Cart, error) {
	now := params.Now.UTC().Format(time.RFC3339)

	query := `
		INSERT INTO carts (id, conversation_id, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (conversation_id) DO NOTHING
		RETURNING id, conversation_id, created_at, updated_at`

	var cart Cart
	if err := r.pool.QueryRow(ctx, query, params.ID, params.ConversationID, now).Scan(
		&cart.ID, &cart.ConversationID, &cart.CreatedAt, &cart.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Cart{}, ErrConflict
		}
		return Cart{}, fmt.Errorf("insert cart: %w", err)
	}

	return cart, nil
}

// UpsertItem inserts a line item or overwrites its quantity (last write wins).
func (r *Repo) UpsertItem(ctx context.Context, cartID uuid.UUID, productID int64, qty int) error {
	query := `
		INSERT INTO cart_items (cart_id, product_id, qty)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET qty = EXCLUDED.qty`

	if _, err := r.pool.Exec(ctx, query, cartID, productID, qty); err != nil {
		return fmt.Errorf("upsert cart item: %w", err)
	}
	return nil
}

// DeleteItem removes a line item if present.
func (r *Repo) DeleteItem(ctx context.Context, cartID uuid.UUID, productID int64) error {
	query := `DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2`
	if _, err := r.pool.Exec(ctx, query, cartID, productID); err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	return nil
}

// TouchCart refreshes the cart's updated_at timestamp.
func (r *Repo) TouchCart(ctx context.Context, cartID uuid.UUID, now time.Time) error {
	query := `UPDATE carts SET updated_at = $1 WHERE id = $2`
	if _, err := r.pool.Exec(ctx, query, now.UTC().Format(time.RFC3339), cartID); err != nil {
		return fmt.Errorf("touch cart: %w", err)
	}
	return nil
}

// ListItems returns the cart's items joined with product name and price.
func (r *Repo) ListItems(ctx context.Context, cartID uuid.UUID) ([]ItemDetail, error) {
	query := `
		SELECT p.id, p.name, p.price, ci.qty
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY p.id`

	rows, err := r.pool.Query(ctx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	items := make([]ItemDetail, 0)
	for rows.Next() {
		var item ItemDetail
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Price, &item.Qty); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, item)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate cart items: %w", rows.Err())
	}

	return items, nil
}
