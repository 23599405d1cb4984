package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Cart represents a shopping cart bound to one conversation.
// Timestamps are stored as ISO-8601 text.
type Cart struct {
	ID             uuid.UUID `db:"id"`
	ConversationID string    `db:"conversation_id"`
	CreatedAt      string    `db:"created_at"`
	UpdatedAt      string    `db:"updated_at"`
}

// ItemDetail is a cart line item joined with its product data.
type ItemDetail struct {
	ProductID int64  `db:"product_id"`
	Name      string `db:"name"`
	Price     int64  `db:"price"`
	Qty       int    `db:"qty"`
}

// InsertCartParams contains data for persisting a new cart.
type InsertCartParams struct {
	ID             uuid.UUID
	ConversationID string
	Now            time.Time
}

// Repository defines the data access interface for carts.
type Repository interface {
	// GetByConversationID returns the cart for a conversation, or
	// apperr.NotFound when none exists.
	GetByConversationID(ctx context.Context, conversationID string) (Cart, error)
	// InsertCart persists a new cart. When another invocation won the
	// uniqueness race the insert affects no rows and ErrConflict is returned.
	InsertCart(ctx context.Context, params InsertCartParams) (Cart, error)
	// UpsertItem inserts or overwrites the line item quantity.
	UpsertItem(ctx context.Context, cartID uuid.UUID, productID int64, qty int) error
	// DeleteItem removes a line item. Removing a non-existent item is not an error.
	DeleteItem(ctx context.Context, cartID uuid.UUID, productID int64) error
	// TouchCart refreshes the cart's updated_at timestamp.
	TouchCart(ctx context.Context, cartID uuid.UUID, now time.Time) error
	// ListItems returns the cart's items joined with product name and price.
	ListItems(ctx context.Context, cartID uuid.UUID) ([]ItemDetail, error)
}
