package transport

import "github.com/google/uuid"

// CreateCartRequest is the argument object for the create_cart tool.
type CreateCartRequest struct {
	ConversationID string `json:"conversation_id" validate:"required,min=1"`
}

// UpdateCartRequest is the argument object for the update_cart tool.
// A non-positive qty removes the line item.
type UpdateCartRequest struct {
	ConversationID string `json:"conversation_id" validate:"required,min=1"`
	ProductID      int64  `json:"product_id" validate:"required"`
	Qty            int    `json:"qty"`
}

// GetCartRequest is the argument object for the get_cart tool.
type GetCartRequest struct {
	ConversationID string `json:"conversation_id" validate:"required,min=1"`
}

// CartResponse is the create_cart result.
type CartResponse struct {
	ID             uuid.UUID `json:"id"`
	ConversationID string    `json:"conversation_id"`
	CreatedAt      string    `json:"created_at"`
	UpdatedAt      string    `json:"updated_at"`
}

// UpdateCartResponse is the update_cart result.
type UpdateCartResponse struct {
	CartID    uuid.UUID `json:"cart_id"`
	ProductID int64     `json:"product_id"`
	Qty       int       `json:"qty"`
}

// CartItemResponse is one line item in a cart read, joined with product data.
type CartItemResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Qty   int    `json:"qty"`
}

// CartContentsResponse is the get_cart result.
type CartContentsResponse struct {
	CartID uuid.UUID          `json:"cart_id"`
	Items  []CartItemResponse `json:"items"`
}
