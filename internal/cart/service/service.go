// Package service implements the cart state machine: lazy get-or-create per
// conversation, last-write-wins line item upserts and joined cart reads.
package service

import (
	"context"
	"errors"
	"time"

	"commerce_agent_backend/internal/cart/repository"
	"commerce_agent_backend/internal/cart/transport"
	"commerce_agent_backend/platform/apperr"
	"commerce_agent_backend/platform/logger"

	"github.com/google/uuid"
)

// Service provides business logic for carts.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
	now  func() time.Time
}

// New creates a new cart service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log, now: time.Now}
}

// Create returns the existing cart for the conversation unchanged, or
// persists a new one. Calling it twice with the same conversation yields
// the same cart identifier and untouched timestamps.
func (s *Service) Create(ctx context.Context, req transport.CreateCartRequest) (transport.CartResponse, error) {
	existing, err := s.repo.GetByConversationID(ctx, req.ConversationID)
	if err == nil {
		return toCartResponse(existing), nil
	}
	if !apperr.Is(err, apperr.KindNotFound) {
		return transport.CartResponse{}, err
	}

	cart, err := s.repo.InsertCart(ctx, repository.InsertCartParams{
		ID:             uuid.New(),
		ConversationID: req.ConversationID,
		Now:            s.now(),
	})
	if errors.Is(err, repository.ErrConflict) {
		// Lost the uniqueness race; the winner's cart is the cart.
		winner, getErr := s.repo.GetByConversationID(ctx, req.ConversationID)
		if getErr != nil {
			return transport.CartResponse{}, getErr
		}
		return toCartResponse(winner), nil
	}
	if err != nil {
		return transport.CartResponse{}, err
	}

	s.log.Info("cart created", "cart_id", cart.ID, "conversation_id", cart.ConversationID)
	return toCartResponse(cart), nil
}

// Update upserts or removes a line item on an existing cart. A non-positive
// qty removes the item; removing an absent item is not an error. The cart's
// updated_at is refreshed after either branch.
func (s *Service) Update(ctx context.Context, req transport.UpdateCartRequest) (transport.UpdateCartResponse, error) {
	cart, err := s.repo.GetByConversationID(ctx, req.ConversationID)
	if err != nil {
		return transport.UpdateCartResponse{}, err
	}

	if req.Qty <= 0 {
		if err := s.repo.DeleteItem(ctx, cart.ID, req.ProductID); err != nil {
			return transport.UpdateCartResponse{}, err
		}
	} else {
		if err := s.repo.UpsertItem(ctx, cart.ID, req.ProductID, req.Qty); err != nil {
			return transport.UpdateCartResponse{}, err
		}
	}

	if err := s.repo.TouchCart(ctx, cart.ID, s.now()); err != nil {
		return transport.UpdateCartResponse{}, err
	}

	return transport.UpdateCartResponse{
		CartID:    cart.ID,
		ProductID: req.ProductID,
		Qty:       req.Qty,
	}, nil
}

// Get reads an existing cart with its items joined to product data.
func (s *Service) Get(ctx context.Context, req transport.GetCartRequest) (transport.CartContentsResponse, error) {
	cart, err := s.repo.GetByConversationID(ctx, req.ConversationID)
	if err != nil {
		return transport.CartContentsResponse{}, err
	}

	details, err := s.repo.ListItems(ctx, cart.ID)
	if err != nil {
		return transport.CartContentsResponse{}, err
	}

	items := make([]transport.CartItemResponse, 0, len(details))
	for _, d := range details {
		items = append(items, transport.CartItemResponse{
			ID:    d.ProductID,
			Name:  d.Name,
			Price: d.Price,
			Qty:   d.Qty,
		})
	}

	return transport.CartContentsResponse{CartID: cart.ID, Items: items}, nil
}

func toCartResponse(cart repository.Cart) transport.CartResponse {
	return transport.CartResponse{
		ID:             cart.ID,
		ConversationID: cart.ConversationID,
		CreatedAt:      cart.CreatedAt,
		UpdatedAt:      cart.UpdatedAt,
	}
}
