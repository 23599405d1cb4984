// Package cart provides the cart bounded context module.
package cart

import (
	"commerce_agent_backend/internal/cart/repository"
	"commerce_agent_backend/internal/cart/service"
	"commerce_agent_backend/internal/rpc"
	"commerce_agent_backend/platform/logger"
	"commerce_agent_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the cart bounded context module implementing rpc.Module.
type Module struct {
	svc *service.Service
	val *validator.Validator
}

// NewModule creates and initializes the cart module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	return &Module{svc: svc, val: val}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "cart"
}

// Tools returns the tool definitions exposed by this module.
func (m *Module) Tools() []rpc.Tool {
	return []rpc.Tool{
		createCartTool(m.svc, m.val),
		updateCartTool(m.svc, m.val),
		getCartTool(m.svc, m.val),
	}
}

// Compile-time check that Module implements rpc.Module
var _ rpc.Module = (*Module)(nil)
