// Package catalog provides the catalog bounded context module.
package catalog

import (
	"commerce_agent_backend/internal/catalog/cache"
	"commerce_agent_backend/internal/catalog/repository"
	"commerce_agent_backend/internal/catalog/service"
	"commerce_agent_backend/internal/rpc"
	"commerce_agent_backend/platform/logger"
	"commerce_agent_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the catalog bounded context module implementing rpc.Module.
type Module struct {
	svc *service.Service
	val *validator.Validator
}

// NewModule creates and initializes the catalog module. The search cache
// may be nil when Redis is not configured.
func NewModule(pool *pgxpool.Pool, searchCache *cache.Cache, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, searchCache, log)
	return &Module{svc: svc, val: val}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Tools returns the tool definitions exposed by this module.
func (m *Module) Tools() []rpc.Tool {
	return []rpc.Tool{
		listProductsTool(m.svc, m.val),
	}
}

// Compile-time check that Module implements rpc.Module
var _ rpc.Module = (*Module)(nil)
