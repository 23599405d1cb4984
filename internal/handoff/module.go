// Package handoff provides the human escalation module.
package handoff

import (
	"commerce_agent_backend/internal/handoff/client"
	"commerce_agent_backend/internal/handoff/service"
	"commerce_agent_backend/internal/rpc"
	"commerce_agent_backend/platform/config"
	"commerce_agent_backend/platform/logger"
	"commerce_agent_backend/platform/validator"
)

// Module is the handoff bounded context module implementing rpc.Module.
type Module struct {
	svc *service.Service
	val *validator.Validator
}

// NewModule creates and initializes the handoff module.
func NewModule(cfg config.ConversationAPIConfig, val *validator.Validator, log *logger.Logger) *Module {
	api := client.NewClient(cfg, log)
	svc := service.New(api, log)
	return &Module{svc: svc, val: val}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "handoff"
}

// Tools returns the tool definitions exposed by this module.
func (m *Module) Tools() []rpc.Tool {
	return []rpc.Tool{
		handoffTool(m.svc, m.val),
	}
}

// Compile-time check that Module implements rpc.Module
var _ rpc.Module = (*Module)(nil)
