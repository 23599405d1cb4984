// Package rpc provides the JSON-RPC 2.0 tool transport. It exposes an
// initialize/tools-list/tools-call surface over a single HTTP endpoint and
// dispatches calls to the tools registered by domain modules.
package rpc

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"commerce_agent_backend/platform/httpkit"
	"commerce_agent_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

const protocolVersion = "2024-11-05"

// Server dispatches JSON-RPC requests to registered tools.
type Server struct {
	name    string
	version string
	tools   []Tool
	byName  map[string]*Tool
	log     *logger.Logger
}

// NewServer creates a server exposing the tools of the given modules.
func NewServer(name, version string, log *logger.Logger, modules ...Module) *Server {
	s := &Server{
		name:    name,
		version: version,
		byName:  make(map[string]*Tool),
		log:     log,
	}
	for _, m := range modules {
		for _, t := range m.Tools() {
			s.tools = append(s.tools, t)
		}
	}
	for i := range s.tools {
		s.byName[s.tools[i].Name] = &s.tools[i]
	}
	return s
}

// Handle is the gin handler for the JSON-RPC endpoint.
func (s *Server) Handle(c *gin.Context) {
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid JSON-RPC request", nil)
		return
	}

	resp := s.dispatch(c.Request.Context(), req, c.ClientIP())
	c.JSON(http.StatusOK, resp)
}

func (s *Server) dispatch(ctx context.Context, req request, clientIP string) response {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req, clientIP)
	default:
		return s.replyError(req.ID, codeMethodNotFound, "Method not found", map[string]any{
			"method": req.Method,
		})
	}
}

func (s *Server) handleInitialize(req request) response {
	result := map[string]any{
		"protocolVersion": protocolVersion,
		"serverInfo": map[string]any{
			"name":    s.name,
			"version": s.version,
		},
		"capabilities": map[string]any{
			"tools": map[string]any{},
		},
	}
	return s.replyResult(req.ID, result)
}

func (s *Server) handleToolsList(req request) response {
	list := make([]map[string]any, 0, len(s.tools))
	for _, t := range s.tools {
		list = append(list, map[string]any{
			"name":        t.Name,
			"description": t.Description,
			"inputSchema": t.InputSchema,
		})
	}
	return s.replyResult(req.ID, map[string]any{
		"tools": list,
	})
}

func (s *Server) handleToolsCall(ctx context.Context, req request, clientIP string) response {
	var p toolsCallParams
	if err := json.Unmarshal(req.Params, &p); err != nil {
		return s.replyError(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	t, ok := s.byName[p.Name]
	if !ok {
		return s.replyError(req.ID, codeInvalidParams, "Invalid params", map[string]any{
			"reason": "unknown tool",
			"name":   p.Name,
		})
	}

	if len(req.ID) > 0 {
		ctx = context.WithValue(ctx, logger.RequestIDKey, string(req.ID))
	}
	log := s.log.WithContext(ctx)

	start := time.Now()
	content, err := t.Call(ctx, p.Arguments)
	if err != nil {
		log.ToolError(p.Name, err, clientIP)
		return s.replyError(req.ID, codeToolError, "Tool execution error", err.Error())
	}
	log.ToolCall(p.Name, float64(time.Since(start).Milliseconds()), clientIP)

	return s.replyResult(req.ID, map[string]any{
		"content": content,
	})
}

func (s *Server) replyResult(id json.RawMessage, result any) response {
	return response{
		JSONRPC: "2.0",
		ID:      id,
		Result:  mustMarshalRaw(result),
	}
}

func (s *Server) replyError(id json.RawMessage, code int, message string, data any) response {
	return response{
		JSONRPC: "2.0",
		ID:      id,
		Error: &rpcError{
			Code:    code,
			Message: message,
			Data:    mustMarshalRaw(data),
		},
	}
}

// --- JSON-RPC types ---

const (
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeToolError      = 1
)

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type toolsCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

func mustMarshalRaw(v any) json.RawMessage {
	if v == nil {
		return json.RawMessage("null")
	}
	b, err := json.Marshal(v)
	if err != nil {
		// Marshaling registry-built maps cannot fail unless a tool returns
		// an unencodable value, which is a programmer error.
		panic(err)
	}
	return json.RawMessage(b)
}
