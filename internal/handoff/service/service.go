// Package service runs the handoff escalation against the conversation API.
package service

import (
	"context"
	"fmt"

	"commerce_agent_backend/internal/handoff/transport"
	"commerce_agent_backend/platform/logger"
)

// ConversationAPI is the subset of the conversation client used by the saga.
type ConversationAPI interface {
	Configured() bool
	AddLabels(ctx context.Context, conversationID int64, labels []string) (int, error)
	CreateNote(ctx context.Context, conversationID int64, content string) (int, error)
	Reopen(ctx context.Context, conversationID int64) (int, error)
}

const handoffLabel = "handoff"

// Service escalates conversations to human operators.
type Service struct {
	api ConversationAPI
	log *logger.Logger
}

func New(api ConversationAPI, log *logger.Logger) *Service {
	return &Service{api: api, log: log}
}

// step is one remote call in the escalation sequence. abortOnFailure stops
// the sequence when the call fails; gatesOK ties the overall success flag to
// this step's outcome.
type step struct {
	name           string
	abortOnFailure bool
	gatesOK        bool
	run            func(ctx context.Context) (int, error)
}

// Handoff performs the three-step escalation: tag the conversation, leave a
// private note for the operator, and reopen the conversation. Label and
// reopen failures are recorded but tolerated; a failed note aborts the rest.
func (s *Service) Handoff(ctx context.Context, req transport.HandoffRequest) transport.HandoffResult {
	if s.api == nil || !s.api.Configured() {
		return transport.HandoffResult{Error: "missing credential for the conversation API"}
	}

	conversationID, err := ResolveConversationID(req.ConversationID)
	if err != nil {
		return transport.HandoffResult{Error: err.Error()}
	}

	labels := mergeLabels(req.Labels)
	note := formatNote(req.Reason, req.Context)

	steps := []step{
		{
			name: "labels",
			run: func(ctx context.Context) (int, error) {
				return s.api.AddLabels(ctx, conversationID, labels)
			},
		},
		{
			name:           "note",
			abortOnFailure: true,
			gatesOK:        true,
			run: func(ctx context.Context) (int, error) {
				return s.api.CreateNote(ctx, conversationID, note)
			},
		},
		{
			name: "reopen",
			run: func(ctx context.Context) (int, error) {
				return s.api.Reopen(ctx, conversationID)
			},
		},
	}

	result := transport.HandoffResult{ConversationID: conversationID}
	for _, st := range steps {
		status, err := st.run(ctx)
		s.log.ExternalCall(st.name, status, err)

		outcome := transport.StepResult{Step: st.name, Status: status, OK: err == nil}
		if err != nil {
			outcome.Error = err.Error()
		}
		result.Steps = append(result.Steps, outcome)

		if st.gatesOK {
			result.OK = err == nil
		}
		if err != nil && st.abortOnFailure {
			return result
		}
	}

	s.log.Info("conversation handed off", "conversation_id", conversationID, "ok", result.OK)
	return result
}

// mergeLabels appends the mandatory handoff label and drops duplicates while
// keeping the caller's ordering.
func mergeLabels(labels []string) []string {
	merged := make([]string, 0, len(labels)+1)
	seen := make(map[string]struct{}, len(labels)+1)
	for _, label := range append(append([]string{}, labels...), handoffLabel) {
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		merged = append(merged, label)
	}
	return merged
}

func formatNote(reason, context string) string {
	return fmt.Sprintf("Handoff requested.\n\nReason: %s\n\nContext:\n%s", reason, context)
}
