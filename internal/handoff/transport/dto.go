// Package transport defines request and response shapes for handoff tools.
package transport

// HandoffRequest carries the arguments for escalating a conversation to a
// human operator.
type HandoffRequest struct {
	ConversationID string   `json:"conversation_id" validate:"required"`
	Reason         string   `json:"reason" validate:"required"`
	Context        string   `json:"context" validate:"required,min=1,max=4000"`
	Labels         []string `json:"labels,omitempty" validate:"omitempty,dive,required"`
}

// StepResult records the outcome of one remote call in the handoff sequence.
type StepResult struct {
	Step   string `json:"step"`
	Status int    `json:"status,omitempty"`
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
}

// HandoffResult is the final outcome of a handoff attempt. OK is true once
// the private note was delivered, regardless of label or reopen outcomes.
type HandoffResult struct {
	ConversationID int64        `json:"conversation_id,omitempty"`
	Steps          []StepResult `json:"steps,omitempty"`
	OK             bool         `json:"ok"`
	Error          string       `json:"error,omitempty"`
}
