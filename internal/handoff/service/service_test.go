package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"commerce_agent_backend/internal/handoff/transport"
	"commerce_agent_backend/platform/logger"
)

type call struct {
	step           string
	conversationID int64
}

// fakeAPI records remote calls and fails the steps named in failSteps.
type fakeAPI struct {
	configured bool
	failSteps  map[string]bool
	calls      []call
	lastLabels []string
	lastNote   string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{configured: true, failSteps: make(map[string]bool)}
}

func (f *fakeAPI) Configured() bool {
	return f.configured
}

func (f *fakeAPI) outcome(step string, conversationID int64) (int, error) {
	f.calls = append(f.calls, call{step: step, conversationID: conversationID})
	if f.failSteps[step] {
		return 500, errors.New(step + " failed")
	}
	return 200, nil
}

func (f *fakeAPI) AddLabels(_ context.Context, conversationID int64, labels []string) (int, error) {
	f.lastLabels = labels
	return f.outcome("labels", conversationID)
}

func (f *fakeAPI) CreateNote(_ context.Context, conversationID int64, content string) (int, error) {
	f.lastNote = content
	return f.outcome("note", conversationID)
}

func (f *fakeAPI) Reopen(_ context.Context, conversationID int64) (int, error) {
	return f.outcome("reopen", conversationID)
}

func newTestService(api ConversationAPI) *Service {
	return New(api, logger.New("test"))
}

func validRequest() transport.HandoffRequest {
	return transport.HandoffRequest{
		ConversationID: "1234",
		Reason:         "customer asked for a human",
		Context:        "wants to change a delivery address",
	}
}

func TestHandoffMissingCredentialMakesNoCalls(t *testing.T) {
	api := newFakeAPI()
	api.configured = false
	svc := newTestService(api)

	result := svc.Handoff(context.Background(), validRequest())

	if result.OK {
		t.Fatal("expected ok=false")
	}
	if !strings.Contains(result.Error, "missing credential") {
		t.Fatalf("expected missing credential error, got %q", result.Error)
	}
	if len(api.calls) != 0 {
		t.Fatalf("expected zero remote calls, got %v", api.calls)
	}
}

func TestHandoffUnresolvableIDMakesNoCalls(t *testing.T) {
	api := newFakeAPI()
	svc := newTestService(api)

	req := validRequest()
	req.ConversationID = "no-digits"
	result := svc.Handoff(context.Background(), req)

	if result.OK {
		t.Fatal("expected ok=false")
	}
	if result.Error == "" {
		t.Fatal("expected an error message")
	}
	if len(api.calls) != 0 {
		t.Fatalf("expected zero remote calls, got %v", api.calls)
	}
}

func TestHandoffHappyPath(t *testing.T) {
	api := newFakeAPI()
	svc := newTestService(api)

	result := svc.Handoff(context.Background(), validRequest())

	if !result.OK {
		t.Fatalf("expected ok=true, got %+v", result)
	}
	if result.ConversationID != 1234 {
		t.Fatalf("expected resolved id 1234, got %d", result.ConversationID)
	}
	if len(result.Steps) != 3 {
		t.Fatalf("expected 3 step records, got %d", len(result.Steps))
	}
	wantOrder := []string{"labels", "note", "reopen"}
	for i, step := range result.Steps {
		if step.Step != wantOrder[i] {
			t.Fatalf("step %d: expected %s, got %s", i, wantOrder[i], step.Step)
		}
		if !step.OK || step.Status != 200 {
			t.Fatalf("step %s should have succeeded: %+v", step.Step, step)
		}
	}
}

func TestHandoffNoteFailureSkipsReopen(t *testing.T) {
	api := newFakeAPI()
	api.failSteps["note"] = true
	svc := newTestService(api)

	result := svc.Handoff(context.Background(), validRequest())

	if result.OK {
		t.Fatal("expected ok=false when note fails")
	}
	if len(result.Steps) != 2 {
		t.Fatalf("expected 2 step records, got %+v", result.Steps)
	}
	for _, c := range api.calls {
		if c.step == "reopen" {
			t.Fatal("reopen should not run after a failed note")
		}
	}
	noteStep := result.Steps[1]
	if noteStep.OK || noteStep.Status != 500 || noteStep.Error == "" {
		t.Fatalf("unexpected note outcome: %+v", noteStep)
	}
}

func TestHandoffLabelFailureIsTolerated(t *testing.T) {
	api := newFakeAPI()
	api.failSteps["labels"] = true
	svc := newTestService(api)

	result := svc.Handoff(context.Background(), validRequest())

	if !result.OK {
		t.Fatal("label failure should not affect the overall outcome")
	}
	if len(result.Steps) != 3 {
		t.Fatalf("expected all 3 steps to run, got %+v", result.Steps)
	}
	if result.Steps[0].OK {
		t.Fatal("label step should be recorded as failed")
	}
}

func TestHandoffReopenFailureIsTolerated(t *testing.T) {
	api := newFakeAPI()
	api.failSteps["reopen"] = true
	svc := newTestService(api)

	result := svc.Handoff(context.Background(), validRequest())

	if !result.OK {
		t.Fatal("reopen failure should not affect the overall outcome")
	}
	if result.Steps[2].OK {
		t.Fatal("reopen step should be recorded as failed")
	}
}

func TestHandoffMergesLabels(t *testing.T) {
	api := newFakeAPI()
	svc := newTestService(api)

	req := validRequest()
	req.Labels = []string{"vip", "handoff", "billing"}
	svc.Handoff(context.Background(), req)

	want := []string{"vip", "handoff", "billing"}
	if len(api.lastLabels) != len(want) {
		t.Fatalf("expected labels %v, got %v", want, api.lastLabels)
	}
	for i := range want {
		if api.lastLabels[i] != want[i] {
			t.Fatalf("expected labels %v, got %v", want, api.lastLabels)
		}
	}
}

func TestHandoffAppendsMandatoryLabel(t *testing.T) {
	api := newFakeAPI()
	svc := newTestService(api)

	req := validRequest()
	req.Labels = []string{"vip"}
	svc.Handoff(context.Background(), req)

	found := false
	for _, label := range api.lastLabels {
		if label == handoffLabel {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected %q label in %v", handoffLabel, api.lastLabels)
	}
}

func TestHandoffNoteContainsReasonAndContext(t *testing.T) {
	api := newFakeAPI()
	svc := newTestService(api)

	req := validRequest()
	svc.Handoff(context.Background(), req)

	if !strings.Contains(api.lastNote, req.Reason) {
		t.Fatalf("note should contain the reason: %q", api.lastNote)
	}
	if !strings.Contains(api.lastNote, req.Context) {
		t.Fatalf("note should contain the context: %q", api.lastNote)
	}
}
