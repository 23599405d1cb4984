package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"commerce_agent_backend/platform/logger"
)

type stubConfig struct {
	url       string
	accountID string
	token     string
}

func (s stubConfig) GetConversationAPIURL() string    { return s.url }
func (s stubConfig) GetConversationAccountID() string { return s.accountID }
func (s stubConfig) GetConversationAPIToken() string  { return s.token }

func newTestClient(url string) *Client {
	cfg := stubConfig{url: url, accountID: "9", token: "secret"}
	return NewClient(cfg, logger.New("test"))
}

func TestNewClientUnconfigured(t *testing.T) {
	c := NewClient(stubConfig{}, logger.New("test"))
	if c != nil {
		t.Fatal("expected nil client without a base URL")
	}
	if c.Configured() {
		t.Fatal("nil client should report unconfigured")
	}
}

func TestConfiguredRequiresToken(t *testing.T) {
	c := NewClient(stubConfig{url: "http://api.example"}, logger.New("test"))
	if c.Configured() {
		t.Fatal("client without a token should report unconfigured")
	}
}

func TestAddLabels(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody labelsRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	status, err := c.AddLabels(context.Background(), 42, []string{"vip", "handoff"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if gotPath != "POST /api/v1/accounts/9/conversations/42/labels" {
		t.Fatalf("unexpected request: %s", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("unexpected auth header: %s", gotAuth)
	}
	if len(gotBody.Labels) != 2 || gotBody.Labels[1] != "handoff" {
		t.Fatalf("unexpected labels payload: %v", gotBody.Labels)
	}
}

func TestCreateNoteIsPrivate(t *testing.T) {
	var gotPath string
	var gotBody noteRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if _, err := c.CreateNote(context.Background(), 42, "operator note"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "POST /api/v1/accounts/9/conversations/42/messages" {
		t.Fatalf("unexpected request: %s", gotPath)
	}
	if !gotBody.Private || gotBody.Content != "operator note" {
		t.Fatalf("unexpected note payload: %+v", gotBody)
	}
}

func TestReopen(t *testing.T) {
	var gotPath string
	var gotBody statusRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if _, err := c.Reopen(context.Background(), 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "PATCH /api/v1/accounts/9/conversations/42" {
		t.Fatalf("unexpected request: %s", gotPath)
	}
	if gotBody.Status != "open" {
		t.Fatalf("expected status=open, got %q", gotBody.Status)
	}
}

func TestErrorStatusIncludesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("invalid token"))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	status, err := c.Reopen(context.Background(), 42)
	if err == nil {
		t.Fatal("expected error for non-success status")
	}
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
}

func TestNetworkErrorReturnsZeroStatus(t *testing.T) {
	c := newTestClient("http://127.0.0.1:1")
	status, err := c.Reopen(context.Background(), 42)
	if err == nil {
		t.Fatal("expected network error")
	}
	if status != 0 {
		t.Fatalf("expected zero status, got %d", status)
	}
}
