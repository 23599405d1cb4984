package service

import (
	"testing"

	"commerce_agent_backend/platform/apperr"
)

func TestResolveConversationID(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  int64
	}{
		{"bare number", "1234", 1234},
		{"bare number with spaces", "  42 ", 42},
		{"three number suffix", "wa-5-10-99", 99},
		{"colon separated suffix", "acct:7:inbox:12:conv:345", 345},
		{"last number fallback", "conversation-558", 558},
		{"number embedded mid string", "abc12def", 12},
	}

	for _, tc := range cases {
		got, err := ResolveConversationID(tc.input)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestResolveConversationIDNoDigits(t *testing.T) {
	_, err := ResolveConversationID("no-digits-here")
	if err == nil {
		t.Fatal("expected error for id without digits")
	}
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation kind, got %v", err)
	}
}
