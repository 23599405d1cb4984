package service

import (
	"regexp"
	"strconv"
	"strings"

	"commerce_agent_backend/platform/apperr"
)

var (
	// Decorated ids embed account, inbox and conversation numbers; the
	// conversation id is the last of the three.
	threeNumberSuffix = regexp.MustCompile(`(\d+)\D+(\d+)\D+(\d+)$`)
	anyNumber         = regexp.MustCompile(`\d+`)
)

// ResolveConversationID turns a caller-supplied conversation reference into
// the bare numeric id the external API expects. A plain number is used as is.
// Decorated ids are decoded by taking the last number of a trailing
// three-number group, falling back to the last number found anywhere.
func ResolveConversationID(raw string) (int64, error) {
	trimmed := strings.TrimSpace(raw)

	if id, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return id, nil
	}

	if m := threeNumberSuffix.FindStringSubmatch(trimmed); m != nil {
		return strconv.ParseInt(m[3], 10, 64)
	}

	if matches := anyNumber.FindAllString(trimmed, -1); len(matches) > 0 {
		return strconv.ParseInt(matches[len(matches)-1], 10, 64)
	}

	return 0, apperr.Validation("invalid conversation id: no numeric identifier found")
}
