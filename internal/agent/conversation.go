package agent

import (
	"context"
	"strings"
)

// Role is a conversation message role.
type Role string

const (
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
)

// Conversation is the session the router drives. The real implementation
// wraps the model transport; tests substitute a recorder. Every handled
// utterance ends with exactly one RequestTurn call.
type Conversation interface {
	AppendMessage(ctx context.Context, role Role, content string) error
	RequestTurn(ctx context.Context) (string, error)
}

// ContentPart is one piece of a possibly multimodal utterance.
type ContentPart struct {
	Text  string
	Image bool
}

// FlattenParts collapses structured utterance content to plain text for
// classification. Non-text parts become an "[image]" placeholder token.
func FlattenParts(parts []ContentPart) string {
	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		if p.Image {
			lines = append(lines, "[image]")
			continue
		}
		lines = append(lines, p.Text)
	}
	return strings.Join(lines, "\n")
}
