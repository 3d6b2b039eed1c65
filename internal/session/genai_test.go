package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/vanlineshq/moveline/internal/agent"
)

func TestNewGenAIRequiresAPIKey(t *testing.T) {
	_, err := NewGenAI(context.Background(), "")
	require.Error(t, err)
}

func TestAppendMessageRoleMapping(t *testing.T) {
	g := &GenAI{model: defaultModel}

	require.NoError(t, g.AppendMessage(context.Background(), agent.RoleAssistant, "welcome"))
	require.NoError(t, g.AppendMessage(context.Background(), agent.RoleSystem, "steer"))
	require.NoError(t, g.AppendMessage(context.Background(), agent.RoleUser, "hello"))

	require.Len(t, g.history, 3)
	assert.Equal(t, string(genai.RoleModel), g.history[0].Role)
	assert.Equal(t, string(genai.RoleUser), g.history[1].Role, "system steering travels as user content")
	assert.Equal(t, string(genai.RoleUser), g.history[2].Role)
	assert.Equal(t, "welcome", g.history[0].Parts[0].Text)
}
