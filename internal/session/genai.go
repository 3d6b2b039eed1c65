// Package session adapts a Gemini chat to the agent's Conversation
// interface. The adapter owns the message history; the router only appends
// messages and requests turns.
package session

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/vanlineshq/moveline/internal/agent"
)

const defaultModel = "gemini-2.0-flash"

type GenAI struct {
	client  *genai.Client
	model   string
	logger  *slog.Logger
	history []*genai.Content
}

type Option func(*GenAI)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(g *GenAI) { g.logger = l }
}

// WithModel overrides the generation model.
func WithModel(model string) Option {
	return func(g *GenAI) {
		if model != "" {
			g.model = model
		}
	}
}

// NewGenAI creates a session backed by the Gemini API.
func NewGenAI(ctx context.Context, apiKey string, opts ...Option) (*GenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	g := &GenAI{
		client: client,
		model:  defaultModel,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// AppendMessage records a message in the session history. Assistant messages
// map to the model role; system steering content travels as user-role text,
// the call-center instructions themselves ride as the system instruction on
// every generation call.
func (g *GenAI) AppendMessage(ctx context.Context, role agent.Role, content string) error {
	genaiRole := genai.Role(genai.RoleUser)
	if role == agent.RoleAssistant {
		genaiRole = genai.RoleModel
	}
	g.history = append(g.history, genai.NewContentFromText(content, genaiRole))
	return nil
}

// RequestTurn asks the model for the next conversation turn and appends the
// reply to the history.
func (g *GenAI) RequestTurn(ctx context.Context) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, g.history, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(agent.Instructions, genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("generate turn: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("model returned no text")
	}
	g.history = append(g.history, genai.NewContentFromText(text, genai.RoleModel))
	g.logger.Debug("model turn generated", slog.Int("history_len", len(g.history)))
	return text, nil
}
