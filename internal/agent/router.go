// Package agent routes customer utterances. Each utterance is classified as
// a lookup, a general query, or field collection, resolved against the
// record store, and handed to the conversation session for the next model
// turn. Failures never escape a turn; they are converted to one spoken
// message at the HandleUtterance boundary.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vanlineshq/moveline/internal/metrics"
	"github.com/vanlineshq/moveline/internal/request"
	"github.com/vanlineshq/moveline/internal/store"
)

// Records is the slice of the store the router reads. Writes happen through
// the tool surface the model calls, not through the router.
type Records interface {
	Get(requestID string) (*store.MovingRequest, error)
}

type Router struct {
	records   Records
	conv      Conversation
	logger    *slog.Logger
	requestID string
	sessionID string
}

type RouterOption func(*Router)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) RouterOption {
	return func(r *Router) { r.logger = l }
}

// WithRequestID overrides the minted session request id. Tests use this to
// bind the session to a known record.
func WithRequestID(id string) RouterOption {
	return func(r *Router) { r.requestID = id }
}

// NewRouter binds a router to a conversation. The 6-digit request id minted
// here identifies the session's record for its whole lifetime.
func NewRouter(records Records, conv Conversation, opts ...RouterOption) *Router {
	r := &Router{
		records:   records,
		conv:      conv,
		logger:    slog.Default(),
		requestID: request.NewRequestID(),
		sessionID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With(
		slog.String("session_id", r.sessionID),
		slog.String("request_id", r.requestID))
	return r
}

// RequestID returns the id bound to this session.
func (r *Router) RequestID() string {
	return r.requestID
}

// Start opens the conversation with the welcome message and requests the
// first model turn.
func (r *Router) Start(ctx context.Context) (string, error) {
	if err := r.conv.AppendMessage(ctx, RoleAssistant, WelcomeMessage); err != nil {
		return "", fmt.Errorf("append welcome message: %w", err)
	}
	return r.conv.RequestTurn(ctx)
}

// turn is the resolved outcome of routing one utterance: the message to
// append and the role it carries. Exactly one turn comes out of every
// utterance, including failure paths.
type turn struct {
	role    Role
	content string
}

// HandleUtterance routes one finalized customer utterance end-to-end and
// returns the model's reply. Classification, store access, and message
// shaping happen synchronously; the postcondition of every path is a single
// AppendMessage followed by a single RequestTurn.
func (r *Router) HandleUtterance(ctx context.Context, utterance string) (string, error) {
	t := r.route(utterance)
	if err := r.conv.AppendMessage(ctx, t.role, t.content); err != nil {
		return "", fmt.Errorf("append message: %w", err)
	}
	reply, err := r.conv.RequestTurn(ctx)
	if err != nil {
		return "", fmt.Errorf("request turn: %w", err)
	}
	return reply, nil
}

func (r *Router) route(utterance string) turn {
	// Lookup triggers win outright; completeness is only consulted when no
	// trigger matched, so a lookup never depends on the session record.
	if hasLookupTrigger(utterance) {
		r.observe(IntentLookup)
		return r.lookup(utterance)
	}

	complete, err := r.sessionComplete()
	if err != nil {
		return r.storageFailure("completeness check", err)
	}

	if complete {
		r.observe(IntentQuery)
		// The model already has the full context; forward verbatim.
		return turn{role: RoleUser, content: utterance}
	}

	r.observe(IntentCollect)
	return turn{role: RoleSystem, content: collectInstruction(utterance, r.missingFields())}
}

func (r *Router) observe(intent Intent) {
	metrics.UtterancesClassified.WithLabelValues(string(intent)).Inc()
	r.logger.Info("classified utterance", slog.String("intent", string(intent)))
}

func (r *Router) lookup(utterance string) turn {
	id, ok := ExtractRequestID(utterance)
	if !ok {
		// No 6-digit token: re-prompt rather than guess an id.
		r.logger.Info("lookup without request id, re-prompting")
		return turn{role: RoleSystem, content: requestIDPrompt}
	}

	rec, err := r.records.Get(id)
	if err != nil {
		return r.storageFailure("lookup", err)
	}
	if rec == nil {
		return turn{role: RoleSystem, content: fmt.Sprintf("Looking up request ID: %s\n%s", id, request.NotFoundMessage)}
	}
	return turn{role: RoleSystem, content: fmt.Sprintf("Looking up request ID: %s\n%s", id, request.FormatSummary(rec))}
}

func (r *Router) sessionComplete() (bool, error) {
	rec, err := r.records.Get(r.requestID)
	if err != nil {
		return false, err
	}
	return request.IsComplete(rec), nil
}

func (r *Router) missingFields() []string {
	rec, err := r.records.Get(r.requestID)
	if err != nil {
		// Collection proceeds from the top when the record is unreadable.
		rec = nil
	}
	return request.MissingFields(rec)
}

func (r *Router) storageFailure(op string, err error) turn {
	if errors.Is(err, store.ErrStorageUnavailable) {
		r.logger.Error("storage unavailable", slog.String("op", op), slog.String("error", err.Error()))
	} else {
		r.logger.Error("store call failed", slog.String("op", op), slog.String("error", err.Error()))
	}
	return turn{role: RoleSystem, content: storageApology}
}
