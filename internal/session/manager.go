// Package session owns the single live conversational context bound to an
// explorer identity and routes turns through the retry executor and the
// reply decoder.
package session

import (
	"context"
	"log/slog"

	"github.com/tmc/langchaingo/llms"

	"github.com/cosmusapp/cosmus-go/internal/llm"
	"github.com/cosmusapp/cosmus-go/internal/models"
	"github.com/cosmusapp/cosmus-go/internal/reply"
	"github.com/cosmusapp/cosmus-go/internal/retry"
)

// greetingTemperature is higher than the chat temperature so repeated
// greetings stay varied.
const greetingTemperature = 0.95

// ChatModel is the remote model handle the manager sends turns through.
// *llm.Model implements it; tests substitute fakes.
type ChatModel interface {
	Chat(ctx context.Context, messages []llms.MessageContent) (string, error)
	Prompt(ctx context.Context, prompt string, temperature float64) (string, error)
}

// State is the manager's binding state.
type State int

const (
	// StateUninitialized means no session has been created yet.
	StateUninitialized State = iota
	// StateBound means a live session exists for a specific identity.
	StateBound
	// StateInvalidated is the transient state between discarding a session
	// whose identity changed and binding the replacement.
	StateInvalidated
)

// Session is the live conversational context: an identity, the persona
// instruction derived from it, and the client-tracked message history sent to
// the remote model on every turn. Sessions are created only by Manager.Get.
type Session struct {
	identity    string
	instruction string
	messages    []llms.MessageContent
}

// Identity returns the explorer name this session was built for (may be empty).
func (s *Session) Identity() string { return s.identity }

// Instruction returns the persona instruction bound to this session.
func (s *Session) Instruction() string { return s.instruction }

// Turns returns the number of conversational messages tracked so far,
// excluding the persona instruction.
func (s *Session) Turns() int { return len(s.messages) - 1 }

func newSession(identity string, history []models.ConversationTurn) *Session {
	instruction := SystemInstruction(identity)
	messages := make([]llms.MessageContent, 0, len(history)+1)
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, instruction))

	// Replay only user/assistant text turns; media, suggestions and other
	// decorations are display-only and are not sent to the remote model.
	for _, turn := range history {
		if turn.Text == "" {
			continue
		}
		switch turn.Role {
		case models.RoleUser:
			messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, turn.Text))
		case models.RoleAssistant:
			messages = append(messages, llms.TextParts(llms.ChatMessageTypeAI, turn.Text))
		}
	}

	return &Session{
		identity:    identity,
		instruction: instruction,
		messages:    messages,
	}
}

// Manager holds the single live session. It is an explicit caller-held handle:
// no package-level state, no hidden globals. Not safe for concurrent use; the
// conversation flow is strictly sequential.
type Manager struct {
	model  ChatModel
	policy retry.Policy
	logger *slog.Logger

	state State
	live  *Session
}

// NewManager creates a session manager around the given model handle.
func NewManager(model ChatModel, policy retry.Policy, logger *slog.Logger) *Manager {
	return &Manager{
		model:  model,
		policy: policy,
		logger: logger,
		state:  StateUninitialized,
	}
}

// State returns the current binding state.
func (m *Manager) State() State { return m.state }

// Get returns the live session unchanged when its bound identity equals the
// requested one. Otherwise the old session is discarded and a new one is
// built with a persona instruction regenerated for the new identity, seeded
// with the supplied history so context is not lost. A rebind never affects a
// Send already in flight: that call completes against the session instance it
// captured at start.
func (m *Manager) Get(identity string, history ...models.ConversationTurn) *Session {
	if m.state == StateBound && m.live != nil && m.live.identity == identity {
		return m.live
	}

	if m.state == StateBound {
		m.state = StateInvalidated
		m.logger.Info("discarding session, identity changed",
			"old_identity", m.live.identity,
			"new_identity", identity,
		)
	}

	m.live = newSession(identity, history)
	m.state = StateBound
	m.logger.Debug("session bound",
		"identity", identity,
		"replayed_turns", m.live.Turns(),
	)
	return m.live
}

// Send forwards one user turn through the retry executor to the session's
// remote handle and decodes the raw reply. On success the session's tracked
// context grows by the user turn and the assistant turn. On failure the error
// is returned as-is so the caller can distinguish a rate-limited service
// (llm.IsRateLimited) from a generic failure; FallbackReply converts either
// into a canned reply.
func (m *Manager) Send(ctx context.Context, s *Session, text string) (models.StructuredReply, error) {
	userTurn := llms.TextParts(llms.ChatMessageTypeHuman, text)
	outgoing := append(append([]llms.MessageContent{}, s.messages...), userTurn)

	raw, err := retry.Do(ctx, m.policy, llm.IsRateLimited, m.logger, func(ctx context.Context) (string, error) {
		return m.model.Chat(ctx, outgoing)
	})
	if err != nil {
		return models.StructuredReply{}, err
	}

	s.messages = append(s.messages, userTurn, llms.TextParts(llms.ChatMessageTypeAI, raw))

	return reply.Decode(raw), nil
}

// Greet generates the opening welcome message. It never fails: when the
// remote call does, a canned greeting is returned instead, matched to the
// failure kind.
func (m *Manager) Greet(ctx context.Context) models.StructuredReply {
	raw, err := retry.Do(ctx, m.policy, llm.IsRateLimited, m.logger, func(ctx context.Context) (string, error) {
		return m.model.Prompt(ctx, greetingPrompt, greetingTemperature)
	})
	if err != nil {
		m.logger.Warn("greeting generation failed, using fallback", "error", err)
		return fallbackGreeting(err)
	}

	decoded := reply.Decode(raw)
	// The greeting prompt forbids all other directives; keep only the text
	// and suggestions in case the model ignored that.
	return models.StructuredReply{
		DisplayText: decoded.DisplayText,
		Suggestions: decoded.Suggestions,
	}
}
