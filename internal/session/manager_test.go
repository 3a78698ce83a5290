package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/tmc/langchaingo/llms"

	"github.com/cosmusapp/cosmus-go/internal/llm"
	"github.com/cosmusapp/cosmus-go/internal/models"
	"github.com/cosmusapp/cosmus-go/internal/retry"
)

// fakeModel scripts the remote model handle.
type fakeModel struct {
	replies   []string
	errs      []error
	calls     int
	lastMsgs  []llms.MessageContent
	promptErr error
	promptOut string
}

func (f *fakeModel) Chat(_ context.Context, messages []llms.MessageContent) (string, error) {
	f.lastMsgs = messages
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.replies) {
		return f.replies[i], nil
	}
	return "ok", nil
}

func (f *fakeModel) Prompt(_ context.Context, _ string, _ float64) (string, error) {
	f.calls++
	if f.promptErr != nil {
		return "", f.promptErr
	}
	return f.promptOut, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fastPolicy() retry.Policy {
	return retry.Policy{MaxAttempts: 3, InitialDelay: time.Millisecond, Multiplier: 2.0}
}

func TestGet_SameIdentityReturnsSameSession(t *testing.T) {
	m := NewManager(&fakeModel{}, fastPolicy(), testLogger())

	a := m.Get("Alice")
	b := m.Get("Alice")
	if a != b {
		t.Errorf("Get with same identity returned a different session")
	}
	if m.State() != StateBound {
		t.Errorf("State = %v, want StateBound", m.State())
	}
}

func TestGet_IdentityChangeRebuildsSession(t *testing.T) {
	m := NewManager(&fakeModel{}, fastPolicy(), testLogger())

	a := m.Get("Alice")
	b := m.Get("Bruno")
	if a == b {
		t.Fatalf("Get with new identity returned the old session")
	}
	if !strings.Contains(b.Instruction(), "Bruno") {
		t.Errorf("new session instruction does not reflect new identity")
	}
	if strings.Contains(b.Instruction(), "Alice") {
		t.Errorf("new session instruction still mentions old identity")
	}
}

func TestGet_EmptyIdentityUsesGenericAddress(t *testing.T) {
	m := NewManager(&fakeModel{}, fastPolicy(), testLogger())

	s := m.Get("")
	if !strings.Contains(s.Instruction(), "jovem explorador") {
		t.Errorf("anonymous session should address the generic explorer")
	}
}

func TestGet_RehydratesHistory(t *testing.T) {
	fake := &fakeModel{replies: []string{"resposta"}}
	m := NewManager(fake, fastPolicy(), testLogger())

	history := []models.ConversationTurn{
		{Role: models.RoleUser, Text: "O que é Marte?"},
		{Role: models.RoleAssistant, Text: "O que você acha que dá a cor de Marte?"},
		{Role: "system", Text: "should be skipped"},
		{Role: models.RoleUser, Text: ""},
	}

	s := m.Get("Alice", history...)
	if s.Turns() != 2 {
		t.Fatalf("Turns() = %d, want 2 replayed turns", s.Turns())
	}

	if _, err := m.Send(context.Background(), s, "É vermelho!"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	// system instruction + 2 replayed + new user turn
	if len(fake.lastMsgs) != 4 {
		t.Fatalf("model saw %d messages, want 4", len(fake.lastMsgs))
	}
	if fake.lastMsgs[0].Role != llms.ChatMessageTypeSystem {
		t.Errorf("first message role = %v, want system", fake.lastMsgs[0].Role)
	}
	if fake.lastMsgs[2].Role != llms.ChatMessageTypeAI {
		t.Errorf("replayed assistant turn role = %v, want AI", fake.lastMsgs[2].Role)
	}
}

func TestSend_DecodesReply(t *testing.T) {
	fake := &fakeModel{replies: []string{`Olá! [SUGESTÕES]: ["A","B"]`}}
	m := NewManager(fake, fastPolicy(), testLogger())
	s := m.Get("Alice")

	got, err := m.Send(context.Background(), s, "Oi!")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if got.DisplayText != "Olá!" {
		t.Errorf("DisplayText = %q", got.DisplayText)
	}
	if len(got.Suggestions) != 2 {
		t.Errorf("Suggestions = %v", got.Suggestions)
	}
}

func TestSend_GrowsSessionContext(t *testing.T) {
	fake := &fakeModel{replies: []string{"primeira", "segunda"}}
	m := NewManager(fake, fastPolicy(), testLogger())
	s := m.Get("Alice")

	if _, err := m.Send(context.Background(), s, "um"); err != nil {
		t.Fatal(err)
	}
	if s.Turns() != 2 {
		t.Errorf("Turns() = %d after one send, want 2", s.Turns())
	}

	if _, err := m.Send(context.Background(), s, "dois"); err != nil {
		t.Fatal(err)
	}
	// instruction + 2 prior turns + new user turn
	if len(fake.lastMsgs) != 4 {
		t.Errorf("second send carried %d messages, want 4", len(fake.lastMsgs))
	}
}

func TestSend_RetriesRateLimit(t *testing.T) {
	limited := fmt.Errorf("%w: 429", llm.ErrRateLimited)
	fake := &fakeModel{
		errs:    []error{limited, limited},
		replies: []string{"", "", "depois da tempestade"},
	}
	m := NewManager(fake, fastPolicy(), testLogger())
	s := m.Get("Alice")

	got, err := m.Send(context.Background(), s, "oi")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if got.DisplayText != "depois da tempestade" {
		t.Errorf("DisplayText = %q", got.DisplayText)
	}
	if fake.calls != 3 {
		t.Errorf("model called %d times, want 3", fake.calls)
	}
}

func TestSend_FailureDoesNotGrowContext(t *testing.T) {
	boom := errors.New("boom")
	fake := &fakeModel{errs: []error{boom}}
	m := NewManager(fake, fastPolicy(), testLogger())
	s := m.Get("Alice")

	_, err := m.Send(context.Background(), s, "oi")
	if !errors.Is(err, boom) {
		t.Fatalf("Send() error = %v, want boom", err)
	}
	if s.Turns() != 0 {
		t.Errorf("failed send grew session context: %d turns", s.Turns())
	}
}

func TestSend_InFlightRebindUsesCapturedSession(t *testing.T) {
	fake := &fakeModel{replies: []string{"resposta"}}
	m := NewManager(fake, fastPolicy(), testLogger())
	old := m.Get("Alice")

	// Rebind before the (conceptually in-flight) send completes. The send
	// against the captured session must still use Alice's persona and append
	// to the old session only.
	_ = m.Get("Bruno")

	if _, err := m.Send(context.Background(), old, "oi"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	var sysText string
	for _, p := range fake.lastMsgs[0].Parts {
		if tp, ok := p.(llms.TextContent); ok {
			sysText = tp.Text
		}
	}
	if !strings.Contains(sysText, "Alice") {
		t.Errorf("in-flight send did not use the captured session's persona")
	}
	if m.Get("Bruno").Turns() != 0 {
		t.Errorf("rebind target session grew from the in-flight send")
	}
}

func TestGreet_DecodesSuggestions(t *testing.T) {
	fake := &fakeModel{promptOut: `Bem-vindo a bordo! [SUGESTÕES]: ["Um", "Dois", "Três"]`}
	m := NewManager(fake, fastPolicy(), testLogger())

	got := m.Greet(context.Background())
	if got.DisplayText != "Bem-vindo a bordo!" {
		t.Errorf("DisplayText = %q", got.DisplayText)
	}
	if len(got.Suggestions) != 3 {
		t.Errorf("Suggestions = %v", got.Suggestions)
	}
}

func TestGreet_FallsBackOnFailure(t *testing.T) {
	t.Run("generic failure", func(t *testing.T) {
		fake := &fakeModel{promptErr: errors.New("boom")}
		m := NewManager(fake, fastPolicy(), testLogger())

		got := m.Greet(context.Background())
		if got.DisplayText == "" || len(got.Suggestions) == 0 {
			t.Errorf("fallback greeting is unusable: %+v", got)
		}
	})

	t.Run("rate limited", func(t *testing.T) {
		fake := &fakeModel{promptErr: fmt.Errorf("%w: 429", llm.ErrRateLimited)}
		m := NewManager(fake, fastPolicy(), testLogger())

		got := m.Greet(context.Background())
		if !strings.Contains(got.DisplayText, "ocupados") {
			t.Errorf("rate-limited greeting should use the busy message, got %q", got.DisplayText)
		}
	})
}

func TestFallbackReply(t *testing.T) {
	busy := FallbackReply(fmt.Errorf("%w: 429", llm.ErrRateLimited))
	if !strings.Contains(busy.DisplayText, "congestionada") {
		t.Errorf("rate-limited fallback = %q", busy.DisplayText)
	}

	generic := FallbackReply(errors.New("boom"))
	if !strings.Contains(generic.DisplayText, "interferência") {
		t.Errorf("generic fallback = %q", generic.DisplayText)
	}
}
