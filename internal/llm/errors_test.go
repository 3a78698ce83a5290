package llm

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsRateLimitError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		limited bool
	}{
		{"nil error", nil, false},
		{"generic error", errors.New("connection reset"), false},
		{"status 429", errors.New("googleapi: Error 429: quota limit"), true},
		{"resource exhausted", errors.New("rpc error: code = ResourceExhausted desc = RESOURCE_EXHAUSTED"), true},
		{"rate limit text", errors.New("rate limit exceeded"), true},
		{"quota exceeded", errors.New("quota exceeded for model"), true},
		{"too many requests", errors.New("HTTP 429 Too Many Requests"), true},
		{"wrapped", fmt.Errorf("generate: %w", errors.New("RESOURCE_EXHAUSTED")), true},
		{"404 not limited", errors.New("HTTP 404: not found"), false},
		{"timeout not limited", errors.New("context deadline exceeded"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isRateLimitError(tt.err)
			if got != tt.limited {
				t.Errorf("isRateLimitError(%v) = %v, want %v", tt.err, got, tt.limited)
			}
		})
	}
}

func TestWrapRateLimit(t *testing.T) {
	t.Run("tags rate-limit error", func(t *testing.T) {
		err := errors.New("Error 429: resource exhausted")
		wrapped := wrapRateLimit(err)
		if !errors.Is(wrapped, ErrRateLimited) {
			t.Errorf("expected wrapped error to match ErrRateLimited")
		}
		if !IsRateLimited(wrapped) {
			t.Errorf("IsRateLimited should report true")
		}
	})

	t.Run("passes through other errors", func(t *testing.T) {
		err := errors.New("network timeout")
		result := wrapRateLimit(err)
		if errors.Is(result, ErrRateLimited) {
			t.Errorf("generic error should not be tagged")
		}
		if result != err {
			t.Errorf("expected original error returned, got %v", result)
		}
	})

	t.Run("does not double wrap", func(t *testing.T) {
		err := fmt.Errorf("%w: 429", ErrRateLimited)
		if got := wrapRateLimit(err); got != err {
			t.Errorf("already-tagged error should pass through, got %v", got)
		}
	})

	t.Run("nil error", func(t *testing.T) {
		if got := wrapRateLimit(nil); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})
}
