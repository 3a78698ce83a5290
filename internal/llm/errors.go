package llm

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRateLimited indicates the remote service signaled quota exhaustion
// (HTTP 429 / RESOURCE_EXHAUSTED). Callers use errors.Is() to distinguish a
// "service busy" condition from generic failures, and the retry executor
// spends its budget only on this error.
var ErrRateLimited = errors.New("llm service rate limited")

// rateLimitPatterns are the rate-limit signatures across providers. Matching
// is on the error text since SDK error types differ per provider.
var rateLimitPatterns = []string{
	"429",
	"resource_exhausted",
	"resource exhausted",
	"rate limit",
	"quota exceeded",
	"too many requests",
}

// isRateLimitError detects the remote service's rate-limit signature.
func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, pattern := range rateLimitPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

// wrapRateLimit tags rate-limit failures with ErrRateLimited so callers can
// detect them with errors.Is. Other errors pass through unchanged.
func wrapRateLimit(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrRateLimited) {
		return err
	}
	if isRateLimitError(err) {
		return fmt.Errorf("%w: %s", ErrRateLimited, err)
	}
	return err
}

// IsRateLimited reports whether err carries the rate-limit signature.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}
