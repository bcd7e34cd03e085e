package slack

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrorKind is the closed failure taxonomy shared by every command family.
type ErrorKind string

const (
	// KindAuth indicates an invalid, revoked, or expired credential.
	KindAuth ErrorKind = "auth"

	// KindPermission indicates the credential lacks a required scope or
	// is not allowed to access the entity.
	KindPermission ErrorKind = "permission"

	// KindNotFound indicates the channel or user does not exist.
	KindNotFound ErrorKind = "not_found"

	// KindRateLimited indicates throttling persisted past the retry budget.
	KindRateLimited ErrorKind = "rate_limited"

	// KindNetwork indicates a connection-level failure (reset, timeout).
	KindNetwork ErrorKind = "network"

	// KindCancelled indicates the caller aborted via context.
	KindCancelled ErrorKind = "cancelled"

	// KindUnknown is the fallback for anything unrecognized.
	KindUnknown ErrorKind = "unknown"
)

// Sentinel errors returned by the client.
var (
	// ErrMissingToken indicates no credential was provided.
	ErrMissingToken = errors.New("slack token not set")

	// ErrAuth indicates the service rejected the credential.
	ErrAuth = errors.New("slack authentication failed")

	// ErrPermission indicates the credential lacks a required scope.
	ErrPermission = errors.New("slack permission denied")

	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found in workspace")

	// ErrRateLimited indicates the retry budget was exhausted under
	// sustained throttling.
	ErrRateLimited = errors.New("slack rate limit exceeded")

	// ErrNetwork indicates a network connectivity problem.
	ErrNetwork = errors.New("network error communicating with slack")

	// ErrInvalidLimit indicates a non-positive result limit.
	ErrInvalidLimit = errors.New("result limit must be positive")

	// ErrInvalidResponse indicates an unparseable API response.
	ErrInvalidResponse = errors.New("invalid response from slack")
)

// APIError is a failure reported by the Slack API itself: a non-2xx
// status or an ok:false envelope with an error code string.
type APIError struct {
	StatusCode int
	Code       string // Slack error code, e.g. "invalid_auth", "channel_not_found"
	Method     string // API method that failed, e.g. "conversations.history"
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("slack API error calling %s: %s (status %d)", e.Method, e.Code, e.StatusCode)
	}
	return fmt.Sprintf("slack API error calling %s: status %d", e.Method, e.StatusCode)
}

// ClassifiedError is the terminal error value returned to the command
// layer: exactly one taxonomy kind plus the original message.
type ClassifiedError struct {
	Kind       ErrorKind     `json:"kind"`
	Message    string        `json:"message"`
	RetryAfter time.Duration `json:"retry_after,omitempty"`
}

func (e *ClassifiedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Slack error-code vocabulary, grouped by taxonomy kind.
var (
	authCodes = map[string]bool{
		"invalid_auth":     true,
		"not_authed":       true,
		"token_revoked":    true,
		"token_expired":    true,
		"account_inactive": true,
	}
	permissionCodes = map[string]bool{
		"missing_scope":          true,
		"not_allowed_token_type": true,
		"access_denied":          true,
		"restricted_action":      true,
		"not_in_channel":         true,
		"no_permission":          true,
		"ekm_access_denied":      true,
	}
	notFoundCodes = map[string]bool{
		"channel_not_found": true,
		"user_not_found":    true,
		"users_not_found":   true,
		"team_not_found":    true,
	}
)

// Classify maps any failure into exactly one ClassifiedError. It is
// total: unrecognized input falls through to KindUnknown with the
// original message preserved.
func Classify(err error) *ClassifiedError {
	if err == nil {
		return nil
	}

	// Already classified; pass through unchanged.
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &ClassifiedError{Kind: KindCancelled, Message: err.Error()}
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return classifyAPIError(apiErr)
	}

	switch {
	case errors.Is(err, ErrAuth), errors.Is(err, ErrMissingToken):
		return &ClassifiedError{Kind: KindAuth, Message: err.Error()}
	case errors.Is(err, ErrPermission):
		return &ClassifiedError{Kind: KindPermission, Message: err.Error()}
	case errors.Is(err, ErrNotFound):
		return &ClassifiedError{Kind: KindNotFound, Message: err.Error()}
	case errors.Is(err, ErrRateLimited):
		return &ClassifiedError{Kind: KindRateLimited, Message: err.Error()}
	case errors.Is(err, ErrNetwork):
		return &ClassifiedError{Kind: KindNetwork, Message: err.Error()}
	}

	return &ClassifiedError{Kind: KindUnknown, Message: err.Error()}
}

func classifyAPIError(e *APIError) *ClassifiedError {
	switch {
	case authCodes[e.Code]:
		return &ClassifiedError{Kind: KindAuth, Message: e.Error()}
	case permissionCodes[e.Code]:
		return &ClassifiedError{Kind: KindPermission, Message: e.Error()}
	case notFoundCodes[e.Code]:
		return &ClassifiedError{Kind: KindNotFound, Message: e.Error()}
	case e.Code == "ratelimited" || e.StatusCode == 429:
		return &ClassifiedError{Kind: KindRateLimited, Message: e.Error(), RetryAfter: e.RetryAfter}
	case e.StatusCode == 401 || e.StatusCode == 403:
		return &ClassifiedError{Kind: KindAuth, Message: e.Error()}
	}
	return &ClassifiedError{Kind: KindUnknown, Message: e.Error()}
}

// IsNotFound reports whether err classifies as a missing entity.
func IsNotFound(err error) bool {
	ce := Classify(err)
	return ce != nil && ce.Kind == KindNotFound
}

// IsAuthError reports whether err classifies as a credential problem.
func IsAuthError(err error) bool {
	ce := Classify(err)
	return ce != nil && ce.Kind == KindAuth
}

// IsRateLimited reports whether err classifies as exhausted throttling.
func IsRateLimited(err error) bool {
	ce := Classify(err)
	return ce != nil && ce.Kind == KindRateLimited
}

// IsCancelled reports whether err classifies as a caller-initiated abort.
func IsCancelled(err error) bool {
	ce := Classify(err)
	return ce != nil && ce.Kind == KindCancelled
}

// isThrottle reports whether err is a retryable throttling signal
// (as opposed to an exhausted one).
func isThrottle(err error) (time.Duration, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == 429 || apiErr.Code == "ratelimited" {
			return apiErr.RetryAfter, true
		}
	}
	return 0, false
}

// isTransient reports whether err is a connection-level failure worth
// one immediate retry.
func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return errors.Is(err, ErrNetwork)
}
