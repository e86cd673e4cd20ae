package scoring

import "fmt"

// Kind classifies a scoring failure. The kind drives caller behavior
// (whether to offer a retry); the raw upstream message is retained as Cause.
type Kind string

const (
	// KindTimeout means the scoring call exceeded its deadline; retryable
	KindTimeout Kind = "timeout"
	// KindServiceUnavailable means a transport-level failure; retryable
	KindServiceUnavailable Kind = "service-unavailable"
	// KindMalformedResponse means the service violated the result contract;
	// not retryable with the same input
	KindMalformedResponse Kind = "malformed-response"
	// KindInvalidRequest means the service rejected the request as built;
	// not retryable without changing input
	KindInvalidRequest Kind = "invalid-request"
	// KindCanceled means the caller abandoned the call before it finished;
	// never retryable
	KindCanceled Kind = "canceled"
)

// Error reports a scoring failure with its classification.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("scoring failed (%s): %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("scoring failed (%s): %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Retryable reports whether the failure is worth retrying with the same input.
func (e *Error) Retryable() bool {
	return e.Kind == KindTimeout || e.Kind == KindServiceUnavailable
}
