// FILE: internal/pkg/apierror/apierror.go
package apierror

import (
	"errors"
	"fmt"
)

// Kind classifies every error that crosses a component boundary. The remote
// transport normalizes loose backend payloads into exactly one kind before
// any service logic sees them.
type Kind string

const (
	// KindNetwork marks transient transport failures. Callers may retry.
	KindNetwork Kind = "network_failure"
	// KindAuthRejected marks an invalid/expired credential. Handled once,
	// centrally (forced logout), then re-raised so the caller can redirect.
	KindAuthRejected Kind = "auth_rejected"
	// KindValidation marks input the backend (or client-side validation)
	// rejected. Not retryable without changing the input.
	KindValidation Kind = "validation_failure"
	// KindRemote marks non-auth, non-validation rejections from the backend
	// (conflicts, not-found, unavailable features).
	KindRemote Kind = "remote_failure"
	// KindPartialEnrichment marks a failed or incomplete summarization
	// batch. Non-fatal: logged, never surfaced as a user-facing error.
	KindPartialEnrichment Kind = "partial_enrichment"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of err, or "" when err carries no kind.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// MessageOf returns the normalized message, falling back to err.Error()
// for unclassified errors.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
