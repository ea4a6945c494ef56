// Package errs defines the error taxonomy shared by the extraction pipeline.
// Every public entry point either returns a structurally valid result or
// exactly one error of a known kind.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an error by what the caller can do about it.
type Kind int

const (
	// KindUnknown is the zero value; errors without a kind map here.
	KindUnknown Kind = iota
	// KindValidation marks malformed, oversized, or unsupported input,
	// detected before any network or heavy computation.
	KindValidation
	// KindUnavailableContent marks content that genuinely does not exist or
	// is inaccessible (private video, disabled captions, empty feed). Not
	// retryable.
	KindUnavailableContent
	// KindTransientIO marks a network, timeout, or service failure that might
	// succeed on retry.
	KindTransientIO
	// KindMalformedResponse marks upstream data that failed structural
	// validation after secondary parse strategies were exhausted.
	KindMalformedResponse
	// KindInternalExtraction marks a defect inside the heuristic algorithm
	// itself, as opposed to upstream failures.
	KindInternalExtraction
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnavailableContent:
		return "unavailable_content"
	case KindTransientIO:
		return "transient_io"
	case KindMalformedResponse:
		return "malformed_response"
	case KindInternalExtraction:
		return "internal_extraction"
	default:
		return "unknown"
	}
}

// Error is a classified error with an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error { return e.Err }

// New returns a classified error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap returns a classified error wrapping cause. A nil cause is allowed.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: cause}
}

// Validationf returns a KindValidation error.
func Validationf(format string, args ...any) *Error {
	return New(KindValidation, fmt.Sprintf(format, args...))
}

// Unavailablef returns a KindUnavailableContent error.
func Unavailablef(format string, args ...any) *Error {
	return New(KindUnavailableContent, fmt.Sprintf(format, args...))
}

// Transientf returns a KindTransientIO error wrapping cause.
func Transientf(cause error, format string, args ...any) *Error {
	return Wrap(KindTransientIO, cause, format, args...)
}

// Malformedf returns a KindMalformedResponse error wrapping cause.
func Malformedf(cause error, format string, args ...any) *Error {
	return Wrap(KindMalformedResponse, cause, format, args...)
}

// Internalf returns a KindInternalExtraction error wrapping cause.
func Internalf(cause error, format string, args ...any) *Error {
	return Wrap(KindInternalExtraction, cause, format, args...)
}

// IsKind reports whether err or any error in its chain carries the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// KindOf returns the kind of the first classified error in the chain, or
// KindUnknown when none is present.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
