// Package apperr carries the closed set of error kinds the portal
// distinguishes. Callers branch on Kind, never on message content.
package apperr

import "errors"

// Kind classifies an error for the HTTP boundary.
type Kind int

const (
	// KindValidation covers caller mistakes: bad payloads, oversized
	// files, unknown enum values.
	KindValidation Kind = iota
	// KindRemote covers failures talking to the database, object
	// storage, or the search index. The provider message is surfaced
	// verbatim to the acting user.
	KindRemote
	// KindNotFound covers lookups that matched nothing.
	KindNotFound
)

// Error pairs a kind with a human-readable message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation builds a validation-kind error.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Remote wraps a provider failure, keeping the provider message visible.
func Remote(msg string, cause error) *Error {
	return &Error{Kind: KindRemote, Message: msg, Err: cause}
}

// NotFound builds a not-found-kind error.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// KindOf extracts the kind from err, defaulting to KindRemote for
// errors produced outside this package.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindRemote
}

// IsNotFound reports whether err carries KindNotFound.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
