// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error for the HTTP layer
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindInvalidState
	KindConflict
	KindStorage
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindInvalidState:
		return "invalid_state"
	case KindConflict:
		return "conflict"
	case KindStorage:
		return "storage"
	case KindUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Error is a classified error with a client-safe message
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports malformed or missing input
func Validation(msg string) error {
	return &Error{Kind: KindValidation, Msg: msg}
}

// NotFound reports a missing entity
func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

// InvalidState reports an operation that is not allowed in the entity's current state
func InvalidState(msg string) error {
	return &Error{Kind: KindInvalidState, Msg: msg}
}

// Conflict reports a uniqueness violation
func Conflict(msg string) error {
	return &Error{Kind: KindConflict, Msg: msg}
}

// Storage reports a media backend failure
func Storage(msg string, err error) error {
	return &Error{Kind: KindStorage, Msg: msg, Err: err}
}

// Unavailable reports that persistence cannot be reached
func Unavailable(msg string, err error) error {
	return &Error{Kind: KindUnavailable, Msg: msg, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Message returns the client-facing message for err.
// Unclassified errors never leak their text.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return "Internal server error"
}

// HTTPStatus maps an error to its response status.
// Conflicts answer 400 to stay compatible with existing clients.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindInvalidState, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
