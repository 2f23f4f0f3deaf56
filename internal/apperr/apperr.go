// Package apperr classifies failures so handlers can pick a status code and a
// short user-facing message without leaking internal error text.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindUpstream
	KindParse
	KindPersistence
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUpstream:
		return "upstream_model"
	case KindParse:
		return "parse"
	case KindPersistence:
		return "persistence"
	case KindConflict:
		return "conflict"
	}
	return "unknown"
}

type Error struct {
	Kind    Kind
	Status  int
	Message string // safe to show to users
	Err     error  // internal cause, logged only
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Validation is bad or missing input. It is detected before any external call.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: msg}
}

// Unauthenticated is a validation failure caused by a missing caller identity.
func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusUnauthorized, Message: msg}
}

// Upstream is a failed, timed-out or empty model call.
func Upstream(msg string, err error) *Error {
	return &Error{Kind: KindUpstream, Status: http.StatusBadGateway, Message: msg, Err: err}
}

// NotConfigured is an upstream failure caused by missing credentials.
func NotConfigured(msg string) *Error {
	return &Error{Kind: KindUpstream, Status: http.StatusInternalServerError, Message: msg}
}

// Parse is model output that does not match the contracted shape.
func Parse(msg string, err error) *Error {
	return &Error{Kind: KindParse, Status: http.StatusBadGateway, Message: msg, Err: err}
}

// NoResult is well-formed model output that holds nothing usable.
func NoResult(msg string) *Error {
	return &Error{Kind: KindParse, Status: http.StatusUnprocessableEntity, Message: msg}
}

func Persistence(msg string, err error) *Error {
	return &Error{Kind: KindPersistence, Status: http.StatusInternalServerError, Message: msg, Err: err}
}

// Conflict covers state races: re-completing an attempt (400), acting on an
// upload you do not own (403) or one that is gone (404).
func Conflict(status int, msg string) *Error {
	return &Error{Kind: KindConflict, Status: status, Message: msg}
}

func NotFound(msg string) *Error {
	return Conflict(http.StatusNotFound, msg)
}

func Forbidden(msg string) *Error {
	return Conflict(http.StatusForbidden, msg)
}

// IsKind reports whether err wraps an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// Describe maps any error to a status code and a message fit for clients.
func Describe(err error) (int, string) {
	var e *Error
	if errors.As(err, &e) {
		return e.Status, e.Message
	}
	return http.StatusInternalServerError, "Something went wrong on our side. Please try again."
}
