// Package apperr defines the small, stable set of domain errors returned by
// the service layer. Store and transport errors are attached as causes for
// logging but are never part of the message shown to callers.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind classifies an error for callers that branch on it.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindUnavailable
	KindValidation
	KindConflict
	KindForbidden
	KindInconsistent
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindUnavailable:
		return "unavailable"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindForbidden:
		return "forbidden"
	case KindInconsistent:
		return "inconsistent"
	}
	return "unknown"
}

// Error is a domain sentinel.
type Error struct {
	kind Kind
	msg  string
}

func (e *Error) Error() string { return e.msg }

// Kind returns the classification of the sentinel.
func (e *Error) Kind() Kind { return e.kind }

func newError(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

var (
	ErrSettingsUnavailable = newError(KindUnavailable, "settings unavailable")
	ErrUserNotFound        = newError(KindNotFound, "user not found")

	ErrTeamNotFound           = newError(KindNotFound, "team not found")
	ErrTeamUnavailable        = newError(KindUnavailable, "team unavailable")
	ErrNotTeamOwner           = newError(KindForbidden, "only the team owner can manage members")
	ErrOwnerRemoval           = newError(KindConflict, "the team owner cannot be removed")
	ErrAlreadyMember          = newError(KindConflict, "user is already in the team")
	ErrMemberOfOtherTeam      = newError(KindConflict, "user already belongs to another team")
	ErrSelfInvite             = newError(KindConflict, "you cannot add yourself to the team")
	ErrMembershipInconsistent = newError(KindInconsistent, "team membership partially updated")

	ErrClientNotFound    = newError(KindNotFound, "client not found")
	ErrClientUnavailable = newError(KindUnavailable, "client unavailable")
	ErrNoteNotFound      = newError(KindNotFound, "note not found")

	ErrFeedbackUnavailable = newError(KindUnavailable, "feedback unavailable")
	ErrMailUnavailable     = newError(KindUnavailable, "mail queue unavailable")

	ErrInvalidInput = newError(KindValidation, "invalid input")
	ErrForbidden    = newError(KindForbidden, "forbidden")
)

// opError ties a sentinel to the operation that failed and its underlying
// cause. Unwrap only exposes the sentinel.
type opError struct {
	sentinel *Error
	op       string
	cause    error
}

func (e *opError) Error() string {
	if e.op == "" {
		return e.sentinel.msg
	}
	return e.op + ": " + e.sentinel.msg
}

func (e *opError) Unwrap() error { return e.sentinel }

// Wrap attaches op and cause to a sentinel. A cause that already carries a
// domain error is returned unchanged so the first classification wins.
func Wrap(sentinel *Error, op string, cause error) error {
	if KindOf(cause) != KindUnknown {
		return cause
	}
	return &opError{sentinel: sentinel, op: op, cause: cause}
}

// Cause returns the underlying error recorded by Wrap, or nil.
func Cause(err error) error {
	var e *opError
	if errors.As(err, &e) {
		return e.cause
	}
	return nil
}

// KindOf reports the classification of err.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var v *ValidationError
	if errors.As(err, &v) {
		return KindValidation
	}
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindUnknown
}

// IsNotFound is shorthand for KindOf(err) == KindNotFound.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// ValidationError lists field problems found before any store call.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidInput.msg
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Invalid builds a single-field validation error.
func Invalid(field, msg string) error {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// InconsistencyError describes a two-phase membership change whose second
// write failed after the first had been applied.
type InconsistencyError struct {
	TeamID string
	UID    string
	Phase  string
	cause  error
}

// NewInconsistency records which phase failed.
func NewInconsistency(teamID, uid, phase string, cause error) *InconsistencyError {
	return &InconsistencyError{TeamID: teamID, UID: uid, Phase: phase, cause: cause}
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("%s (team %s, user %s, failed at %s)", ErrMembershipInconsistent.msg, e.TeamID, e.UID, e.Phase)
}

func (e *InconsistencyError) Unwrap() error { return ErrMembershipInconsistent }

// Cause returns the store error that interrupted the change.
func (e *InconsistencyError) Cause() error { return e.cause }
