package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a failure independently of the transport. Kinds form a
// small hierarchy: a missing argument is also an invalid argument.
type Kind struct {
	name   string
	parent *Kind
}

func newKind(name string, parent *Kind) *Kind {
	return &Kind{name: name, parent: parent}
}

func (k *Kind) Error() string {
	return k.name
}

// Is reports whether target is k or one of its ancestors.
func (k *Kind) Is(target error) bool {
	for p := k.parent; p != nil; p = p.parent {
		if p == target {
			return true
		}
	}
	return false
}

var (
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = newKind("record not found", nil)

	// ErrPermission means the caller lacks the permission an operation needs.
	ErrPermission = newKind("insufficient permissions", nil)

	// ErrInvalidArgument means the request carried a value the operation
	// cannot accept.
	ErrInvalidArgument = newKind("invalid argument", nil)

	// ErrMissingArgument means a required value was absent.
	ErrMissingArgument = newKind("missing argument", ErrInvalidArgument)

	// ErrOutOfRange means a value was outside the accepted range.
	ErrOutOfRange = newKind("argument out of range", ErrInvalidArgument)

	// ErrRepository means the data store failed or returned inconsistent data.
	ErrRepository = newKind("repository error", nil)

	// ErrConfiguration means required finance configuration is missing.
	ErrConfiguration = newKind("invalid configuration", nil)

	// ErrSessionExpired means the caller's session is no longer valid.
	ErrSessionExpired = newKind("session expired", nil)

	// ErrApplication is a business rule failure.
	ErrApplication = newKind("application error", nil)

	// ErrAlreadyApproved means the caller already approved the document.
	ErrAlreadyApproved = newKind("already approved by user", ErrApplication)

	// ErrNotApprovedStatus means the document is not waiting for approval.
	ErrNotApprovedStatus = newKind("document is not in a not approved status", ErrApplication)

	// ErrConcurrentUpdate means the record changed after it was read.
	ErrConcurrentUpdate = newKind("record changed by another request", ErrApplication)
)

// Error is a Kind with context. Services return it so handlers can match the
// kind while logs keep the detail.
type Error struct {
	Kind    *Kind
	Message string
	Err     error
}

// New returns an error of kind with message.
func New(kind *Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Newf returns an error of kind with a formatted message.
func Newf(kind *Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies err as kind. A nil err returns nil.
func Wrap(kind *Kind, err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: message, Err: err}
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.Error()
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the error's kind and the kind's ancestors.
func (e *Error) Is(target error) bool {
	return e.Kind == target || e.Kind.Is(target)
}

// Message returns the message of the first *Error in err's chain, or "".
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}
