package league

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// ErrorKind classifies every failure that leaves the league package.
type ErrorKind int

const (
	KindGeneric ErrorKind = iota
	KindNotFound
	KindUnexpectedDuplicate
	KindCommunication
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindUnexpectedDuplicate:
		return "UnexpectedDuplicate"
	case KindCommunication:
		return "CommunicationError"
	default:
		return "Generic"
	}
}

// Error is the single error type returned by the repository. Message is
// human readable and safe to show to a player.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so callers can write
// errors.Is(err, league.ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrNotFound            = &Error{Kind: KindNotFound, Message: "not found"}
	ErrUnexpectedDuplicate = &Error{Kind: KindUnexpectedDuplicate, Message: "unexpected duplicate"}
	ErrCommunication       = &Error{Kind: KindCommunication, Message: "communication error"}
	ErrGeneric             = &Error{Kind: KindGeneric, Message: "generic error"}
)

// KindOf reports the kind of err. Errors that did not originate here are Generic.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindGeneric
}

func newError(kind ErrorKind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// raise logs err once and returns it. NotFound is an expected outcome and
// goes out at warn level.
func raise(err *Error) *Error {
	if err.Kind == KindNotFound {
		log.Warn(err.Message, "kind", err.Kind)
	} else {
		log.Error(err.Message, "kind", err.Kind, "cause", err.Err)
	}
	return err
}

// wrapGeneric turns an unexpected failure into a Generic error, keeping
// already classified errors as they are.
func wrapGeneric(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return raise(newError(KindGeneric, err, "%s", err.Error()))
}
