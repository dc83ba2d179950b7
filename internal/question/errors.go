package question

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Kind classifies engine failures so transports can pick a status without parsing messages.
type Kind int

const (
	KindMalformedRequest Kind = iota + 1
	KindUnresolvableReference
	KindUnprocessableInput
	KindNotFound
	KindStoreFailure
)

func (k Kind) String() string {
	switch k {
	case KindMalformedRequest:
		return "malformed_request"
	case KindUnresolvableReference:
		return "unresolvable_reference"
	case KindUnprocessableInput:
		return "unprocessable_input"
	case KindNotFound:
		return "not_found"
	case KindStoreFailure:
		return "store_failure"
	default:
		return "unknown"
	}
}

// Error is the typed failure returned by every Service operation.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, detail string, err error) *Error {
	return &Error{Kind: kind, Detail: detail, Err: err}
}

func malformed(format string, args ...any) *Error {
	return newError(KindMalformedRequest, fmt.Sprintf(format, args...), nil)
}

func unprocessable(format string, args ...any) *Error {
	return newError(KindUnprocessableInput, fmt.Sprintf(format, args...), nil)
}

func unresolvable(format string, args ...any) *Error {
	return newError(KindUnresolvableReference, fmt.Sprintf(format, args...), nil)
}

func notFound(format string, args ...any) *Error {
	return newError(KindNotFound, fmt.Sprintf(format, args...), nil)
}

// KindOf extracts the Kind from err. Untyped errors report KindStoreFailure.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStoreFailure
}

// IsKind reports whether err carries kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// storeError classifies a persistence error. Data exceptions (class 22) and integrity
// violations (class 23) are caused by the content sent, everything else is a store failure.
func storeError(op string, err error) *Error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (strings.HasPrefix(pgErr.Code, "22") || strings.HasPrefix(pgErr.Code, "23")) {
		return newError(KindUnprocessableInput, op, err)
	}
	return newError(KindStoreFailure, op, err)
}
