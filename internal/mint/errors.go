package mint

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a log could not become a persisted record.
type ErrorKind string

const (
	ValidationFailure  = ErrorKind("validation failure")
	ConversionFailure  = ErrorKind("conversion failure")
	PersistenceFailure = ErrorKind("persistence failure")
)

func (k ErrorKind) Error() string {
	return string(k)
}

var (
	// ErrAccountNotDefined is the "Account is not defined" assertion raised
	// when a TokenMinted event has no recipient, lowercased per Go error style.
	ErrAccountNotDefined      = errors.New("account is not defined")
	ErrTransactionHashMissing = errors.New("transaction hash is not defined")
	ErrUnsupportedNetwork     = errors.New("unsupported network")
	ErrArgsMissing            = errors.New("event args are not defined")
	ErrAmountMissing          = errors.New("amount is not defined")
	ErrAmountNegative         = errors.New("amount is negative")
)

// Error is returned by Mapper.MapAndPersist. It matches both its Kind and
// the underlying cause with errors.Is.
type Error struct {
	Kind  ErrorKind
	Field string
	Err   error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// KindOf returns the kind of a mapping error, or "" if err is not one.
func KindOf(err error) ErrorKind {
	var mErr *Error
	if errors.As(err, &mErr) {
		return mErr.Kind
	}
	return ""
}
