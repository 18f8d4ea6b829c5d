package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the request conflicts with the current state of the books.
var ErrConflict = errors.New("conflict with current state")

// ErrForbidden indicates that the caller is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected infrastructure failure.
var ErrInternal = errors.New("internal error")

// Bookkeeping error kinds. Each wraps one of the base sentinels above so callers can
// match either the precise kind or the broad class.
var (
	ErrDuplicateAccount                  = newKind("DuplicateAccount", ErrDuplicate, "account already exists")
	ErrInvalidAccountGroup               = newKind("InvalidAccountGroup", ErrValidation, "invalid account group")
	ErrAccountInUse                      = newKind("AccountInUse", ErrConflict, "account is in use")
	ErrUnknownAccount                    = newKind("UnknownAccount", ErrValidation, "unknown account")
	ErrInvalidVoucherType                = newKind("InvalidVoucherType", ErrValidation, "invalid voucher type")
	ErrMissingLineItems                  = newKind("MissingLineItems", ErrValidation, "line items are required for this voucher type")
	ErrUnbalancedEntry                   = newKind("UnbalancedEntry", ErrValidation, "debits do not equal credits")
	ErrInsufficientStock                 = newKind("InsufficientStock", ErrConflict, "insufficient stock")
	ErrItemNotFound                      = newKind("ItemNotFound", ErrNotFound, "item not found")
	ErrOpeningBalanceAlreadyExists       = newKind("OpeningBalanceAlreadyExists", ErrDuplicate, "opening balance already exists")
	ErrOpeningBalanceLockedAfterPostings = newKind("OpeningBalanceLockedAfterPostings", ErrConflict, "opening balance is locked once postings exist")
)

// KindError is a stable, caller-visible error kind.
type KindError struct {
	Kind    string
	Message string
	base    error
}

func newKind(kind string, base error, msg string) *KindError {
	return &KindError{Kind: kind, Message: msg, base: base}
}

func (e *KindError) Error() string { return e.Message }

// Unwrap exposes the broad class (ErrValidation, ErrConflict, ...).
func (e *KindError) Unwrap() error { return e.base }

// KindOf returns the kind name of the first KindError in err's chain, or "".
func KindOf(err error) string {
	var k *KindError
	if errors.As(err, &k) {
		return k.Kind
	}
	return ""
}

// AppError carries an infrastructure failure with an HTTP-ish status code.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError wraps err with a status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap keeps the wrapped cause reachable; a nil cause unwraps to ErrInternal.
func (e *AppError) Unwrap() error {
	if e.Err == nil {
		return ErrInternal
	}
	return e.Err
}
