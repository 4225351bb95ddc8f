package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found, or that
// it belongs to a different organization than the caller's. The two cases are
// deliberately indistinguishable.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the operation conflicts with the current state of the
// resource (archive with history, delete with children, and similar).
var ErrConflict = errors.New("resource conflict")

// ErrForbidden indicates the user lacks the required role for the operation.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// Entry state machine errors. All of them represent invalid state transitions
// and map to a conflict at the API boundary.
var (
	ErrEntryNotDraft   = errors.New("journal entry is not in draft status")
	ErrEntryNotPosted  = errors.New("journal entry is not in posted status")
	ErrAlreadyVoid     = errors.New("journal entry is already voided")
	ErrAlreadyReversed = errors.New("journal entry already has a reversal")
	ErrEntryReconciled = errors.New("journal entry is reconciled and cannot be voided")
)

// UnbalancedEntryError is returned when an entry's debits and credits do not
// balance within the posting tolerance. It carries both computed totals so the
// caller can self-diagnose without re-querying.
type UnbalancedEntryError struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

func (e *UnbalancedEntryError) Error() string {
	return fmt.Sprintf("entry is unbalanced: total debit %s, total credit %s",
		e.TotalDebit.String(), e.TotalCredit.String())
}

// LineInvariantError is returned when a journal line violates the
// exactly-one-of-debit-or-credit rule.
type LineInvariantError struct {
	LineNumber int
	Debit      decimal.Decimal
	Credit     decimal.Decimal
}

func (e *LineInvariantError) Error() string {
	return fmt.Sprintf("line %d must have exactly one of debit or credit positive (debit=%s credit=%s)",
		e.LineNumber, e.Debit.String(), e.Credit.String())
}

// AppError wraps an underlying error with an HTTP-ish status code and a
// message safe to surface to callers.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
