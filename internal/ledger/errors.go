package ledger

import (
	"errors"
	"fmt"
)

var (
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrAccountNotFound      = errors.New("account not found")
	ErrBudgetNotFound       = errors.New("budget not found")
	ErrAccountInUse         = errors.New("account has transactions")
	ErrDuplicateAccountName = errors.New("an account with this name already exists")
	ErrDuplicateBankAccount = errors.New("an account of this type already exists for this bank")
	ErrUnknownCommand       = errors.New("unknown command")
)

// ValidationError reports input rejected before any state change.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
