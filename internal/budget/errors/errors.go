package errors

import (
	"errors"
)

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	ok := errors.As(err, &validationError)
	return ok
}

var ErrNegativeAmount = NewValidationError("Amount must not be negative")
var ErrInvalidIncomeFrequency = NewValidationError("Frequency must be 'one-time', 'monthly' or 'yearly'")
var ErrInvalidExpenseCategory = NewValidationError("Invalid expense category")
var ErrNonPositiveContribution = NewValidationError("Contribution amount must be greater than zero")

var ErrRecordNotFound = errors.New("record not found")
var ErrUnauthorizedAccess = errors.New("unauthorized: user does not own this record")
