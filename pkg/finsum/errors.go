package finsum

import (
	"errors"
	"fmt"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/models"
)

// ErrCritical matches every CriticalError through errors.Is.
var ErrCritical = errors.New("critical structure error")

// CriticalError is a failure that prevents the ledger from being parsed: no total row, several
// total rows, a missing sheet or an accessor failure.
type CriticalError struct {
	Code    string
	Message string
	Err     error
}

func (e *CriticalError) Error() string {
	return e.Message
}

func (e *CriticalError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrCritical.
func (e *CriticalError) Is(target error) bool {
	return target == ErrCritical
}

// Issue converts the error to the single issue a failed check reports.
func (e *CriticalError) Issue() models.Issue {
	return models.Issue{
		Category: models.CategoryCritical,
		Code:     e.Code,
		Message:  e.Message,
	}
}

// NewCriticalError creates a CriticalError whose message is err's.
func NewCriticalError(code string, err error) *CriticalError {
	return &CriticalError{
		Code:    code,
		Message: err.Error(),
		Err:     err,
	}
}

func readFailure(err error) *CriticalError {
	return &CriticalError{
		Code:    models.CodeReadFailure,
		Message: fmt.Sprintf("Critical error: %v", err),
		Err:     err,
	}
}

func writeFailure(err error) *CriticalError {
	return &CriticalError{
		Code:    models.CodeWriteFailure,
		Message: fmt.Sprintf("Critical error: %v", err),
		Err:     err,
	}
}
