package stepper

import (
	"errors"
	"strings"
)

var (
	ErrServiceNotFound = errors.New("service not found")
	ErrBusy            = errors.New("another action is still in progress")
	ErrInvalidStep     = errors.New("action is not available on the current step")
	ErrUnknownField    = errors.New("field is not part of this service")
	ErrNotMounted      = errors.New("stepper has not been mounted")
	ErrFieldType       = errors.New("value does not match the field type")

	// Transient failures. The underlying cause is wrapped alongside.
	ErrUploadFailed     = errors.New("we could not upload your files, please try again")
	ErrInitiationFailed = errors.New("we could not start the payment, please try again")
	ErrReceiptFailed    = errors.New("we could not load your receipt, please try again")
)

// ValidationError is a user correctable problem with the entered data.
type ValidationError struct {
	Fields   []string
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, " ")
}

func (e *ValidationError) add(fieldID, problem string) {
	if fieldID != "" {
		e.Fields = append(e.Fields, fieldID)
	}
	e.Problems = append(e.Problems, problem)
}

func (e *ValidationError) empty() bool {
	return len(e.Problems) == 0
}

// UserMessage renders err as the single message shown to the citizen.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}

	for _, known := range []error{ErrServiceNotFound, ErrBusy, ErrInvalidStep, ErrUploadFailed, ErrInitiationFailed, ErrReceiptFailed} {
		if errors.Is(err, known) {
			return capitalize(known.Error()) + "."
		}
	}
	return "Something went wrong, please try again."
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
