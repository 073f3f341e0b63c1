package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Funds errors

// FundsPurpose names what a declined payment was meant for
type FundsPurpose string

const (
	FundsPurposeRent  FundsPurpose = "RENT"
	FundsPurposeStock FundsPurpose = "STOCK"
)

// InsufficientFundsError is returned when an actor cannot pay for rent or stock.
// No state is mutated when this error is returned.
type InsufficientFundsError struct {
	*DomainError
	Purpose   FundsPurpose
	Required  int
	Available int
}

func NewInsufficientFundsError(purpose FundsPurpose, required, available int) *InsufficientFundsError {
	return &InsufficientFundsError{
		DomainError: NewDomainError(fmt.Sprintf("insufficient funds for %s: need %d, have %d",
			purpose, required, available)),
		Purpose:   purpose,
		Required:  required,
		Available: available,
	}
}

// Shortfall returns how much currency is missing
func (e *InsufficientFundsError) Shortfall() int {
	return e.Required - e.Available
}
