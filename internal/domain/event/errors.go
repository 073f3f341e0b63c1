package event

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEvent is returned when event content violates the content contract
	ErrInvalidEvent = errors.New("invalid event")

	// ErrNoEvents is returned when a region type has no authored events
	ErrNoEvents = errors.New("no events for region")

	// ErrUnknownOption is returned when an option ID does not belong to the event
	ErrUnknownOption = errors.New("unknown option")
)

// ErrInvalidTransition indicates a forbidden event flow transition
type ErrInvalidTransition struct {
	From      Stage
	Attempted string
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("cannot %s from %s stage", e.Attempted, e.From)
}
