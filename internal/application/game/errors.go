package game

import "errors"

var (
	// ErrSessionNotFound is returned when no session is stored under an ID
	ErrSessionNotFound = errors.New("session not found")

	// ErrDecisionPending is returned when feedback is confirmed before an option is chosen
	ErrDecisionPending = errors.New("an option must be selected before feedback can be confirmed")

	// ErrNoReportPending is returned when acknowledging a report that is not waiting
	ErrNoReportPending = errors.New("no round report is waiting to be acknowledged")

	// ErrEmptyOrder is returned when a stocking order has no units
	ErrEmptyOrder = errors.New("stocking order must contain at least one unit")
)
