package shared

import (
	"fmt"
	"time"
)

// LifecycleStatus is the state of a long-running operation such as an automated run
type LifecycleStatus string

const (
	LifecycleStatusPending   LifecycleStatus = "PENDING"
	LifecycleStatusRunning   LifecycleStatus = "RUNNING"
	LifecycleStatusCompleted LifecycleStatus = "COMPLETED"
	LifecycleStatusFailed    LifecycleStatus = "FAILED"

	// LifecycleStatusStopped means the run ended early on a game condition (e.g. bankruptcy)
	LifecycleStatusStopped LifecycleStatus = "STOPPED"
)

// Lifecycle follows PENDING → RUNNING → COMPLETED/FAILED/STOPPED.
// The clock is injected so runtimes are testable.
type Lifecycle struct {
	status     LifecycleStatus
	startedAt  *time.Time
	finishedAt *time.Time
	reason     string
	lastError  error
	clock      Clock
}

// NewLifecycle creates a lifecycle in PENDING state
func NewLifecycle(clock Clock) *Lifecycle {
	if clock == nil {
		clock = NewRealClock()
	}
	return &Lifecycle{status: LifecycleStatusPending, clock: clock}
}

func (l *Lifecycle) Status() LifecycleStatus {
	return l.status
}

// Reason is the stop reason of a STOPPED run
func (l *Lifecycle) Reason() string {
	return l.reason
}

func (l *Lifecycle) LastError() error {
	return l.lastError
}

// Start transitions PENDING → RUNNING
func (l *Lifecycle) Start() error {
	if l.status != LifecycleStatusPending {
		return fmt.Errorf("cannot start from %s state", l.status)
	}
	now := l.clock.Now()
	l.status = LifecycleStatusRunning
	l.startedAt = &now
	return nil
}

// Complete transitions RUNNING → COMPLETED
func (l *Lifecycle) Complete() error {
	return l.finish(LifecycleStatusCompleted, "", nil)
}

// Fail transitions RUNNING → FAILED and keeps the error
func (l *Lifecycle) Fail(err error) error {
	return l.finish(LifecycleStatusFailed, "", err)
}

// Stop transitions RUNNING → STOPPED with a reason
func (l *Lifecycle) Stop(reason string) error {
	return l.finish(LifecycleStatusStopped, reason, nil)
}

func (l *Lifecycle) finish(status LifecycleStatus, reason string, err error) error {
	if l.status != LifecycleStatusRunning {
		return fmt.Errorf("cannot move to %s from %s state", status, l.status)
	}
	now := l.clock.Now()
	l.status = status
	l.finishedAt = &now
	l.reason = reason
	l.lastError = err
	return nil
}

// IsFinished reports whether the run reached a terminal state
func (l *Lifecycle) IsFinished() bool {
	switch l.status {
	case LifecycleStatusCompleted, LifecycleStatusFailed, LifecycleStatusStopped:
		return true
	}
	return false
}

// Runtime is the time spent running, up to now for a run still in progress
func (l *Lifecycle) Runtime() time.Duration {
	if l.startedAt == nil {
		return 0
	}
	end := l.clock.Now()
	if l.finishedAt != nil {
		end = *l.finishedAt
	}
	return end.Sub(*l.startedAt)
}
