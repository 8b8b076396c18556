package models

import "time"

// SubmissionState is a step of the booking flow
type SubmissionState string

const (
	StateEditing           SubmissionState = "editing"
	StateValidating        SubmissionState = "validating"
	StateRejected          SubmissionState = "rejected"
	StateSubmitting        SubmissionState = "submitting"
	StateProcessingPayment SubmissionState = "processing_payment"
	StatePersisted         SubmissionState = "persisted"
	StateClosed            SubmissionState = "closed"
	StateFailed            SubmissionState = "failed"
	StateCancelled         SubmissionState = "cancelled"
)

// IsTerminal returns true once the submission task has finished
func (s SubmissionState) IsTerminal() bool {
	switch s {
	case StateRejected, StateClosed, StateFailed, StateCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a flow transition is valid
func (s SubmissionState) CanTransitionTo(next SubmissionState) bool {
	switch s {
	case StateEditing:
		return next == StateValidating
	case StateValidating:
		return next == StateRejected || next == StateSubmitting
	case StateSubmitting:
		return next == StateProcessingPayment || next == StateFailed || next == StateCancelled
	case StateProcessingPayment:
		return next == StatePersisted || next == StateFailed || next == StateCancelled
	case StatePersisted:
		return next == StateClosed
	default:
		return false
	}
}

// StateChange records when a submission entered a state
type StateChange struct {
	State SubmissionState `json:"state"`
	At    time.Time       `json:"at"`
}

// Submission is a snapshot of one booking flow run
type Submission struct {
	ID                string          `json:"id"`
	MentorID          string          `json:"mentorId"`
	State             SubmissionState `json:"state"`
	ProcessingPayment bool            `json:"processingPayment"`
	Booking           *BookingView    `json:"booking,omitempty"`
	Message           string          `json:"message,omitempty"`
	Error             string          `json:"error,omitempty"`
	History           []StateChange   `json:"history"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// Done reports whether the submission reached a terminal state
func (s *Submission) Done() bool {
	return s.State.IsTerminal()
}
