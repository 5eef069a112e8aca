package bookings

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIncompleteSubmission is returned when a required field is blank.
	ErrIncompleteSubmission = errors.New("bookings: incomplete submission")

	// ErrInvalidDateTime is returned when date and time do not form an instant.
	ErrInvalidDateTime = errors.New("bookings: invalid date or time")

	// ErrSlotUnavailable is returned when slot enforcement rejects the time.
	ErrSlotUnavailable = errors.New("bookings: slot unavailable")

	// ErrInvalidMode is returned for an unknown visit mode.
	ErrInvalidMode = errors.New("bookings: unknown visit mode")

	// ErrBookingNotFound is returned when no booking has the given id.
	ErrBookingNotFound = errors.New("bookings: booking not found")
)

// Reason is the machine-readable cause of a rejected submission.
type Reason string

const (
	ReasonIncomplete      Reason = "incomplete_submission"
	ReasonInvalidDateTime Reason = "invalid_datetime"
	ReasonSlotUnavailable Reason = "slot_unavailable"
	ReasonInvalidMode     Reason = "invalid_mode"
)

// RejectionError reports why a submission produced no booking.
type RejectionError struct {
	Reason Reason   `json:"reason"`
	Fields []string `json:"fields,omitempty"`
}

func reject(reason Reason, fields ...string) *RejectionError {
	return &RejectionError{Reason: reason, Fields: fields}
}

func (e *RejectionError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("bookings: rejected: %s", e.Reason)
	}
	return fmt.Sprintf("bookings: rejected: %s (%s)", e.Reason, strings.Join(e.Fields, ", "))
}

// Unwrap maps the reason onto its sentinel so callers can use errors.Is.
func (e *RejectionError) Unwrap() error {
	switch e.Reason {
	case ReasonIncomplete:
		return ErrIncompleteSubmission
	case ReasonInvalidDateTime:
		return ErrInvalidDateTime
	case ReasonSlotUnavailable:
		return ErrSlotUnavailable
	case ReasonInvalidMode:
		return ErrInvalidMode
	default:
		return nil
	}
}

// Message is the visitor-facing explanation of the rejection.
func (e *RejectionError) Message() string {
	switch e.Reason {
	case ReasonIncomplete:
		return "Please fill in " + strings.Join(e.Fields, ", ") + "."
	case ReasonInvalidDateTime:
		return "That date or time could not be understood."
	case ReasonSlotUnavailable:
		return "That time is no longer available. Please pick another slot."
	case ReasonInvalidMode:
		return "Please choose In-Clinic, Home Visit or Telehealth."
	default:
		return "The booking could not be completed."
	}
}
