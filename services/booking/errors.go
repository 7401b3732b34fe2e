package booking

import (
	"fmt"

	"craftlink/models"
)

// ValidationError reports a malformed or incomplete request. Client error,
// never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// SchedulingConflictError reports that the candidate interval overlaps an
// existing booking that still holds its slot.
type SchedulingConflictError struct {
	ConflictingBookingID string
	Interval             models.Interval
}

func (e *SchedulingConflictError) Error() string {
	return fmt.Sprintf("requested time overlaps existing booking %s", e.ConflictingBookingID)
}

// NotAvailableError reports that the professional is not currently accepting
// bookings.
type NotAvailableError struct {
	ProfessionalID string
}

func (e *NotAvailableError) Error() string {
	return fmt.Sprintf("professional %s is not available for bookings", e.ProfessionalID)
}

// NotFoundError reports that a booking does not exist or is not visible to the
// requester.
type NotFoundError struct {
	BookingID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("booking %s not found", e.BookingID)
}

// ForbiddenError reports that the requester is not a party authorized to view
// or transition the booking.
type ForbiddenError struct {
	BookingID string
	UserID    string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("user %s is not authorized for booking %s", e.UserID, e.BookingID)
}

// InvalidTransitionError reports a status change absent from the transition
// table. The message names the current status to aid client messaging.
type InvalidTransitionError struct {
	From models.BookingStatus
	To   models.BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition booking from status %s to %s", e.From, e.To)
}

// ConcurrencyConflictError reports an optimistic-lock failure on a status
// update after retries were exhausted. The caller may retry the whole
// read-transition-write sequence.
type ConcurrencyConflictError struct {
	BookingID string
}

func (e *ConcurrencyConflictError) Error() string {
	return fmt.Sprintf("booking %s was modified concurrently; retry the update", e.BookingID)
}
