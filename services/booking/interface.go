package booking

import (
	"context"

	bookingRepo "craftlink/database/repository/booking"
	"craftlink/models"
	"craftlink/services/activity"
)

// BookingService orchestrates the booking lifecycle: creation with conflict
// detection, status transitions, cancellation and party-scoped reads.
type BookingService interface {
	CreateBooking(ctx context.Context, req models.BookingRequest, customerID string) (*models.Booking, error)
	UpdateStatus(ctx context.Context, bookingID string, status models.BookingStatus, requesterID, notes string) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID, reason, requesterID string) (*models.Booking, error)
	GetBooking(ctx context.Context, bookingID, requesterID string) (*models.Booking, error)
	ListBookings(ctx context.Context, requesterID string) ([]models.Booking, error)
	AttachProgressPhotos(ctx context.Context, bookingID string, photos []string, requesterID string) (*models.Booking, error)
}

// ReminderScheduler enqueues booking reminders. Scheduling is best-effort; the
// lifecycle service logs and swallows its failures.
type ReminderScheduler interface {
	ScheduleBookingReminder(ctx context.Context, b *models.Booking) error
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo         bookingRepo.Repository
	Availability *AvailabilityChecker
	Conflicts    *ConflictDetector
	Validator    *Validator
	Activity     activity.Recorder
	Reminders    ReminderScheduler
	Clock        Clock
}
