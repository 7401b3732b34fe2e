package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "craftlink/database/repository/booking"
	"craftlink/models"
	"craftlink/utils"
)

// statusUpdateRetries bounds automatic retries of the load-authorize-transition
// sequence when an optimistic write loses to a concurrent one. Business errors
// are never retried.
const statusUpdateRetries = 3

// CreateBooking validates the request, gates on professional availability and
// inserts the booking with status pending. The conflict check runs inside the
// same storage transaction as the insert.
func (svc *DefaultBookingService) CreateBooking(ctx context.Context, req models.BookingRequest, customerID string) (*models.Booking, error) {
	if customerID == "" {
		return nil, NewValidationError("requesting customer is required")
	}
	if err := svc.Validator.ValidateCreate(req); err != nil {
		return nil, err
	}

	available, err := svc.Availability.IsAvailable(ctx, req.ProfessionalID)
	if err != nil {
		return nil, fmt.Errorf("availability check failed: %w", err)
	}
	if !available {
		return nil, &NotAvailableError{ProfessionalID: req.ProfessionalID}
	}

	now := svc.Clock.Now()
	b := &models.Booking{
		ID:                uuid.New().String(),
		CustomerID:        customerID,
		ProfessionalID:    req.ProfessionalID,
		ProfessionalType:  req.ProfessionalType,
		ServiceCategory:   req.ServiceCategory,
		Description:       req.Description,
		EstimatedPrice:    req.EstimatedPrice,
		ServiceAddress:    req.ServiceAddress,
		ScheduledDate:     req.ScheduledDate,
		EstimatedDuration: req.EstimatedDuration,
		Status:            models.StatusPending,
		PaymentStatus:     "pending",
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	// The artist payload is ignored for handyman bookings even when supplied.
	if req.ProfessionalType == models.TypeArtist {
		b.ProjectDetails = req.ProjectDetails
		b.ReferenceImages = req.ReferenceImages
	}

	// Fast-fail outside the transaction; the authoritative check reruns
	// inside it.
	candidate := b.OccupiedInterval()
	if conflict, err := svc.Conflicts.Check(ctx, req.ProfessionalID, candidate); err != nil {
		return nil, fmt.Errorf("conflict pre-check failed: %w", err)
	} else if conflict != nil {
		return nil, &SchedulingConflictError{
			ConflictingBookingID: conflict.ID,
			Interval:             conflict.OccupiedInterval(),
		}
	}

	conflict, err := svc.Repo.CreateInConflictScope(ctx, b, func(existing []models.Booking) *models.Booking {
		return FindConflict(existing, candidate)
	})
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, &SchedulingConflictError{
			ConflictingBookingID: conflict.ID,
			Interval:             conflict.OccupiedInterval(),
		}
	}

	svc.Activity.Record(ctx, models.ActivityEvent{
		BookingID: b.ID,
		ActorID:   customerID,
		Action:    "booking_created",
		ToStatus:  b.Status,
		Detail:    map[string]any{"professionalId": b.ProfessionalID, "scheduledDate": b.ScheduledDate},
	})

	return b, nil
}

// UpdateStatus loads the booking, authorizes the requester, consults the
// transition table, applies side effects and persists under the optimistic
// version guard. Losing writers retry the whole sequence a bounded number of
// times.
func (svc *DefaultBookingService) UpdateStatus(ctx context.Context, bookingID string, status models.BookingStatus, requesterID, notes string) (*models.Booking, error) {
	for attempt := 0; attempt < statusUpdateRetries; attempt++ {
		b, err := svc.Repo.GetByID(ctx, bookingID)
		if err != nil {
			return nil, err
		}
		if b == nil {
			return nil, &NotFoundError{BookingID: bookingID}
		}
		if !canAccess(b, requesterID) {
			return nil, &ForbiddenError{BookingID: bookingID, UserID: requesterID}
		}

		rule, ok := ruleFor(b.Status, status)
		if !ok {
			return nil, &InvalidTransitionError{From: b.Status, To: status}
		}
		if rule.RequiresReason {
			if err := validateCancellationReason(notes); err != nil {
				return nil, err
			}
		}

		from := b.Status
		now := svc.Clock.Now()
		b.Status = status
		if rule.Stamp != nil {
			rule.Stamp(b, now)
		}
		if status == models.StatusCancelled {
			b.CancellationReason = notes
		}
		b.UpdatedAt = now

		if err := svc.Repo.Update(ctx, b); err != nil {
			if errors.Is(err, bookingRepo.ErrVersionConflict) {
				continue
			}
			return nil, err
		}

		svc.afterTransition(ctx, b, from, requesterID, notes)
		return b, nil
	}
	return nil, &ConcurrencyConflictError{BookingID: bookingID}
}

// CancelBooking is the dedicated cancellation entry point. It validates the
// reason up front and refuses outright once work has started or finished; the
// actual transition is the same table-driven path used by UpdateStatus.
func (svc *DefaultBookingService) CancelBooking(ctx context.Context, bookingID, reason, requesterID string) (*models.Booking, error) {
	if err := validateCancellationReason(reason); err != nil {
		return nil, err
	}

	b, err := svc.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, &NotFoundError{BookingID: bookingID}
	}
	if !canAccess(b, requesterID) {
		return nil, &ForbiddenError{BookingID: bookingID, UserID: requesterID}
	}
	if b.Status == models.StatusInProgress || b.Status == models.StatusCompleted {
		return nil, NewValidationError("Cannot cancel booking with status %s", b.Status)
	}

	return svc.UpdateStatus(ctx, bookingID, models.StatusCancelled, requesterID, reason)
}

// GetBooking returns the booking to one of its parties. Requesters outside the
// booking's visible set receive not-found, not forbidden, so booking IDs leak
// nothing.
func (svc *DefaultBookingService) GetBooking(ctx context.Context, bookingID, requesterID string) (*models.Booking, error) {
	b, err := svc.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil || !canAccess(b, requesterID) {
		return nil, &NotFoundError{BookingID: bookingID}
	}
	return b, nil
}

// ListBookings returns all bookings where the requester is a party, newest
// first.
func (svc *DefaultBookingService) ListBookings(ctx context.Context, requesterID string) ([]models.Booking, error) {
	if requesterID == "" {
		return nil, NewValidationError("requesting user is required")
	}
	return svc.Repo.FindByParty(ctx, requesterID)
}

// AttachProgressPhotos appends work-in-progress photo URLs to an artist
// booking. Only the assigned professional may attach, and only while the
// booking is in progress.
func (svc *DefaultBookingService) AttachProgressPhotos(ctx context.Context, bookingID string, photos []string, requesterID string) (*models.Booking, error) {
	if len(photos) == 0 {
		return nil, NewValidationError("at least one photo URL is required")
	}

	for attempt := 0; attempt < statusUpdateRetries; attempt++ {
		b, err := svc.Repo.GetByID(ctx, bookingID)
		if err != nil {
			return nil, err
		}
		if b == nil {
			return nil, &NotFoundError{BookingID: bookingID}
		}
		if !canAccess(b, requesterID) {
			return nil, &ForbiddenError{BookingID: bookingID, UserID: requesterID}
		}
		if requesterID != b.ProfessionalID {
			return nil, &ForbiddenError{BookingID: bookingID, UserID: requesterID}
		}
		if b.ProfessionalType != models.TypeArtist {
			return nil, NewValidationError("progress photos are only supported for artist bookings")
		}
		if b.Status != models.StatusInProgress {
			return nil, NewValidationError("progress photos can only be added while the booking is in progress")
		}

		b.ProgressPhotos = append(b.ProgressPhotos, photos...)
		b.UpdatedAt = svc.Clock.Now()

		if err := svc.Repo.Update(ctx, b); err != nil {
			if errors.Is(err, bookingRepo.ErrVersionConflict) {
				continue
			}
			return nil, err
		}

		svc.Activity.Record(ctx, models.ActivityEvent{
			BookingID: b.ID,
			ActorID:   requesterID,
			Action:    "progress_photos_added",
			Detail:    map[string]any{"count": len(photos)},
		})
		return b, nil
	}
	return nil, &ConcurrencyConflictError{BookingID: bookingID}
}

// afterTransition runs the fire-and-observe side effects of a successful
// status change. None of them can fail the transition.
func (svc *DefaultBookingService) afterTransition(ctx context.Context, b *models.Booking, from models.BookingStatus, requesterID, notes string) {
	detail := map[string]any{}
	if b.Status == models.StatusCancelled {
		detail["reason"] = b.CancellationReason
	} else if notes != "" {
		detail["notes"] = notes
	}
	svc.Activity.Record(ctx, models.ActivityEvent{
		BookingID:  b.ID,
		ActorID:    requesterID,
		Action:     "status_updated",
		FromStatus: from,
		ToStatus:   b.Status,
		Detail:     detail,
	})

	if b.Status == models.StatusConfirmed && svc.Reminders != nil {
		if err := svc.Reminders.ScheduleBookingReminder(ctx, b); err != nil {
			utils.GetLogger().Warn("failed to schedule booking reminder",
				zap.String("bookingID", b.ID), zap.Error(err))
		}
	}
}
