package bookingRepo

import (
	"context"
	"errors"

	"craftlink/models"
)

// ErrVersionConflict is returned by Update when the booking's stored version
// no longer matches the one that was read. The caller should reload and retry.
var ErrVersionConflict = errors.New("booking version conflict")

// Repository defines data access for bookings. All reads and writes honor the
// deadline of the supplied context.
type Repository interface {
	// GetByID returns the booking, or (nil, nil) when it does not exist.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// FindByProfessional returns the professional's bookings whose status is
	// not in excludeStatuses, ordered by scheduled date.
	FindByProfessional(ctx context.Context, professionalID string, excludeStatuses []models.BookingStatus) ([]models.Booking, error)
	// FindByParty returns bookings where the user is the customer or the
	// assigned professional.
	FindByParty(ctx context.Context, userID string) ([]models.Booking, error)
	// Create inserts a booking without any conflict scope. Used by tooling and
	// tests; production creation goes through CreateInConflictScope.
	Create(ctx context.Context, b *models.Booking) error
	// Update persists the booking guarded by its Version field, incrementing
	// it on success. Returns ErrVersionConflict when a concurrent writer won.
	Update(ctx context.Context, b *models.Booking) error
	// CreateInConflictScope atomically checks for a scheduling conflict and
	// inserts the booking. The findConflict predicate is evaluated against the
	// professional's slot-holding bookings inside the same transaction as the
	// insert; when it returns a booking, nothing is written and that booking
	// is returned.
	CreateInConflictScope(ctx context.Context, b *models.Booking, findConflict func([]models.Booking) *models.Booking) (*models.Booking, error)
}
