package booking

import (
	"context"

	bookingRepo "craftlink/database/repository/booking"
	"craftlink/models"
)

// FindConflict returns the first booking whose occupied interval overlaps the
// candidate, or nil when the slot is clear. Callers are expected to have
// already filtered out cancelled and rejected bookings; as a belt the
// predicate skips any that slipped through, since a released slot must never
// block a new request.
func FindConflict(existing []models.Booking, candidate models.Interval) *models.Booking {
	for i := range existing {
		b := &existing[i]
		if !b.HoldsSlot() {
			continue
		}
		if b.OccupiedInterval().Overlaps(candidate) {
			return b
		}
	}
	return nil
}

// ConflictDetector answers whether a candidate interval collides with a
// professional's live bookings.
type ConflictDetector struct {
	Repo bookingRepo.Repository
}

// Check fetches the professional's slot-holding bookings and tests the
// candidate against each. Creation paths use it as a pre-transaction
// fast-fail only: the authoritative check runs inside the insert transaction.
func (cd *ConflictDetector) Check(ctx context.Context, professionalID string, candidate models.Interval) (*models.Booking, error) {
	existing, err := cd.Repo.FindByProfessional(ctx, professionalID, models.SlotFreeingStatuses)
	if err != nil {
		return nil, err
	}
	return FindConflict(existing, candidate), nil
}
