package booking

import (
	"time"

	"craftlink/models"
)

// transitionRule describes one legal (from, to) edge of the booking state
// machine and the timestamp stamping it implies.
type transitionRule struct {
	// RequiresReason marks transitions that must carry a non-empty
	// cancellation reason.
	RequiresReason bool
	// Stamp applies the transition's timestamp side effect, if any.
	Stamp func(b *models.Booking, now time.Time)
}

func stampStarted(b *models.Booking, now time.Time)   { b.StartedAt = &now }
func stampCompleted(b *models.Booking, now time.Time) { b.CompletedAt = &now }
func stampCancelled(b *models.Booking, now time.Time) { b.CancelledAt = &now }

// transitionTable is the authoritative map of legal status transitions. It is
// consulted as pure data: any (from, to) pair absent here is rejected before
// any mutation is attempted.
var transitionTable = map[models.BookingStatus]map[models.BookingStatus]transitionRule{
	models.StatusPending: {
		models.StatusConfirmed: {},
		models.StatusRejected:  {},
		models.StatusCancelled: {RequiresReason: true, Stamp: stampCancelled},
	},
	models.StatusConfirmed: {
		models.StatusInProgress: {Stamp: stampStarted},
		models.StatusCancelled:  {RequiresReason: true, Stamp: stampCancelled},
	},
	models.StatusInProgress: {
		models.StatusCompleted: {Stamp: stampCompleted},
		models.StatusDisputed:  {},
	},
}

// CanTransition reports whether the state machine permits the given status
// change.
func CanTransition(from, to models.BookingStatus) bool {
	_, ok := transitionTable[from][to]
	return ok
}

func ruleFor(from, to models.BookingStatus) (transitionRule, bool) {
	rule, ok := transitionTable[from][to]
	return rule, ok
}
