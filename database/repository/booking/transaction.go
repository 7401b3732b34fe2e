package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"craftlink/models"
)

// CreateInConflictScope runs the conflict check and the insert inside one
// MongoDB transaction so two concurrent requests for the same professional
// cannot both observe a clear slot and both insert. The returned booking, if
// non-nil, is the existing booking the candidate collides with; in that case
// nothing was written.
func (repo *MongoBookingRepo) CreateInConflictScope(
	ctx context.Context,
	b *models.Booking,
	findConflict func([]models.Booking) *models.Booking,
) (*models.Booking, error) {
	client := repo.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	var conflict *models.Booking
	txnFn := func(sc mongo.SessionContext) error {
		// Snapshot reads register no locks, so the transaction must write to
		// a document shared by every creation for this professional. Bumping
		// the calendar marker gives concurrent creations overlapping write
		// sets: one commits, the other aborts with a write conflict.
		if _, err := repo.calendars.UpdateOne(sc,
			bson.M{"professional_id": b.ProfessionalID},
			bson.M{
				"$inc": bson.M{"revision": 1},
				"$set": bson.M{"updated_at": time.Now()},
			},
			options.Update().SetUpsert(true),
		); err != nil {
			return fmt.Errorf("failed to claim professional calendar: %w", err)
		}

		existing, err := findByProfessional(sc, repo.coll, b.ProfessionalID, models.SlotFreeingStatuses)
		if err != nil {
			return err
		}
		if conflict = findConflict(existing); conflict != nil {
			// The booking is not inserted; the caller turns this into a
			// scheduling-conflict error.
			return nil
		}
		if _, err := repo.coll.InsertOne(sc, b); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return nil, fmt.Errorf("booking creation transaction failed: %w", err)
	}

	return conflict, nil
}
