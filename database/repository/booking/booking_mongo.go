package bookingRepo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"craftlink/database"
	"craftlink/models"
)

// MongoBookingRepo implements Repository backed by MongoDB.
type MongoBookingRepo struct {
	coll      *mongo.Collection
	calendars *mongo.Collection
}

// NewMongoBookingRepo returns a repository over the bookings collection. The
// booking_calendars collection holds one marker document per professional,
// written inside the creation transaction to serialize concurrent creations.
func NewMongoBookingRepo() *MongoBookingRepo {
	db := database.MongoClient.Database(database.DatabaseName)
	return &MongoBookingRepo{
		coll:      db.Collection("bookings"),
		calendars: db.Collection("booking_calendars"),
	}
}

func (repo *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var b models.Booking
	err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &b, nil
}

func (repo *MongoBookingRepo) FindByProfessional(ctx context.Context, professionalID string, excludeStatuses []models.BookingStatus) ([]models.Booking, error) {
	return findByProfessional(ctx, repo.coll, professionalID, excludeStatuses)
}

func (repo *MongoBookingRepo) FindByParty(ctx context.Context, userID string) ([]models.Booking, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"customer_id": userID},
		bson.M{"professional_id": userID},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_date", Value: -1}})
	cur, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings for user %s: %w", userID, err)
	}
	defer cur.Close(ctx)

	var bookings []models.Booking
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings for user %s: %w", userID, err)
	}
	return bookings, nil
}

func (repo *MongoBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	if _, err := repo.coll.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

// Update writes the booking guarded by the version it was read at. The filter
// matches id+version so a concurrent writer that already bumped the version
// makes this a no-op, surfaced as ErrVersionConflict.
func (repo *MongoBookingRepo) Update(ctx context.Context, b *models.Booking) error {
	filter := bson.M{"id": b.ID, "version": b.Version}
	update := bson.M{
		"$set": bson.M{
			"status":              b.Status,
			"started_at":          b.StartedAt,
			"completed_at":        b.CompletedAt,
			"cancelled_at":        b.CancelledAt,
			"cancellation_reason": b.CancellationReason,
			"progress_photos":     b.ProgressPhotos,
			"updated_at":          b.UpdatedAt,
		},
		"$inc": bson.M{"version": 1},
	}
	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update booking %s: %w", b.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrVersionConflict
	}
	b.Version++
	return nil
}

// findByProfessional is shared between the plain read path and the
// transactional create, which runs it under a session context.
func findByProfessional(ctx context.Context, coll *mongo.Collection, professionalID string, excludeStatuses []models.BookingStatus) ([]models.Booking, error) {
	filter := bson.M{"professional_id": professionalID}
	if len(excludeStatuses) > 0 {
		filter["status"] = bson.M{"$nin": excludeStatuses}
	}
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_date", Value: 1}})
	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings for professional %s: %w", professionalID, err)
	}
	defer cur.Close(ctx)

	var bookings []models.Booking
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings for professional %s: %w", professionalID, err)
	}
	return bookings, nil
}
