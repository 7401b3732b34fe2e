package activityRepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"craftlink/database"
	"craftlink/models"
)

// MongoActivityRepo implements Repository backed by MongoDB.
type MongoActivityRepo struct {
	coll *mongo.Collection
}

// NewMongoActivityRepo returns a repository over the booking_activity
// collection.
func NewMongoActivityRepo() *MongoActivityRepo {
	return &MongoActivityRepo{
		coll: database.MongoClient.Database(database.DatabaseName).Collection("booking_activity"),
	}
}

func (repo *MongoActivityRepo) Insert(ctx context.Context, event *models.ActivityEvent) error {
	if _, err := repo.coll.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("failed to insert activity event: %w", err)
	}
	return nil
}
