package professionalRepo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"craftlink/database"
	"craftlink/models"
)

// MongoProfessionalRepo implements Repository backed by MongoDB.
type MongoProfessionalRepo struct {
	coll *mongo.Collection
}

// NewMongoProfessionalRepo returns a repository over the professionals
// collection.
func NewMongoProfessionalRepo() *MongoProfessionalRepo {
	return &MongoProfessionalRepo{
		coll: database.MongoClient.Database(database.DatabaseName).Collection("professionals"),
	}
}

func (repo *MongoProfessionalRepo) GetByID(ctx context.Context, id string) (*models.Professional, error) {
	var p models.Professional
	err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch professional %s: %w", id, err)
	}
	return &p, nil
}

func (repo *MongoProfessionalRepo) IsAvailable(ctx context.Context, id string) (bool, error) {
	p, err := repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if p == nil {
		return false, nil
	}
	return p.Available, nil
}
