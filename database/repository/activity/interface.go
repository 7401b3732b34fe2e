package activityRepo

import (
	"context"

	"craftlink/models"
)

// Repository persists booking activity events.
type Repository interface {
	Insert(ctx context.Context, event *models.ActivityEvent) error
}
