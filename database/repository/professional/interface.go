package professionalRepo

import (
	"context"

	"craftlink/models"
)

// Repository defines read access to professionals. This core never mutates
// them; profile management lives elsewhere.
type Repository interface {
	// GetByID returns the professional, or (nil, nil) when absent.
	GetByID(ctx context.Context, id string) (*models.Professional, error)
	// IsAvailable reports whether the professional currently accepts bookings.
	IsAvailable(ctx context.Context, id string) (bool, error)
}
