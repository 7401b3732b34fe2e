package activity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	activityRepo "craftlink/database/repository/activity"
	"craftlink/models"
	"craftlink/utils"
)

// Recorder writes booking activity events. Recording is best-effort: a failed
// write is logged and swallowed so it never converts a successful lifecycle
// action into a failure.
type Recorder interface {
	Record(ctx context.Context, event models.ActivityEvent)
}

// DefaultRecorder implements Recorder over the activity repository.
type DefaultRecorder struct {
	Repo activityRepo.Repository
}

func (r *DefaultRecorder) Record(ctx context.Context, event models.ActivityEvent) {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	if err := r.Repo.Insert(ctx, &event); err != nil {
		utils.GetLogger().Warn("failed to record booking activity",
			zap.String("bookingID", event.BookingID),
			zap.String("action", event.Action),
			zap.Error(err))
	}
}
