package booking

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	professionalRepo "craftlink/database/repository/professional"
	"craftlink/utils"
)

const availabilityKeyPrefix = "professional:available:"

// AvailabilityChecker answers whether a professional currently accepts
// bookings, with a short-lived cache in front of the repository so bursts of
// creation requests do not hammer the professionals collection.
type AvailabilityChecker struct {
	Professionals professionalRepo.Repository
	Cache         *redis.Client
	TTL           time.Duration
}

// IsAvailable consults the cache first; cache failures fall through to the
// repository so availability is never decided by a broken cache.
func (a *AvailabilityChecker) IsAvailable(ctx context.Context, professionalID string) (bool, error) {
	key := availabilityKeyPrefix + professionalID
	if a.Cache != nil {
		if cached, err := a.Cache.Get(ctx, key).Result(); err == nil {
			return cached == "1", nil
		}
	}

	available, err := a.Professionals.IsAvailable(ctx, professionalID)
	if err != nil {
		return false, err
	}

	if a.Cache != nil {
		val := "0"
		if available {
			val = "1"
		}
		if err := a.Cache.Set(ctx, key, val, a.TTL).Err(); err != nil {
			utils.GetLogger().Warn("failed to cache professional availability",
				zap.String("professionalID", professionalID), zap.Error(err))
		}
	}
	return available, nil
}
