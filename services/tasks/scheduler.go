package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"craftlink/config"
	"craftlink/models"
)

// AsynqReminderScheduler enqueues booking reminders on the redis-backed task
// queue. Tasks fire ahead of the scheduled start by the configured lead.
type AsynqReminderScheduler struct {
	Client *asynq.Client
}

// NewAsynqReminderScheduler builds a scheduler on the configured reminder
// queue database.
func NewAsynqReminderScheduler() *AsynqReminderScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	return &AsynqReminderScheduler{Client: client}
}

// ScheduleBookingReminder enqueues reminders for both parties of a confirmed
// booking. Reminders that would fire in the past are skipped.
func (s *AsynqReminderScheduler) ScheduleBookingReminder(ctx context.Context, b *models.Booking) error {
	lead := time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute
	fireAt := b.ScheduledDate.Add(-lead)
	if fireAt.Before(time.Now()) {
		return nil
	}

	when := b.ScheduledDate.Format("2 January, 3:04 PM")
	payloads := []models.ReminderPayload{
		{
			BookingID:   b.ID,
			RecipientID: b.CustomerID,
			Target:      "customer",
			Title:       "Upcoming booking",
			Body:        fmt.Sprintf("Your %s booking starts at %s.", b.ServiceCategory, when),
			FireDate:    fireAt.Format(time.RFC3339),
		},
		{
			BookingID:   b.ID,
			RecipientID: b.ProfessionalID,
			Target:      "professional",
			Title:       "Upcoming job",
			Body:        fmt.Sprintf("Your %s engagement starts at %s.", b.ServiceCategory, when),
			FireDate:    fireAt.Format(time.RFC3339),
		},
	}

	for _, p := range payloads {
		task, opts, err := NewReminderTask(p, fireAt)
		if err != nil {
			return fmt.Errorf("failed to build reminder task: %w", err)
		}
		if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
			return fmt.Errorf("failed to enqueue reminder for %s: %w", p.RecipientID, err)
		}
	}
	return nil
}
