package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"craftlink/models"
)

const TypeSendReminder = "reminder:send"

// NewReminderTask builds an asynq task that fires the reminder at the given
// instant.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}
