package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"petbook/models"

	"github.com/hibiken/asynq"
)

const (
	TypeSendConfirmation = "confirmation:send"
	TypeSendReminder     = "reminder:send"
)

const maxSendAttempts = 3

// NewConfirmationTask builds the task that emails a booking confirmation.
func NewConfirmationTask(appt *models.Appointment) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(appt)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendConfirmation, b)
	opts := []asynq.Option{asynq.MaxRetry(maxSendAttempts - 1)}

	return task, opts, nil
}

// NewReminderTask builds the task that emails a reminder, scheduled for fireAt.
func NewReminderTask(appt *models.Appointment, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(appt)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt), asynq.MaxRetry(maxSendAttempts - 1)}

	return task, opts, nil
}

// ReminderFireTime returns the moment the reminder for appt should fire: one
// day before the slot, anchored in UTC like the slot grid.
func ReminderFireTime(appt *models.Appointment) (time.Time, error) {
	slot, err := time.Parse("2006-01-02 15:04", appt.Date+" "+appt.Time)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid appointment slot %q %q: %w", appt.Date, appt.Time, err)
	}
	return slot.Add(-24 * time.Hour), nil
}
