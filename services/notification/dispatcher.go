package notification

import (
	"time"

	"petbook/models"
	"petbook/services/tasks"
	"petbook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Dispatcher enqueues confirmation and reminder emails on the Redis-backed
// task queue. Delivery happens in the worker (see cron), so email latency and
// email failures never reach the booking path. Enqueue never returns an error
// to the caller: a queue problem is logged and the booking proceeds.
type Dispatcher struct {
	client *asynq.Client
}

// NewDispatcher wraps an asynq client for the booking service.
func NewDispatcher(client *asynq.Client) *Dispatcher {
	return &Dispatcher{client: client}
}

// Enqueue schedules the confirmation email for appt, plus a reminder one day
// before the slot when that moment is still in the future.
func (d *Dispatcher) Enqueue(appt *models.Appointment) {
	logger := utils.GetLogger()

	task, opts, err := tasks.NewConfirmationTask(appt)
	if err != nil {
		logger.Warn("failed to build confirmation task",
			zap.String("appointmentID", appt.ID), zap.Error(err))
		return
	}
	if _, err := d.client.Enqueue(task, opts...); err != nil {
		logger.Warn("failed to enqueue confirmation task",
			zap.String("appointmentID", appt.ID),
			zap.String("email", appt.UserEmail),
			zap.Error(err))
	}

	fireAt, err := tasks.ReminderFireTime(appt)
	if err != nil || !fireAt.After(time.Now().UTC()) {
		return
	}
	task, opts, err = tasks.NewReminderTask(appt, fireAt)
	if err != nil {
		logger.Warn("failed to build reminder task",
			zap.String("appointmentID", appt.ID), zap.Error(err))
		return
	}
	if _, err := d.client.Enqueue(task, opts...); err != nil {
		logger.Warn("failed to enqueue reminder task",
			zap.String("appointmentID", appt.ID),
			zap.Time("fireAt", fireAt),
			zap.Error(err))
	}
}
