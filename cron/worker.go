package cron

import (
	"context"
	"encoding/json"
	"time"

	"petbook/config"
	appointmentRepo "petbook/database/repository/appointment"
	"petbook/models"
	"petbook/services/notification"
	"petbook/services/tasks"
	"petbook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitNotificationWorker runs the async email worker in background. Asynq
// handles the per-task retry and backoff; the worker process itself retries
// its startup against Redis before giving up.
func InitNotificationWorker(repo appointmentRepo.AppointmentRepository, notifSvc notification.NotificationService) {
	logger := utils.GetLogger()

	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendConfirmation, handleConfirmationTask(notifSvc))
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(repo, notifSvc))

	go func() {
		logger.Info("starting notification worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Warn("notification worker failed to start",
					zap.Int("attempt", attempts), zap.Error(err))

				if attempts == maxAttempts {
					logger.Sugar().Fatal("notification worker: max retry attempts reached")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// handleConfirmationTask delivers the booking confirmation carried in the
// task payload.
func handleConfirmationTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var appt models.Appointment
		if err := json.Unmarshal(task.Payload(), &appt); err != nil {
			utils.GetLogger().Error("confirmation task has invalid payload", zap.Error(err))
			return err
		}
		return notifSvc.SendBookingConfirmation(ctx, &appt)
	}
}

// handleReminderTask re-reads the appointment at fire time: a booking
// cancelled after scheduling must not be reminded.
func handleReminderTask(repo appointmentRepo.AppointmentRepository, notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var appt models.Appointment
		if err := json.Unmarshal(task.Payload(), &appt); err != nil {
			utils.GetLogger().Error("reminder task has invalid payload", zap.Error(err))
			return err
		}

		current, err := repo.GetByID(appt.ID)
		if err != nil {
			return err
		}
		if current == nil || current.Status == models.StatusCancelled {
			return nil
		}
		return notifSvc.SendAppointmentReminder(ctx, current)
	}
}
