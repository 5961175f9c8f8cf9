package cron

import (
	"context"
	"encoding/json"
	"time"

	"medlease/config"
	"medlease/models"
	"medlease/services/notification"
	"medlease/services/tasks"
	"medlease/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitNotificationWorker runs the async delivery worker in the background.
// It drains the SMS and push queues fed by the API handlers.
func InitNotificationWorker(notifSvc notification.NotificationService) {
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
	mux.HandleFunc(tasks.TypeSendSMS, handleSMSTask(notifSvc))
	mux.HandleFunc(tasks.TypeSendPush, handlePushTask(notifSvc))

	go func() {
		logger := utils.GetLogger()
		logger.Info("starting notification worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("notification worker failed to start",
					zap.Int("attempt", attempts), zap.Int("max_attempts", maxAttempts), zap.Error(err))

				if attempts == maxAttempts {
					logger.Fatal("notification worker exhausted retries")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleSMSTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.SMSPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("invalid SMS task payload", zap.Error(err))
			return err
		}
		if err := notifSvc.SendSMS(ctx, p); err != nil {
			utils.GetLogger().Error("SMS delivery failed", zap.String("phone", p.PhoneNumber), zap.Error(err))
			return err
		}
		return nil
	}
}

func handlePushTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.PushPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("invalid push task payload", zap.Error(err))
			return err
		}
		if err := notifSvc.SendPatientPush(ctx, p.PatientID, p.Title, p.Body, p.Data); err != nil {
			utils.GetLogger().Error("push delivery failed", zap.String("patient", p.PatientID), zap.Error(err))
			return err
		}
		return nil
	}
}
