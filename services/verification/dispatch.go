package verification

import (
	"fmt"

	"medlease/models"
	"medlease/services/tasks"

	"github.com/hibiken/asynq"
)

// AsynqDispatcher implements Dispatcher by enqueueing tasks for the
// background worker. Delivery happens off the request path.
type AsynqDispatcher struct {
	Client *asynq.Client
}

func NewAsynqDispatcher(client *asynq.Client) *AsynqDispatcher {
	return &AsynqDispatcher{Client: client}
}

func (d *AsynqDispatcher) SendSMS(payload models.SMSPayload) error {
	task, err := tasks.NewSMSTask(payload)
	if err != nil {
		return fmt.Errorf("failed to build SMS task: %w", err)
	}
	if _, err := d.Client.Enqueue(task, asynq.MaxRetry(3)); err != nil {
		return fmt.Errorf("failed to enqueue SMS task: %w", err)
	}
	return nil
}

func (d *AsynqDispatcher) SendPush(payload models.PushPayload) error {
	task, err := tasks.NewPushTask(payload)
	if err != nil {
		return fmt.Errorf("failed to build push task: %w", err)
	}
	if _, err := d.Client.Enqueue(task, asynq.MaxRetry(3)); err != nil {
		return fmt.Errorf("failed to enqueue push task: %w", err)
	}
	return nil
}
