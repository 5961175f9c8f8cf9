package tasks

import (
	"encoding/json"

	"medlease/models"

	"github.com/hibiken/asynq"
)

const (
	TypeSendSMS  = "sms:send"
	TypeSendPush = "push:send"
)

func NewSMSTask(payload models.SMSPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSendSMS, b), nil
}

func NewPushTask(payload models.PushPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSendPush, b), nil
}
