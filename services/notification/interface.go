package notification

import (
	"context"
	"fmt"

	"medlease/config"
	patientRepo "medlease/database/repository/patient"
	"medlease/models"
	"medlease/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService delivers out-of-band messages to patients: SMS for
// verification codes and FCM pushes for status updates.
type NotificationService interface {
	SendPatientPush(ctx context.Context, patientID, title, body string, data map[string]string) error
	SendSMS(ctx context.Context, payload models.SMSPayload) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	patients patientRepo.PatientRepository
}

func NewDefaultNotificationService(patients patientRepo.PatientRepository) (*DefaultNotificationService, error) {
	if patients == nil {
		return nil, fmt.Errorf("notification service initialization error: patient repository is nil")
	}
	return &DefaultNotificationService{patients: patients}, nil
}

// SendPatientPush looks up the patient's FCM token and sends a push.
func (s *DefaultNotificationService) SendPatientPush(
	ctx context.Context,
	patientID, title, body string,
	data map[string]string,
) error {
	p, err := s.patients.GetByID(patientID)
	if err != nil {
		return fmt.Errorf("SendPatientPush: could not find patient %s: %w", patientID, err)
	}
	if p.FCMToken == "" {
		// No registered device; nothing to deliver.
		return nil
	}
	if utils.FCMClient == nil {
		utils.GetLogger().Warn("FCM client not configured, dropping push", zap.String("patient", patientID))
		return nil
	}

	msg := &messaging.Message{
		Token: p.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendPatientPush: failed to send FCM message: %w", err)
	}
	return nil
}

// SendSMS hands the message to the SMS gateway. The gateway integration is
// deployment-specific; here delivery is recorded through the structured log
// so demo environments can observe outbound traffic.
func (s *DefaultNotificationService) SendSMS(ctx context.Context, payload models.SMSPayload) error {
	if payload.PhoneNumber == "" {
		return fmt.Errorf("SendSMS: empty phone number")
	}
	sender := payload.SenderID
	if sender == "" {
		sender = config.AppConfig.SMSSenderID
	}
	utils.GetLogger().Info("sms dispatched",
		zap.String("sender", sender),
		zap.String("phone", payload.PhoneNumber),
		zap.Int("length", len(payload.Message)),
	)
	return nil
}
