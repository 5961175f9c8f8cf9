package models

// SMSPayload is the asynq task payload for out-of-band message delivery.
type SMSPayload struct {
	PhoneNumber string `json:"phone_number"`
	Message     string `json:"message"`
	SenderID    string `json:"sender_id,omitempty"`
}

// PushPayload is the asynq task payload for an FCM push.
type PushPayload struct {
	PatientID string            `json:"patient_id"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Data      map[string]string `json:"data,omitempty"`
}
