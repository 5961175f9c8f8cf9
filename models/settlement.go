package models

import "time"

// BatchStatus tracks a settlement batch through disbursement.
type BatchStatus string

const (
	BatchOpen      BatchStatus = "open"
	BatchDisbursed BatchStatus = "disbursed"
	BatchFailed    BatchStatus = "failed"
)

// Batch groups completed, approved bookings of one facility for settlement.
type Batch struct {
	ID              string      `bson:"id" json:"id"`
	FacilityID      string      `bson:"facility_id" json:"facility_id"`
	BookingIDs      []string    `bson:"booking_ids" json:"booking_ids"`
	TotalAmount     float64     `bson:"total_amount" json:"total_amount"`
	Currency        string      `bson:"currency" json:"currency"`
	Status          BatchStatus `bson:"status" json:"status"`
	PaymentIntentID string      `bson:"payment_intent_id,omitempty" json:"payment_intent_id,omitempty"`
	CreatedBy       string      `bson:"created_by,omitempty" json:"created_by,omitempty"`
	CreatedAt       time.Time   `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time   `bson:"updated_at" json:"updated_at"`
}

// CreateBatchInput is the request payload for assembling a settlement batch.
type CreateBatchInput struct {
	FacilityID string `json:"facility_id" binding:"required"`
	DateFrom   string `json:"date_from"`
	DateTo     string `json:"date_to"`
	Currency   string `json:"currency"`
}

// FacilityPayment is one settled payment toward a facility, surfaced on the
// reconciliation side-channel.
type FacilityPayment struct {
	ID         string    `bson:"id" json:"id"`
	FacilityID string    `bson:"facility_id" json:"facility_id"`
	BatchID    string    `bson:"batch_id" json:"batch_id"`
	Amount     float64   `bson:"amount" json:"amount"`
	Currency   string    `bson:"currency" json:"currency"`
	Status     string    `bson:"status" json:"status"` // e.g. "paid"
	PaidAt     time.Time `bson:"paid_at" json:"paid_at"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
