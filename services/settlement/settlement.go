package settlement

import (
	"errors"
	"fmt"
	"math"
	"time"

	"medlease/models"
	"medlease/utils"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

const defaultCurrency = "usd"

// ErrNoEligibleBookings is returned when no completed approved bookings fall
// in the requested window.
var ErrNoEligibleBookings = errors.New("no eligible bookings for settlement")

// ErrBatchNotOpen is returned when disbursement targets a batch that has
// already been decided.
var ErrBatchNotOpen = errors.New("batch is not open")

// CreateBatch gathers the facility's completed, approved bookings in the date
// window and assembles them into an open settlement batch.
func (s *DefaultSettlementService) CreateBatch(input models.CreateBatchInput, createdBy string) (*models.Batch, error) {
	bookings, err := s.Bookings.CompletedForFacility(input.FacilityID, input.DateFrom, input.DateTo)
	if err != nil {
		return nil, fmt.Errorf("failed to collect settleable bookings: %w", err)
	}
	if len(bookings) == 0 {
		return nil, ErrNoEligibleBookings
	}

	currency := input.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	now := time.Now()
	batch := &models.Batch{
		ID:         uuid.New().String(),
		FacilityID: input.FacilityID,
		Currency:   currency,
		Status:     models.BatchOpen,
		CreatedBy:  createdBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, b := range bookings {
		batch.BookingIDs = append(batch.BookingIDs, b.ID)
		batch.TotalAmount += b.TotalCost
	}

	if err := s.Repo.CreateBatch(batch); err != nil {
		return nil, fmt.Errorf("failed to create settlement batch: %w", err)
	}
	return batch, nil
}

func (s *DefaultSettlementService) GetBatch(id string) (*models.Batch, error) {
	return s.Repo.GetBatch(id)
}

func (s *DefaultSettlementService) ListBatches(facilityID string, page, perPage int) ([]models.Batch, int64, error) {
	return s.Repo.ListBatches(facilityID, page, perPage)
}

// DisburseBatch creates a payment intent for the batch total and records the
// resulting facility payment. Any gateway failure marks the batch failed so a
// new batch can be cut after the cause is resolved.
func (s *DefaultSettlementService) DisburseBatch(id string) (*models.Batch, error) {
	batch, err := s.Repo.GetBatch(id)
	if err != nil {
		return nil, err
	}
	if batch.Status != models.BatchOpen {
		return nil, ErrBatchNotOpen
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(toMinorUnits(batch.TotalAmount)),
		Currency: stripe.String(batch.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("batch_id", batch.ID)
	params.AddMetadata("facility_id", batch.FacilityID)

	intent, err := paymentintent.New(params)
	if err != nil {
		batch.Status = models.BatchFailed
		batch.UpdatedAt = time.Now()
		if uerr := s.Repo.UpdateBatch(batch); uerr != nil {
			utils.GetLogger().Error("failed to record batch failure", zap.String("batch", batch.ID), zap.Error(uerr))
		}
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	now := time.Now()
	batch.Status = models.BatchDisbursed
	batch.PaymentIntentID = intent.ID
	batch.UpdatedAt = now
	if err := s.Repo.UpdateBatch(batch); err != nil {
		return nil, fmt.Errorf("failed to update settlement batch: %w", err)
	}

	payment := &models.FacilityPayment{
		ID:         uuid.New().String(),
		FacilityID: batch.FacilityID,
		BatchID:    batch.ID,
		Amount:     batch.TotalAmount,
		Currency:   batch.Currency,
		Status:     "paid",
		PaidAt:     now,
		CreatedAt:  now,
	}
	if err := s.Repo.CreatePayment(payment); err != nil {
		// The disbursement went through; surface the bookkeeping gap loudly.
		utils.GetLogger().Error("failed to record facility payment",
			zap.String("batch", batch.ID), zap.Error(err))
	}
	return batch, nil
}

func (s *DefaultSettlementService) ListPayments(facilityID string, page, perPage int) ([]models.FacilityPayment, int64, error) {
	return s.Repo.ListPayments(facilityID, page, perPage)
}

// toMinorUnits converts a major-unit amount to the gateway's integer minor
// units (e.g. dollars to cents).
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
