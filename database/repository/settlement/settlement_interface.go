package settlementRepo

import (
	"errors"

	"medlease/models"
)

// ErrNotFound is returned when no batch or payment matches.
var ErrNotFound = errors.New("settlement record not found")

// SettlementRepository defines persistence for settlement batches and
// facility payments.
type SettlementRepository interface {
	CreateBatch(batch *models.Batch) error
	GetBatch(id string) (*models.Batch, error)
	ListBatches(facilityID string, page, perPage int) ([]models.Batch, int64, error)
	UpdateBatch(batch *models.Batch) error

	CreatePayment(payment *models.FacilityPayment) error
	ListPayments(facilityID string, page, perPage int) ([]models.FacilityPayment, int64, error)
}
