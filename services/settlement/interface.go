package settlement

import (
	bookingRepo "medlease/database/repository/booking"
	settlementRepo "medlease/database/repository/settlement"
	"medlease/models"
)

// SettlementService assembles settlement batches from completed bookings and
// drives disbursement to facilities.
type SettlementService interface {
	CreateBatch(input models.CreateBatchInput, createdBy string) (*models.Batch, error)
	GetBatch(id string) (*models.Batch, error)
	ListBatches(facilityID string, page, perPage int) ([]models.Batch, int64, error)

	// DisburseBatch pays out an open batch. The batch moves to disbursed or
	// failed; disbursed batches are immutable.
	DisburseBatch(id string) (*models.Batch, error)

	ListPayments(facilityID string, page, perPage int) ([]models.FacilityPayment, int64, error)
}

// DefaultSettlementService is the production implementation.
type DefaultSettlementService struct {
	Repo     settlementRepo.SettlementRepository
	Bookings bookingRepo.BookingRepository
}
