package booking

import (
	"strings"
	"testing"
	"time"

	bookingRepo "medlease/database/repository/booking"
	"medlease/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookingRepo struct {
	bookings map[string]*models.Booking
	updated  []models.Booking
}

func newFakeBookingRepo(bookings ...*models.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (r *fakeBookingRepo) Create(b *models.Booking) error {
	r.bookings[b.ID] = b
	return nil
}

func (r *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) GetByNumber(number string) (*models.Booking, error) {
	for _, b := range r.bookings {
		if b.BookingNumber == number {
			copied := *b
			return &copied, nil
		}
	}
	return nil, bookingRepo.ErrNotFound
}

func (r *fakeBookingRepo) UpdateStatus(id string, from, to models.BookingStatus) error {
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	if b.Status != from {
		return bookingRepo.ErrConflict
	}
	b.Status = to
	return nil
}

func (r *fakeBookingRepo) MarkConsent(id string) error { return nil }

func (r *fakeBookingRepo) SetServiceLineStatus(bookingID, serviceID string, from, to models.ServiceLineStatus) error {
	b, ok := r.bookings[bookingID]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	line := b.ServiceLineByID(serviceID)
	if line == nil || line.Status != from {
		return bookingRepo.ErrConflict
	}
	line.Status = to
	return nil
}

func (r *fakeBookingRepo) Worklist(q models.WorklistQuery) ([]models.Booking, int64, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) UpdatedSince(since time.Time, page, perPage int) ([]models.Booking, int64, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.UpdatedAt.After(since) {
			out = append(out, *b)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) CompletedForFacility(facilityID, dateFrom, dateTo string) ([]models.Booking, error) {
	return nil, nil
}

type fakePatientRepo struct {
	patients map[string]*models.Patient
}

func (r *fakePatientRepo) Create(p *models.Patient) error { return nil }

func (r *fakePatientRepo) GetByID(id string) (*models.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	return p, nil
}

func (r *fakePatientRepo) GetByPhone(phone string) (*models.Patient, error) { return nil, nil }

func (r *fakePatientRepo) Search(term string, page, perPage int) ([]models.Patient, int64, error) {
	return nil, 0, nil
}

func (r *fakePatientRepo) Update(p *models.Patient) error { return nil }
func (r *fakePatientRepo) Delete(id string) error         { return nil }

type recordingPusher struct{ pushes []models.PushPayload }

func (p *recordingPusher) SendPush(payload models.PushPayload) error {
	p.pushes = append(p.pushes, payload)
	return nil
}

func newTestService(bookings ...*models.Booking) (*DefaultBookingService, *fakeBookingRepo, *recordingPusher) {
	repo := newFakeBookingRepo(bookings...)
	pusher := &recordingPusher{}
	svc := &DefaultBookingService{
		Repo: repo,
		Patients: &fakePatientRepo{patients: map[string]*models.Patient{
			"p-1": {ID: "p-1", FirstName: "Jane", LastName: "Doe", PhoneNumber: "+100200300"},
		}},
		Pusher: pusher,
	}
	return svc, repo, pusher
}

func validInput() models.CreateBookingInput {
	input := models.CreateBookingInput{
		PatientID:   "p-1",
		FacilityID:  "fac-1",
		PaymentMode: models.PaymentModeInsurance,
		Date:        "2026-09-01",
	}
	input.Services = append(input.Services, struct {
		ServiceID   string  `json:"service_id" binding:"required"`
		EquipmentID string  `json:"equipment_id"`
		Name        string  `json:"name"`
		Cost        float64 `json:"cost"`
	}{ServiceID: "sv-1", Name: "Dialysis", Cost: 120.50},
		struct {
			ServiceID   string  `json:"service_id" binding:"required"`
			EquipmentID string  `json:"equipment_id"`
			Name        string  `json:"name"`
			Cost        float64 `json:"cost"`
		}{ServiceID: "sv-2", Name: "Imaging", Cost: 79.50})
	return input
}

func TestCreateBookingPricesAndDefaults(t *testing.T) {
	svc, repo, _ := newTestService()

	booking, err := svc.CreateBooking(validInput())
	require.NoError(t, err)

	assert.Equal(t, models.BookingPending, booking.Status)
	assert.InDelta(t, 200.0, booking.TotalCost, 0.001)
	assert.True(t, strings.HasPrefix(booking.BookingNumber, "BK-"))
	assert.Len(t, booking.BookingNumber, 11)
	for _, line := range booking.Services {
		assert.Equal(t, models.ServiceNotStarted, line.Status)
	}
	assert.False(t, booking.ConsentObtained)
	assert.Contains(t, repo.bookings, booking.ID)
}

func TestCreateBookingRejectsBadInput(t *testing.T) {
	svc, _, _ := newTestService()

	input := validInput()
	input.PaymentMode = models.PaymentMode("barter")
	_, err := svc.CreateBooking(input)
	assert.ErrorIs(t, err, ErrInvalidPaymentMode)

	input = validInput()
	input.Date = "01/09/2026"
	_, err = svc.CreateBooking(input)
	assert.ErrorIs(t, err, ErrInvalidDate)

	input = validInput()
	input.PatientID = "p-404"
	_, err = svc.CreateBooking(input)
	assert.Error(t, err)
}

func TestApproveBookingIsOneShot(t *testing.T) {
	svc, _, pusher := newTestService(&models.Booking{
		ID: "b-1", BookingNumber: "BK-A", PatientID: "p-1", Status: models.BookingPending,
	})

	booking, err := svc.ApproveBooking("b-1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingApproved, booking.Status)
	assert.Len(t, pusher.pushes, 1)

	// A second decision on the same booking is refused, in either direction.
	_, err = svc.ApproveBooking("b-1")
	assert.ErrorIs(t, err, bookingRepo.ErrConflict)
	_, err = svc.RejectBooking("b-1")
	assert.ErrorIs(t, err, bookingRepo.ErrConflict)
}

func TestRejectBooking(t *testing.T) {
	svc, _, _ := newTestService(&models.Booking{
		ID: "b-1", BookingNumber: "BK-A", PatientID: "p-1", Status: models.BookingPending,
	})

	booking, err := svc.RejectBooking("b-1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingRejected, booking.Status)
}

func TestCancelServiceLine(t *testing.T) {
	svc, _, _ := newTestService(&models.Booking{
		ID: "b-1", BookingNumber: "BK-A", PatientID: "p-1", Status: models.BookingApproved,
		Services: []models.ServiceLine{
			{ServiceID: "sv-1", Status: models.ServiceInProgress},
			{ServiceID: "sv-2", Status: models.ServiceCompleted},
		},
	})

	booking, err := svc.CancelServiceLine("b-1", "sv-1")
	require.NoError(t, err)
	assert.Equal(t, models.ServiceCancelled, booking.ServiceLineByID("sv-1").Status)

	// Completed lines are immutable.
	_, err = svc.CancelServiceLine("b-1", "sv-2")
	assert.ErrorIs(t, err, ErrLineNotCancellable)

	_, err = svc.CancelServiceLine("b-1", "sv-404")
	assert.ErrorIs(t, err, bookingRepo.ErrNotFound)
}

func TestWorklistJoinsPatientNames(t *testing.T) {
	svc, _, _ := newTestService(&models.Booking{
		ID: "b-1", BookingNumber: "BK-A", PatientID: "p-1",
		Status: models.BookingApproved, ConsentObtained: true,
		Services: []models.ServiceLine{{ServiceID: "sv-1", Status: models.ServiceInProgress}},
	})

	page, err := svc.Worklist(models.WorklistQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	entry := page.Items[0]
	assert.Equal(t, "Jane Doe", entry.PatientName)
	assert.True(t, entry.Consent)
	assert.Equal(t, int64(1), page.Pagination.Total)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Equal(t, 20, page.Pagination.PerPage)
}

func TestSyncRejectsBadTimestamp(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Sync(models.SyncQuery{Since: "yesterday"})
	assert.Error(t, err)
}

func TestSyncReturnsChangedBookings(t *testing.T) {
	now := time.Now()
	svc, _, _ := newTestService(
		&models.Booking{ID: "b-old", PatientID: "p-1", UpdatedAt: now.Add(-2 * time.Hour)},
		&models.Booking{ID: "b-new", PatientID: "p-1", UpdatedAt: now},
	)

	page, err := svc.Sync(models.SyncQuery{Since: now.Add(-time.Hour).Format(time.RFC3339)})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "b-new", page.Items[0].ID)
}
