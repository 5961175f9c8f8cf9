package verification

import (
	"testing"
	"time"

	bookingRepo "medlease/database/repository/booking"
	"medlease/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCodeStore is an in-memory CodeStore for tests.
type memCodeStore struct {
	entries map[string]models.OTPTransaction
}

func newMemCodeStore() *memCodeStore {
	return &memCodeStore{entries: make(map[string]models.OTPTransaction)}
}

func (s *memCodeStore) Put(key string, tx *models.OTPTransaction, ttl time.Duration) error {
	s.entries[key] = *tx
	return nil
}

func (s *memCodeStore) Get(key string) (*models.OTPTransaction, error) {
	tx, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	copied := tx
	return &copied, nil
}

func (s *memCodeStore) Delete(key string) error {
	delete(s.entries, key)
	return nil
}

// fakeBookingRepo implements bookingRepo.BookingRepository with overridable
// behaviour per test.
type fakeBookingRepo struct {
	bookings       map[string]*models.Booking // keyed by ID
	consentMarked  []string
	lineSets       [][4]string // bookingID, serviceID, from, to
	failLineUpdate error
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

func (r *fakeBookingRepo) MarkConsent(id string) error {
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	b.ConsentObtained = true
	for i := range b.Services {
		if b.Services[i].Status == models.ServiceNotStarted {
			b.Services[i].Status = models.ServiceInProgress
		}
	}
	r.consentMarked = append(r.consentMarked, id)
	return nil
}

func (r *fakeBookingRepo) SetServiceLineStatus(bookingID, serviceID string, from, to models.ServiceLineStatus) error {
	if r.failLineUpdate != nil {
		return r.failLineUpdate
	}
	b, ok := r.bookings[bookingID]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	line := b.ServiceLineByID(serviceID)
	if line == nil || line.Status != from {
		return bookingRepo.ErrNotFound
	}
	line.Status = to
	r.lineSets = append(r.lineSets, [4]string{bookingID, serviceID, string(from), string(to)})
	return nil
}

func (r *fakeBookingRepo) Worklist(q models.WorklistQuery) ([]models.Booking, int64, error) {
	return nil, 0, nil
}

func (r *fakeBookingRepo) UpdatedSince(since time.Time, page, perPage int) ([]models.Booking, int64, error) {
	return nil, 0, nil
}

func (r *fakeBookingRepo) CompletedForFacility(facilityID, dateFrom, dateTo string) ([]models.Booking, error) {
	return nil, nil
}

// countingInvalidator records worklist invalidations.
type countingInvalidator struct{ calls int }

func (i *countingInvalidator) InvalidateWorklist() error {
	i.calls++
	return nil
}

// recordingDispatcher records dispatched messages.
type recordingDispatcher struct {
	sms  []models.SMSPayload
	push []models.PushPayload
}

func (d *recordingDispatcher) SendSMS(p models.SMSPayload) error {
	d.sms = append(d.sms, p)
	return nil
}

func (d *recordingDispatcher) SendPush(p models.PushPayload) error {
	d.push = append(d.push, p)
	return nil
}

// phoneBook resolves patient phone numbers for dispatch.
type phoneBook struct{ phones map[string]string }

func (p *phoneBook) Create(*models.Patient) error { return nil }

func (p *phoneBook) GetByID(id string) (*models.Patient, error) {
	phone, ok := p.phones[id]
	if !ok {
		return nil, nil
	}
	return &models.Patient{ID: id, PhoneNumber: phone}, nil
}

func (p *phoneBook) GetByPhone(string) (*models.Patient, error) { return nil, nil }

func (p *phoneBook) Search(string, int, int) ([]models.Patient, int64, error) {
	return nil, 0, nil
}

func (p *phoneBook) Update(*models.Patient) error { return nil }
func (p *phoneBook) Delete(string) error          { return nil }

func testBooking() *models.Booking {
	return &models.Booking{
		ID:            "b-1",
		BookingNumber: "BK-TEST01",
		PatientID:     "p-1",
		Status:        models.BookingApproved,
		Services: []models.ServiceLine{
			{ServiceID: "sv-1", Name: "Dialysis", Status: models.ServiceInProgress},
			{ServiceID: "sv-2", Name: "Imaging", Status: models.ServiceInProgress},
		},
	}
}

func newTestService(bookings ...*models.Booking) (*DefaultVerificationService, *fakeBookingRepo, *memCodeStore, *recordingDispatcher, *countingInvalidator) {
	repo := newFakeBookingRepo(bookings...)
	store := newMemCodeStore()
	dispatcher := &recordingDispatcher{}
	invalidator := &countingInvalidator{}
	svc := &DefaultVerificationService{
		BookingRepo: repo,
		Store:       store,
		Dispatcher:  dispatcher,
		Worklist:    invalidator,
		EchoCodes:   true,
	}
	return svc, repo, store, dispatcher, invalidator
}

func TestRequestConsentOTPUnknownBooking(t *testing.T) {
	svc, _, store, _, _ := newTestService()

	_, err := svc.RequestConsentOTP("BK-NOPE")
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.Empty(t, store.entries)
}

func TestRequestConsentOTPStoresAndDispatches(t *testing.T) {
	svc, _, store, dispatcher, _ := newTestService(testBooking())

	tx, err := svc.RequestConsentOTP("BK-TEST01")
	require.NoError(t, err)

	assert.Equal(t, models.OTPPurposeConsent, tx.Purpose)
	assert.Len(t, tx.Code, 6)
	assert.Equal(t, 0, tx.ResendCount)

	stored, ok := store.entries["consent:BK-TEST01"]
	require.True(t, ok)
	assert.Equal(t, tx.Code, stored.Code)

	// The code travels out of band; one SMS is sent unless no phone resolves.
	assert.LessOrEqual(t, len(dispatcher.sms), 1)
}

func TestRequestConsentOTPStatusTracksDelivery(t *testing.T) {
	svc, _, store, dispatcher, _ := newTestService(testBooking())

	// No phone resolves, so the code never leaves through the SMS queue.
	tx, err := svc.RequestConsentOTP("BK-TEST01")
	require.NoError(t, err)
	assert.Equal(t, models.OTPRequested, tx.Status)
	assert.Empty(t, dispatcher.sms)

	svc.PatientRepo = &phoneBook{phones: map[string]string{"p-1": "+100200300"}}
	tx, err = svc.RequestConsentOTP("BK-TEST01")
	require.NoError(t, err)
	assert.Equal(t, models.OTPSent, tx.Status)
	assert.Len(t, dispatcher.sms, 1)
	assert.Equal(t, models.OTPSent, store.entries["consent:BK-TEST01"].Status)
}

func TestRequestConsentOTPRedactsWhenEchoDisabled(t *testing.T) {
	svc, _, store, _, _ := newTestService(testBooking())
	svc.EchoCodes = false

	tx, err := svc.RequestConsentOTP("BK-TEST01")
	require.NoError(t, err)

	assert.Empty(t, tx.Code)
	assert.NotEmpty(t, store.entries["consent:BK-TEST01"].Code)
}

func TestValidateConsentOTPWrongCodeChangesNothing(t *testing.T) {
	svc, repo, store, _, invalidator := newTestService(testBooking())

	_, err := svc.RequestConsentOTP("BK-TEST01")
	require.NoError(t, err)

	_, err = svc.ValidateConsentOTP(models.ConsentOTPValidation{
		BookingNumber: "BK-TEST01",
		OTPCode:       "000000x", // cannot collide with a 6-digit code
	})
	assert.ErrorIs(t, err, ErrCodeMismatch)

	assert.Empty(t, repo.consentMarked)
	assert.Equal(t, 0, invalidator.calls)
	// The transaction survives a failed attempt; the operator may retry.
	assert.Contains(t, store.entries, "consent:BK-TEST01")
}

func TestValidateConsentOTPSuccessConsumesCode(t *testing.T) {
	svc, repo, store, _, invalidator := newTestService(testBooking())

	tx, err := svc.RequestConsentOTP("BK-TEST01")
	require.NoError(t, err)

	booking, err := svc.ValidateConsentOTP(models.ConsentOTPValidation{
		BookingNumber: "BK-TEST01",
		OTPCode:       tx.Code,
	})
	require.NoError(t, err)

	assert.True(t, booking.ConsentObtained)
	assert.Equal(t, []string{"b-1"}, repo.consentMarked)
	assert.Equal(t, 1, invalidator.calls)
	assert.NotContains(t, store.entries, "consent:BK-TEST01")

	// Replaying the consumed code must fail.
	_, err = svc.ValidateConsentOTP(models.ConsentOTPValidation{
		BookingNumber: "BK-TEST01",
		OTPCode:       tx.Code,
	})
	assert.ErrorIs(t, err, ErrCodeMismatch)
}

func TestValidateConsentOTPNeverRequested(t *testing.T) {
	svc, _, _, _, _ := newTestService(testBooking())

	_, err := svc.ValidateConsentOTP(models.ConsentOTPValidation{
		BookingNumber: "BK-TEST01",
		OTPCode:       "123456",
	})
	assert.ErrorIs(t, err, ErrCodeMismatch)
}

func TestResendConsentOTPCountsAndCaps(t *testing.T) {
	svc, _, store, _, _ := newTestService(testBooking())

	_, err := svc.RequestConsentOTP("BK-TEST01")
	require.NoError(t, err)

	for i := 1; i <= maxResends; i++ {
		tx, err := svc.ResendConsentOTP("BK-TEST01")
		require.NoError(t, err)
		assert.Equal(t, i, tx.ResendCount)
	}

	_, err = svc.ResendConsentOTP("BK-TEST01")
	assert.ErrorIs(t, err, ErrTooManyResends)
	// The last issued code stays valid after a refused resend.
	assert.Contains(t, store.entries, "consent:BK-TEST01")
}

func TestRequestCompletionOTPRequiresActiveLine(t *testing.T) {
	booking := testBooking()
	booking.Services[1].Status = models.ServiceCompleted
	svc, _, _, _, _ := newTestService(booking)

	_, err := svc.RequestCompletionOTP("b-1", "sv-2")
	assert.ErrorIs(t, err, ErrServiceLineNotActive)

	_, err = svc.RequestCompletionOTP("b-1", "sv-404")
	assert.ErrorIs(t, err, ErrServiceLineNotFound)
}

func TestVerifyCompletionOTPCompletesOnlyTargetLine(t *testing.T) {
	svc, repo, store, dispatcher, invalidator := newTestService(testBooking())

	tx, err := svc.RequestCompletionOTP("b-1", "sv-1")
	require.NoError(t, err)
	require.Contains(t, store.entries, "completion:b-1:sv-1")

	booking, err := svc.VerifyCompletionOTP("b-1", "sv-1", tx.Code)
	require.NoError(t, err)

	assert.Equal(t, models.ServiceCompleted, booking.ServiceLineByID("sv-1").Status)
	assert.Equal(t, models.ServiceInProgress, booking.ServiceLineByID("sv-2").Status)
	assert.False(t, booking.AllServicesCompleted())

	require.Len(t, repo.lineSets, 1)
	assert.Equal(t, [4]string{"b-1", "sv-1", "in_progress", "completed"}, repo.lineSets[0])

	assert.NotContains(t, store.entries, "completion:b-1:sv-1")
	assert.Equal(t, 1, invalidator.calls)
	assert.Len(t, dispatcher.push, 1)
}

func TestCompletionTransactionsAreIndependent(t *testing.T) {
	svc, _, store, _, _ := newTestService(testBooking())

	tx1, err := svc.RequestCompletionOTP("b-1", "sv-1")
	require.NoError(t, err)
	tx2, err := svc.RequestCompletionOTP("b-1", "sv-2")
	require.NoError(t, err)

	// Verifying one line must not touch the sibling's transaction.
	_, err = svc.VerifyCompletionOTP("b-1", "sv-1", tx1.Code)
	require.NoError(t, err)
	assert.Contains(t, store.entries, "completion:b-1:sv-2")

	booking, err := svc.VerifyCompletionOTP("b-1", "sv-2", tx2.Code)
	require.NoError(t, err)
	assert.True(t, booking.AllServicesCompleted())
}

func TestVerifyCompletionOTPWrongCodeLeavesLineInProgress(t *testing.T) {
	svc, repo, _, _, _ := newTestService(testBooking())

	_, err := svc.RequestCompletionOTP("b-1", "sv-1")
	require.NoError(t, err)

	_, err = svc.VerifyCompletionOTP("b-1", "sv-1", "not-it")
	assert.ErrorIs(t, err, ErrCodeMismatch)

	b, err := repo.GetByID("b-1")
	require.NoError(t, err)
	assert.Equal(t, models.ServiceInProgress, b.ServiceLineByID("sv-1").Status)
}
