package models

// WorklistQuery carries the filters of a practitioner worklist request.
type WorklistQuery struct {
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
	Status   string `form:"status"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
	Search   string `form:"search"`
}

// Normalize applies pagination defaults and bounds.
func (q *WorklistQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = 20
	}
	if q.PerPage > 100 {
		q.PerPage = 100
	}
}

// WorklistEntry is one booking row in the practitioner worklist, with
// per-service completion status.
type WorklistEntry struct {
	BookingID     string        `json:"booking_id"`
	BookingNumber string        `json:"booking_number"`
	PatientID     string        `json:"patient_id"`
	PatientName   string        `json:"patient_name,omitempty"`
	FacilityID    string        `json:"facility_id"`
	Date          string        `json:"date"`
	Status        BookingStatus `json:"status"`
	Consent       bool          `json:"consent_obtained"`
	Services      []ServiceLine `json:"services"`
}

// WorklistPage is one page of the worklist.
type WorklistPage struct {
	Items      []WorklistEntry `json:"items"`
	Pagination Pagination      `json:"pagination"`
}

// SyncQuery drives the reconciliation side-channel: bookings changed since a
// given instant, paginated.
type SyncQuery struct {
	Since   string `form:"since"` // RFC 3339
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

// Normalize applies pagination defaults and bounds.
func (q *SyncQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = 50
	}
	if q.PerPage > 200 {
		q.PerPage = 200
	}
}

// SyncPage is one page of full booking documents for reconciliation.
type SyncPage struct {
	Items      []Booking  `json:"items"`
	Pagination Pagination `json:"pagination"`
}
