package models

import "time"

// BookingStatus is the coarse-grained approval state of a booking.
type BookingStatus string

const (
	BookingPending  BookingStatus = "pending"
	BookingApproved BookingStatus = "approved"
	BookingRejected BookingStatus = "rejected"
)

// bookingTransitions captures the allowed approval transitions. Approval and
// rejection are terminal; no reversal is exposed.
var bookingTransitions = map[BookingStatus]map[BookingStatus]bool{
	BookingPending:  {BookingApproved: true, BookingRejected: true},
	BookingApproved: {},
	BookingRejected: {},
}

// CanTransition checks if from->to is allowed.
func (s BookingStatus) CanTransition(to BookingStatus) bool {
	nexts := bookingTransitions[s]
	return nexts != nil && nexts[to]
}

// IsTerminal reports whether the booking status admits no further transitions.
func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

// ServiceLineStatus is the fine-grained completion state of one service line.
type ServiceLineStatus string

const (
	ServiceNotStarted ServiceLineStatus = "not_started"
	ServiceInProgress ServiceLineStatus = "in_progress"
	ServiceCompleted  ServiceLineStatus = "completed"
	ServiceCancelled  ServiceLineStatus = "cancelled"
)

// serviceLineTransitions: cancelled is reachable from any non-terminal state;
// completion only ever happens through OTP verification.
var serviceLineTransitions = map[ServiceLineStatus]map[ServiceLineStatus]bool{
	ServiceNotStarted: {ServiceInProgress: true, ServiceCancelled: true},
	ServiceInProgress: {ServiceCompleted: true, ServiceCancelled: true},
	ServiceCompleted:  {},
	ServiceCancelled:  {},
}

// CanTransition checks if from->to is allowed.
func (s ServiceLineStatus) CanTransition(to ServiceLineStatus) bool {
	nexts := serviceLineTransitions[s]
	return nexts != nil && nexts[to]
}

// IsTerminal reports whether the service line status admits no further transitions.
func (s ServiceLineStatus) IsTerminal() bool {
	return len(serviceLineTransitions[s]) == 0
}

// ServiceLine is one service item within a booking, independently trackable
// to completion.
type ServiceLine struct {
	ServiceID   string            `bson:"service_id" json:"service_id"`
	EquipmentID string            `bson:"equipment_id,omitempty" json:"equipment_id,omitempty"`
	Name        string            `bson:"name" json:"name"`
	Cost        float64           `bson:"cost" json:"cost"`
	Status      ServiceLineStatus `bson:"status" json:"status"`
	StartedAt   *time.Time        `bson:"started_at,omitempty" json:"started_at,omitempty"`
	CompletedAt *time.Time        `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}

// Booking represents a patient's reservation of one or more services against a
// facility/vendor contract.
type Booking struct {
	ID            string        `bson:"id" json:"id"`
	BookingNumber string        `bson:"booking_number" json:"booking_number"`
	PatientID     string        `bson:"patient_id" json:"patient_id"`
	FacilityID    string        `bson:"facility_id" json:"facility_id"`
	VendorID      string        `bson:"vendor_id,omitempty" json:"vendor_id,omitempty"`
	ContractID    string        `bson:"contract_id,omitempty" json:"contract_id,omitempty"`
	PaymentMode   PaymentMode   `bson:"payment_mode" json:"payment_mode"`
	Date          string        `bson:"date" json:"date"` // "YYYY-MM-DD"
	TotalCost     float64       `bson:"total_cost" json:"total_cost"`
	Status        BookingStatus `bson:"status" json:"status"`
	Services      []ServiceLine `bson:"services" json:"services"`

	ConsentObtained   bool       `bson:"consent_obtained" json:"consent_obtained"`
	ConsentObtainedAt *time.Time `bson:"consent_obtained_at,omitempty" json:"consent_obtained_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ServiceLineByID returns a pointer to the line with the given service ID.
func (b *Booking) ServiceLineByID(serviceID string) *ServiceLine {
	for i := range b.Services {
		if b.Services[i].ServiceID == serviceID {
			return &b.Services[i]
		}
	}
	return nil
}

// AllServicesCompleted reports whether every non-cancelled line is completed.
func (b *Booking) AllServicesCompleted() bool {
	seen := false
	for _, line := range b.Services {
		if line.Status == ServiceCancelled {
			continue
		}
		seen = true
		if line.Status != ServiceCompleted {
			return false
		}
	}
	return seen
}

// CreateBookingInput is the request payload for creating a booking.
type CreateBookingInput struct {
	PatientID   string      `json:"patient_id" binding:"required"`
	FacilityID  string      `json:"facility_id" binding:"required"`
	VendorID    string      `json:"vendor_id"`
	ContractID  string      `json:"contract_id"`
	PaymentMode PaymentMode `json:"payment_mode" binding:"required"`
	Date        string      `json:"date" binding:"required"`
	Services    []struct {
		ServiceID   string  `json:"service_id" binding:"required"`
		EquipmentID string  `json:"equipment_id"`
		Name        string  `json:"name"`
		Cost        float64 `json:"cost"`
	} `json:"services" binding:"required,min=1"`
}
