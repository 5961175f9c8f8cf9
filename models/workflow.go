package models

import "time"

// WorkflowStep names one phase of the clinical booking workflow.
type WorkflowStep string

const (
	StepRegistration      WorkflowStep = "registration"
	StepRecommendation    WorkflowStep = "recommendation"
	StepBooking           WorkflowStep = "booking"
	StepConsent           WorkflowStep = "consent"
	StepServiceInProgress WorkflowStep = "service_in_progress"
	StepFulfillment       WorkflowStep = "fulfillment"
	StepValidation        WorkflowStep = "validation"
	StepReport            WorkflowStep = "report"
	StepInvoice           WorkflowStep = "invoice"
	StepApproval          WorkflowStep = "approval"
	StepDisbursement      WorkflowStep = "disbursement"
	StepCompletion        WorkflowStep = "completion"
)

// StepOrder is the canonical ordering of the workflow. Validation gates the
// report, and the finance tail (invoice, approval, disbursement) runs after
// reporting, ending at completion.
var StepOrder = []WorkflowStep{
	StepRegistration,
	StepRecommendation,
	StepBooking,
	StepConsent,
	StepServiceInProgress,
	StepFulfillment,
	StepValidation,
	StepReport,
	StepInvoice,
	StepApproval,
	StepDisbursement,
	StepCompletion,
}

// Index returns the position of the step in the canonical order, or -1 if the
// step is not part of it.
func (s WorkflowStep) Index() int {
	for i, step := range StepOrder {
		if step == s {
			return i
		}
	}
	return -1
}

// Valid reports whether the step belongs to the canonical order.
func (s WorkflowStep) Valid() bool {
	return s.Index() >= 0
}

func (s WorkflowStep) String() string {
	return string(s)
}

// PaymentMode enumerates how a booking is paid for.
type PaymentMode string

const (
	PaymentModeCash      PaymentMode = "cash"
	PaymentModeInsurance PaymentMode = "insurance"
	PaymentModeContract  PaymentMode = "contract"
)

// Valid reports whether the payment mode is a known value.
func (m PaymentMode) Valid() bool {
	switch m {
	case PaymentModeCash, PaymentModeInsurance, PaymentModeContract:
		return true
	}
	return false
}

// PatientRef is the slice of a patient record carried inside a workflow session.
type PatientRef struct {
	ID          string `json:"id"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	DateOfBirth string `json:"date_of_birth"`
}

// ServiceRef identifies the service chosen during recommendation.
type ServiceRef struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Cost float64 `json:"cost"`
}

// EquipmentRef identifies the equipment chosen during recommendation.
type EquipmentRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FacilityRef identifies the facility chosen during recommendation.
type FacilityRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BookingRef is the slice of a booking carried inside a workflow session.
type BookingRef struct {
	ID            string        `json:"id"`
	BookingNumber string        `json:"booking_number"`
	Status        BookingStatus `json:"status"`
}

// InvoiceRef is the slice of an invoice carried inside a workflow session.
type InvoiceRef struct {
	InvoiceID string  `json:"invoice_id"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
}

// WorkflowSession is the single mutable record of one operator's progress
// through the workflow. It lives in Redis for the duration of a session and is
// never persisted; only the workflow service mutates it.
type WorkflowSession struct {
	SessionID   string       `json:"session_id"`
	OperatorID  string       `json:"operator_id"`
	CurrentStep WorkflowStep `json:"current_step"`

	Patient             *PatientRef   `json:"patient,omitempty"`
	SelectedService     *ServiceRef   `json:"selected_service,omitempty"`
	SelectedEquipment   *EquipmentRef `json:"selected_equipment,omitempty"`
	SelectedFacility    *FacilityRef  `json:"selected_facility,omitempty"`
	SelectedPaymentMode PaymentMode   `json:"selected_payment_mode,omitempty"`

	Booking *BookingRef `json:"booking,omitempty"`

	// ConsentObtained is only ever set in the success path of a consent OTP
	// validation.
	ConsentObtained *bool `json:"consent_obtained,omitempty"`

	ServiceValidated *bool `json:"service_validated,omitempty"`
	ServiceCompleted *bool `json:"service_completed,omitempty"`

	Invoice              *InvoiceRef `json:"invoice,omitempty"`
	ValidationReportID   string      `json:"validation_report_id,omitempty"`
	PaymentApproved      *bool       `json:"payment_approved,omitempty"`
	DisbursementComplete *bool       `json:"disbursement_complete,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PhaseProgress holds the derived completion percentages shown as progress
// indicators. Recomputed from the session snapshot on every read.
type PhaseProgress struct {
	Registration int `json:"registration"`
	Service      int `json:"service"`
	Fulfillment  int `json:"fulfillment"`
	Overall      int `json:"overall"`
}
