package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all endpoint handlers into one struct so route
// registration stays a pure wiring exercise.
type HandlerBundle struct {
	// Auth endpoints
	Signup gin.HandlerFunc
	Login  gin.HandlerFunc
	Logout gin.HandlerFunc
	Me     gin.HandlerFunc

	// Workflow session endpoints
	StartWorkflowSession gin.HandlerFunc
	GetWorkflowSession   gin.HandlerFunc
	EndWorkflowSession   gin.HandlerFunc
	WorkflowNext         gin.HandlerFunc
	WorkflowPrev         gin.HandlerFunc
	WorkflowGoto         gin.HandlerFunc
	WorkflowReset        gin.HandlerFunc
	WorkflowProgress     gin.HandlerFunc
	SetRecommendation    gin.HandlerFunc
	MarkValidated        gin.HandlerFunc
	AttachInvoice        gin.HandlerFunc
	MarkPaymentApproved  gin.HandlerFunc
	MarkDisbursed        gin.HandlerFunc

	// Patient endpoints
	RegisterPatient gin.HandlerFunc
	GetPatient      gin.HandlerFunc
	SearchPatients  gin.HandlerFunc
	UpdatePatient   gin.HandlerFunc
	DeletePatient   gin.HandlerFunc

	// Booking endpoints
	CreateBooking      gin.HandlerFunc
	GetBooking         gin.HandlerFunc
	GetBookingByNumber gin.HandlerFunc
	ApproveBooking     gin.HandlerFunc
	RejectBooking      gin.HandlerFunc
	CancelServiceLine  gin.HandlerFunc
	Worklist           gin.HandlerFunc
	SyncBookings       gin.HandlerFunc

	// Verification endpoints
	RequestConsentOTP    gin.HandlerFunc
	ValidateConsentOTP   gin.HandlerFunc
	ResendConsentOTP     gin.HandlerFunc
	RequestCompletionOTP gin.HandlerFunc
	VerifyCompletionOTP  gin.HandlerFunc
	ResendCompletionOTP  gin.HandlerFunc

	// Registry endpoints
	CreateFacility gin.HandlerFunc
	GetFacility    gin.HandlerFunc
	ListFacilities gin.HandlerFunc
	UpdateFacility gin.HandlerFunc
	DeleteFacility gin.HandlerFunc

	CreateVendor gin.HandlerFunc
	GetVendor    gin.HandlerFunc
	ListVendors  gin.HandlerFunc
	UpdateVendor gin.HandlerFunc
	DeleteVendor gin.HandlerFunc

	CreateEquipment gin.HandlerFunc
	GetEquipment    gin.HandlerFunc
	ListEquipment   gin.HandlerFunc
	UpdateEquipment gin.HandlerFunc
	DeleteEquipment gin.HandlerFunc

	CreateContract gin.HandlerFunc
	GetContract    gin.HandlerFunc
	ListContracts  gin.HandlerFunc
	UpdateContract gin.HandlerFunc
	DeleteContract gin.HandlerFunc
	Recommend      gin.HandlerFunc

	// Settlement endpoints
	CreateBatch   gin.HandlerFunc
	GetBatch      gin.HandlerFunc
	ListBatches   gin.HandlerFunc
	DisburseBatch gin.HandlerFunc
	ListPayments  gin.HandlerFunc

	// Storage endpoints
	UploadDocument         gin.HandlerFunc
	AttachContractDocument gin.HandlerFunc
}
