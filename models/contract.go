package models

import "time"

// LotItem is one contracted service/equipment pairing inside a lot.
type LotItem struct {
	ServiceID   string  `bson:"service_id" json:"service_id"`
	ServiceName string  `bson:"service_name" json:"service_name"`
	EquipmentID string  `bson:"equipment_id,omitempty" json:"equipment_id,omitempty"`
	UnitPrice   float64 `bson:"unit_price" json:"unit_price"`
}

// Lot is a grouping of contracted services/equipment under a vendor-facility
// contract.
type Lot struct {
	Number int       `bson:"number" json:"number"`
	Name   string    `bson:"name" json:"name"`
	Items  []LotItem `bson:"items" json:"items"`
}

// Contract binds a vendor to a facility for a period, organized into lots.
type Contract struct {
	ID          string     `bson:"id" json:"id"`
	VendorID    string     `bson:"vendor_id" json:"vendor_id"`
	FacilityID  string     `bson:"facility_id" json:"facility_id"`
	Reference   string     `bson:"reference" json:"reference"`
	StartDate   string     `bson:"start_date" json:"start_date"` // "YYYY-MM-DD"
	EndDate     string     `bson:"end_date" json:"end_date"`
	Lots        []Lot      `bson:"lots" json:"lots"`
	DocumentID  string     `bson:"document_id,omitempty" json:"document_id,omitempty"` // storage public ID
	Active      ActiveFlag `bson:"is_active" json:"is_active"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
}

// ContractInput is the create/update payload for a contract.
type ContractInput struct {
	VendorID   string     `json:"vendor_id" binding:"required"`
	FacilityID string     `json:"facility_id" binding:"required"`
	Reference  string     `json:"reference" binding:"required"`
	StartDate  string     `json:"start_date" binding:"required"`
	EndDate    string     `json:"end_date" binding:"required"`
	Lots       []Lot      `json:"lots"`
	Active     ActiveFlag `json:"is_active"`
}
