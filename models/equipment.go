package models

import "time"

// Equipment is one leasable piece of medical equipment offered by a vendor.
type Equipment struct {
	ID          string     `bson:"id" json:"id"`
	VendorID    string     `bson:"vendor_id" json:"vendor_id"`
	Name        string     `bson:"name" json:"name"`
	Model       string     `bson:"model,omitempty" json:"model,omitempty"`
	SerialNo    string     `bson:"serial_no,omitempty" json:"serial_no,omitempty"`
	Category    string     `bson:"category,omitempty" json:"category,omitempty"`
	DailyRate   float64    `bson:"daily_rate" json:"daily_rate"`
	Active      ActiveFlag `bson:"is_active" json:"is_active"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
}

// EquipmentInput is the create/update payload for equipment.
type EquipmentInput struct {
	VendorID  string     `json:"vendor_id" binding:"required"`
	Name      string     `json:"name" binding:"required"`
	Model     string     `json:"model"`
	SerialNo  string     `json:"serial_no"`
	Category  string     `json:"category"`
	DailyRate float64    `json:"daily_rate"`
	Active    ActiveFlag `json:"is_active"`
}
