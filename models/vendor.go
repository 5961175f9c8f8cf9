package models

import "time"

// Vendor is an equipment-leasing vendor contracted to facilities.
type Vendor struct {
	ID           string     `bson:"id" json:"id"`
	Name         string     `bson:"name" json:"name"`
	RegistrationNo string   `bson:"registration_no,omitempty" json:"registration_no,omitempty"`
	ContactName  string     `bson:"contact_name,omitempty" json:"contact_name,omitempty"`
	ContactPhone string     `bson:"contact_phone,omitempty" json:"contact_phone,omitempty"`
	ContactEmail string     `bson:"contact_email,omitempty" json:"contact_email,omitempty"`
	Active       ActiveFlag `bson:"is_active" json:"is_active"`
	CreatedAt    time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `bson:"updated_at" json:"updated_at"`
}

// VendorInput is the create/update payload for a vendor.
type VendorInput struct {
	Name           string     `json:"name" binding:"required"`
	RegistrationNo string     `json:"registration_no"`
	ContactName    string     `json:"contact_name"`
	ContactPhone   string     `json:"contact_phone"`
	ContactEmail   string     `json:"contact_email"`
	Active         ActiveFlag `json:"is_active"`
}
