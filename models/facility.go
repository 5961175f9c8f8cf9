package models

import "time"

// Facility is a healthcare facility where leased equipment is deployed and
// services are delivered.
type Facility struct {
	ID           string     `bson:"id" json:"id"`
	Name         string     `bson:"name" json:"name"`
	Code         string     `bson:"code" json:"code"`
	Region       string     `bson:"region,omitempty" json:"region,omitempty"`
	ContactName  string     `bson:"contact_name,omitempty" json:"contact_name,omitempty"`
	ContactPhone string     `bson:"contact_phone,omitempty" json:"contact_phone,omitempty"`
	Active       ActiveFlag `bson:"is_active" json:"is_active"`
	CreatedAt    time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `bson:"updated_at" json:"updated_at"`
}

// FacilityInput is the create/update payload for a facility.
type FacilityInput struct {
	Name         string     `json:"name" binding:"required"`
	Code         string     `json:"code" binding:"required"`
	Region       string     `json:"region"`
	ContactName  string     `json:"contact_name"`
	ContactPhone string     `json:"contact_phone"`
	Active       ActiveFlag `json:"is_active"`
}
