package models

import "time"

// Patient is a registered patient record.
type Patient struct {
	ID           string    `bson:"id" json:"id"`
	FirstName    string    `bson:"first_name" json:"first_name"`
	LastName     string    `bson:"last_name" json:"last_name"`
	PhoneNumber  string    `bson:"phone_number" json:"phone_number"`
	DateOfBirth  string    `bson:"date_of_birth" json:"date_of_birth"` // "YYYY-MM-DD"
	NationalID   string    `bson:"national_id,omitempty" json:"national_id,omitempty"`
	InsuranceNo  string    `bson:"insurance_no,omitempty" json:"insurance_no,omitempty"`
	FCMToken     string    `bson:"fcm_token,omitempty" json:"fcm_token,omitempty"`
	RegisteredBy string    `bson:"registered_by,omitempty" json:"registered_by,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// FullName joins the patient's name parts for display.
func (p *Patient) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// RegisterPatientInput is the request payload for registering a patient.
type RegisterPatientInput struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	DateOfBirth string `json:"date_of_birth" binding:"required"`
	NationalID  string `json:"national_id"`
	InsuranceNo string `json:"insurance_no"`
	FCMToken    string `json:"fcm_token"`
}
