package patientRepo

import "medlease/models"

// PatientRepository defines persistence operations for patient records.
type PatientRepository interface {
	Create(patient *models.Patient) error
	GetByID(id string) (*models.Patient, error)
	GetByPhone(phone string) (*models.Patient, error)
	Search(term string, page, perPage int) ([]models.Patient, int64, error)
	Update(patient *models.Patient) error
	Delete(id string) error
}
