package registryRepo

import (
	"errors"

	"medlease/models"
)

// ErrNotFound is returned when no document matches the given ID.
var ErrNotFound = errors.New("record not found")

// ListFilter narrows registry list queries.
type ListFilter struct {
	ActiveOnly bool
	VendorID   string
	FacilityID string
	Search     string
	Page       int
	PerPage    int
}

// FacilityRepository defines persistence operations for facilities.
type FacilityRepository interface {
	Create(f *models.Facility) error
	GetByID(id string) (*models.Facility, error)
	List(filter ListFilter) ([]models.Facility, int64, error)
	Update(f *models.Facility) error
	Delete(id string) error
}

// VendorRepository defines persistence operations for vendors.
type VendorRepository interface {
	Create(v *models.Vendor) error
	GetByID(id string) (*models.Vendor, error)
	List(filter ListFilter) ([]models.Vendor, int64, error)
	Update(v *models.Vendor) error
	Delete(id string) error
}

// EquipmentRepository defines persistence operations for equipment.
type EquipmentRepository interface {
	Create(e *models.Equipment) error
	GetByID(id string) (*models.Equipment, error)
	List(filter ListFilter) ([]models.Equipment, int64, error)
	Update(e *models.Equipment) error
	Delete(id string) error
}

// ContractRepository defines persistence operations for contracts.
type ContractRepository interface {
	Create(c *models.Contract) error
	GetByID(id string) (*models.Contract, error)
	List(filter ListFilter) ([]models.Contract, int64, error)
	Update(c *models.Contract) error
	SetDocumentID(id, documentID string) error
	Delete(id string) error
}
