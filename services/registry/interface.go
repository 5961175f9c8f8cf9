package registry

import (
	registryRepo "medlease/database/repository/registry"
	"medlease/models"
)

// RegistryService covers the reference-data catalog behind the workflow:
// facilities, vendors, equipment, and vendor-facility contracts with their
// lots. The recommendation step reads from this catalog.
type RegistryService interface {
	CreateFacility(input models.FacilityInput) (*models.Facility, error)
	GetFacility(id string) (*models.Facility, error)
	ListFacilities(filter registryRepo.ListFilter) ([]models.Facility, int64, error)
	UpdateFacility(id string, input models.FacilityInput) (*models.Facility, error)
	DeleteFacility(id string) error

	CreateVendor(input models.VendorInput) (*models.Vendor, error)
	GetVendor(id string) (*models.Vendor, error)
	ListVendors(filter registryRepo.ListFilter) ([]models.Vendor, int64, error)
	UpdateVendor(id string, input models.VendorInput) (*models.Vendor, error)
	DeleteVendor(id string) error

	CreateEquipment(input models.EquipmentInput) (*models.Equipment, error)
	GetEquipment(id string) (*models.Equipment, error)
	ListEquipment(filter registryRepo.ListFilter) ([]models.Equipment, int64, error)
	UpdateEquipment(id string, input models.EquipmentInput) (*models.Equipment, error)
	DeleteEquipment(id string) error

	CreateContract(input models.ContractInput) (*models.Contract, error)
	GetContract(id string) (*models.Contract, error)
	ListContracts(filter registryRepo.ListFilter) ([]models.Contract, int64, error)
	UpdateContract(id string, input models.ContractInput) (*models.Contract, error)
	AttachContractDocument(id, documentID string) (*models.Contract, error)
	DeleteContract(id string) error

	// Recommend lists the active contract lot items available to a facility,
	// the catalog the operator picks from at the recommendation step.
	Recommend(facilityID string) ([]models.LotItem, error)
}

// DefaultRegistryService is the production implementation.
type DefaultRegistryService struct {
	Facilities registryRepo.FacilityRepository
	Vendors    registryRepo.VendorRepository
	Equipment  registryRepo.EquipmentRepository
	Contracts  registryRepo.ContractRepository
}
