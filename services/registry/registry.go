package registry

import (
	"fmt"
	"time"

	registryRepo "medlease/database/repository/registry"
	"medlease/models"

	"github.com/google/uuid"
)

func (s *DefaultRegistryService) CreateFacility(input models.FacilityInput) (*models.Facility, error) {
	now := time.Now()
	f := &models.Facility{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Code:         input.Code,
		Region:       input.Region,
		ContactName:  input.ContactName,
		ContactPhone: input.ContactPhone,
		Active:       input.Active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Facilities.Create(f); err != nil {
		return nil, fmt.Errorf("failed to create facility: %w", err)
	}
	return f, nil
}

func (s *DefaultRegistryService) GetFacility(id string) (*models.Facility, error) {
	return s.Facilities.GetByID(id)
}

func (s *DefaultRegistryService) ListFacilities(filter registryRepo.ListFilter) ([]models.Facility, int64, error) {
	return s.Facilities.List(filter)
}

func (s *DefaultRegistryService) UpdateFacility(id string, input models.FacilityInput) (*models.Facility, error) {
	f, err := s.Facilities.GetByID(id)
	if err != nil {
		return nil, err
	}
	f.Name = input.Name
	f.Code = input.Code
	f.Region = input.Region
	f.ContactName = input.ContactName
	f.ContactPhone = input.ContactPhone
	f.Active = input.Active
	f.UpdatedAt = time.Now()
	if err := s.Facilities.Update(f); err != nil {
		return nil, fmt.Errorf("failed to update facility: %w", err)
	}
	return f, nil
}

func (s *DefaultRegistryService) DeleteFacility(id string) error {
	return s.Facilities.Delete(id)
}

func (s *DefaultRegistryService) CreateVendor(input models.VendorInput) (*models.Vendor, error) {
	now := time.Now()
	v := &models.Vendor{
		ID:             uuid.New().String(),
		Name:           input.Name,
		RegistrationNo: input.RegistrationNo,
		ContactName:    input.ContactName,
		ContactPhone:   input.ContactPhone,
		ContactEmail:   input.ContactEmail,
		Active:         input.Active,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Vendors.Create(v); err != nil {
		return nil, fmt.Errorf("failed to create vendor: %w", err)
	}
	return v, nil
}

func (s *DefaultRegistryService) GetVendor(id string) (*models.Vendor, error) {
	return s.Vendors.GetByID(id)
}

func (s *DefaultRegistryService) ListVendors(filter registryRepo.ListFilter) ([]models.Vendor, int64, error) {
	return s.Vendors.List(filter)
}

func (s *DefaultRegistryService) UpdateVendor(id string, input models.VendorInput) (*models.Vendor, error) {
	v, err := s.Vendors.GetByID(id)
	if err != nil {
		return nil, err
	}
	v.Name = input.Name
	v.RegistrationNo = input.RegistrationNo
	v.ContactName = input.ContactName
	v.ContactPhone = input.ContactPhone
	v.ContactEmail = input.ContactEmail
	v.Active = input.Active
	v.UpdatedAt = time.Now()
	if err := s.Vendors.Update(v); err != nil {
		return nil, fmt.Errorf("failed to update vendor: %w", err)
	}
	return v, nil
}

func (s *DefaultRegistryService) DeleteVendor(id string) error {
	return s.Vendors.Delete(id)
}

func (s *DefaultRegistryService) CreateEquipment(input models.EquipmentInput) (*models.Equipment, error) {
	now := time.Now()
	e := &models.Equipment{
		ID:        uuid.New().String(),
		VendorID:  input.VendorID,
		Name:      input.Name,
		Model:     input.Model,
		SerialNo:  input.SerialNo,
		Category:  input.Category,
		DailyRate: input.DailyRate,
		Active:    input.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Equipment.Create(e); err != nil {
		return nil, fmt.Errorf("failed to create equipment: %w", err)
	}
	return e, nil
}

func (s *DefaultRegistryService) GetEquipment(id string) (*models.Equipment, error) {
	return s.Equipment.GetByID(id)
}

func (s *DefaultRegistryService) ListEquipment(filter registryRepo.ListFilter) ([]models.Equipment, int64, error) {
	return s.Equipment.List(filter)
}

func (s *DefaultRegistryService) UpdateEquipment(id string, input models.EquipmentInput) (*models.Equipment, error) {
	e, err := s.Equipment.GetByID(id)
	if err != nil {
		return nil, err
	}
	e.VendorID = input.VendorID
	e.Name = input.Name
	e.Model = input.Model
	e.SerialNo = input.SerialNo
	e.Category = input.Category
	e.DailyRate = input.DailyRate
	e.Active = input.Active
	e.UpdatedAt = time.Now()
	if err := s.Equipment.Update(e); err != nil {
		return nil, fmt.Errorf("failed to update equipment: %w", err)
	}
	return e, nil
}

func (s *DefaultRegistryService) DeleteEquipment(id string) error {
	return s.Equipment.Delete(id)
}

func (s *DefaultRegistryService) CreateContract(input models.ContractInput) (*models.Contract, error) {
	now := time.Now()
	c := &models.Contract{
		ID:         uuid.New().String(),
		VendorID:   input.VendorID,
		FacilityID: input.FacilityID,
		Reference:  input.Reference,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Lots:       input.Lots,
		Active:     input.Active,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Contracts.Create(c); err != nil {
		return nil, fmt.Errorf("failed to create contract: %w", err)
	}
	return c, nil
}

func (s *DefaultRegistryService) GetContract(id string) (*models.Contract, error) {
	return s.Contracts.GetByID(id)
}

func (s *DefaultRegistryService) ListContracts(filter registryRepo.ListFilter) ([]models.Contract, int64, error) {
	return s.Contracts.List(filter)
}

func (s *DefaultRegistryService) UpdateContract(id string, input models.ContractInput) (*models.Contract, error) {
	c, err := s.Contracts.GetByID(id)
	if err != nil {
		return nil, err
	}
	c.VendorID = input.VendorID
	c.FacilityID = input.FacilityID
	c.Reference = input.Reference
	c.StartDate = input.StartDate
	c.EndDate = input.EndDate
	c.Lots = input.Lots
	c.Active = input.Active
	c.UpdatedAt = time.Now()
	if err := s.Contracts.Update(c); err != nil {
		return nil, fmt.Errorf("failed to update contract: %w", err)
	}
	return c, nil
}

// AttachContractDocument links an uploaded document to the contract record.
func (s *DefaultRegistryService) AttachContractDocument(id, documentID string) (*models.Contract, error) {
	if err := s.Contracts.SetDocumentID(id, documentID); err != nil {
		return nil, err
	}
	return s.Contracts.GetByID(id)
}

func (s *DefaultRegistryService) DeleteContract(id string) error {
	return s.Contracts.Delete(id)
}

// Recommend flattens the facility's active contracts into the lot items the
// operator can pick from. Pricing comes from the contract, not the equipment
// catalog.
func (s *DefaultRegistryService) Recommend(facilityID string) ([]models.LotItem, error) {
	contracts, _, err := s.Contracts.List(registryRepo.ListFilter{
		FacilityID: facilityID,
		ActiveOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts for facility %s: %w", facilityID, err)
	}

	var items []models.LotItem
	for _, c := range contracts {
		for _, lot := range c.Lots {
			items = append(items, lot.Items...)
		}
	}
	return items, nil
}
