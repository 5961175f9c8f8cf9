package handlers

import (
	"errors"
	"net/http"
	"strconv"

	registryRepo "medlease/database/repository/registry"
	"medlease/models"
	registrySvc "medlease/services/registry"
	"medlease/utils"

	"github.com/gin-gonic/gin"
)

// RegistryHandler exposes the reference-data catalog: facilities, vendors,
// equipment, and contracts.
type RegistryHandler struct {
	Registry registrySvc.RegistryService
}

func registryError(c *gin.Context, code string, err error) {
	if errors.Is(err, registryRepo.ErrNotFound) {
		utils.JSONErrorWithCode(c, http.StatusNotFound, code, "record not found", "")
		return
	}
	utils.JSONErrorWithCode(c, http.StatusInternalServerError, code, "registry operation failed", err.Error())
}

func listFilterFromQuery(c *gin.Context) registryRepo.ListFilter {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	return registryRepo.ListFilter{
		ActiveOnly: c.Query("active") == "1" || c.Query("active") == "true",
		VendorID:   c.Query("vendor_id"),
		FacilityID: c.Query("facility_id"),
		Search:     c.Query("q"),
		Page:       page,
		PerPage:    perPage,
	}
}

func listResponse(c *gin.Context, items interface{}, filter registryRepo.ListFilter, total int64) {
	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"pagination": models.Pagination{Page: filter.Page, PerPage: filter.PerPage, Total: total},
	})
}

func (h *RegistryHandler) CreateFacility(c *gin.Context) {
	var input models.FacilityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	f, err := h.Registry.CreateFacility(input)
	if err != nil {
		registryError(c, "facility.create", err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

func (h *RegistryHandler) GetFacility(c *gin.Context) {
	f, err := h.Registry.GetFacility(c.Param("id"))
	if err != nil {
		registryError(c, "facility.get", err)
		return
	}
	c.JSON(http.StatusOK, f)
}

func (h *RegistryHandler) ListFacilities(c *gin.Context) {
	filter := listFilterFromQuery(c)
	items, total, err := h.Registry.ListFacilities(filter)
	if err != nil {
		registryError(c, "facility.list", err)
		return
	}
	listResponse(c, items, filter, total)
}

func (h *RegistryHandler) UpdateFacility(c *gin.Context) {
	var input models.FacilityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	f, err := h.Registry.UpdateFacility(c.Param("id"), input)
	if err != nil {
		registryError(c, "facility.update", err)
		return
	}
	c.JSON(http.StatusOK, f)
}

func (h *RegistryHandler) DeleteFacility(c *gin.Context) {
	if err := h.Registry.DeleteFacility(c.Param("id")); err != nil {
		registryError(c, "facility.delete", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RegistryHandler) CreateVendor(c *gin.Context) {
	var input models.VendorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	v, err := h.Registry.CreateVendor(input)
	if err != nil {
		registryError(c, "vendor.create", err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (h *RegistryHandler) GetVendor(c *gin.Context) {
	v, err := h.Registry.GetVendor(c.Param("id"))
	if err != nil {
		registryError(c, "vendor.get", err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *RegistryHandler) ListVendors(c *gin.Context) {
	filter := listFilterFromQuery(c)
	items, total, err := h.Registry.ListVendors(filter)
	if err != nil {
		registryError(c, "vendor.list", err)
		return
	}
	listResponse(c, items, filter, total)
}

func (h *RegistryHandler) UpdateVendor(c *gin.Context) {
	var input models.VendorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	v, err := h.Registry.UpdateVendor(c.Param("id"), input)
	if err != nil {
		registryError(c, "vendor.update", err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *RegistryHandler) DeleteVendor(c *gin.Context) {
	if err := h.Registry.DeleteVendor(c.Param("id")); err != nil {
		registryError(c, "vendor.delete", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RegistryHandler) CreateEquipment(c *gin.Context) {
	var input models.EquipmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	e, err := h.Registry.CreateEquipment(input)
	if err != nil {
		registryError(c, "equipment.create", err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *RegistryHandler) GetEquipment(c *gin.Context) {
	e, err := h.Registry.GetEquipment(c.Param("id"))
	if err != nil {
		registryError(c, "equipment.get", err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *RegistryHandler) ListEquipment(c *gin.Context) {
	filter := listFilterFromQuery(c)
	items, total, err := h.Registry.ListEquipment(filter)
	if err != nil {
		registryError(c, "equipment.list", err)
		return
	}
	listResponse(c, items, filter, total)
}

func (h *RegistryHandler) UpdateEquipment(c *gin.Context) {
	var input models.EquipmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	e, err := h.Registry.UpdateEquipment(c.Param("id"), input)
	if err != nil {
		registryError(c, "equipment.update", err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *RegistryHandler) DeleteEquipment(c *gin.Context) {
	if err := h.Registry.DeleteEquipment(c.Param("id")); err != nil {
		registryError(c, "equipment.delete", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RegistryHandler) CreateContract(c *gin.Context) {
	var input models.ContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	ct, err := h.Registry.CreateContract(input)
	if err != nil {
		registryError(c, "contract.create", err)
		return
	}
	c.JSON(http.StatusCreated, ct)
}

func (h *RegistryHandler) GetContract(c *gin.Context) {
	ct, err := h.Registry.GetContract(c.Param("id"))
	if err != nil {
		registryError(c, "contract.get", err)
		return
	}
	c.JSON(http.StatusOK, ct)
}

func (h *RegistryHandler) ListContracts(c *gin.Context) {
	filter := listFilterFromQuery(c)
	items, total, err := h.Registry.ListContracts(filter)
	if err != nil {
		registryError(c, "contract.list", err)
		return
	}
	listResponse(c, items, filter, total)
}

func (h *RegistryHandler) UpdateContract(c *gin.Context) {
	var input models.ContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	ct, err := h.Registry.UpdateContract(c.Param("id"), input)
	if err != nil {
		registryError(c, "contract.update", err)
		return
	}
	c.JSON(http.StatusOK, ct)
}

func (h *RegistryHandler) DeleteContract(c *gin.Context) {
	if err := h.Registry.DeleteContract(c.Param("id")); err != nil {
		registryError(c, "contract.delete", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Recommend lists the contract lot items an operator can pick from for a
// facility during the recommendation step.
func (h *RegistryHandler) Recommend(c *gin.Context) {
	facilityID := c.Query("facility_id")
	if facilityID == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid query", "facility_id is required")
		return
	}
	items, err := h.Registry.Recommend(facilityID)
	if err != nil {
		registryError(c, "registry.recommend", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
