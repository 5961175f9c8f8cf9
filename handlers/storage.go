package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	registrySvc "medlease/services/registry"
	"medlease/services/storage"
	"medlease/utils"

	"github.com/gin-gonic/gin"
)

// StorageHandler handles contract and consent document uploads.
type StorageHandler struct {
	Storage  storage.StorageService
	Registry registrySvc.RegistryService
}

// allowedBuckets are the document folders the API accepts.
var allowedBuckets = map[string]bool{
	"contracts": true,
	"consent":   true,
}

// UploadDocument uploads a document into a bucket and returns its public ID
// and delivery URL.
func (h *StorageHandler) UploadDocument(c *gin.Context) {
	if h.Storage == nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "document storage not configured", "")
		return
	}
	bucket := c.Param("bucket")
	if !allowedBuckets[bucket] {
		utils.JSONError(c, http.StatusBadRequest, "invalid bucket", "allowed values are 'contracts' and 'consent'")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "file not provided", err.Error())
		return
	}

	tempFilePath := filepath.Join(os.TempDir(), fileHeader.Filename)
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to save file", err.Error())
		return
	}
	defer os.Remove(tempFilePath)

	publicID, err := h.Storage.UploadDocument(c, tempFilePath, "documents/"+bucket)
	if err != nil {
		utils.JSONErrorWithCode(c, http.StatusInternalServerError, "storage.upload", "failed to upload document", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"document_id":  publicID,
		"download_url": h.Storage.DownloadURL(publicID),
	})
}

// AttachContractDocument uploads a document and links it to a contract in one
// request.
func (h *StorageHandler) AttachContractDocument(c *gin.Context) {
	if h.Storage == nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "document storage not configured", "")
		return
	}
	contractID := c.Param("id")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "file not provided", err.Error())
		return
	}

	tempFilePath := filepath.Join(os.TempDir(), fileHeader.Filename)
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to save file", err.Error())
		return
	}
	defer os.Remove(tempFilePath)

	publicID, err := h.Storage.UploadDocument(c, tempFilePath, "documents/contracts")
	if err != nil {
		utils.JSONErrorWithCode(c, http.StatusInternalServerError, "storage.upload", "failed to upload document", err.Error())
		return
	}

	contract, err := h.Registry.AttachContractDocument(contractID, publicID)
	if err != nil {
		registryError(c, "contract.attach_document", err)
		return
	}
	c.JSON(http.StatusOK, contract)
}
