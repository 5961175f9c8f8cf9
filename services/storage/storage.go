package storage

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStorageService implements StorageService on Cloudinary.
type CloudinaryStorageService struct {
	client *cloudinary.Cloudinary
}

// NewCloudinaryStorageService wraps an initialized Cloudinary client.
func NewCloudinaryStorageService(client *cloudinary.Cloudinary) (*CloudinaryStorageService, error) {
	if client == nil {
		return nil, fmt.Errorf("storage service initialization error: cloudinary client is nil")
	}
	return &CloudinaryStorageService{client: client}, nil
}

// UploadDocument uploads the file and returns its public ID.
func (s *CloudinaryStorageService) UploadDocument(ctx context.Context, localFilePath, destFolder string) (string, error) {
	resp, err := s.client.Upload.Upload(ctx, localFilePath, uploader.UploadParams{
		Folder:       destFolder,
		ResourceType: "auto",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload document: %w", err)
	}
	return resp.PublicID, nil
}

// DeleteDocument removes the stored document.
func (s *CloudinaryStorageService) DeleteDocument(ctx context.Context, publicID string) error {
	_, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// DownloadURL builds the public delivery URL for a stored document.
func (s *CloudinaryStorageService) DownloadURL(publicID string) string {
	img, err := s.client.Image(publicID)
	if err != nil {
		return ""
	}
	url, err := img.String()
	if err != nil {
		return ""
	}
	return url
}
