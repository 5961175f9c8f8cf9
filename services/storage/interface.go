package storage

import "context"

// StorageService stores contract and consent documents with the media CDN and
// hands back public IDs that registry records can reference.
type StorageService interface {
	UploadDocument(ctx context.Context, localFilePath, destFolder string) (string, error)
	DeleteDocument(ctx context.Context, publicID string) error
	DownloadURL(publicID string) string
}
