package storage

import "context"

// StorageService stores reference images and returns the path or URL under
// which the stored file is reachable.
type StorageService interface {
	UploadFile(ctx context.Context, localFilePath, destFolder string) (string, error)
	DeleteFile(ctx context.Context, storedPath string) error
}
