package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStorageService keeps uploaded files on local disk under baseDir and
// serves them statically under /uploads. This is the default backend.
type LocalStorageService struct {
	baseDir string
}

// NewLocalStorageService ensures the upload directory exists and returns the service.
func NewLocalStorageService(baseDir string) (*LocalStorageService, error) {
	if baseDir == "" {
		baseDir = "uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", baseDir, err)
	}
	return &LocalStorageService{baseDir: baseDir}, nil
}

// BaseDir returns the directory served statically under /uploads.
func (s *LocalStorageService) BaseDir() string {
	return s.baseDir
}

// UploadFile copies the file into baseDir/destFolder under a unique name and
// returns the relative path "/uploads/<destFolder>/<name>".
func (s *LocalStorageService) UploadFile(_ context.Context, localFilePath, destFolder string) (string, error) {
	src, err := os.Open(localFilePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	dir := filepath.Join(s.baseDir, destFolder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create folder %s: %w", dir, err)
	}

	name := uuid.New().String() + strings.ToLower(filepath.Ext(localFilePath))
	dstPath := filepath.Join(dir, name)
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", dstPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to store file %s: %w", dstPath, err)
	}

	return "/uploads/" + destFolder + "/" + name, nil
}

// DeleteFile removes a stored file given the relative path returned by UploadFile.
func (s *LocalStorageService) DeleteFile(_ context.Context, storedPath string) error {
	rel := strings.TrimPrefix(storedPath, "/uploads/")
	if rel == storedPath || strings.Contains(rel, "..") {
		return fmt.Errorf("invalid stored path: %s", storedPath)
	}
	if err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(rel))); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", storedPath, err)
	}
	return nil
}
