package internal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileManager uploads and lists files
type FileManager struct {
	client FileAPI
}

// NewFileManager creates a file manager
func NewFileManager(client FileAPI) *FileManager {
	return &FileManager{client: client}
}

// Upload uploads the file at path and returns its remote ID
func (m *FileManager) Upload(ctx context.Context, path string) (string, error) {
	if path == "" {
		return "", &FileError{Op: "upload", Err: fmt.Errorf("%w: file path is empty", ErrInvalidValue)}
	}

	file, err := Call(ctx, CategoryFile, "upload", func(ctx context.Context) (*File, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()

		info, err := f.Stat()
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%w: %s is a directory", ErrInvalidValue, path)
		}

		LogDebug("uploading %s (%d bytes)", path, info.Size())
		return m.client.UploadFile(ctx, filepath.Base(path), f)
	})
	if err != nil {
		return "", err
	}
	return file.ID, nil
}

// List lists uploaded files
func (m *FileManager) List(ctx context.Context) ([]File, error) {
	return Call(ctx, CategoryFile, "list", func(ctx context.Context) ([]File, error) {
		return m.client.ListFiles(ctx)
	})
}
