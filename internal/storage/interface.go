package storage

import (
	"context"
	"errors"
	"time"
)

// GetFile failures callers can tell apart
var (
	ErrFileNotFound = errors.New("file not found")
	ErrInvalidPath  = errors.New("invalid file path")
)

// StorageClient stores generated report files
type StorageClient interface {
	// Close releases the client
	Close() error

	// StoreFile stores a file inside the report folder for timestamp
	StoreFile(ctx context.Context, fileData []byte, filename string, timestamp time.Time) error

	// GetFile retrieves a file by its path relative to the storage root
	GetFile(ctx context.Context, filePath string) ([]byte, error)

	// ListReports lists report index pages, newest first
	ListReports(ctx context.Context, limit int) ([]string, error)
}
