// Package storage keeps the artifacts of chart runs: frames, the chart state
// a run was drawn from, its HTML page and manifest. Paths are slash separated
// and relative to the storage root.
package storage

import (
	"context"
)

// StorageClient is where run artifacts are written and read back
type StorageClient interface {
	// Close releases the client
	Close() error

	// CreateDir creates a run folder and its parents
	CreateDir(ctx context.Context, dirPath string) error

	// StoreFile writes an artifact, replacing any previous content
	StoreFile(ctx context.Context, filePath string, fileData []byte) error

	// GetFile reads an artifact back, e.g. the state of an earlier run
	GetFile(ctx context.Context, filePath string) ([]byte, error)

	// ListDir lists artifact paths under a folder in lexical order
	ListDir(ctx context.Context, dirPath string, recursive bool) ([]string, error)

	// FileExists reports whether an artifact is present
	FileExists(ctx context.Context, filePath string) (bool, error)
}
