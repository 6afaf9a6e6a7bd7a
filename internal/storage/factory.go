package storage

import (
	"errors"
	"fmt"

	"forecastchart/internal/config"
)

// NewStorageClient creates the storage client for exported frames
func NewStorageClient(cfg *config.Config) (StorageClient, error) {
	if cfg == nil {
		return nil, errors.New("storage requires a config")
	}
	client, err := NewLocalStorageClient(cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize local storage client: %w", err)
	}
	return client, nil
}
