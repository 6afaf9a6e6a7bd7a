package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"

	"forecastchart/internal/models"
	"forecastchart/internal/storage"
)

const (
	// StateFile holds the chart state a run was drawn from
	StateFile = "state.json"
	// ManifestFile lists every artifact of a run
	ManifestFile = "manifest.json"
	// HTMLFile is the interactive page of a run
	HTMLFile = "index.html"
)

// Artifact is one stored file of a run
type Artifact struct {
	File        string `json:"file"`
	ContentType string `json:"content_type"`
}

// SaveState stores state in the run folder
func SaveState(ctx context.Context, store storage.StorageClient, folder string, state *models.ChartState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode chart state: %w", err)
	}
	if err := store.StoreFile(ctx, path.Join(folder, StateFile), data); err != nil {
		return fmt.Errorf("failed to store chart state: %w", err)
	}
	return nil
}

// LoadState reads back the chart state of a stored run
func LoadState(ctx context.Context, store storage.StorageClient, folder string) (*models.ChartState, error) {
	name := path.Join(folder, StateFile)
	exists, err := store.FileExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("run %s has no %s", folder, StateFile)
	}
	data, err := store.GetFile(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read chart state: %w", err)
	}
	return models.DecodeChartState(bytes.NewReader(data))
}

// WriteManifest lists the run folder and stores the listing as manifest.json
func WriteManifest(ctx context.Context, store storage.StorageClient, folder string) ([]Artifact, error) {
	files, err := store.ListDir(ctx, folder, false)
	if err != nil {
		return nil, err
	}

	manifestPath := path.Join(folder, ManifestFile)
	artifacts := make([]Artifact, 0, len(files))
	for _, f := range files {
		if f == manifestPath {
			continue
		}
		artifacts = append(artifacts, Artifact{File: f, ContentType: storage.GetContentType(f)})
	}

	data, err := json.MarshalIndent(artifacts, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := store.StoreFile(ctx, manifestPath, data); err != nil {
		return nil, fmt.Errorf("failed to store manifest: %w", err)
	}
	return artifacts, nil
}
