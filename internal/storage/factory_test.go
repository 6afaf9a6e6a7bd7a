package storage

import (
	"context"
	"path/filepath"
	"testing"

	"forecastchart/internal/config"
)

func TestNewStorageClient_Local(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	cfg := &config.Config{OutputDir: dir}

	client, err := NewStorageClient(cfg)
	if err != nil {
		t.Fatalf("Failed to create local storage client: %v", err)
	}
	defer client.Close()

	local, ok := client.(*LocalStorageClient)
	if !ok {
		t.Fatalf("Expected LocalStorageClient, got %T", client)
	}
	if local.BaseDir() != dir {
		t.Errorf("Expected base dir %s, got %s", dir, local.BaseDir())
	}
}

func TestNewStorageClient_NilConfig(t *testing.T) {
	client, err := NewStorageClient(nil)
	if err == nil {
		if client != nil {
			client.Close()
		}
		t.Error("Expected error with nil config")
	}
}

func TestNewStorageClient_Integration(t *testing.T) {
	cfg := &config.Config{OutputDir: t.TempDir()}

	client, err := NewStorageClient(cfg)
	if err != nil {
		t.Fatalf("Failed to create storage client: %v", err)
	}
	defer client.Close()

	ctx := context.Background()
	testFile := "run/frame-001.png"
	testData := []byte("frame")

	if err := client.StoreFile(ctx, testFile, testData); err != nil {
		t.Fatalf("Failed to store file: %v", err)
	}

	exists, err := client.FileExists(ctx, testFile)
	if err != nil {
		t.Fatalf("Failed to check file existence: %v", err)
	}
	if !exists {
		t.Error("File should exist after storing")
	}

	files, err := client.ListDir(ctx, "run", false)
	if err != nil {
		t.Fatalf("Failed to list directory: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("Expected 1 file, got %v", files)
	}
}
