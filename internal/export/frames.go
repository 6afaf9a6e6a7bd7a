// Package export writes rendered charts to storage: one image per frame of a
// run, and an interactive HTML page of the chart state.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"forecastchart/internal/charts"
	"forecastchart/internal/logger"
	"forecastchart/internal/storage"
	"forecastchart/internal/surface"
)

// ErrRunExists is returned when a run folder already holds frames
var ErrRunExists = errors.New("run folder already contains frames")

// FrameExporter turns every frame drawn onto a Recorder into an image file.
// Use Capture as the controller's AfterFrame hook.
type FrameExporter struct {
	ctx     context.Context
	store   storage.StorageClient
	rec     *surface.Recorder
	backend string
	format  string
	folder  string
	log     *logger.Logger

	prepared bool
	files    []string
	err      error
}

// NewFrameExporter creates an exporter writing into folder
func NewFrameExporter(ctx context.Context, store storage.StorageClient, rec *surface.Recorder, backend, format, folder string, log *logger.Logger) *FrameExporter {
	if log == nil {
		log = logger.Discard()
	}
	if format == "" {
		format = "png"
	}
	return &FrameExporter{
		ctx:     ctx,
		store:   store,
		rec:     rec,
		backend: backend,
		format:  strings.ToLower(format),
		folder:  folder,
		log:     log.WithComponent("export"),
	}
}

// Capture encodes the commands recorded since the previous frame. After the
// first failure further frames are dropped; see Err.
func (e *FrameExporter) Capture(info charts.FrameInfo) {
	ops := e.rec.Take()
	if e.err != nil {
		return
	}

	if !e.prepared {
		e.prepared = true
		if err := e.prepare(); err != nil {
			e.err = err
			e.log.Error("frame export failed", err, logger.Fields{"folder": e.folder})
			return
		}
	}

	name := path.Join(e.folder, storage.FrameFileName(len(e.files)+1, e.format))
	if err := e.write(name, ops, info.Canvas); err != nil {
		e.err = err
		e.log.Error("frame export failed", err, logger.Fields{"file": name})
		return
	}

	e.files = append(e.files, name)
	e.log.Debug("frame stored", logger.Fields{
		"file":     name,
		"animated": info.Animated,
		"progress": info.Progress,
	})
}

// prepare creates the run folder and refuses to overwrite frames of an
// earlier run stored there.
func (e *FrameExporter) prepare() error {
	if err := e.store.CreateDir(e.ctx, e.folder); err != nil {
		return fmt.Errorf("failed to create run folder: %w", err)
	}
	first := path.Join(e.folder, storage.FrameFileName(1, e.format))
	exists, err := e.store.FileExists(e.ctx, first)
	if err != nil {
		return fmt.Errorf("failed to check run folder: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrRunExists, e.folder)
	}
	return nil
}

func (e *FrameExporter) write(name string, ops []surface.Op, canvas charts.Canvas) error {
	img, err := surface.NewImage(e.backend, e.format, int(canvas.Width), int(canvas.Height))
	if err != nil {
		return err
	}
	surface.Replay(ops, img)

	var buf bytes.Buffer
	if err := img.Save(&buf); err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}
	if err := e.store.StoreFile(e.ctx, name, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to store frame: %w", err)
	}
	return nil
}

// Files returns the stored frame paths in drawing order
func (e *FrameExporter) Files() []string {
	return e.files
}

// Err returns the first export failure
func (e *FrameExporter) Err() error {
	return e.err
}
