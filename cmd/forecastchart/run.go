package main

import (
	"context"
	"fmt"
	"os"
	"path"
	"time"

	"forecastchart/internal/charts"
	"forecastchart/internal/config"
	"forecastchart/internal/export"
	"forecastchart/internal/frames"
	"forecastchart/internal/logger"
	"forecastchart/internal/metrics"
	"forecastchart/internal/models"
	"forecastchart/internal/storage"
	"forecastchart/internal/surface"
)

const (
	// maxTicks bounds the refresh loop; a full run needs about 35 ticks
	maxTicks    = 1000
	tooltipFile = "tooltip.json"
)

type renderOptions struct {
	Animate bool
	HoverX  float64
	Now     time.Time
}

type renderResult struct {
	Folder    string
	Files     []string
	Artifacts []export.Artifact
	Tooltip   string
	Metrics   *metrics.Metrics
}

// render draws state through the controller, pumping refresh callbacks until
// the animation finishes, and stores every drawn frame.
func render(ctx context.Context, cfg *config.Config, state *models.ChartState, o renderOptions) (*renderResult, error) {
	log := logger.Component("render")

	store, err := storage.NewStorageClient(cfg)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	folder := storage.GenerateRunFolderPath(o.Now, state.Label, state.ModelName)

	rec := surface.NewRecorder()
	queue := frames.NewQueue()
	m := metrics.New()
	tip := &export.TooltipState{}
	exp := export.NewFrameExporter(ctx, store, rec, cfg.RenderBackend, cfg.OutputFormat, folder, log)

	ctrl := charts.NewController(rec, queue, tip, charts.Options{
		Canvas: charts.Canvas{
			Width:   float64(cfg.Width),
			Height:  float64(cfg.Height),
			Padding: cfg.Padding,
		},
		AnimationStep: cfg.AnimationStep,
		TooltipOffset: cfg.TooltipOffset,
		Logger:        log,
		Metrics:       m,
		AfterFrame:    exp.Capture,
	})
	if err := ctrl.SetState(state); err != nil {
		return nil, err
	}
	if err := export.SaveState(ctx, store, folder, state); err != nil {
		return nil, err
	}

	start := time.Now()
	if err := ctrl.Draw(o.Animate, charts.NoHighlight); err != nil {
		return nil, err
	}
	ticks, err := queue.RunUntilIdle(maxTicks)
	if err != nil {
		return nil, err
	}
	log.Info("chart drawn", logger.Fields{
		"ticks":    ticks,
		"frames":   len(exp.Files()),
		"duration": time.Since(start).String(),
	})

	res := &renderResult{Folder: folder, Metrics: m}
	if o.HoverX >= 0 {
		ctrl.PointerMove(o.HoverX, 0)
		if tip.Visible {
			res.Tooltip = tip.Tip.Text()
			data, err := tip.JSON()
			if err != nil {
				return nil, fmt.Errorf("failed to encode tooltip: %w", err)
			}
			if err := store.StoreFile(ctx, path.Join(folder, tooltipFile), data); err != nil {
				return nil, fmt.Errorf("failed to store tooltip: %w", err)
			}
		}
	}

	if err := exp.Err(); err != nil {
		return nil, err
	}
	res.Files = exp.Files()
	if res.Artifacts, err = export.WriteManifest(ctx, store, folder); err != nil {
		return nil, err
	}
	log.Info("frames stored", logger.Fields{"folder": folder, "count": len(res.Files)})
	return res, nil
}

// exportHTML stores the interactive page of a chart and returns its path.
// With a run folder the state is read back from that run and the page is
// added to it; otherwise state goes into a new run folder.
func exportHTML(ctx context.Context, cfg *config.Config, state *models.ChartState, run string) (string, error) {
	log := logger.Component("html")

	store, err := storage.NewStorageClient(cfg)
	if err != nil {
		return "", err
	}
	defer store.Close()

	folder := run
	if run != "" {
		if state, err = export.LoadState(ctx, store, run); err != nil {
			return "", err
		}
	} else {
		folder = storage.GenerateRunFolderPath(time.Now(), state.Label, state.ModelName)
		if err := export.SaveState(ctx, store, folder, state); err != nil {
			return "", err
		}
	}

	page, err := export.RenderHTML(state, export.HTMLOptions{Width: cfg.Width, Height: cfg.Height})
	if err != nil {
		return "", err
	}

	name := path.Join(folder, export.HTMLFile)
	if err := store.StoreFile(ctx, name, page); err != nil {
		return "", fmt.Errorf("failed to store html: %w", err)
	}
	if _, err := export.WriteManifest(ctx, store, folder); err != nil {
		return "", err
	}
	log.Info("html stored", logger.Fields{"file": name, "bytes": len(page)})
	return name, nil
}

// loadState reads a chart state document, or returns the demo state when
// no file is given.
func loadState(file string) (*models.ChartState, error) {
	if file == "" {
		return demoState(), nil
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()
	return models.DecodeChartState(f)
}

// demoState is 60 days drifting from 150 to 155 followed by a 15 day LSTM
// forecast back down to 150.
func demoState() *models.ChartState {
	hist := make([]float64, 60)
	for i := range hist {
		hist[i] = 150 + 5*float64(i)/59
	}
	fc := make([]float64, 15)
	for i := range fc {
		fc[i] = 155 - 5*float64(i+1)/15
	}
	return models.NewChartState("ACME", "LSTM", hist, fc)
}
