package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"

	"forecastchart/internal/config"
)

func testConfig(t *testing.T, env map[string]string) *config.Config {
	t.Helper()
	if env == nil {
		env = map[string]string{}
	}
	env["OUTPUT_DIR"] = t.TempDir()
	cfg, err := config.LoadFrom(context.Background(), envconfig.MapLookuper(env))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func TestDemoState(t *testing.T) {
	state := demoState()

	if err := state.Validate(); err != nil {
		t.Fatalf("Demo state invalid: %v", err)
	}
	if len(state.Historical) != 60 || len(state.Forecast) != 15 {
		t.Errorf("Expected 60/15 samples, got %d/%d", len(state.Historical), len(state.Forecast))
	}
	if state.Historical[0].Value != 150 || state.Historical[59].Value != 155 {
		t.Errorf("Unexpected historical range %v..%v", state.Historical[0].Value, state.Historical[59].Value)
	}
	if state.Forecast[14].Value != 150 {
		t.Errorf("Expected forecast to end at 150, got %v", state.Forecast[14].Value)
	}
}

func TestLoadState(t *testing.T) {
	file := filepath.Join(t.TempDir(), "state.json")
	doc := `{"label":"ACME","model_name":"ARIMA","historical":[{"value":1},{"value":2}],"forecast":[{"value":3}]}`
	if err := os.WriteFile(file, []byte(doc), 0644); err != nil {
		t.Fatalf("Failed to write input: %v", err)
	}

	state, err := loadState(file)
	if err != nil {
		t.Fatalf("loadState failed: %v", err)
	}
	if state.ForecastLabel() != "ARIMA Forecast" || state.Len() != 3 {
		t.Errorf("Unexpected state %+v", state)
	}

	if _, err := loadState(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing input")
	}
}

func TestRender_Animated(t *testing.T) {
	cfg := testConfig(t, map[string]string{"CHART_WIDTH": "320", "CHART_HEIGHT": "160"})
	now := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

	res, err := render(context.Background(), cfg, demoState(), renderOptions{Animate: true, HoverX: -1, Now: now})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if res.Folder != "2025/03/04/ACME-LSTM-2025-03-04-05-06-07" {
		t.Errorf("Unexpected folder %q", res.Folder)
	}
	if len(res.Files) != 34 {
		t.Errorf("Expected 34 frames, got %d", len(res.Files))
	}
	if res.Tooltip != "" {
		t.Errorf("Expected no tooltip, got %q", res.Tooltip)
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, res.Folder, "frame-034.png")); err != nil {
		t.Errorf("Expected last frame on disk: %v", err)
	}
	if len(res.Artifacts) != 35 {
		t.Errorf("Expected 34 frames plus state in the manifest, got %d", len(res.Artifacts))
	}
	for _, name := range []string{"state.json", "manifest.json"} {
		if _, err := os.Stat(filepath.Join(cfg.OutputDir, res.Folder, name)); err != nil {
			t.Errorf("Expected %s on disk: %v", name, err)
		}
	}

	if _, err := render(context.Background(), cfg, demoState(), renderOptions{Animate: true, HoverX: -1, Now: now}); err == nil {
		t.Error("Expected rendering into an existing run folder to fail")
	}
}

func TestRender_StaticWithHover(t *testing.T) {
	cfg := testConfig(t, map[string]string{"RENDER_BACKEND": "gg"})

	res, err := render(context.Background(), cfg, demoState(), renderOptions{HoverX: cfg.Padding})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if len(res.Files) != 2 {
		t.Errorf("Expected static frame plus hover frame, got %d", len(res.Files))
	}
	if res.Tooltip != "Day 1\nHistorical\n$150.00" {
		t.Errorf("Unexpected tooltip %q", res.Tooltip)
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, res.Folder, "tooltip.json")); err != nil {
		t.Errorf("Expected tooltip.json: %v", err)
	}

	var out strings.Builder
	if err := res.Metrics.WriteText(&out); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}
	if !strings.Contains(out.String(), "mode=\"static\"") {
		t.Errorf("Expected static frame metrics, got:\n%s", out.String())
	}
}

func TestExportHTML(t *testing.T) {
	cfg := testConfig(t, nil)

	name, err := exportHTML(context.Background(), cfg, demoState(), "")
	if err != nil {
		t.Fatalf("exportHTML failed: %v", err)
	}
	if !strings.HasSuffix(name, "/index.html") {
		t.Errorf("Unexpected name %q", name)
	}
	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, name))
	if err != nil {
		t.Fatalf("Failed to read html: %v", err)
	}
	if !strings.Contains(string(data), "LSTM Forecast") {
		t.Error("Expected forecast series in html")
	}
}

func TestExportHTML_FromStoredRun(t *testing.T) {
	cfg := testConfig(t, map[string]string{"CHART_WIDTH": "320", "CHART_HEIGHT": "160"})
	ctx := context.Background()

	state := demoState()
	state.ModelName = "Prophet"
	res, err := render(ctx, cfg, state, renderOptions{HoverX: -1})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	name, err := exportHTML(ctx, cfg, demoState(), res.Folder)
	if err != nil {
		t.Fatalf("exportHTML failed: %v", err)
	}
	if name != res.Folder+"/index.html" {
		t.Errorf("Expected page inside the run folder, got %q", name)
	}
	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, name))
	if err != nil {
		t.Fatalf("Failed to read html: %v", err)
	}
	if !strings.Contains(string(data), "Prophet Forecast") {
		t.Error("Expected the stored run's state in the page")
	}

	if _, err := exportHTML(ctx, cfg, demoState(), "no/such/run"); err == nil {
		t.Error("Expected error for an unknown run")
	}
}
