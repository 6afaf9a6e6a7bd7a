// Package main provides the CLI entry point for forecastchart.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"forecastchart/internal/config"
	"forecastchart/internal/logger"
	"forecastchart/internal/models"
)

var (
	inputPath    string
	hoverX       float64
	static       bool
	printMetrics bool
	runFolder    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "forecastchart",
		Short: "Render historical and forecast series as an animated line chart",
		Long: `forecastchart draws a historical series followed by a model forecast,
animating the reveal frame by frame and writing every frame to the output directory.
Without --input a built-in demo state is used.`,
		Version:      config.GetVersion(),
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&inputPath, "input", "i", "", "Chart state JSON file (default: demo state)")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render the chart to image frames",
		Args:  cobra.NoArgs,
		RunE:  runRender,
	}
	renderCmd.Flags().Float64Var(&hoverX, "hover-x", -1, "Pointer x position to hover after drawing")
	renderCmd.Flags().BoolVar(&static, "static", false, "Draw a single static frame instead of animating")
	renderCmd.Flags().BoolVar(&printMetrics, "metrics", false, "Print render metrics in Prometheus text format")

	htmlCmd := &cobra.Command{
		Use:   "html",
		Short: "Export the chart as an interactive HTML page",
		Args:  cobra.NoArgs,
		RunE:  runHTML,
	}
	htmlCmd.Flags().StringVar(&runFolder, "run", "", "Stored run folder to read the chart state from")

	rootCmd.AddCommand(renderCmd, htmlCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration, configures the global logger and reads the state
func setup(ctx context.Context) (*config.Config, *models.ChartState, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat)

	state, err := loadState(inputPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, state, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, state, err := setup(ctx)
	if err != nil {
		return err
	}

	res, err := render(ctx, cfg, state, renderOptions{Animate: !static, HoverX: hoverX})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d frames written to %s\n", len(res.Files), res.Folder)
	if res.Tooltip != "" {
		fmt.Fprintln(cmd.OutOrStdout(), res.Tooltip)
	}
	if printMetrics {
		if err := res.Metrics.WriteText(cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}

func runHTML(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, state, err := setup(ctx)
	if err != nil {
		return err
	}

	name, err := exportHTML(ctx, cfg, state, runFolder)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "html written to %s\n", name)
	return nil
}
