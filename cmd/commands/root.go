// Package commands holds the CLI. The root command renders every benchmark
// chart into the output directory; publish uploads them.
package commands

import (
	"fmt"

	"gojinn-bench/internal/features/benchmarks"
	"gojinn-bench/internal/features/charts"
	"gojinn-bench/internal/infra/config"
	logging "gojinn-bench/internal/infra/log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "gojinn-bench",
	Short: "Render Docker vs Gojinn benchmark charts",
	Long: `gojinn-bench draws the Docker vs Gojinn benchmark results (throughput, latency,
cold start, artifact size) as horizontal bar charts into the assets directory.`,
	Version:       "0.3.0",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runReport,
}

func Execute() error {
	defer logging.Sync()
	return rootCmd.Execute()
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(publishCmd)
}

// loadRuntime reads the config and starts the loggers.
func loadRuntime(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logging.Init(cfg.Log.Dir, cfg.Log.Level); err != nil {
		return nil, fmt.Errorf("failed to init logging: %w", err)
	}
	return cfg, nil
}

func newRenderer(cmd *cobra.Command, cfg *config.Config) (*charts.Renderer, error) {
	theme, err := charts.DarkTheme().WithFigure(cfg.Charts.Width, cfg.Charts.Height, cfg.Charts.DPI)
	if err != nil {
		return nil, err
	}
	return charts.NewRenderer(theme, charts.WithOutput(cmd.OutOrStdout()))
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadRuntime(cmd)
	if err != nil {
		return err
	}

	r, err := newRenderer(cmd, cfg)
	if err != nil {
		logging.LogError("Failed to create renderer", zap.Error(err))
		return err
	}

	if _, err := benchmarks.Generate(r, cfg.Charts.OutputDir, benchmarks.Datasets()); err != nil {
		logging.LogError("Chart generation failed", zap.Error(err))
		return err
	}
	return nil
}
