package benchmarks

import (
	"fmt"
	"path/filepath"
	"time"

	"gojinn-bench/internal/features/charts"
	storage "gojinn-bench/internal/infra/fs"
	logging "gojinn-bench/internal/infra/log"

	"go.uber.org/zap"
)

// ChartPath is where dataset d is written inside outDir.
func ChartPath(outDir string, d charts.Dataset) string {
	return filepath.Join(outDir, d.Filename)
}

// Generate renders every dataset into outDir, one after another, and stops
// at the first failure. outDir is not created.
func Generate(r *charts.Renderer, outDir string, datasets []charts.Dataset) ([]string, error) {
	if err := storage.RequireDir(outDir); err != nil {
		return nil, err
	}

	start := time.Now()
	paths := make([]string, 0, len(datasets))
	for _, d := range datasets {
		path := ChartPath(outDir, d)
		if err := r.Render(d, path); err != nil {
			return paths, fmt.Errorf("failed to render %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	logging.LogSuccess("Benchmark charts generated",
		zap.Int("charts", len(paths)),
		zap.String("output_dir", outDir),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()))
	return paths, nil
}
