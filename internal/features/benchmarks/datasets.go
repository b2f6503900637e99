// Package benchmarks holds the Docker and Gojinn (v0.3.0) benchmark results,
// one dataset per chart, and renders them as a report.
package benchmarks

import (
	"gojinn-bench/internal/features/charts"
)

const (
	dockerNative = "Docker (Native)"
	gojinnTinyGo = "Gojinn (TinyGo)"
	gojinnRust   = "Gojinn (Rust)"
)

// Datasets returns a fresh copy of every dataset in render order.
func Datasets() []charts.Dataset {
	return []charts.Dataset{
		{
			Title: "Throughput (Requests/sec) - Higher is Better",
			Series: []charts.Entry{
				{Label: dockerNative, Value: 14500},
				{Label: gojinnTinyGo, Value: 5300},
				{Label: gojinnRust, Value: 6200},
			},
			AxisLabel: "Requests per Second",
			Filename:  "chart_throughput.png",
		},
		{
			Title: "Minimum Latency (ms) - Lower is Better",
			Series: []charts.Entry{
				{Label: dockerNative, Value: 0.13},
				{Label: gojinnTinyGo, Value: 1.17},
				{Label: gojinnRust, Value: 0.44},
			},
			AxisLabel: "Time (ms)",
			UnitLabel: "ms",
			Filename:  "chart_latency.png",
		},
		{
			Title: "Cold Start Time (Avg) - Lower is Better",
			Series: []charts.Entry{
				{Label: "Docker", Value: 730},
				{Label: "Gojinn", Value: 163},
			},
			AxisLabel: "Time (ms)",
			UnitLabel: "ms",
			Filename:  "chart_coldstart.png",
		},
		{
			Title: "Artifact Size (Disk) - Lower is Better",
			Series: []charts.Entry{
				{Label: dockerNative, Value: 20.6},
				{Label: gojinnTinyGo, Value: 0.28},
				{Label: gojinnRust, Value: 0.18},
			},
			AxisLabel: "Size (MB)",
			UnitLabel: "MB",
			Filename:  "chart_size.png",
		},
	}
}
