package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gojinn-bench/internal/features/charts"
)

// go run etc/tools/test_chart.go
// writes a two-bar sample chart to the system temp directory
func main() {
	fmt.Println("Generating sample chart...")

	path := filepath.Join(os.TempDir(), "chart_sample.png")
	err := charts.Render("Sample - Two Bars", []string{"A", "B"}, []float64{10, 20}, path, "Value", "x")
	if err != nil {
		fmt.Printf("Error generating chart: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Open the file to see the result!")
}
