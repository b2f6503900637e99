package charts

import (
	"fmt"
	"math"
)

const (
	defaultWidthInches  = 10.0
	defaultHeightInches = 6.0
	defaultDPI          = 100.0

	baseFontSize  = 10.0 // pt, tick labels, axis label and annotations
	titleFontSize = 14.0 // pt, bold
	titlePad      = 20.0 // pt between plot area and title baseline

	tickLength   = 3.5  // pt
	tickPad      = 3.5  // pt between tick mark and tick label
	axisLabelPad = 4.0  // pt between tick labels and axis label
	spineWidth   = 0.8  // pt
	layoutPad    = 1.08 // fraction of base font size kept free around the figure

	barHeight  = 0.8  // data units, bars sit on integer positions
	axisMargin = 0.05 // autoscale margin on both axes
	labelShift = 0.01 // annotation offset as a fraction of the series maximum
)

// Theme holds the chart style applied to every rendered dataset.
// With* methods return a modified copy and accessors never expose internals.
type Theme struct {
	background string
	foreground string
	spine      string
	palette    []string

	widthInches  float64
	heightInches float64
	dpi          float64
}

// DarkTheme is the dark background style: black figure, white text,
// dimmed gray spines and the blue/orange/green palette.
func DarkTheme() Theme {
	return Theme{
		background:   "#000000",
		foreground:   "#ffffff",
		spine:        "#444444",
		palette:      []string{"#1f77b4", "#ff7f0e", "#2ca02c"},
		widthInches:  defaultWidthInches,
		heightInches: defaultHeightInches,
		dpi:          defaultDPI,
	}
}

// WithFigure returns a copy of the theme with a different figure size (inches) and resolution.
func (t Theme) WithFigure(widthInches, heightInches, dpi float64) (Theme, error) {
	if !(widthInches > 0) || !(heightInches > 0) || math.IsInf(widthInches, 0) || math.IsInf(heightInches, 0) {
		return t, fmt.Errorf("invalid figure size %gx%g", widthInches, heightInches)
	}
	if !(dpi > 0) || math.IsInf(dpi, 0) {
		return t, fmt.Errorf("invalid dpi %g", dpi)
	}
	t.widthInches = widthInches
	t.heightInches = heightInches
	t.dpi = dpi
	return t, nil
}

// Palette returns a copy of the bar colors as hex strings.
func (t Theme) Palette() []string {
	out := make([]string, len(t.palette))
	copy(out, t.palette)
	return out
}

// BarColor picks the color for the i-th bar. Series longer than the
// palette wrap around to the first color.
func (t Theme) BarColor(i int) string {
	if len(t.palette) == 0 {
		return t.foreground
	}
	if i < 0 {
		i = -i
	}
	return t.palette[i%len(t.palette)]
}

func (t Theme) DPI() float64 { return t.dpi }

// PixelSize is the rendered image size in pixels.
func (t Theme) PixelSize() (int, int) {
	return int(math.Round(t.widthInches * t.dpi)), int(math.Round(t.heightInches * t.dpi))
}

// px converts typographic points to pixels at the theme resolution.
func (t Theme) px(points float64) float64 {
	return points * t.dpi / 72
}
