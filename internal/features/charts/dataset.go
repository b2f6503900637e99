package charts

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	ErrEmptySeries    = errors.New("series is empty")
	ErrLengthMismatch = errors.New("labels and values differ in length")
	ErrInvalidValue   = errors.New("value must be a finite non-negative number")
)

// Entry is one labeled bar.
type Entry struct {
	Label string
	Value float64
}

// Dataset is one benchmark metric: a titled series drawn as one chart.
type Dataset struct {
	Title     string
	Series    []Entry
	AxisLabel string
	UnitLabel string // appended to every annotation, may be empty
	Filename  string // file name inside the output directory
}

// NewDataset zips parallel label and value slices into a Dataset.
func NewDataset(title string, labels []string, values []float64, axisLabel, unitLabel, filename string) (Dataset, error) {
	if len(labels) != len(values) {
		return Dataset{}, fmt.Errorf("%w: %d labels, %d values", ErrLengthMismatch, len(labels), len(values))
	}
	series := make([]Entry, len(labels))
	for i := range labels {
		series[i] = Entry{Label: labels[i], Value: values[i]}
	}
	d := Dataset{
		Title:     title,
		Series:    series,
		AxisLabel: axisLabel,
		UnitLabel: unitLabel,
		Filename:  filename,
	}
	if err := d.Validate(); err != nil {
		return Dataset{}, err
	}
	return d, nil
}

func (d Dataset) Validate() error {
	if len(d.Series) == 0 {
		return fmt.Errorf("dataset %q: %w", d.Title, ErrEmptySeries)
	}
	for _, e := range d.Series {
		if math.IsNaN(e.Value) || math.IsInf(e.Value, 0) || e.Value < 0 {
			return fmt.Errorf("dataset %q, entry %q (%v): %w", d.Title, e.Label, e.Value, ErrInvalidValue)
		}
	}
	return nil
}

// Max returns the largest value of the series, 0 for an empty series.
func (d Dataset) Max() float64 {
	max := 0.0
	for _, e := range d.Series {
		if e.Value > max {
			max = e.Value
		}
	}
	return max
}

// FormatValue prints v in its shortest decimal form: 14500, 0.13, 20.6.
// Magnitudes of 1e16 and above or below 1e-4 switch to exponent form (1e+21, 1e-07).
func FormatValue(v float64) string {
	if a := math.Abs(v); a != 0 && (a >= 1e16 || a < 1e-4) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Annotation is the text printed past the end of a bar.
func Annotation(v float64, unit string) string {
	if unit == "" {
		return FormatValue(v)
	}
	return FormatValue(v) + " " + unit
}
