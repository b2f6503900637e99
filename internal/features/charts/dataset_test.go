package charts

import (
	"errors"
	"math"
	"testing"
)

func TestNewDataset_ZipsInOrder(t *testing.T) {
	d, err := NewDataset("T", []string{"A", "B"}, []float64{10, 20}, "axis", "x", "out.png")
	if err != nil {
		t.Fatalf("NewDataset failed: %v", err)
	}
	if len(d.Series) != 2 || d.Series[0] != (Entry{"A", 10}) || d.Series[1] != (Entry{"B", 20}) {
		t.Fatalf("unexpected series: %+v", d.Series)
	}
	if d.Max() != 20 {
		t.Fatalf("expected max 20, got %v", d.Max())
	}
}

func TestNewDataset_LengthMismatch(t *testing.T) {
	_, err := NewDataset("T", []string{"A", "B"}, []float64{1}, "", "", "")
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		series []Entry
		want   error
	}{
		{"empty", nil, ErrEmptySeries},
		{"negative", []Entry{{"A", -1}}, ErrInvalidValue},
		{"nan", []Entry{{"A", math.NaN()}}, ErrInvalidValue},
		{"inf", []Entry{{"A", math.Inf(1)}}, ErrInvalidValue},
		{"single", []Entry{{"A", 1}}, nil},
		{"zeros", []Entry{{"A", 0}, {"B", 0}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Dataset{Title: "T", Series: tt.series}.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestAnnotation(t *testing.T) {
	tests := []struct {
		value float64
		unit  string
		want  string
	}{
		{10, "x", "10 x"},
		{20, "x", "20 x"},
		{14500, "", "14500"},
		{0.13, "ms", "0.13 ms"},
		{1.17, "ms", "1.17 ms"},
		{20.6, "MB", "20.6 MB"},
		{0, "ms", "0 ms"},
	}
	for _, tt := range tests {
		if got := Annotation(tt.value, tt.unit); got != tt.want {
			t.Fatalf("Annotation(%v, %q) = %q, want %q", tt.value, tt.unit, got, tt.want)
		}
	}
}

func TestFormatValue_ExtremeMagnitudes(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{1e-07, "1e-07"},
		{1.5e-05, "1.5e-05"},
		{0.0001, "0.0001"},
		{1e15, "1000000000000000"},
		{1e16, "1e+16"},
		{1e21, "1e+21"},
		{0, "0"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.value); got != tt.want {
			t.Fatalf("FormatValue(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}
