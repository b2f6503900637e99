// Package charts renders horizontal bar charts to PNG with gg.
// Plan computes the geometry, draw paints it, Render encodes and saves the file.
package charts

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	storage "gojinn-bench/internal/infra/fs"
	logging "gojinn-bench/internal/infra/log"

	"github.com/fogleman/gg"
	"go.uber.org/zap"
)

// Renderer draws datasets with one theme. It is safe to reuse across charts.
type Renderer struct {
	theme Theme
	fonts fontSet
	out   io.Writer
}

type Option func(*Renderer)

// WithOutput sets where confirmation lines are printed (stdout by default).
func WithOutput(w io.Writer) Option {
	return func(r *Renderer) {
		r.out = w
	}
}

func NewRenderer(theme Theme, opts ...Option) (*Renderer, error) {
	fonts, err := loadFonts()
	if err != nil {
		return nil, err
	}
	r := &Renderer{
		theme: theme,
		fonts: fonts,
		out:   os.Stdout,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.out == nil {
		r.out = io.Discard
	}
	return r, nil
}

// Plan lays out the chart for d without drawing it.
func (r *Renderer) Plan(d Dataset) (*Plan, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	faces := r.fonts.faces(r.theme.dpi)
	defer faces.Close()
	return r.plan(d, faces), nil
}

// Render draws d and writes it as a PNG to outputPath, replacing any existing file.
// The parent directory must already exist.
func (r *Renderer) Render(d Dataset, outputPath string) error {
	if err := d.Validate(); err != nil {
		return err
	}

	faces := r.fonts.faces(r.theme.dpi)
	defer faces.Close()

	p := r.plan(d, faces)
	logging.LogDebug("Chart planned",
		zap.String("title", d.Title),
		zap.Float64("xMax", p.XMax),
		zap.Int("ticks", len(p.Ticks)),
		zap.Float64("areaWidth", p.Area.W))
	dc := r.draw(p, faces)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return fmt.Errorf("failed to encode chart: %w", err)
	}
	data, err := withPhysicalDPI(buf.Bytes(), r.theme.dpi)
	if err != nil {
		return fmt.Errorf("failed to set chart resolution: %w", err)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to save chart: %w", err)
	}

	info, err := storage.CheckNonEmptyFile(outputPath)
	if err != nil {
		os.Remove(outputPath)
		logging.LogError("Chart file is invalid after rendering", zap.String("filename", outputPath), zap.Error(err))
		return fmt.Errorf("failed to verify chart: %w", err)
	}

	fmt.Fprintf(r.out, "✅ Generated %s\n", outputPath)
	logging.LogInfo("Chart generated",
		zap.String("filename", outputPath),
		zap.String("title", d.Title),
		zap.Int64("fileSize", info.Size()),
		zap.Int("barsCount", len(p.Bars)))
	return nil
}

func (r *Renderer) draw(p *Plan, faces chartFaces) *gg.Context {
	t := r.theme
	tickLen := t.px(tickLength)
	tickGap := t.px(tickPad)
	bottom := p.Area.Bottom()

	dc := gg.NewContext(p.Width, p.Height)
	dc.SetHexColor(t.background)
	dc.Clear()

	for _, b := range p.Bars {
		dc.SetHexColor(b.Color)
		dc.DrawRectangle(b.Rect.X, b.Rect.Y, b.Rect.W, b.Rect.H)
		dc.Fill()
	}

	// top and right spines are not drawn
	dc.SetLineWidth(t.px(spineWidth))
	dc.SetHexColor(t.spine)
	dc.DrawLine(p.Area.X, p.Area.Y, p.Area.X, bottom)
	dc.DrawLine(p.Area.X, bottom, p.Area.Right(), bottom)
	dc.Stroke()

	dc.SetHexColor(t.foreground)
	dc.SetFontFace(faces.label)
	for _, b := range p.Bars {
		dc.DrawLine(p.Area.X-tickLen, b.CenterY, p.Area.X, b.CenterY)
		dc.Stroke()
		dc.DrawStringAnchored(b.Label, p.Area.X-tickLen-tickGap, b.CenterY, 1, 0.5)
	}
	for _, tk := range p.Ticks {
		dc.DrawLine(tk.X, bottom, tk.X, bottom+tickLen)
		dc.Stroke()
		dc.DrawStringAnchored(tk.Label, tk.X, bottom+tickLen+tickGap, 0.5, 1)
	}

	centerX := p.Area.X + p.Area.W/2
	axisLabelY := bottom + tickLen + tickGap + lineHeight(faces.label) + t.px(axisLabelPad)
	dc.DrawStringAnchored(p.AxisLabel, centerX, axisLabelY, 0.5, 1)

	dc.SetFontFace(faces.title)
	dc.DrawStringAnchored(p.Title, centerX, p.Area.Y-t.px(titlePad), 0.5, 0)

	dc.SetFontFace(faces.annotation)
	for _, b := range p.Bars {
		dc.DrawStringAnchored(b.Annotation, b.AnnotationX, b.CenterY, 0, 0.5)
	}

	return dc
}

// Render draws one chart with the dark theme and writes it to outputPath.
func Render(title string, labels []string, values []float64, outputPath, axisLabel, unitLabel string) error {
	d, err := NewDataset(title, labels, values, axisLabel, unitLabel, filepath.Base(outputPath))
	if err != nil {
		return err
	}
	r, err := NewRenderer(DarkTheme())
	if err != nil {
		return err
	}
	return r.Render(d, outputPath)
}
