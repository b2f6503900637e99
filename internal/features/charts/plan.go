package charts

import (
	"sort"

	"gonum.org/v1/plot"
)

// Rect is an axis-aligned box in pixels, Y growing downward.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Bar is the pixel geometry of one series entry.
type Bar struct {
	Label       string
	Value       float64
	Color       string // hex
	Rect        Rect
	CenterY     float64
	Annotation  string
	AnnotationX float64 // left edge of the annotation text
}

// Tick is a labeled mark on the value axis.
type Tick struct {
	Value float64
	Label string
	X     float64
}

// Plan is the full layout of a chart before anything is drawn.
// Bars are ordered as the input series, top to bottom.
type Plan struct {
	Width, Height int
	Title         string
	AxisLabel     string
	Area          Rect // plot area framed by the left and bottom spines
	XMax          float64
	Ticks         []Tick
	Bars          []Bar
}

func (r *Renderer) plan(d Dataset, faces chartFaces) *Plan {
	t := r.theme
	width, height := t.PixelSize()

	pad := t.px(layoutPad * baseFontSize)
	tickLen := t.px(tickLength)
	tickGap := t.px(tickPad)
	labelH := lineHeight(faces.label)

	labelW := 0.0
	for _, e := range d.Series {
		if w := textWidth(faces.label, e.Label); w > labelW {
			labelW = w
		}
	}

	max := d.Max()
	xMax := max * (1 + axisMargin)
	if xMax == 0 {
		xMax = 1
	}
	offset := max * labelShift

	left := pad + labelW + tickGap + tickLen
	right := float64(width) - pad
	top := pad + lineHeight(faces.title) + t.px(titlePad)
	bottom := float64(height) - pad - labelH - t.px(axisLabelPad) - labelH - tickGap - tickLen

	// Shrink the plot area until every annotation fits inside the figure.
	annotations := make([]string, len(d.Series))
	areaW := right - left
	for i, e := range d.Series {
		annotations[i] = Annotation(e.Value, d.UnitLabel)
		frac := (e.Value + offset) / xMax
		if frac <= 0 {
			continue
		}
		if limit := (right - left - textWidth(faces.annotation, annotations[i])) / frac; limit < areaW {
			areaW = limit
		}
	}
	if areaW < 1 {
		areaW = 1
	}

	area := Rect{X: left, Y: top, W: areaW, H: bottom - top}

	// Bars sit on 0..n-1, the first one at the top of the area.
	lo := -barHeight / 2
	hi := float64(len(d.Series)-1) + barHeight/2
	margin := (hi - lo) * axisMargin
	lo -= margin
	hi += margin
	unit := area.H / (hi - lo)

	xPos := func(v float64) float64 { return area.X + v/xMax*area.W }

	bars := make([]Bar, len(d.Series))
	for i, e := range d.Series {
		centerY := area.Y + (float64(i)-lo)*unit
		bars[i] = Bar{
			Label:   e.Label,
			Value:   e.Value,
			Color:   t.BarColor(i),
			CenterY: centerY,
			Rect: Rect{
				X: area.X,
				Y: centerY - barHeight/2*unit,
				W: xPos(e.Value) - area.X,
				H: barHeight * unit,
			},
			Annotation:  annotations[i],
			AnnotationX: xPos(e.Value + offset),
		}
	}

	var ticks []Tick
	for _, tk := range (plot.DefaultTicks{}).Ticks(0, xMax) {
		// minor ticks carry no label
		if tk.Label == "" || tk.Value < 0 || tk.Value > xMax {
			continue
		}
		ticks = append(ticks, Tick{Value: tk.Value, Label: tk.Label, X: xPos(tk.Value)})
	}
	sort.Slice(ticks, func(i, j int) bool { return ticks[i].Value < ticks[j].Value })

	return &Plan{
		Width:     width,
		Height:    height,
		Title:     d.Title,
		AxisLabel: d.AxisLabel,
		Area:      area,
		XMax:      xMax,
		Ticks:     ticks,
		Bars:      bars,
	}
}
