package charts

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Fonts are compiled into the binary so output does not depend on
// what happens to be installed on the machine.
type fontSet struct {
	regular *truetype.Font
	bold    *truetype.Font
}

func loadFonts() (fontSet, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return fontSet{}, fmt.Errorf("failed to parse regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return fontSet{}, fmt.Errorf("failed to parse bold font: %w", err)
	}
	return fontSet{regular: regular, bold: bold}, nil
}

// chartFaces are the sized faces for one render. They are closed when the render ends.
type chartFaces struct {
	label      font.Face // tick labels and axis caption
	title      font.Face
	annotation font.Face
}

func (fs fontSet) faces(dpi float64) chartFaces {
	opts := func(size float64) *truetype.Options {
		return &truetype.Options{Size: size, DPI: dpi, Hinting: font.HintingFull}
	}
	return chartFaces{
		label:      truetype.NewFace(fs.regular, opts(baseFontSize)),
		title:      truetype.NewFace(fs.bold, opts(titleFontSize)),
		annotation: truetype.NewFace(fs.bold, opts(baseFontSize)),
	}
}

func (f chartFaces) Close() {
	f.label.Close()
	f.title.Close()
	f.annotation.Close()
}

func textWidth(face font.Face, s string) float64 {
	return float64(font.MeasureString(face, s)) / 64
}

func lineHeight(face font.Face) float64 {
	return float64(face.Metrics().Height) / 64
}
