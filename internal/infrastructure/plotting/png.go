// Package plotting рисует диаграммы рассеяния точности от параметров.
package plotting

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"mnist-kit/internal/domain/entity"
	"mnist-kit/internal/domain/port"
)

// Опорные цвета палитры viridis, яркость растёт монотонно.
var viridis = []color.Color{
	color.RGBA{R: 0x44, G: 0x01, B: 0x54, A: 0xff},
	color.RGBA{R: 0x3b, G: 0x52, B: 0x8b, A: 0xff},
	color.RGBA{R: 0x21, G: 0x91, B: 0x8c, A: 0xff},
	color.RGBA{R: 0x5e, G: 0xc9, B: 0x62, A: 0xff},
	color.RGBA{R: 0xfd, G: 0xe7, B: 0x25, A: 0xff},
}

// PNGRenderer рисует диаграмму в PNG, цвет точки зависит от точности.
type PNGRenderer struct {
	Width  vg.Length
	Height vg.Length
	Radius vg.Length
}

// NewPNGRenderer создаёт рендерер с размером в дюймах.
func NewPNGRenderer(widthInch, heightInch float64) *PNGRenderer {
	return &PNGRenderer{
		Width:  vg.Length(widthInch) * vg.Inch,
		Height: vg.Length(heightInch) * vg.Inch,
		Radius: vg.Points(4),
	}
}

// Title заголовок диаграммы для колонки.
func Title(series entity.ScatterSeries) string {
	return fmt.Sprintf("%s vs %s", entity.ColumnAccuracy, series.Column)
}

// Render возвращает PNG с одной диаграммой.
func (r *PNGRenderer) Render(series entity.ScatterSeries) ([]byte, error) {
	p := plot.New()
	p.Title.Text = Title(series)
	p.X.Label.Text = series.Column
	p.Y.Label.Text = entity.ColumnAccuracy
	p.Add(plotter.NewGrid())

	if series.Len() > 0 {
		scatter, err := plotter.NewScatter(series)
		if err != nil {
			return nil, fmt.Errorf("build scatter %q: %w", series.Column, err)
		}

		colors, err := colorMap(series.Y)
		if err != nil {
			return nil, err
		}
		scatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			return draw.GlyphStyle{
				Color:  pointColor(colors, series.Y[i]),
				Radius: r.Radius,
				Shape:  draw.CircleGlyph{},
			}
		}
		p.Add(scatter)
	}

	wt, err := p.WriterTo(r.Width, r.Height, "png")
	if err != nil {
		return nil, fmt.Errorf("render %q: %w", series.Column, err)
	}

	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode %q: %w", series.Column, err)
	}
	return buf.Bytes(), nil
}

// colorMap растягивает палитру на диапазон точности.
// При одном значении диапазон вырожден и возвращается nil.
func colorMap(accuracy []float64) (palette.ColorMap, error) {
	lo, hi := floats.Min(accuracy), floats.Max(accuracy)
	if lo == hi {
		return nil, nil
	}

	cm, err := moreland.NewLuminance(viridis)
	if err != nil {
		return nil, fmt.Errorf("build palette: %w", err)
	}
	cm.SetMin(lo)
	cm.SetMax(hi)
	return cm, nil
}

func pointColor(cm palette.ColorMap, v float64) color.Color {
	if cm == nil || math.IsNaN(v) {
		return viridis[len(viridis)/2]
	}
	c, err := cm.At(v)
	if err != nil {
		return viridis[len(viridis)/2]
	}
	return c
}

var _ port.ScatterRenderer = (*PNGRenderer)(nil)
