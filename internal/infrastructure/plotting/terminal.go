package plotting

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"mnist-kit/internal/domain/entity"
	"mnist-kit/internal/domain/port"
)

// Символы от низкой точности к высокой.
const intensityRamp = ".:-=+*#%@"

// TerminalRenderer рисует диаграмму символами.
type TerminalRenderer struct {
	Columns int
	Rows    int
}

// NewTerminalRenderer создаёт рендерер 60×20 символов.
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{Columns: 60, Rows: 20}
}

// Draw выводит диаграмму в w.
func (r *TerminalRenderer) Draw(w io.Writer, series entity.ScatterSeries) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s (Terminal Plot):\n", Title(series))

	if series.Len() == 0 {
		sb.WriteString("no data points\n")
		_, err := io.WriteString(w, sb.String())
		return err
	}

	cols, rows := max(r.Columns, 2), max(r.Rows, 2)
	minX, maxX := floats.Min(series.X), floats.Max(series.X)
	minY, maxY := floats.Min(series.Y), floats.Max(series.Y)

	grid := make([][]byte, rows)
	for i := range grid {
		grid[i] = []byte(strings.Repeat(" ", cols))
	}

	for i := range series.X {
		col := scale(series.X[i], minX, maxX, cols)
		row := rows - 1 - scale(series.Y[i], minY, maxY, rows)
		level := scale(series.Y[i], minY, maxY, len(intensityRamp))
		// при наложении остаётся более яркая точка
		if c := intensityRamp[level]; grid[row][col] == ' ' || strings.IndexByte(intensityRamp, grid[row][col]) < level {
			grid[row][col] = c
		}
	}

	fmt.Fprintf(&sb, "%10.4f |%s\n", maxY, string(grid[0]))
	for _, line := range grid[1 : rows-1] {
		fmt.Fprintf(&sb, "%10s |%s\n", "", string(line))
	}
	fmt.Fprintf(&sb, "%10.4f |%s\n", minY, string(grid[rows-1]))
	fmt.Fprintf(&sb, "%10s +%s\n", "", strings.Repeat("-", cols))
	fmt.Fprintf(&sb, "%10s  %-*g%g\n", "", max(cols-len(fmt.Sprint(maxX)), 1), minX, maxX)

	fmt.Fprintf(&sb, "\nx: %s, y: %s, points: %d", series.Column, entity.ColumnAccuracy, series.Len())
	if !math.IsNaN(series.Correlation) {
		fmt.Fprintf(&sb, ", correlation: %.4f", series.Correlation)
	}
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// scale переводит v из [lo, hi] в индекс [0, n).
func scale(v, lo, hi float64, n int) int {
	if hi == lo {
		return n / 2
	}
	i := int((v - lo) / (hi - lo) * float64(n-1))
	return min(max(i, 0), n-1)
}

// TerminalViewer печатает все диаграммы в поток.
type TerminalViewer struct {
	Out      io.Writer
	Renderer *TerminalRenderer
}

// NewTerminalViewer создаёт просмотрщик, пишущий в out.
func NewTerminalViewer(out io.Writer) *TerminalViewer {
	return &TerminalViewer{Out: out, Renderer: NewTerminalRenderer()}
}

// Show печатает диаграммы по очереди.
func (v *TerminalViewer) Show(ctx context.Context, plots []entity.ScatterSeries) error {
	for _, series := range plots {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := v.Renderer.Draw(v.Out, series); err != nil {
			return fmt.Errorf("draw %q: %w", series.Column, err)
		}
	}
	return nil
}

var _ port.PlotViewer = (*TerminalViewer)(nil)
