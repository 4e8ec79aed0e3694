//go:build !ebiten
// +build !ebiten

package window

import (
	"context"
	"os"

	"mnist-kit/internal/domain/entity"
	"mnist-kit/internal/domain/port"
	"mnist-kit/internal/infrastructure/plotting"
)

// Viewer без тега ebiten печатает диаграммы в stderr.
type Viewer struct {
	Renderer port.ScatterRenderer
	terminal *plotting.TerminalViewer
}

// NewViewer создаёт просмотрщик-заглушку (без окна).
func NewViewer(renderer port.ScatterRenderer) *Viewer {
	return &Viewer{
		Renderer: renderer,
		terminal: plotting.NewTerminalViewer(os.Stderr),
	}
}

// Show печатает диаграммы в терминал.
func (v *Viewer) Show(ctx context.Context, plots []entity.ScatterSeries) error {
	return v.terminal.Show(ctx, plots)
}

var _ port.PlotViewer = (*Viewer)(nil)
