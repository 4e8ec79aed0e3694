package port

import (
	"context"

	"mnist-kit/internal/domain/entity"
)

// ScatterRenderer рисует диаграмму рассеяния в PNG
type ScatterRenderer interface {
	Render(series entity.ScatterSeries) ([]byte, error)
}

// PlotViewer показывает диаграммы пользователю
type PlotViewer interface {
	// Show показывает все диаграммы, по одной на колонку, и возвращается,
	// когда пользователь их просмотрел
	Show(ctx context.Context, plots []entity.ScatterSeries) error
}
