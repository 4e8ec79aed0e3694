package plotting

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"mnist-kit/internal/domain/entity"
	"mnist-kit/internal/domain/port"
)

// ArchiveViewer сохраняет каждую диаграмму в PNG и передаёт их дальше.
type ArchiveViewer struct {
	Dir      string
	Renderer port.ScatterRenderer
	Next     port.PlotViewer
}

// Show сохраняет файлы и вызывает следующий просмотрщик.
func (v *ArchiveViewer) Show(ctx context.Context, plots []entity.ScatterSeries) error {
	if err := os.MkdirAll(v.Dir, 0o755); err != nil {
		return fmt.Errorf("create plot dir: %w", err)
	}

	for _, series := range plots {
		data, err := v.Renderer.Render(series)
		if err != nil {
			return err
		}
		path := filepath.Join(v.Dir, FileName(series))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("save plot: %w", err)
		}
		log.Info().Str("column", series.Column).Str("path", path).Msg("plot saved")
	}

	if v.Next == nil {
		return nil
	}
	return v.Next.Show(ctx, plots)
}

// FileName имя PNG-файла для колонки.
func FileName(series entity.ScatterSeries) string {
	name := strings.ToLower(series.Column)
	name = strings.ReplaceAll(name, " ", "_")
	return "accuracy_vs_" + name + ".png"
}

var _ port.PlotViewer = (*ArchiveViewer)(nil)
