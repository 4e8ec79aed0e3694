package app

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"mnist-kit/internal/domain/entity"
	"mnist-kit/internal/domain/port"
)

// ReportHeader первая строка отчёта о лучшей строке.
const ReportHeader = "best parameters combination for highest accuracy:"

// SummaryService анализирует таблицу результатов перебора параметров.
type SummaryService struct {
	loader port.ResultsLoader
	viewer port.PlotViewer
}

// SummaryOutput результат анализа таблицы.
type SummaryOutput struct {
	Table         *entity.ResultsTable
	Relationships []entity.ScatterSeries
	Best          *entity.BestRow
}

// NewSummaryService создаёт сервис. viewer может быть nil, тогда диаграммы не показываются.
func NewSummaryService(loader port.ResultsLoader, viewer port.PlotViewer) *SummaryService {
	return &SummaryService{
		loader: loader,
		viewer: viewer,
	}
}

// Summarize загружает файл, показывает диаграммы и возвращает лучшую строку.
// Ошибки схемы и пустая таблица обнаруживаются до показа диаграмм.
func (s *SummaryService) Summarize(ctx context.Context, path string) (*SummaryOutput, error) {
	table, err := s.loader.LoadFile(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "load results %s", path)
	}
	return s.present(ctx, table)
}

// SummarizeReader то же для потока, без показа диаграмм.
func (s *SummaryService) SummarizeReader(ctx context.Context, r io.Reader) (*SummaryOutput, error) {
	table, err := s.loader.Load(ctx, r)
	if err != nil {
		return nil, errors.Wrap(err, "load results")
	}
	return analyze(table)
}

func (s *SummaryService) present(ctx context.Context, table *entity.ResultsTable) (*SummaryOutput, error) {
	out, err := analyze(table)
	if err != nil {
		return nil, err
	}
	if s.viewer == nil {
		return out, nil
	}

	if err := s.viewer.Show(ctx, out.Relationships); err != nil {
		return nil, errors.Wrap(err, "show plots")
	}
	return out, nil
}

func analyze(table *entity.ResultsTable) (*SummaryOutput, error) {
	best, err := table.Best()
	if err != nil {
		return nil, errors.Wrap(err, "find best row")
	}

	relationships, err := table.Relationships()
	if err != nil {
		return nil, errors.Wrap(err, "build relationships")
	}
	for _, r := range relationships {
		ev := log.Info().Str("column", r.Column).Int("points", r.Len())
		if !math.IsNaN(r.Correlation) {
			ev = ev.Float64("correlation", r.Correlation)
		}
		ev.Msg("accuracy relationship")
	}

	return &SummaryOutput{
		Table:         table,
		Relationships: relationships,
		Best:          best,
	}, nil
}

// WriteReport печатает лучшую строку под заголовком ReportHeader.
func WriteReport(w io.Writer, best *entity.BestRow) error {
	_, err := fmt.Fprintf(w, "\n%s\n%s", ReportHeader, best.String())
	return err
}
