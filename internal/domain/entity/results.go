package entity

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Колонки таблицы результатов перебора гиперпараметров.
const (
	ColumnAccuracy     = "Accuracy"
	ColumnHidden1      = "Neurons in hidden layer 1"
	ColumnHidden2      = "Neurons in hidden layer 2"
	ColumnLearningRate = "Learning rate"
	ColumnBatchSize    = "Batch size"
)

// RequiredColumns обязательные колонки, точность первой.
var RequiredColumns = []string{
	ColumnAccuracy,
	ColumnHidden1,
	ColumnHidden2,
	ColumnLearningRate,
	ColumnBatchSize,
}

// ParameterColumns колонки, для которых строится диаграмма против точности.
func ParameterColumns() []string {
	out := make([]string, len(RequiredColumns)-1)
	copy(out, RequiredColumns[1:])
	return out
}

// CheckColumns возвращает *SchemaError, если в заголовке нет обязательных колонок.
func CheckColumns(header []string) error {
	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[name] = true
	}

	var missing []string
	for _, name := range RequiredColumns {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}

// ResultsTable таблица результатов: исходные ячейки для отчёта и
// числовые значения обязательных колонок. Пропуски хранятся как NaN.
type ResultsTable struct {
	header  []string
	records [][]string
	numeric map[string][]float64
}

// NewResultsTable собирает таблицу. Пустая таблица допустима,
// ошибка возникнет только при поиске лучшей строки.
func NewResultsTable(header []string, records [][]string, numeric map[string][]float64) (*ResultsTable, error) {
	if err := CheckColumns(header); err != nil {
		return nil, err
	}
	for i, rec := range records {
		if len(rec) != len(header) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", i, len(rec), len(header))
		}
	}
	for _, name := range RequiredColumns {
		if len(numeric[name]) != len(records) {
			return nil, fmt.Errorf("column %q has %d values for %d rows", name, len(numeric[name]), len(records))
		}
	}

	return &ResultsTable{
		header:  append([]string(nil), header...),
		records: records,
		numeric: numeric,
	}, nil
}

// Header возвращает имена колонок в порядке файла.
func (t *ResultsTable) Header() []string {
	return append([]string(nil), t.header...)
}

// Len количество строк данных.
func (t *ResultsTable) Len() int {
	return len(t.records)
}

// Column возвращает копию числовой колонки.
func (t *ResultsTable) Column(name string) ([]float64, error) {
	col, ok := t.numeric[name]
	if !ok {
		return nil, fmt.Errorf("column %q is not numeric", name)
	}
	return append([]float64(nil), col...), nil
}

// ScatterSeries пары (параметр, точность) для диагностической диаграммы.
type ScatterSeries struct {
	Column      string
	X           []float64
	Y           []float64
	Correlation float64 // коэффициент Пирсона, NaN если не определён
}

// Len количество точек.
func (s ScatterSeries) Len() int { return len(s.X) }

// XY реализует plotter.XYer.
func (s ScatterSeries) XY(i int) (float64, float64) { return s.X[i], s.Y[i] }

// Scatter строит пары для одной колонки, строки с пропусками пропускаются.
func (t *ResultsTable) Scatter(column string) (ScatterSeries, error) {
	xs, ok := t.numeric[column]
	if !ok {
		return ScatterSeries{}, fmt.Errorf("column %q is not numeric", column)
	}
	ys := t.numeric[ColumnAccuracy]

	s := ScatterSeries{Column: column, Correlation: math.NaN()}
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		s.X = append(s.X, xs[i])
		s.Y = append(s.Y, ys[i])
	}
	if len(s.X) > 1 {
		s.Correlation = stat.Correlation(s.X, s.Y, nil)
	}
	return s, nil
}

// Relationships строит диаграммы для всех колонок параметров.
func (t *ResultsTable) Relationships() ([]ScatterSeries, error) {
	columns := ParameterColumns()
	out := make([]ScatterSeries, 0, len(columns))
	for _, column := range columns {
		s, err := t.Scatter(column)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Field колонка и её значение из исходного файла.
type Field struct {
	Name  string
	Value string
}

// BestRow строка с максимальной точностью.
type BestRow struct {
	Index    int
	Accuracy float64
	Fields   []Field
}

// Best находит строку с максимальной точностью. При равенстве побеждает
// первая, пропуски не участвуют.
func (t *ResultsTable) Best() (*BestRow, error) {
	acc := t.numeric[ColumnAccuracy]
	if len(acc) == 0 {
		return nil, ErrEmptyDataset
	}

	idx := floats.MaxIdx(acc)
	if math.IsNaN(acc[idx]) {
		return nil, fmt.Errorf("%w: every accuracy value is missing", ErrEmptyDataset)
	}

	fields := make([]Field, len(t.header))
	for i, name := range t.header {
		fields[i] = Field{Name: name, Value: t.records[idx][i]}
	}

	return &BestRow{Index: idx, Accuracy: acc[idx], Fields: fields}, nil
}

// String форматирует строку в две колонки:
// имена выровнены влево, значения вправо.
func (b *BestRow) String() string {
	nameWidth, valueWidth := 0, 0
	for _, f := range b.Fields {
		nameWidth = max(nameWidth, len(f.Name))
		valueWidth = max(valueWidth, len(f.Value))
	}

	var sb strings.Builder
	for _, f := range b.Fields {
		fmt.Fprintf(&sb, "%-*s    %*s\n", nameWidth, f.Name, valueWidth, f.Value)
	}
	return sb.String()
}
