package table

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/rocketlaunchr/dataframe-go"
	"github.com/rocketlaunchr/dataframe-go/imports"

	"mnist-kit/internal/domain/entity"
	"mnist-kit/internal/domain/port"
)

// ErrResultsNotFound файл с результатами отсутствует
var ErrResultsNotFound = errors.New("results file not found")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVLoader читает таблицу результатов из CSV с заголовком.
type CSVLoader struct {
	Comma rune
}

// NewCSVLoader создаёт загрузчик для файлов с запятой в качестве разделителя.
func NewCSVLoader() *CSVLoader {
	return &CSVLoader{Comma: ','}
}

// LoadFile читает таблицу из файла.
func (l *CSVLoader) LoadFile(ctx context.Context, path string) (*entity.ResultsTable, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrResultsNotFound, path)
		}
		return nil, fmt.Errorf("open results %s: %w", path, err)
	}
	defer f.Close()

	return l.Load(ctx, f)
}

// Load проверяет заголовок до разбора данных: без обязательных колонок
// и без строк таблица не загружается.
func (l *CSVLoader) Load(ctx context.Context, r io.Reader) (*entity.ResultsTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	records, err := l.reader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	if len(records) == 0 {
		return nil, &entity.SchemaError{Missing: entity.RequiredColumns}
	}

	header, rows := uniqueNames(records[0]), records[1:]
	if err := entity.CheckColumns(header); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, entity.ErrEmptyDataset
	}

	// dataframe требует уникальные имена, поэтому разбирает уже переименованный заголовок
	var normalized bytes.Buffer
	w := csv.NewWriter(&normalized)
	w.Comma = l.comma()
	if err := w.WriteAll(append([][]string{header}, rows...)); err != nil {
		return nil, fmt.Errorf("normalize results: %w", err)
	}

	numeric, err := l.numericColumns(ctx, normalized.Bytes())
	if err != nil {
		return nil, err
	}

	return entity.NewResultsTable(header, rows, numeric)
}

// uniqueNames переименовывает повторы колонок в «имя.1», «имя.2».
// Первое вхождение сохраняет исходное имя.
func uniqueNames(header []string) []string {
	out := make([]string, len(header))
	used := make(map[string]bool, len(header))
	for i, name := range header {
		unique := name
		for n := 1; used[unique]; n++ {
			unique = fmt.Sprintf("%s.%d", name, n)
		}
		used[unique] = true
		out[i] = unique
	}
	return out
}

func (l *CSVLoader) reader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = l.comma()
	return cr
}

func (l *CSVLoader) comma() rune {
	if l.Comma == 0 {
		return ','
	}
	return l.Comma
}

// numericColumns разбирает обязательные колонки как float64 через dataframe.
// Пустые ячейки становятся NaN.
func (l *CSVLoader) numericColumns(ctx context.Context, data []byte) (map[string][]float64, error) {
	nilValue := ""
	dictate := make(map[string]interface{}, len(entity.RequiredColumns))
	for _, name := range entity.RequiredColumns {
		dictate[name] = float64(0)
	}

	df, err := imports.LoadFromCSV(ctx, bytes.NewReader(data), imports.CSVLoadOptions{
		Comma:           l.comma(),
		DictateDataType: dictate,
		NilValue:        &nilValue,
	})
	if err != nil {
		if errors.Is(err, dataframe.ErrNoRows) {
			return nil, entity.ErrEmptyDataset
		}
		return nil, fmt.Errorf("parse results: %w", err)
	}

	numeric := make(map[string][]float64, len(entity.RequiredColumns))
	for _, name := range entity.RequiredColumns {
		idx, err := df.NameToColumn(name)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		series, ok := df.Series[idx].(*dataframe.SeriesFloat64)
		if !ok {
			return nil, fmt.Errorf("column %q is not numeric", name)
		}
		numeric[name] = append([]float64(nil), series.Values...)
	}
	return numeric, nil
}

// Проверка реализации интерфейса
var _ port.ResultsLoader = (*CSVLoader)(nil)
