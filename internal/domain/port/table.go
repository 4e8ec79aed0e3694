package port

import (
	"context"
	"io"

	"mnist-kit/internal/domain/entity"
)

// ResultsLoader интерфейс загрузчика таблицы результатов
type ResultsLoader interface {
	// LoadFile читает таблицу из файла
	LoadFile(ctx context.Context, path string) (*entity.ResultsTable, error)

	// Load читает таблицу из потока
	Load(ctx context.Context, r io.Reader) (*entity.ResultsTable, error)
}
