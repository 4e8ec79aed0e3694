package plotting

import (
	"fmt"
	"sync"

	"mnist-kit/internal/domain/entity"
	"mnist-kit/internal/domain/port"
)

// CachedRenderer запоминает PNG, чтобы архив и окно не рисовали одну диаграмму дважды.
type CachedRenderer struct {
	next port.ScatterRenderer

	mu    sync.Mutex
	cache map[string][]byte
}

func NewCachedRenderer(next port.ScatterRenderer) *CachedRenderer {
	return &CachedRenderer{next: next, cache: make(map[string][]byte)}
}

// Render отдаёт сохранённый PNG для тех же точек или рисует новый.
func (r *CachedRenderer) Render(series entity.ScatterSeries) ([]byte, error) {
	key := fmt.Sprintf("%s|%v|%v", series.Column, series.X, series.Y)

	r.mu.Lock()
	data, ok := r.cache[key]
	r.mu.Unlock()
	if ok {
		return data, nil
	}

	data, err := r.next.Render(series)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cache[key] = data
	r.mu.Unlock()
	return data, nil
}

var _ port.ScatterRenderer = (*CachedRenderer)(nil)
