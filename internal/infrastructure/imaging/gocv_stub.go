//go:build !gocv
// +build !gocv

package imaging

import (
	"context"

	"mnist-kit/internal/domain/entity"
	"mnist-kit/internal/domain/port"
)

type GoCVVectorizer struct {
	Side int
}

// NewGoCVVectorizer создаёт преобразователь-заглушку (без OpenCV).
func NewGoCVVectorizer() *GoCVVectorizer {
	return &GoCVVectorizer{Side: entity.ImageSide}
}

// VectorizeFile возвращает ошибку, если сборка без тега gocv.
func (v *GoCVVectorizer) VectorizeFile(ctx context.Context, path string) (*entity.ImageVector, error) {
	_ = ctx
	_ = path
	return nil, ErrGoCVDisabled
}

// VectorizeBytes возвращает ошибку, если сборка без тега gocv.
func (v *GoCVVectorizer) VectorizeBytes(ctx context.Context, data []byte) (*entity.ImageVector, error) {
	_ = ctx
	_ = data
	return nil, ErrGoCVDisabled
}

var _ port.ImageVectorizer = (*GoCVVectorizer)(nil)
