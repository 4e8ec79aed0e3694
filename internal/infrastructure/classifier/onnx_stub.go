//go:build !onnx
// +build !onnx

package classifier

import (
	"context"

	"mnist-kit/internal/domain/entity"
	"mnist-kit/internal/domain/port"
)

type ONNX struct{}

// NewONNX без тега onnx всегда возвращает ошибку.
func NewONNX(opts Options) (*ONNX, error) {
	_ = opts
	return nil, entity.ErrClassifierDisabled
}

// Classify возвращает ошибку, если сборка без тега onnx.
func (c *ONNX) Classify(ctx context.Context, vector *entity.ImageVector) (*entity.Prediction, error) {
	_ = ctx
	_ = vector
	return nil, entity.ErrClassifierDisabled
}

// Close ничего не делает.
func (c *ONNX) Close() error {
	return nil
}

var _ port.DigitClassifier = (*ONNX)(nil)
