package entity

import (
	"fmt"

	"github.com/bytedance/sonic"
)

const (
	ImageSide = 28                    // сторона квадрата в формате MNIST
	VectorLen = ImageSide * ImageSide // длина плоского вектора
)

// ImageVector нормализованное изображение цифры: 784 значения в [0, 1],
// строки сетки 28×28 идут подряд.
type ImageVector struct {
	values []float64
}

// NewImageVector проверяет длину и диапазон и копирует значения.
func NewImageVector(values []float64) (*ImageVector, error) {
	if len(values) != VectorLen {
		return nil, fmt.Errorf("image vector must have %d values, got %d", VectorLen, len(values))
	}
	for i, v := range values {
		if v < 0 || v > 1 {
			return nil, fmt.Errorf("image vector value %d out of range: %g", i, v)
		}
	}

	cp := make([]float64, VectorLen)
	copy(cp, values)
	return &ImageVector{values: cp}, nil
}

// Values возвращает копию значений.
func (v *ImageVector) Values() []float64 {
	cp := make([]float64, len(v.values))
	copy(cp, v.values)
	return cp
}

// At возвращает значение пикселя (x, y).
func (v *ImageVector) At(x, y int) float64 {
	return v.values[y*ImageSide+x]
}

// Float32 нужен для входного тензора классификатора.
func (v *ImageVector) Float32() []float32 {
	out := make([]float32, len(v.values))
	for i, val := range v.values {
		out[i] = float32(val)
	}
	return out
}

// MarshalJSON кодирует вектор плоским JSON-массивом.
func (v *ImageVector) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(v.values)
}
