//go:build gocv
// +build gocv

package imaging

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"

	"gocv.io/x/gocv"

	"mnist-kit/internal/domain/entity"
	"mnist-kit/internal/domain/port"
)

// GoCVVectorizer приводит изображение к формату MNIST через OpenCV.
type GoCVVectorizer struct {
	Side          int
	Interpolation gocv.InterpolationFlags
}

// NewGoCVVectorizer создаёт преобразователь с билинейной интерполяцией OpenCV.
func NewGoCVVectorizer() *GoCVVectorizer {
	return &GoCVVectorizer{
		Side:          entity.ImageSide,
		Interpolation: gocv.InterpolationLinear,
	}
}

// VectorizeFile читает файл и возвращает вектор.
func (v *GoCVVectorizer) VectorizeFile(ctx context.Context, path string) (*entity.ImageVector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", entity.ErrImageNotFound, path)
		}
		return nil, fmt.Errorf("read image %s: %w", path, err)
	}
	return v.VectorizeBytes(ctx, data)
}

// VectorizeBytes декодирует изображение в оттенках серого и масштабирует его.
func (v *GoCVVectorizer) VectorizeBytes(ctx context.Context, data []byte) (*entity.ImageVector, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadGrayScale)
	if err != nil || mat.Empty() {
		if err == nil {
			mat.Close()
		}
		return nil, fmt.Errorf("%w: opencv could not decode %d bytes", entity.ErrDecode, len(data))
	}
	defer mat.Close()

	if mat.Cols() != v.Side || mat.Rows() != v.Side {
		resized := gocv.NewMat()
		gocv.Resize(mat, &resized, image.Pt(v.Side, v.Side), 0, 0, v.Interpolation)
		mat.Close()
		mat = resized
	}

	values := make([]float64, 0, v.Side*v.Side)
	for y := 0; y < mat.Rows(); y++ {
		for x := 0; x < mat.Cols(); x++ {
			values = append(values, 1-float64(mat.GetUCharAt(y, x))/255)
		}
	}
	return entity.NewImageVector(values)
}

// Проверка реализации интерфейса
var _ port.ImageVectorizer = (*GoCVVectorizer)(nil)
