package imaging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // регистрирует GIF
	_ "image/jpeg" // регистрирует JPEG
	_ "image/png"  // регистрирует PNG
	"io/fs"
	"os"

	_ "golang.org/x/image/bmp"  // регистрирует BMP
	_ "golang.org/x/image/tiff" // регистрирует TIFF
	_ "golang.org/x/image/webp" // регистрирует WebP

	"mnist-kit/internal/domain/entity"
	"mnist-kit/internal/domain/port"
)

// Vectorizer приводит изображение к формату MNIST на чистом Go.
type Vectorizer struct {
	Resampler Resampler
	Side      int
}

// NewVectorizer создаёт преобразователь с указанным фильтром.
func NewVectorizer(resamplerName string) (*Vectorizer, error) {
	r, err := ResamplerByName(resamplerName)
	if err != nil {
		return nil, err
	}
	return &Vectorizer{Resampler: r, Side: entity.ImageSide}, nil
}

// VectorizeFile читает файл и возвращает вектор.
func (v *Vectorizer) VectorizeFile(ctx context.Context, path string) (*entity.ImageVector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", entity.ErrImageNotFound, path)
		}
		return nil, fmt.Errorf("read image %s: %w", path, err)
	}
	return v.VectorizeBytes(ctx, data)
}

// VectorizeBytes декодирует изображение из памяти.
func (v *Vectorizer) VectorizeBytes(ctx context.Context, data []byte) (*entity.ImageVector, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrDecode, err)
	}
	return v.Vectorize(img)
}

// Vectorize переводит изображение в оттенки серого, масштабирует до 28×28
// и инвертирует яркость: белый фон даёт 0, чёрные чернила 1.
func (v *Vectorizer) Vectorize(img image.Image) (*entity.ImageVector, error) {
	side := v.Side
	if side == 0 {
		side = entity.ImageSide
	}

	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: image has no pixels", entity.ErrDecode)
	}

	gray := toGray(img)
	if b := gray.Bounds(); b.Dx() != side || b.Dy() != side {
		gray = v.Resampler.Resize(gray, side, side)
	}

	b := gray.Bounds()
	values := make([]float64, 0, side*side)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			values = append(values, 1-float64(gray.GrayAt(x, y).Y)/255)
		}
	}
	return entity.NewImageVector(values)
}

// toGray считает яркость по ITU-R 601-2 по неумноженным на альфу RGB,
// альфа-канал отбрасывается.
func toGray(img image.Image) *image.Gray {
	b := img.Bounds()
	if g, ok := img.(*image.Gray); ok && b.Min == (image.Point{}) {
		return g
	}

	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.SetGray(x-b.Min.X, y-b.Min.Y, luma(img.At(x, y)))
		}
	}
	return out
}

func luma(c color.Color) color.Gray {
	switch c := c.(type) {
	case color.Gray:
		return c
	case color.Gray16:
		return color.Gray{Y: uint8(c.Y >> 8)}
	}

	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	l := (uint32(n.R)*19595 + uint32(n.G)*38470 + uint32(n.B)*7471 + 0x8000) >> 16
	return color.Gray{Y: uint8(l)}
}

// Проверка реализации интерфейса
var _ port.ImageVectorizer = (*Vectorizer)(nil)
