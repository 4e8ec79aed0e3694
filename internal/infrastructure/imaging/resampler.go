package imaging

import (
	"fmt"
	"image"
	"sort"
	"strings"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// DefaultResampler совпадает с фильтром по умолчанию у библиотеки изображений.
const DefaultResampler = "bicubic"

// Resampler меняет размер одноканального изображения.
type Resampler interface {
	Resize(src *image.Gray, width, height int) *image.Gray
}

// nfntResampler фильтры из github.com/nfnt/resize
type nfntResampler struct {
	interp resize.InterpolationFunction
}

func (r nfntResampler) Resize(src *image.Gray, width, height int) *image.Gray {
	out := resize.Resize(uint(width), uint(height), src, r.interp)
	if gray, ok := out.(*image.Gray); ok {
		return gray
	}
	return toGray(out)
}

// drawResampler ядра из golang.org/x/image/draw
type drawResampler struct {
	scaler draw.Scaler
}

func (r drawResampler) Resize(src *image.Gray, width, height int) *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, width, height))
	r.scaler.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

var resamplers = map[string]Resampler{
	"nearest":        nfntResampler{interp: resize.NearestNeighbor},
	"bilinear":       nfntResampler{interp: resize.Bilinear},
	"bicubic":        nfntResampler{interp: resize.Bicubic},
	"lanczos3":       nfntResampler{interp: resize.Lanczos3},
	"catmullrom":     drawResampler{scaler: draw.CatmullRom},
	"approxbilinear": drawResampler{scaler: draw.ApproxBiLinear},
}

// ResamplerNames возвращает доступные имена фильтров.
func ResamplerNames() []string {
	names := make([]string, 0, len(resamplers))
	for name := range resamplers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResamplerByName ищет фильтр по имени, пустое имя даёт фильтр по умолчанию.
func ResamplerByName(name string) (Resampler, error) {
	if name == "" {
		name = DefaultResampler
	}
	r, ok := resamplers[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown resampler %q, expected one of %s", name, strings.Join(ResamplerNames(), ", "))
	}
	return r, nil
}
