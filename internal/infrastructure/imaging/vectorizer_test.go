package imaging

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"mnist-kit/internal/domain/entity"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	path := filepath.Join(t.TempDir(), "digit.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func newTestVectorizer(t *testing.T) *Vectorizer {
	t.Helper()
	v, err := NewVectorizer("")
	require.NoError(t, err)
	return v
}

func TestVectorizeFile_WhiteIsZero(t *testing.T) {
	path := writePNG(t, solid(100, 60, color.White))

	vec, err := newTestVectorizer(t).VectorizeFile(context.Background(), path)
	require.NoError(t, err)

	values := vec.Values()
	require.Len(t, values, entity.VectorLen)
	for _, v := range values {
		require.Equal(t, 0.0, v)
	}
}

func TestVectorizeFile_BlackIsOne(t *testing.T) {
	path := writePNG(t, solid(13, 41, color.Black))

	vec, err := newTestVectorizer(t).VectorizeFile(context.Background(), path)
	require.NoError(t, err)
	for _, v := range vec.Values() {
		require.Equal(t, 1.0, v)
	}
}

func TestVectorizeFile_RangeAndLengthForEveryResampler(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 90, 70))
	for y := 0; y < 70; y++ {
		for x := 0; x < 90; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 2), G: uint8(y * 3), B: uint8(x + y), A: 255})
		}
	}
	path := writePNG(t, img)

	for _, name := range ResamplerNames() {
		t.Run(name, func(t *testing.T) {
			v, err := NewVectorizer(name)
			require.NoError(t, err)

			vec, err := v.VectorizeFile(context.Background(), path)
			require.NoError(t, err)

			values := vec.Values()
			require.Len(t, values, entity.VectorLen)
			for _, val := range values {
				require.GreaterOrEqual(t, val, 0.0)
				require.LessOrEqual(t, val, 1.0)
			}
		})
	}
}

func TestVectorizeFile_Idempotent(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 57, 57))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 7)
	}
	path := writePNG(t, img)
	v := newTestVectorizer(t)

	first, err := v.VectorizeFile(context.Background(), path)
	require.NoError(t, err)
	second, err := v.VectorizeFile(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, first.Values(), second.Values())
}

func TestVectorize_NativeSizeKeepsPixels(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, entity.ImageSide, entity.ImageSide))
	img.SetGray(3, 1, color.Gray{Y: 0})
	for i := range img.Pix {
		if i != 1*entity.ImageSide+3 {
			img.Pix[i] = 255
		}
	}

	vec, err := newTestVectorizer(t).Vectorize(img)
	require.NoError(t, err)
	require.Equal(t, 1.0, vec.At(3, 1))
	require.Equal(t, 0.0, vec.At(0, 0))
}

func TestVectorizeBytes_JPEG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, solid(40, 40, color.White), &jpeg.Options{Quality: 100}))

	vec, err := newTestVectorizer(t).VectorizeBytes(context.Background(), buf.Bytes())
	require.NoError(t, err)
	for _, v := range vec.Values() {
		require.InDelta(t, 0.0, v, 0.01)
	}
}

func TestVectorizeFile_NotFound(t *testing.T) {
	_, err := newTestVectorizer(t).VectorizeFile(context.Background(), filepath.Join(t.TempDir(), "missing.png"))
	require.ErrorIs(t, err, entity.ErrImageNotFound)
}

func TestVectorizeFile_NotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.png")
	require.NoError(t, os.WriteFile(path, []byte("definitely not pixels"), 0o644))

	_, err := newTestVectorizer(t).VectorizeFile(context.Background(), path)
	require.ErrorIs(t, err, entity.ErrDecode)
}

func TestVectorizeBytes_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestVectorizer(t).VectorizeBytes(ctx, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestToGray_IgnoresAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 128})

	require.Equal(t, uint8(255), toGray(img).GrayAt(0, 0).Y)
}

func TestToGray_OffsetBounds(t *testing.T) {
	img := image.NewGray(image.Rect(5, 5, 7, 7))
	img.SetGray(6, 6, color.Gray{Y: 9})

	g := toGray(img)
	require.Equal(t, image.Rect(0, 0, 2, 2), g.Bounds())
	require.Equal(t, uint8(9), g.GrayAt(1, 1).Y)
}

func TestResamplerByName(t *testing.T) {
	_, err := ResamplerByName("BICUBIC")
	require.NoError(t, err)

	_, err = ResamplerByName("sinc")
	require.Error(t, err)
}

func TestNewBackend(t *testing.T) {
	v, err := NewBackend(BackendNative, "bilinear")
	require.NoError(t, err)
	require.IsType(t, &Vectorizer{}, v)

	_, err = NewBackend("tesseract", "")
	require.Error(t, err)
}

func TestVectorize_EmptyImage(t *testing.T) {
	for _, name := range ResamplerNames() {
		v, err := NewVectorizer(name)
		require.NoError(t, err)

		vec, err := v.Vectorize(image.NewGray(image.Rect(0, 0, 0, 0)))
		require.ErrorIs(t, err, entity.ErrDecode, name)
		require.Nil(t, vec, name)

		_, err = v.Vectorize(image.NewRGBA(image.Rect(3, 3, 3, 10)))
		require.ErrorIs(t, err, entity.ErrDecode, name)
	}
}
