package imaging

import (
	"errors"
	"fmt"

	"mnist-kit/internal/domain/port"
)

const (
	BackendNative = "native"
	BackendGoCV   = "gocv"
)

// ErrGoCVDisabled сборка без тега gocv
var ErrGoCVDisabled = errors.New("gocv build tag is not enabled")

// NewBackend выбирает реализацию преобразователя по имени.
func NewBackend(name, resampler string) (port.ImageVectorizer, error) {
	switch name {
	case "", BackendNative:
		return NewVectorizer(resampler)
	case BackendGoCV:
		return NewGoCVVectorizer(), nil
	default:
		return nil, fmt.Errorf("unknown vectorizer backend %q", name)
	}
}
