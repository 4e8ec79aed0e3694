//go:build !gocv
// +build !gocv

package imaging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBackend_GoCVWithoutTag(t *testing.T) {
	v, err := NewBackend(BackendGoCV, "")
	require.NoError(t, err)
	require.IsType(t, &GoCVVectorizer{}, v)

	_, err = v.VectorizeFile(context.Background(), "digit.png")
	require.ErrorIs(t, err, ErrGoCVDisabled)

	_, err = v.VectorizeBytes(context.Background(), []byte{0x89})
	require.ErrorIs(t, err, ErrGoCVDisabled)
}
