package container

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"mnist-kit/internal/domain/entity"
	"mnist-kit/internal/infrastructure/imaging"
	"mnist-kit/internal/infrastructure/plotting"
	"mnist-kit/internal/infrastructure/storage"
	"mnist-kit/internal/infrastructure/table"
)

func TestNew_WiresServices(t *testing.T) {
	vectorizer, err := imaging.NewVectorizer(imaging.DefaultResampler)
	require.NoError(t, err)

	c := New(Deps{
		Users:      storage.NewMemoryUserRepository(),
		Vectorizer: vectorizer,
		Loader:     table.NewCSVLoader(),
		Renderer:   plotting.NewPNGRenderer(4, 3),
	})

	user, err := c.UserService.BeginSummary(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingResults, user.State)

	out, err := c.SummaryService.SummarizeReader(context.Background(), strings.NewReader(
		"Accuracy,Neurons in hidden layer 1,Neurons in hidden layer 2,Learning rate,Batch size\n0.8,16,16,0.5,8\n"))
	require.NoError(t, err)
	require.Equal(t, 0, out.Best.Index)
	require.NotNil(t, c.PlotRenderer)
}
