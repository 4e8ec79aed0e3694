package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"mnist-kit/internal/domain/entity"
	"mnist-kit/internal/infrastructure/table"
)

const resultsHeader = "Accuracy,Neurons in hidden layer 1,Neurons in hidden layer 2,Learning rate,Batch size\n"

type recordingViewer struct {
	shown [][]entity.ScatterSeries
}

func (v *recordingViewer) Show(ctx context.Context, plots []entity.ScatterSeries) error {
	v.shown = append(v.shown, plots)
	return nil
}

func writeResults(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "output.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSummaryService_ShowsFourPlotsAndFindsBest(t *testing.T) {
	path := writeResults(t, resultsHeader+
		"0.91,48,32,0.6,32\n"+
		"0.97,64,48,0.8,64\n"+
		"0.85,96,64,0.6,32\n")
	viewer := &recordingViewer{}
	svc := NewSummaryService(table.NewCSVLoader(), viewer)

	out, err := svc.Summarize(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, viewer.shown, 1)
	require.Len(t, viewer.shown[0], 4)
	require.Equal(t, entity.ParameterColumns(), []string{
		viewer.shown[0][0].Column, viewer.shown[0][1].Column,
		viewer.shown[0][2].Column, viewer.shown[0][3].Column,
	})

	require.Equal(t, 1, out.Best.Index)

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, out.Best))
	report := buf.String()
	require.True(t, strings.HasPrefix(report, "\n"+ReportHeader+"\n"))
	require.Contains(t, report, "Accuracy                     0.97\n")
	require.Contains(t, report, "Neurons in hidden layer 1      64\n")
}

func TestSummaryService_MissingColumnNoPlots(t *testing.T) {
	path := writeResults(t, "Accuracy,Neurons in hidden layer 1,Neurons in hidden layer 2,Learning rate\n0.9,16,16,0.6\n")
	viewer := &recordingViewer{}

	_, err := NewSummaryService(table.NewCSVLoader(), viewer).Summarize(context.Background(), path)
	require.ErrorIs(t, err, entity.ErrSchema)
	require.Empty(t, viewer.shown)
}

func TestSummaryService_EmptyTableNoPlots(t *testing.T) {
	path := writeResults(t, resultsHeader)
	viewer := &recordingViewer{}

	_, err := NewSummaryService(table.NewCSVLoader(), viewer).Summarize(context.Background(), path)
	require.ErrorIs(t, err, entity.ErrEmptyDataset)
	require.Empty(t, viewer.shown)
}

func TestSummaryService_SummarizeReaderSkipsViewer(t *testing.T) {
	viewer := &recordingViewer{}
	svc := NewSummaryService(table.NewCSVLoader(), viewer)

	out, err := svc.SummarizeReader(context.Background(), strings.NewReader(resultsHeader+"0.5,16,16,0.2,8\n"))
	require.NoError(t, err)
	require.Equal(t, 0, out.Best.Index)
	require.Len(t, out.Relationships, 4)
	require.Empty(t, viewer.shown)
}
