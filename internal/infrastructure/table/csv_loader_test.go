package table

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"mnist-kit/internal/domain/entity"
)

const fullHeader = "Accuracy,Neurons in hidden layer 1,Neurons in hidden layer 2,Learning rate,Batch size\n"

func TestLoad_ThreeRowsBestIsSecond(t *testing.T) {
	input := fullHeader +
		"0.91,48,32,0.6,32\n" +
		"0.97,64,48,0.8,64\n" +
		"0.85,96,64,0.6,32\n"

	tbl, err := NewCSVLoader().Load(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 3, tbl.Len())

	best, err := tbl.Best()
	require.NoError(t, err)
	require.Equal(t, 1, best.Index)

	values := make([]string, len(best.Fields))
	for i, f := range best.Fields {
		values[i] = f.Value
	}
	require.Equal(t, []string{"0.97", "64", "48", "0.8", "64"}, values)
}

func TestLoad_MissingBatchSize(t *testing.T) {
	input := "Accuracy,Neurons in hidden layer 1,Neurons in hidden layer 2,Learning rate\n0.9,16,16,0.6\n"

	_, err := NewCSVLoader().Load(context.Background(), strings.NewReader(input))
	require.ErrorIs(t, err, entity.ErrSchema)

	var schemaErr *entity.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	require.Equal(t, []string{entity.ColumnBatchSize}, schemaErr.Missing)
}

func TestLoad_HeaderOnly(t *testing.T) {
	_, err := NewCSVLoader().Load(context.Background(), strings.NewReader(fullHeader))
	require.ErrorIs(t, err, entity.ErrEmptyDataset)
}

func TestLoad_EmptyFile(t *testing.T) {
	_, err := NewCSVLoader().Load(context.Background(), strings.NewReader(""))
	require.ErrorIs(t, err, entity.ErrSchema)
}

func TestLoad_ExtraColumnsAndBlankCells(t *testing.T) {
	input := "Epochs," + fullHeader +
		"12,,48,32,0.6,32\n" +
		"12,88.5,64,48,0.8,64\n"

	tbl, err := NewCSVLoader().Load(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, "Epochs", tbl.Header()[0])

	acc, err := tbl.Column(entity.ColumnAccuracy)
	require.NoError(t, err)
	require.True(t, math.IsNaN(acc[0]))
	require.Equal(t, 88.5, acc[1])

	best, err := tbl.Best()
	require.NoError(t, err)
	require.Equal(t, entity.Field{Name: "Epochs", Value: "12"}, best.Fields[0])
}

func TestLoad_NonNumericAccuracy(t *testing.T) {
	input := fullHeader + "high,48,32,0.6,32\n"

	_, err := NewCSVLoader().Load(context.Background(), strings.NewReader(input))
	require.Error(t, err)
}

func TestLoad_Semicolon(t *testing.T) {
	input := strings.ReplaceAll(fullHeader, ",", ";") + "0.5;16;16;0.2;8\n"

	loader := &CSVLoader{Comma: ';'}
	tbl, err := loader.Load(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	batch, err := tbl.Column(entity.ColumnBatchSize)
	require.NoError(t, err)
	require.Equal(t, []float64{8}, batch)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "output.csv")
	require.NoError(t, os.WriteFile(path, []byte(fullHeader+"0.5,16,16,0.2,8\n"), 0o644))

	tbl, err := NewCSVLoader().LoadFile(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())

	_, err = NewCSVLoader().LoadFile(context.Background(), filepath.Join(dir, "missing.csv"))
	require.ErrorIs(t, err, ErrResultsNotFound)
}

func TestLoad_RepeatedExtraColumn(t *testing.T) {
	input := "Epochs,Epochs," + fullHeader + "1,2,0.9,16,16,0.6,32\n"

	tbl, err := NewCSVLoader().Load(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, []string{"Epochs", "Epochs.1"}, tbl.Header()[:2])

	best, err := tbl.Best()
	require.NoError(t, err)
	require.Equal(t, entity.Field{Name: "Epochs.1", Value: "2"}, best.Fields[1])
}

func TestLoad_RepeatedAccuracyKeepsFirst(t *testing.T) {
	input := fullHeader[:len(fullHeader)-1] + ",Accuracy\n" +
		"0.91,48,32,0.6,32,0.10\n" +
		"0.85,64,48,0.8,64,0.99\n"

	tbl, err := NewCSVLoader().Load(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, "Accuracy.1", tbl.Header()[5])

	acc, err := tbl.Column(entity.ColumnAccuracy)
	require.NoError(t, err)
	require.Equal(t, []float64{0.91, 0.85}, acc)

	best, err := tbl.Best()
	require.NoError(t, err)
	require.Equal(t, 0, best.Index)
}

func TestLoad_ByteOrderMark(t *testing.T) {
	input := "\ufeff" + fullHeader + "0.9,16,16,0.6,32\n"

	tbl, err := NewCSVLoader().Load(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, entity.ColumnAccuracy, tbl.Header()[0])

	acc, err := tbl.Column(entity.ColumnAccuracy)
	require.NoError(t, err)
	require.Equal(t, []float64{0.9}, acc)
}

func TestUniqueNames(t *testing.T) {
	require.Equal(t,
		[]string{"a", "b", "a.1", "a.2", "a.1.1"},
		uniqueNames([]string{"a", "b", "a", "a", "a.1"}))
}
