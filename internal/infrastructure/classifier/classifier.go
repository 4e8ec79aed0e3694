// Package classifier предсказывает цифру по вектору MNIST.
package classifier

import (
	"fmt"

	"mnist-kit/internal/domain/entity"
)

// Classes количество выходов модели.
const Classes = 10

// Options параметры загрузки модели.
type Options struct {
	ModelPath   string
	LibraryPath string
	InputName   string
	OutputName  string
}

func (o Options) inputName() string {
	if o.InputName == "" {
		return "input"
	}
	return o.InputName
}

func (o Options) outputName() string {
	if o.OutputName == "" {
		return "output"
	}
	return o.OutputName
}

// predictionFromScores выбирает цифру с максимальным выходом, при равенстве первую.
func predictionFromScores(scores []float32) (*entity.Prediction, error) {
	if len(scores) < Classes {
		return nil, fmt.Errorf("model returned %d scores, want %d", len(scores), Classes)
	}
	scores = scores[:Classes]

	maxIdx := 0
	maxVal := scores[0]
	for i, val := range scores {
		if val > maxVal {
			maxVal = val
			maxIdx = i
		}
	}

	return &entity.Prediction{
		Digit:      maxIdx,
		Confidence: maxVal,
		Scores:     scores,
	}, nil
}
