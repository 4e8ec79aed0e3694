package app

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"mnist-kit/internal/domain/entity"
	"mnist-kit/internal/domain/port"
)

// VectorizeService превращает изображения в векторы MNIST и, если есть
// классификатор, предсказывает цифру.
type VectorizeService struct {
	vectorizer port.ImageVectorizer
	classifier port.DigitClassifier
}

// VectorizeOutput вектор и необязательное предсказание.
type VectorizeOutput struct {
	Vector     *entity.ImageVector
	Prediction *entity.Prediction
}

// NewVectorizeService создаёт сервис. classifier может быть nil.
func NewVectorizeService(vectorizer port.ImageVectorizer, classifier port.DigitClassifier) *VectorizeService {
	return &VectorizeService{
		vectorizer: vectorizer,
		classifier: classifier,
	}
}

// VectorizeFile читает изображение с диска.
func (s *VectorizeService) VectorizeFile(ctx context.Context, path string) (*entity.ImageVector, error) {
	if s.vectorizer == nil {
		return nil, errors.New("vectorizer is not configured")
	}

	vec, err := s.vectorizer.VectorizeFile(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "vectorize %s", path)
	}
	log.Debug().Str("path", path).Int("values", entity.VectorLen).Msg("image vectorized")
	return vec, nil
}

// ProcessUpload обрабатывает изображение, присланное пользователем.
func (s *VectorizeService) ProcessUpload(ctx context.Context, data []byte) (*VectorizeOutput, error) {
	if s.vectorizer == nil {
		return nil, errors.New("vectorizer is not configured")
	}

	vec, err := s.vectorizer.VectorizeBytes(ctx, data)
	if err != nil {
		return nil, errors.Wrap(err, "vectorize upload")
	}

	out := &VectorizeOutput{Vector: vec}
	if s.classifier == nil {
		return out, nil
	}

	prediction, err := s.classifier.Classify(ctx, vec)
	switch {
	case errors.Is(err, entity.ErrClassifierDisabled):
		log.Debug().Msg("classifier disabled, skipping prediction")
	case err != nil:
		// вектор важнее предсказания, ошибку только логируем
		log.Warn().Err(err).Msg("classification failed")
	default:
		out.Prediction = prediction
		log.Info().Int("digit", prediction.Digit).Float32("confidence", prediction.Confidence).Msg("digit classified")
	}
	return out, nil
}
