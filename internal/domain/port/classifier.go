package port

import (
	"context"

	"mnist-kit/internal/domain/entity"
)

// DigitClassifier интерфейс классификатора цифр
type DigitClassifier interface {
	// Classify возвращает предсказанную цифру для вектора
	Classify(ctx context.Context, vector *entity.ImageVector) (*entity.Prediction, error)
}
