package port

import (
	"context"

	"mnist-kit/internal/domain/entity"
)

// ImageVectorizer интерфейс преобразователя изображений в вектор MNIST
type ImageVectorizer interface {
	// VectorizeFile читает изображение с диска и возвращает вектор
	VectorizeFile(ctx context.Context, path string) (*entity.ImageVector, error)

	// VectorizeBytes декодирует изображение из памяти и возвращает вектор
	VectorizeBytes(ctx context.Context, data []byte) (*entity.ImageVector, error)
}
