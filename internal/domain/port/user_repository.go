package port

import (
	"context"

	"mnist-kit/internal/domain/entity"
)

// UserRepository хранит состояние диалога с пользователями бота
type UserRepository interface {
	// Get возвращает пользователя, при первом обращении создаёт его в главном меню
	Get(ctx context.Context, userID, chatID int64) (*entity.User, error)

	// Save записывает пользователя целиком
	Save(ctx context.Context, user *entity.User) error

	// UpdateState меняет только состояние; неизвестный пользователь игнорируется
	UpdateState(ctx context.Context, userID int64, state entity.UserState) error
}
