package entity

// UserState состояние пользователя в диалоге
type UserState string

const (
	StateMainMenu        UserState = "main_menu"        // В главном меню
	StateAwaitingImage   UserState = "awaiting_image"   // Ожидание изображения цифры
	StateAwaitingResults UserState = "awaiting_results" // Ожидание CSV с результатами
	StateProcessing      UserState = "processing"       // Обработка файла
)

// User представляет пользователя бота
type User struct {
	ID     int64     // Telegram User ID
	ChatID int64     // Telegram Chat ID
	State  UserState // Текущее состояние пользователя
}

// NewUser создаёт нового пользователя с начальным состоянием
func NewUser(userID, chatID int64) *User {
	return &User{
		ID:     userID,
		ChatID: chatID,
		State:  StateMainMenu,
	}
}

// SetState обновляет состояние пользователя
func (u *User) SetState(state UserState) {
	u.State = state
}

// Awaiting сообщает, ждёт ли бот от пользователя файл.
func (u *User) Awaiting() bool {
	return u.State == StateAwaitingImage || u.State == StateAwaitingResults
}
