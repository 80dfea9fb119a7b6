package models

// User представляет учётную запись для входа в сервис.
// Роль admin разрешает переопределять дату начала членства.
type User struct {
	UID          string // Уникальный идентификатор
	Username     string // Имя пользователя
	Email        string // Электронная почта
	PasswordHash string // bcrypt-хеш пароля
	Role         string // Роль: user или admin
}

// DummyRegisterUser используется для приёма данных из JSON-запроса на регистрацию.
type DummyRegisterUser struct {
	Username string `json:"username" validate:"required,alphanum"` // Имя пользователя
	Email    string `json:"email" validate:"required,email"`       // Электронная почта
	Password string `json:"password" validate:"required,min=8"`    // Пароль
}

// DummyLoginUser используется для приёма данных из JSON-запроса на вход.
type DummyLoginUser struct {
	Username string `json:"username" validate:"required"` // Имя пользователя
	Password string `json:"password" validate:"required"` // Пароль
}
