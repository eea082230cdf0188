package models

// Identity личность, установленная по токену. Роль всегда берется из текущей записи пользователя.
type Identity struct {
	UserID string
	Email  string
	Role   Role
}
