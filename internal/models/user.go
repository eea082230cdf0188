package models

import "time"

// Role роль пользователя.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsValid сообщает, известна ли роль сервису.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User учетная запись пользователя. PasswordHash никогда не покидает сервис аутентификации.
type User struct {
	ID           string    `gorm:"primaryKey;size:36"`
	CreatedAt    time.Time `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `gorm:"not null"`
	Name         string    `gorm:"size:255"`
	Role         Role      `gorm:"size:16;not null;default:user"`
}

// UserSummary публичное представление пользователя.
type UserSummary struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
