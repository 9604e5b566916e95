package user

import (
	"time"

	"kebab-sayank-be/internal/auth"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	DisplayName  string    `json:"displayName"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	Role         auth.Role `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u *User) Session() auth.Session {
	return auth.Session{UserID: u.ID, Email: u.Email, Role: u.Role}
}

type RegisterInput struct {
	Email       string
	Password    string
	Username    string
	DisplayName string
}

type UpdateProfileInput struct {
	DisplayName *string
	Phone       *string
	Address     *string
}

// AuthResult is returned by register and login.
type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
