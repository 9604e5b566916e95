package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleCustomer
}

var (
	ErrUnauthenticated = errors.New("silakan login terlebih dahulu")
	ErrForbidden       = errors.New("anda tidak memiliki akses untuk melakukan aksi ini")
)

// Session is the authenticated identity of the caller. It is built once per
// request by the auth middleware and handed to services explicitly.
type Session struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// Owns reports whether the session may act on a resource owned by userID.
// Admins own everything.
func (s *Session) Owns(userID uuid.UUID) bool {
	if s == nil {
		return false
	}
	return s.IsAdmin() || s.UserID == userID
}

// Authorize fails with ErrUnauthenticated for a nil session and with
// ErrForbidden when the session role is not one of roles. With no roles any
// authenticated session passes.
func (s *Session) Authorize(roles ...Role) error {
	if s == nil || s.UserID == uuid.Nil {
		return ErrUnauthenticated
	}
	if len(roles) == 0 {
		return nil
	}
	for _, r := range roles {
		if s.Role == r {
			return nil
		}
	}
	return ErrForbidden
}

type ctxKey string

const sessionKey ctxKey = "session"

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFrom returns the session stored by the auth middleware, or nil for
// anonymous callers.
func SessionFrom(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey).(*Session)
	return s
}
