package user

import "errors"

const (
	minUsernameLength = 3
	minPasswordLength = 6
)

var (
	// -- Registration --
	ErrEmailRequired    = errors.New("email harus diisi")
	ErrUsernameTooShort = errors.New("username minimal 3 karakter")
	ErrPasswordTooShort = errors.New("password minimal 6 karakter")
	ErrEmailExists      = errors.New("email sudah terdaftar")
	ErrUsernameTaken    = errors.New("username sudah digunakan")

	// -- Login --
	ErrInvalidCredentials = errors.New("email atau password salah")

	// -- Lookup --
	ErrUserNotFound = errors.New("user tidak ditemukan")
)

const (
	constraintEmail    = "users_email_key"
	constraintUsername = "users_username_key"
)
