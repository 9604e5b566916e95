package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"kebab-sayank-be/internal/auth"
	"kebab-sayank-be/internal/db"
	"kebab-sayank-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, in UpdateProfileInput) (*User, error)
	ListCustomers(ctx context.Context, search string) ([]*User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const userColumns = `id, email, username, display_name, phone, address, role, password_hash, created_at`

func scanUser(row interface{ Scan(...any) error }) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.Email, &u.Username, &u.DisplayName,
		&u.Phone, &u.Address, &u.Role, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) Create(ctx context.Context, u *User) error {
	log := logger.For(ctx, "repository", "CreateUser").With(zap.String("email", u.Email))

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (id, email, username, display_name, phone, address, role, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`,
		u.ID, u.Email, u.Username, u.DisplayName, u.Phone, u.Address, u.Role, u.PasswordHash,
	).Scan(&u.CreatedAt)

	switch {
	case db.IsUniqueViolation(err, constraintEmail):
		return ErrEmailExists
	case db.IsUniqueViolation(err, constraintUsername):
		return ErrUsernameTaken
	case err != nil:
		log.Error("db: failed to insert user", zap.Error(err))
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`,
		email,
	)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		logger.For(ctx, "repository", "GetByEmail").Error("db: failed to load user", zap.Error(err))
		return nil, err
	}
	return u, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		id,
	)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		logger.For(ctx, "repository", "GetByID").Error("db: failed to load user", zap.Error(err))
		return nil, err
	}
	return u, nil
}

func (r *repository) UpdateProfile(ctx context.Context, id uuid.UUID, in UpdateProfileInput) (*User, error) {
	log := logger.For(ctx, "repository", "UpdateProfile").With(zap.String("user_id", id.String()))

	sets := []string{}
	args := []interface{}{}

	add := func(column string, v *string) {
		if v == nil {
			return
		}
		args = append(args, strings.TrimSpace(*v))
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("display_name", in.DisplayName)
	add("phone", in.Phone)
	add("address", in.Address)

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE users SET %s, updated_at = NOW() WHERE id = $%d RETURNING `+userColumns,
		strings.Join(sets, ", "), len(args),
	)

	u, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		log.Error("db: failed to update profile", zap.Error(err))
		return nil, err
	}
	return u, nil
}

func (r *repository) ListCustomers(ctx context.Context, search string) ([]*User, error) {
	log := logger.For(ctx, "repository", "ListCustomers").With(zap.String("search", search))

	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1`
	args := []interface{}{auth.RoleCustomer}

	if search != "" {
		args = append(args, "%"+search+"%")
		query += fmt.Sprintf(" AND (username ILIKE $%d OR display_name ILIKE $%d OR phone ILIKE $%d)",
			len(args), len(args), len(args))
	}
	query += " ORDER BY username ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("db: failed to list customers", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	users := []*User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}
