package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	intconfig "travelapp/internal/config"
	"travelapp/internal/domain"
	"travelapp/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// FindByLogin matches either email or username.
func (r UserRepository) FindByLogin(ctx context.Context, login string) (models.User, error) {
	var u models.User
	err := sqlx.NewDb(r.db(), "mysql").GetContext(ctx, &u, `
		SELECT id, name, username, email, phone, password_hash, role, status
		FROM users
		WHERE email = ? OR username = ?
		LIMIT 1`, login, login)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
		}
		return models.User{}, fmt.Errorf("gagal query user: %w", err)
	}
	return u, nil
}

func (r UserRepository) Exists(ctx context.Context, email, username string) (bool, error) {
	var n int
	err := r.db().QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE email = ? OR username = ?`, email, username).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("gagal cek user: %w", err)
	}
	return n > 0, nil
}

// Create stores a new account with role "user".
func (r UserRepository) Create(ctx context.Context, u models.User) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO users (name, username, email, phone, password_hash, role, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 'user', 'active', NOW(), NOW())`,
		u.Name, u.Username, u.Email, u.Phone, u.PasswordHash,
	)
	if err != nil {
		return 0, fmt.Errorf("gagal menyimpan user: %w", err)
	}
	return res.LastInsertId()
}
