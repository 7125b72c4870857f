package repositories

import (
	"context"

	"tripbook/internal/store"
	"tripbook/internal/utils"
)

// User carries the stored account row; PasswordHash never leaves the
// handler layer.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	Status       string `json:"status"`
}

type UserRepository struct {
	R store.Runner
}

// GetByLogin matches either email or username, mirroring the login form.
func (r UserRepository) GetByLogin(ctx context.Context, login string) (User, bool, error) {
	rows, err := r.R.Query(ctx, `
		SELECT id, name, username, email, phone, password_hash, role, status
		FROM users
		WHERE email = ? OR username = ?
		LIMIT 1`, login, login)
	if err != nil {
		return User{}, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return User{}, false, rows.Err()
	}
	var u User
	if err := rows.Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone, &u.PasswordHash, &u.Role, &u.Status); err != nil {
		return User{}, false, err
	}
	return u, true, nil
}

func (r UserRepository) Exists(ctx context.Context, email, username string) (bool, error) {
	rows, err := r.R.Query(ctx, `
		SELECT COUNT(*) FROM users WHERE email = ? OR username = ?`, email, username)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	var n int
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return false, err
		}
	}
	return n > 0, rows.Err()
}

func (r UserRepository) Create(ctx context.Context, name, username, email, phone, passwordHash, role string) (int64, error) {
	now := utils.FormatDateTime(utils.NowUTC())
	res, err := r.R.Exec(ctx, `
		INSERT INTO users (name, username, email, phone, password_hash, role, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, 'active', ?, ?)`,
		name, username, email, phone, passwordHash, role, now, now)
	if err != nil {
		return 0, err
	}
	return res.LastInsertID, nil
}
