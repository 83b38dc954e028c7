package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"jobboard/internal/models"
)

type UserRepo struct {
	db DBTX
}

func NewUserRepo(db DBTX) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts u and sets its ID. A taken email yields models.ErrConflict.
func (r *UserRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	token := sql.NullString{String: u.Token, Valid: u.Token != ""}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users(name,email,password_hash,token) VALUES(?,?,?,?)`,
		u.Name, u.Email, u.PasswordHash, token)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: email already registered", models.ErrConflict)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	u.ID = id
	return u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, `SELECT id,name,email,password_hash,token FROM users WHERE email = ?`, email)
}

func (r *UserRepo) GetByToken(ctx context.Context, token string) (*models.User, error) {
	return r.getOne(ctx, `SELECT id,name,email,password_hash,token FROM users WHERE token = ?`, token)
}

// RotateToken replaces oldToken with newToken in a single-row update.
// Returns models.ErrNotFound when no user currently holds oldToken, which is
// also what the loser of two concurrent rotations of the same token gets.
func (r *UserRepo) RotateToken(ctx context.Context, oldToken, newToken string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET token = ? WHERE token = ?`, newToken, oldToken)
	if err != nil {
		return fmt.Errorf("rotate token: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rotate token: %w", err)
	}
	if n != 1 {
		return models.ErrNotFound
	}
	return nil
}

func (r *UserRepo) SetToken(ctx context.Context, userID int64, token string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET token = ? WHERE id = ?`, token, userID)
	if err != nil {
		return fmt.Errorf("set token: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set token: %w", err)
	}
	if n != 1 {
		return models.ErrNotFound
	}
	return nil
}

func (r *UserRepo) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	var token sql.NullString
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	u.Token = token.String
	return &u, nil
}
