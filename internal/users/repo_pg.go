package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

type PGRepo struct {
	DB *sql.DB
}

const userColumns = `id, username, email, weekly_budget, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, username, email, weekly_budget, created_at, updated_at)
VALUES ($1, $2, $3, $4, now(), now())`
	_, err := r.DB.ExecContext(ctx, query, user.ID, user.Username, user.Email, user.WeeklyBudget.StringFixed(2))
	if isUniqueViolation(err) {
		return ErrAlreadyExists
	}
	return err
}

func (r *PGRepo) Upsert(ctx context.Context, user User) (User, error) {
	const query = `
INSERT INTO users (id, username, email, weekly_budget, created_at, updated_at)
VALUES ($1, $2, $3, $4, now(), now())
ON CONFLICT (id) DO UPDATE SET
  username = EXCLUDED.username,
  email = EXCLUDED.email,
  updated_at = now()
RETURNING ` + userColumns
	row := r.DB.QueryRowContext(ctx, query, user.ID, user.Username, user.Email, user.WeeklyBudget.StringFixed(2))
	out, err := scanUser(row)
	if isUniqueViolation(err) {
		return User{}, ErrAlreadyExists
	}
	return out, err
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1
LIMIT 1`
	return scanUser(r.DB.QueryRowContext(ctx, query, userID))
}

func (r *PGRepo) UpdateWeeklyBudget(ctx context.Context, userID string, budget decimal.Decimal) (User, error) {
	const query = `
UPDATE users
SET weekly_budget = $2, updated_at = now()
WHERE id = $1
RETURNING ` + userColumns
	return scanUser(r.DB.QueryRowContext(ctx, query, userID, budget.StringFixed(2)))
}

func scanUser(row *sql.Row) (User, error) {
	var user User
	var budget string
	err := row.Scan(&user.ID, &user.Username, &user.Email, &budget, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user.WeeklyBudget, err = decimal.NewFromString(budget)
	if err != nil {
		return User{}, fmt.Errorf("parse weekly_budget for %s: %w", user.ID, err)
	}
	return user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
