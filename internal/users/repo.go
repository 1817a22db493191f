package users

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrAlreadyExists = errors.New("user already exists")
	ErrInvalidBudget = errors.New("weekly budget must be greater than zero")
	ErrInvalidInput  = errors.New("invalid user")
)

type Repo interface {
	// Create inserts a new user; ErrAlreadyExists when the id or username is taken.
	Create(ctx context.Context, user User) error
	// Upsert refreshes identity fields and leaves the weekly budget of existing users untouched.
	Upsert(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, userID string) (User, error)
	UpdateWeeklyBudget(ctx context.Context, userID string, budget decimal.Decimal) (User, error)
}
