package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"beverage-backend/internal/shared/server/middleware"
)

// DefaultWeeklyBudget applies to new profiles and to guests, who have no profile.
var DefaultWeeklyBudget = decimal.RequireFromString("25.00")

type Service struct {
	Repo          Repo
	DefaultBudget decimal.Decimal
}

func NewService(repo Repo, defaultBudget decimal.Decimal) *Service {
	if !defaultBudget.IsPositive() {
		defaultBudget = DefaultWeeklyBudget
	}
	return &Service{Repo: repo, DefaultBudget: defaultBudget}
}

// Create registers a profile, filling the default weekly budget when none is given.
func (s *Service) Create(ctx context.Context, user User) (User, error) {
	if err := s.ready(); err != nil {
		return User{}, err
	}
	user.ID = strings.TrimSpace(user.ID)
	user.Username = strings.TrimSpace(user.Username)
	user.Email = strings.TrimSpace(user.Email)
	if user.ID == "" || user.Username == "" || user.Email == "" {
		return User{}, fmt.Errorf("%w: id, username and email are required", ErrInvalidInput)
	}
	if user.WeeklyBudget.IsZero() {
		user.WeeklyBudget = s.DefaultBudget
	}
	if !user.WeeklyBudget.IsPositive() {
		return User{}, ErrInvalidBudget
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return s.Repo.GetByID(ctx, user.ID)
}

// EnsureFromAuth persists the token identity so budgets and history have an owner.
func (s *Service) EnsureFromAuth(ctx context.Context, userID, username, email string) (User, error) {
	if err := s.ready(); err != nil {
		return User{}, err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" || IsGuestID(userID) {
		return User{}, fmt.Errorf("%w: account id required", ErrInvalidInput)
	}
	username = strings.TrimSpace(username)
	if username == "" {
		username = userID
	}
	return s.Repo.Upsert(ctx, User{
		ID:           userID,
		Username:     username,
		Email:        strings.TrimSpace(email),
		WeeklyBudget: s.DefaultBudget,
	})
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if err := s.ready(); err != nil {
		return User{}, err
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, userID)
}

func (s *Service) UpdateWeeklyBudget(ctx context.Context, userID string, budget decimal.Decimal) (User, error) {
	if err := s.ready(); err != nil {
		return User{}, err
	}
	if !budget.IsPositive() {
		return User{}, ErrInvalidBudget
	}
	return s.Repo.UpdateWeeklyBudget(ctx, userID, budget.Round(2))
}

// WeeklyBudget returns the user's budget. Guests get the default; unknown accounts get ErrNotFound.
func (s *Service) WeeklyBudget(ctx context.Context, userID string) (decimal.Decimal, error) {
	if IsGuestID(userID) {
		return s.DefaultBudget, nil
	}
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return user.WeeklyBudget, nil
}

// IsGuestID reports whether userID was issued for an X-Guest-Id caller.
func IsGuestID(userID string) bool {
	return strings.HasPrefix(userID, middleware.GuestIDPrefix)
}

func (s *Service) ready() error {
	if s == nil || s.Repo == nil {
		return errors.New("users service not configured")
	}
	return nil
}
