package seeding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"beverage-backend/internal/purchases"
	"beverage-backend/internal/shared/telemetry"
	"beverage-backend/internal/users"
)

type UserCreator interface {
	Create(ctx context.Context, user users.User) (users.User, error)
}

type PurchaseImporter interface {
	Import(ctx context.Context, p purchases.Purchase) error
}

// Seeder creates the sample accounts and backfills their purchase history.
type Seeder struct {
	Users     UserCreator
	Purchases PurchaseImporter
	Generator *Generator
}

// SeededUser reports what happened for one sample account.
type SeededUser struct {
	User      users.User
	Profile   Profile
	Purchases int
	Skipped   bool
}

// SampleUserID is stable across runs so re-seeding finds existing accounts.
func SampleUserID(username string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("beverage-backend/"+username)).String()
}

// Run seeds every sample user. Accounts that already exist are left untouched.
func (s *Seeder) Run(ctx context.Context, now time.Time) ([]SeededUser, error) {
	if s.Users == nil || s.Purchases == nil || s.Generator == nil {
		return nil, errors.New("seeder not configured")
	}
	report := make([]SeededUser, 0, len(SampleUsers))
	for _, sample := range SampleUsers {
		seeded, err := s.seedOne(ctx, sample, now)
		if err != nil {
			return report, fmt.Errorf("seed %s: %w", sample.Username, err)
		}
		report = append(report, seeded)
	}
	return report, nil
}

func (s *Seeder) seedOne(ctx context.Context, sample SampleUser, now time.Time) (SeededUser, error) {
	user := users.User{
		ID:           SampleUserID(sample.Username),
		Username:     sample.Username,
		Email:        sample.Email,
		WeeklyBudget: sample.WeeklyBudget,
	}
	created, err := s.Users.Create(ctx, user)
	if errors.Is(err, users.ErrAlreadyExists) {
		telemetry.Info("seed.user.exists", map[string]any{"username": sample.Username})
		return SeededUser{User: user, Profile: sample.Profile, Skipped: true}, nil
	}
	if err != nil {
		return SeededUser{}, err
	}

	history, err := s.Generator.Generate(created.ID, sample.Profile, now)
	if err != nil {
		return SeededUser{}, err
	}
	for _, p := range history {
		if err := s.Purchases.Import(ctx, p); err != nil {
			return SeededUser{}, fmt.Errorf("import purchase: %w", err)
		}
	}
	telemetry.Info("seed.user.created", map[string]any{
		"username":  sample.Username,
		"profile":   string(sample.Profile),
		"purchases": len(history),
	})
	return SeededUser{User: created, Profile: sample.Profile, Purchases: len(history)}, nil
}
