package beverages

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrInvalidPrice = errors.New("max price must be greater than zero")

// ListFilter narrows a catalog listing. Zero values mean "no filter".
type ListFilter struct {
	Mood     Mood
	MaxPrice decimal.Decimal
}

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// List returns the whole catalog ordered by id.
func (s *Service) List(ctx context.Context) ([]Beverage, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("beverages service not configured")
	}
	return s.Repo.List(ctx)
}

// Search applies optional mood and price filters on top of List.
func (s *Service) Search(ctx context.Context, filter ListFilter) ([]Beverage, error) {
	if filter.Mood != "" && !filter.Mood.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMood, filter.Mood)
	}
	if filter.MaxPrice.IsNegative() {
		return nil, ErrInvalidPrice
	}
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Beverage, 0, len(all))
	for _, b := range all {
		if filter.Mood != "" && !b.SuitsMood(filter.Mood) {
			continue
		}
		if !filter.MaxPrice.IsZero() && b.Price.GreaterThan(filter.MaxPrice) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Beverage, error) {
	if s == nil || s.Repo == nil {
		return Beverage{}, errors.New("beverages service not configured")
	}
	if id <= 0 {
		return Beverage{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, id)
}
