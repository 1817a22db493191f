package beverages

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("beverage not found")

// Repo is a read-only view of the catalog. List returns beverages ordered by id.
type Repo interface {
	List(ctx context.Context) ([]Beverage, error)
	GetByID(ctx context.Context, id int64) (Beverage, error)
}
