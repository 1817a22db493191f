package beverages

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) List(ctx context.Context) ([]Beverage, error) {
	const query = `
SELECT id, name, category, price, suitable_moods
FROM beverages
ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Beverage
	for rows.Next() {
		b, err := scanBeverage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PGRepo) GetByID(ctx context.Context, id int64) (Beverage, error) {
	const query = `
SELECT id, name, category, price, suitable_moods
FROM beverages
WHERE id = $1`
	b, err := scanBeverage(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Beverage{}, ErrNotFound
	}
	return b, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBeverage(row scanner) (Beverage, error) {
	var b Beverage
	var category, price, moods string
	if err := row.Scan(&b.ID, &b.Name, &category, &price, &moods); err != nil {
		return Beverage{}, err
	}
	parsed, err := decimal.NewFromString(price)
	if err != nil {
		return Beverage{}, fmt.Errorf("parse price for beverage %d: %w", b.ID, err)
	}
	b.Price = parsed
	b.Category = NormalizeCategory(category)
	b.SuitableMoods = parseMoodList(moods)
	return b, nil
}
