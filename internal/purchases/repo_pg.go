package purchases

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"beverage-backend/internal/beverages"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, p Purchase) error {
	const query = `
INSERT INTO purchases (id, user_id, beverage_id, mood, price, purchased_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(ctx, query,
		p.ID,
		p.UserID,
		p.BeverageID,
		string(p.Mood),
		p.Price.StringFixed(2),
		p.PurchasedAt.UTC(),
	)
	return err
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, since time.Time, limit int) ([]Purchase, error) {
	const query = `
SELECT p.id, p.user_id, p.beverage_id, b.name, b.category, p.mood, p.price, p.purchased_at
FROM purchases p
JOIN beverages b ON b.id = p.beverage_id
WHERE p.user_id = $1 AND p.purchased_at >= $2
ORDER BY p.purchased_at DESC, p.id DESC
LIMIT $3`
	var limitArg any
	if limit > 0 {
		limitArg = limit
	}
	rows, err := r.DB.QueryContext(ctx, query, userID, since.UTC(), limitArg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Purchase
	for rows.Next() {
		var p Purchase
		var category, mood, price string
		if err := rows.Scan(&p.ID, &p.UserID, &p.BeverageID, &p.BeverageName, &category, &mood, &price, &p.PurchasedAt); err != nil {
			return nil, err
		}
		p.Category = beverages.NormalizeCategory(category)
		p.Mood = beverages.Mood(mood)
		if p.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("parse price for purchase %s: %w", p.ID, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PGRepo) SumBetween(ctx context.Context, userID string, from, to time.Time) (decimal.Decimal, error) {
	const query = `
SELECT COALESCE(SUM(price), 0)::text
FROM purchases
WHERE user_id = $1 AND purchased_at >= $2 AND purchased_at < $3`
	var raw string
	if err := r.DB.QueryRowContext(ctx, query, userID, from.UTC(), to.UTC()).Scan(&raw); err != nil {
		return decimal.Zero, err
	}
	total, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse weekly spend: %w", err)
	}
	return total, nil
}
