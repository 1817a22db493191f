package purchases

import (
	"time"

	"github.com/shopspring/decimal"

	"beverage-backend/internal/beverages"
)

// Purchase is one recorded drink order.
type Purchase struct {
	ID           string             `json:"id"`
	UserID       string             `json:"userId"`
	BeverageID   int64              `json:"beverageId"`
	BeverageName string             `json:"beverageName"`
	Category     beverages.Category `json:"category"`
	Mood         beverages.Mood     `json:"mood"`
	Price        decimal.Decimal    `json:"price"`
	PurchasedAt  time.Time          `json:"purchasedAt"`
}

// BudgetSnapshot is a user's spending position for the current week.
// Remaining may be negative when the user has overspent.
type BudgetSnapshot struct {
	UserID       string          `json:"userId"`
	WeeklyBudget decimal.Decimal `json:"weeklyBudget"`
	Spent        decimal.Decimal `json:"spent"`
	Remaining    decimal.Decimal `json:"remaining"`
	WeekStart    time.Time       `json:"weekStart"`
	WeekEnd      time.Time       `json:"weekEnd"`
}

// WeekWindow returns [Monday 00:00 UTC, next Monday 00:00 UTC) containing now.
func WeekWindow(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	offset := (int(now.Weekday()) + 6) % 7
	start := time.Date(now.Year(), now.Month(), now.Day()-offset, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 7)
}
