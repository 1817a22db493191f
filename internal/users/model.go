package users

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is a customer profile as seen by the recommendation service.
type User struct {
	ID           string          `json:"id"`
	Username     string          `json:"username"`
	Email        string          `json:"email"`
	WeeklyBudget decimal.Decimal `json:"weeklyBudget"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}
