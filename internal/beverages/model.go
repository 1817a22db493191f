package beverages

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidMood is returned for mood labels outside the closed Mood set.
var ErrInvalidMood = errors.New("invalid mood")

type Mood string

const (
	MoodHappy    Mood = "Happy"
	MoodTired    Mood = "Tired"
	MoodStressed Mood = "Stressed"
	MoodFocused  Mood = "Focused"
)

// Moods lists every valid mood in canonical order.
var Moods = []Mood{MoodHappy, MoodTired, MoodStressed, MoodFocused}

// ParseMood matches raw case-insensitively and returns the canonical label.
func ParseMood(raw string) (Mood, error) {
	trimmed := strings.TrimSpace(raw)
	for _, m := range Moods {
		if strings.EqualFold(trimmed, string(m)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q (expected one of Happy, Tired, Stressed, Focused)", ErrInvalidMood, raw)
}

// Valid reports whether m is one of the canonical moods.
func (m Mood) Valid() bool {
	for _, known := range Moods {
		if m == known {
			return true
		}
	}
	return false
}

type Category string

const (
	CategoryCoffee      Category = "Coffee"
	CategoryEspresso    Category = "Espresso"
	CategoryLatte       Category = "Latte"
	CategoryTea         Category = "Tea"
	CategoryFrappuccino Category = "Frappuccino"
	CategoryMocha       Category = "Mocha"
	CategorySeasonal    Category = "Seasonal"
	CategoryOther       Category = "Other"
)

var categories = []Category{
	CategoryCoffee, CategoryEspresso, CategoryLatte, CategoryTea,
	CategoryFrappuccino, CategoryMocha, CategorySeasonal, CategoryOther,
}

// NormalizeCategory maps stored labels onto the known set; anything unrecognised is Other.
func NormalizeCategory(raw string) Category {
	trimmed := strings.TrimSpace(raw)
	for _, c := range categories {
		if strings.EqualFold(trimmed, string(c)) {
			return c
		}
	}
	return CategoryOther
}

// Beverage is one catalog entry.
type Beverage struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Category      Category        `json:"category"`
	Price         decimal.Decimal `json:"price"`
	SuitableMoods []Mood          `json:"suitableMoods"`
}

func (b Beverage) SuitsMood(m Mood) bool {
	for _, suitable := range b.SuitableMoods {
		if suitable == m {
			return true
		}
	}
	return false
}

// parseMoodList reads the comma-separated form used by the beverages table.
// Unknown labels are skipped.
func parseMoodList(raw string) []Mood {
	parts := strings.Split(raw, ",")
	out := make([]Mood, 0, len(parts))
	for _, part := range parts {
		m, err := ParseMood(part)
		if err != nil {
			continue
		}
		out = append(out, m)
	}
	return out
}
