package seeding

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"beverage-backend/internal/beverages"
)

// Profile is a closed set of synthetic purchasing behaviours.
type Profile string

const (
	BudgetConscious Profile = "budget_conscious"
	CaffeineLover   Profile = "caffeine_lover"
	SweetTooth      Profile = "sweet_tooth"
	Balanced        Profile = "balanced"
	TeaEnthusiast   Profile = "tea_enthusiast"
)

// Profiles lists every profile in a stable order.
var Profiles = []Profile{BudgetConscious, CaffeineLover, SweetTooth, Balanced, TeaEnthusiast}

// Params drive the generator for one profile. Consistency is the probability a
// purchase comes from the preferred pool rather than the whole catalog.
type Params struct {
	PreferredDrinks     []string
	PreferredCategories []beverages.Category
	PreferredMoods      []beverages.Mood
	PurchaseCount       int
	Consistency         float64
	MaxPrice            decimal.Decimal
}

var profileParams = map[Profile]Params{
	BudgetConscious: {
		PreferredDrinks:     []string{"Tall Brewed Coffee", "Grande Brewed Coffee", "Tall Americano", "Tall Hot Chocolate"},
		PreferredCategories: []beverages.Category{beverages.CategoryCoffee, beverages.CategoryEspresso, beverages.CategoryOther},
		PreferredMoods:      []beverages.Mood{beverages.MoodTired, beverages.MoodFocused},
		PurchaseCount:       50,
		Consistency:         0.85,
		MaxPrice:            decimal.RequireFromString("3.75"),
	},
	CaffeineLover: {
		PreferredDrinks:     []string{"Grande Americano", "Tall Cappuccino", "Grande Cappuccino", "Tall Latte", "Tall Americano"},
		PreferredCategories: []beverages.Category{beverages.CategoryEspresso, beverages.CategoryLatte},
		PreferredMoods:      []beverages.Mood{beverages.MoodTired, beverages.MoodFocused},
		PurchaseCount:       45,
		Consistency:         0.80,
	},
	SweetTooth: {
		PreferredDrinks:     []string{"Grande Caramel Frappuccino", "Grande Mocha Frappuccino", "Grande Java Chip Frappuccino", "Grande White Chocolate Mocha", "Venti Caramel Frappuccino"},
		PreferredCategories: []beverages.Category{beverages.CategoryFrappuccino, beverages.CategoryMocha},
		PreferredMoods:      []beverages.Mood{beverages.MoodHappy, beverages.MoodStressed},
		PurchaseCount:       40,
		Consistency:         0.85,
	},
	Balanced: {
		PreferredDrinks:     []string{"Tall Latte", "Grande Vanilla Latte", "Grande Chai Tea Latte", "Grande Americano", "Tall Cappuccino"},
		PreferredCategories: []beverages.Category{beverages.CategoryLatte, beverages.CategoryTea, beverages.CategoryEspresso},
		PreferredMoods:      beverages.Moods,
		PurchaseCount:       48,
		Consistency:         0.75,
	},
	TeaEnthusiast: {
		PreferredDrinks:     []string{"Grande Chai Tea Latte", "Grande Green Tea Latte"},
		PreferredCategories: []beverages.Category{beverages.CategoryTea},
		PreferredMoods:      []beverages.Mood{beverages.MoodStressed, beverages.MoodFocused, beverages.MoodHappy},
		PurchaseCount:       45,
		Consistency:         0.90,
	},
}

// ParseProfile accepts the snake_case profile names.
func ParseProfile(raw string) (Profile, error) {
	p := Profile(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := profileParams[p]; !ok {
		return "", fmt.Errorf("unknown profile %q", raw)
	}
	return p, nil
}

// Params returns the generator parameters; unknown profiles fall back to Balanced.
func (p Profile) Params() Params {
	if params, ok := profileParams[p]; ok {
		return params
	}
	return profileParams[Balanced]
}

// SampleUser is one of the demo accounts created by the seeder.
type SampleUser struct {
	Username     string
	Email        string
	Profile      Profile
	WeeklyBudget decimal.Decimal
}

var SampleUsers = []SampleUser{
	{Username: "alice_budget", Email: "alice@example.com", Profile: BudgetConscious, WeeklyBudget: decimal.NewFromInt(30)},
	{Username: "bob_coffee", Email: "bob@example.com", Profile: CaffeineLover, WeeklyBudget: decimal.NewFromInt(50)},
	{Username: "charlie_sweet", Email: "charlie@example.com", Profile: SweetTooth, WeeklyBudget: decimal.NewFromInt(45)},
	{Username: "diana_balanced", Email: "diana@example.com", Profile: Balanced, WeeklyBudget: decimal.NewFromInt(40)},
	{Username: "eve_tea", Email: "eve@example.com", Profile: TeaEnthusiast, WeeklyBudget: decimal.NewFromInt(35)},
}
