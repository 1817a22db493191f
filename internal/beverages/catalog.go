package beverages

import "github.com/shopspring/decimal"

type catalogEntry struct {
	name     string
	category Category
	price    string
	moods    []Mood
}

// Seed data mirrors migrations/00002_create_beverages.sql.
var defaultEntries = []catalogEntry{
	{"Tall Brewed Coffee", CategoryCoffee, "2.45", []Mood{MoodTired, MoodStressed, MoodFocused}},
	{"Grande Brewed Coffee", CategoryCoffee, "2.95", []Mood{MoodTired, MoodStressed, MoodFocused}},
	{"Tall Americano", CategoryEspresso, "3.75", []Mood{MoodTired, MoodFocused}},
	{"Tall Hot Chocolate", CategoryOther, "3.75", []Mood{MoodHappy, MoodStressed}},
	{"Grande Americano", CategoryEspresso, "4.25", []Mood{MoodTired, MoodFocused}},
	{"Tall Cappuccino", CategoryEspresso, "4.25", []Mood{MoodTired, MoodFocused}},
	{"Tall Latte", CategoryLatte, "4.45", []Mood{MoodTired, MoodHappy}},
	{"Grande Cappuccino", CategoryEspresso, "4.75", []Mood{MoodTired, MoodFocused}},
	{"Grande Iced Latte", CategoryLatte, "5.45", []Mood{MoodTired, MoodFocused}},
	{"Grande Chai Tea Latte", CategoryTea, "5.45", []Mood{MoodStressed, MoodHappy, MoodTired}},
	{"Grande Vanilla Latte", CategoryLatte, "5.65", []Mood{MoodHappy, MoodTired}},
	{"Venti Iced Latte", CategoryLatte, "5.95", []Mood{MoodTired, MoodHappy}},
	{"Grande Caramel Macchiato", CategoryLatte, "5.95", []Mood{MoodHappy, MoodTired}},
	{"Grande Green Tea Latte", CategoryTea, "5.95", []Mood{MoodStressed, MoodFocused, MoodTired}},
	{"Grande Caramel Frappuccino", CategoryFrappuccino, "6.25", []Mood{MoodHappy}},
	{"Grande White Chocolate Mocha", CategoryMocha, "6.25", []Mood{MoodHappy, MoodTired}},
	{"Grande Mocha Frappuccino", CategoryFrappuccino, "6.45", []Mood{MoodHappy, MoodStressed}},
	{"Grande Pumpkin Spice Latte", CategorySeasonal, "6.45", []Mood{MoodHappy, MoodStressed}},
	{"Grande Java Chip Frappuccino", CategoryFrappuccino, "6.75", []Mood{MoodHappy}},
	{"Venti Caramel Frappuccino", CategoryFrappuccino, "6.95", []Mood{MoodHappy}},
}

// DefaultCatalog returns a fresh copy of the built-in menu with ids 1..20.
func DefaultCatalog() []Beverage {
	out := make([]Beverage, 0, len(defaultEntries))
	for i, e := range defaultEntries {
		moods := make([]Mood, len(e.moods))
		copy(moods, e.moods)
		out = append(out, Beverage{
			ID:            int64(i + 1),
			Name:          e.name,
			Category:      e.category,
			Price:         decimal.RequireFromString(e.price),
			SuitableMoods: moods,
		})
	}
	return out
}
