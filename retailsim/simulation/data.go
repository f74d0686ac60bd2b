package simulation

import (
	"github.com/Darshil562002/retailsim/retailsim/database/models"
)

// City is a candidate location for stores of one tier. The infrastructure
// score is the city's base value; stores jitter it within the tier band.
type City struct {
	Name       string
	State      string
	Population int64
	InfraScore float64
}

var cityPools = map[string][]City{
	models.TierMetro: {
		{"Mumbai", "Maharashtra", 20_400_000, 9.5},
		{"Delhi", "Delhi", 16_750_000, 9.2},
		{"Bangalore", "Karnataka", 12_330_000, 9.0},
		{"Hyderabad", "Telangana", 10_000_000, 8.8},
		{"Pune", "Maharashtra", 6_430_000, 8.5},
		{"Chennai", "Tamil Nadu", 10_970_000, 8.7},
	},
	models.TierTwo: {
		{"Jaipur", "Rajasthan", 3_050_000, 7.5},
		{"Lucknow", "Uttar Pradesh", 2_900_000, 7.2},
		{"Coimbatore", "Tamil Nadu", 2_150_000, 7.8},
		{"Indore", "Madhya Pradesh", 2_170_000, 7.4},
		{"Bhopal", "Madhya Pradesh", 1_800_000, 6.9},
		{"Nagpur", "Maharashtra", 2_400_000, 7.3},
		{"Vadodara", "Gujarat", 1_670_000, 7.6},
		{"Ludhiana", "Punjab", 1_620_000, 7.1},
		{"Visakhapatnam", "Andhra Pradesh", 1_730_000, 7.0},
	},
	models.TierThree: {
		{"Raipur", "Chhattisgarh", 1_010_000, 6.2},
		{"Jamshedpur", "Jharkhand", 630_000, 6.5},
		{"Guwahati", "Assam", 960_000, 6.0},
		{"Ranchi", "Jharkhand", 1_070_000, 6.3},
		{"Agra", "Uttar Pradesh", 1_590_000, 5.8},
		{"Nashik", "Maharashtra", 1_480_000, 6.4},
		{"Udaipur", "Rajasthan", 475_000, 6.1},
		{"Ajmer", "Rajasthan", 550_000, 5.9},
		{"Mysore", "Karnataka", 920_000, 6.7},
	},
}

// categorySpec describes one product category: its item-name pool, the
// cost and target-margin sampling ranges, and whether its goods spoil.
type categorySpec struct {
	Name        string
	Items       []string
	CostRange   Range
	MarginRange Range
	Perishable  bool
}

// catalogSpecs is ordered; the product generator iterates it so catalog
// generation is deterministic for a given seed.
var catalogSpecs = []categorySpec{
	{
		Name:        models.CategoryGroceries,
		Items:       []string{"Basmati Rice 5kg", "Wheat Flour 10kg", "Sunflower Oil 1L", "Sugar 1kg", "Toor Dal 1kg", "Spices Mix"},
		CostRange:   Range{40, 250},
		MarginRange: Range{12, 20},
	},
	{
		Name:        models.CategoryFreshProduce,
		Items:       []string{"Seasonal Vegetables", "Fresh Fruits", "Milk 1L", "Eggs Dozen", "Paneer 200g", "Fresh Chicken"},
		CostRange:   Range{30, 180},
		MarginRange: Range{18, 28},
		Perishable:  true,
	},
	{
		Name:        models.CategoryPackagedFoods,
		Items:       []string{"Biscuits Assorted", "Namkeen Mix", "Instant Noodles", "Sauces", "Beverages", "Bread"},
		CostRange:   Range{25, 150},
		MarginRange: Range{15, 25},
	},
	{
		Name:        models.CategoryPersonalCare,
		Items:       []string{"Shampoo 200ml", "Soap Bar", "Toothpaste", "Face Wash", "Body Lotion", "Hair Oil"},
		CostRange:   Range{50, 300},
		MarginRange: Range{20, 35},
	},
	{
		Name:        models.CategoryHomeCare,
		Items:       []string{"Detergent 1kg", "Floor Cleaner", "Dishwash Liquid", "Toilet Cleaner", "Air Freshener"},
		CostRange:   Range{40, 200},
		MarginRange: Range{18, 28},
	},
	{
		Name:        models.CategoryElectronics,
		Items:       []string{"Mobile Phones", "TWS Earbuds", "Phone Chargers", "Power Banks", "Smart Watches"},
		CostRange:   Range{500, 15000},
		MarginRange: Range{8, 15},
	},
	{
		Name:        models.CategoryFashion,
		Items:       []string{"T-Shirts", "Jeans", "Footwear", "Accessories", "Kids Wear"},
		CostRange:   Range{200, 2000},
		MarginRange: Range{25, 45},
	},
}

// premiumCategories are the discretionary categories that lower tiers buy
// and stock less of.
var premiumCategories = map[string]bool{
	models.CategoryElectronics: true,
	models.CategoryFashion:     true,
}

func IsPremiumCategory(category string) bool {
	return premiumCategories[category]
}
