package simulation

import (
	"github.com/Darshil562002/retailsim/retailsim/database/models"
)

// Range is a closed numeric interval used for uniform sampling.
type Range struct {
	Min float64
	Max float64
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) Width() float64 {
	return r.Max - r.Min
}

// weightedString is one outcome of a categorical distribution. Weights are
// integer shares out of the distribution's total, rolled the same way card
// rarities are.
type weightedString struct {
	Value  string
	Weight int
}

// weightedPct is a discount outcome in percent.
type weightedPct struct {
	Pct    float64
	Weight int
}

// TierParams is the single source of tier-dependent economics. Every
// generator reads its tier behavior from here; none of them carries
// tier-specific constants of its own, so the Metro/Tier 2/Tier 3 narrative
// cannot drift between components.
type TierParams struct {
	// Store attributes
	WarehouseDistanceKm Range
	Infrastructure      Range // clamp band for the jittered city base score

	// Customer demographics
	AgeMean         float64
	AgeStdDev       float64
	IncomeBrackets  []weightedString
	DigitalLiteracy Range

	// Purchase behavior
	QuantityLogMean  float64
	QuantityLogStdev float64
	Discounts        []weightedPct
	PriceFactor      Range // tier markup/markdown applied on top of the discount
	PremiumShare     float64
	RepeatPropensity float64
	PaymentMethods   []weightedString

	// Delivery and cost structure
	DeliveryTimeHours  Range
	DeliveryDistanceKm Range
	LogisticsRatePerKm float64
	LogisticsBaseCost  float64
	InfraCostPenalty   float64 // per point of infrastructure below 10
	SpoilageRateCap    float64 // max share of product cost lost to spoilage

	// Inventory behavior
	StockUnits       Range
	ReorderFraction  float64
	StockoutMaxDays  int
	PremiumSkipShare float64 // chance a premium (store, product) pair carries no inventory
}

var tierParams = map[string]TierParams{
	models.TierMetro: {
		WarehouseDistanceKm: Range{2, 8},
		Infrastructure:      Range{8.3, 9.7},
		AgeMean:             32,
		AgeStdDev:           8,
		IncomeBrackets: []weightedString{
			{"25-50K", 30}, {"50-75K", 40}, {"75K+", 30},
		},
		DigitalLiteracy:  Range{4, 10},
		QuantityLogMean:  1.2,
		QuantityLogStdev: 0.6,
		Discounts: []weightedPct{
			{0, 60}, {5, 25}, {10, 10}, {15, 5},
		},
		PriceFactor:      Range{1.00, 1.06},
		PremiumShare:     0.25,
		RepeatPropensity: 0.8,
		PaymentMethods: []weightedString{
			{models.PaymentUPI, 40}, {models.PaymentCard, 35},
			{models.PaymentWallet, 20}, {models.PaymentCOD, 5},
		},
		DeliveryTimeHours:  Range{0.5, 3},
		DeliveryDistanceKm: Range{1, 15},
		LogisticsRatePerKm: 2.5,
		LogisticsBaseCost:  15,
		InfraCostPenalty:   0.02,
		SpoilageRateCap:    0.02,
		StockUnits:         Range{50, 300},
		ReorderFraction:    0.30,
		StockoutMaxDays:    5,
		PremiumSkipShare:   0,
	},
	models.TierTwo: {
		WarehouseDistanceKm: Range{10, 40},
		Infrastructure:      Range{6.7, 8.0},
		AgeMean:             35,
		AgeStdDev:           10,
		IncomeBrackets: []weightedString{
			{"15-25K", 40}, {"25-50K", 40}, {"50-75K", 20},
		},
		DigitalLiteracy:  Range{3, 8},
		QuantityLogMean:  0.9,
		QuantityLogStdev: 0.6,
		Discounts: []weightedPct{
			{0, 40}, {5, 30}, {10, 15}, {15, 10}, {20, 5},
		},
		PriceFactor:      Range{0.98, 1.04},
		PremiumShare:     0.20,
		RepeatPropensity: 0.5,
		PaymentMethods: []weightedString{
			{models.PaymentUPI, 35}, {models.PaymentCard, 20},
			{models.PaymentWallet, 15}, {models.PaymentCOD, 30},
		},
		DeliveryTimeHours:  Range{2, 8},
		DeliveryDistanceKm: Range{3, 30},
		LogisticsRatePerKm: 3.5,
		LogisticsBaseCost:  25,
		InfraCostPenalty:   0.02,
		SpoilageRateCap:    0.08,
		StockUnits:         Range{20, 150},
		ReorderFraction:    0.25,
		StockoutMaxDays:    10,
		PremiumSkipShare:   0,
	},
	models.TierThree: {
		WarehouseDistanceKm: Range{10, 40},
		Infrastructure:      Range{5.6, 6.9},
		AgeMean:             37,
		AgeStdDev:           12,
		IncomeBrackets: []weightedString{
			{"10-15K", 50}, {"15-25K", 40}, {"25-50K", 10},
		},
		DigitalLiteracy:  Range{2, 7},
		QuantityLogMean:  0.7,
		QuantityLogStdev: 0.5,
		Discounts: []weightedPct{
			{0, 30}, {5, 25}, {10, 20}, {15, 15}, {20, 10},
		},
		PriceFactor:      Range{0.96, 1.02},
		PremiumShare:     0.10,
		RepeatPropensity: 0.3,
		PaymentMethods: []weightedString{
			{models.PaymentUPI, 25}, {models.PaymentCard, 10},
			{models.PaymentWallet, 10}, {models.PaymentCOD, 55},
		},
		DeliveryTimeHours:  Range{4, 16},
		DeliveryDistanceKm: Range{5, 60},
		LogisticsRatePerKm: 4.5,
		LogisticsBaseCost:  35,
		InfraCostPenalty:   0.02,
		SpoilageRateCap:    0.15,
		StockUnits:         Range{10, 80},
		ReorderFraction:    0.20,
		StockoutMaxDays:    15,
		PremiumSkipShare:   0.6,
	},
}

// Params returns the economic parameters for a region tier. Unknown tiers
// cannot occur: tiers enter the dataset only through the store generator,
// which iterates models.Tiers.
func Params(tier string) TierParams {
	return tierParams[tier]
}
