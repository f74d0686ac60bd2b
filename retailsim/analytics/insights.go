package analytics

import (
	"fmt"

	"github.com/Darshil562002/retailsim/retailsim/database/models"
)

// Insights renders the headline tier-gap findings as human-readable lines.
// Each insight compares Metro against Tier 3, where the expansion economics
// bite hardest.
func Insights(r *Report) []string {
	metro := r.Tier(models.TierMetro)
	tier3 := r.Tier(models.TierThree)
	if metro == nil || tier3 == nil {
		return nil
	}

	var insights []string

	marginGap := metro.MarginPct - tier3.MarginPct
	insights = append(insights, fmt.Sprintf(
		"Margin gap: Tier 3 cities run %.1f points below Metro (%.1f%% vs %.1f%%)",
		marginGap, tier3.MarginPct, metro.MarginPct))

	if metro.AvgLogisticsCost > 0 {
		logisticsPremium := 100 * (tier3.AvgLogisticsCost - metro.AvgLogisticsCost) / metro.AvgLogisticsCost
		insights = append(insights, fmt.Sprintf(
			"Logistics premium: Tier 3 delivery costs %.0f%% more than Metro (%.2f vs %.2f per order)",
			logisticsPremium, tier3.AvgLogisticsCost, metro.AvgLogisticsCost))
	}

	retentionGap := metro.RepeatRatePct - tier3.RepeatRatePct
	insights = append(insights, fmt.Sprintf(
		"Retention gap: Tier 3 repeat-purchase rate trails Metro by %.1f points (%.1f%% vs %.1f%%)",
		retentionGap, tier3.RepeatRatePct, metro.RepeatRatePct))

	delay := tier3.AvgDeliveryTimeHours - metro.AvgDeliveryTimeHours
	insights = append(insights, fmt.Sprintf(
		"Delivery delay: Tier 3 orders take %.1f hours longer than Metro (%.1fh vs %.1fh)",
		delay, tier3.AvgDeliveryTimeHours, metro.AvgDeliveryTimeHours))

	if metro.AvgSpoilageCost > 0 {
		insights = append(insights, fmt.Sprintf(
			"Spoilage: Tier 3 loses %.1fx more to spoilage than Metro (%.2f vs %.2f per order)",
			tier3.AvgSpoilageCost/metro.AvgSpoilageCost, tier3.AvgSpoilageCost, metro.AvgSpoilageCost))
	}

	if tier2 := r.Tier(models.TierTwo); tier2 != nil {
		insights = append(insights, fmt.Sprintf(
			"Growth potential: %d active customers across Tier 2/3 markets",
			tier2.UniqueCustomers+tier3.UniqueCustomers))
	}

	return insights
}
