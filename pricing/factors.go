package pricing

import (
	"fmt"
	"math"
	"strings"
	"time"

	"mariafaz-analytics/models"
)

// DefaultMarket is used when a pricing request carries no market_id.
const DefaultMarket = "sintra"

// OccupancyWindow is how many daily occupancy rows feed the rolling average.
const OccupancyWindow = 7

// DayOfWeekFactor returns the weekday multiplier for a date. When the
// market has a seasonality row with a weekend premium, the premium can
// raise the Fri/Sat/Sun factor but never lower it.
func DayOfWeekFactor(date time.Time, seasonality *models.SeasonalityRecord) float64 {
	var factor float64
	switch date.Weekday() {
	case time.Friday:
		factor = 1.15
	case time.Saturday:
		factor = 1.25
	case time.Sunday:
		factor = 1.10
	default:
		factor = 1.00
	}

	if seasonality != nil && isWeekend(date.Weekday()) {
		factor = math.Max(factor, 1+seasonality.WeekendPremium)
	}
	return factor
}

func isWeekend(d time.Weekday) bool {
	return d == time.Friday || d == time.Saturday || d == time.Sunday
}

// SeasonalityFactor passes the stored factor through as-is. Without a
// row for the (market, month) the factor is neutral.
func SeasonalityFactor(seasonality *models.SeasonalityRecord) float64 {
	if seasonality == nil {
		return 1.0
	}
	return seasonality.Factor
}

// MatchEvents filters date-overlapping events down to the ones that
// apply to the given market. An event with market "all" applies
// everywhere; market comparison is case-insensitive.
func MatchEvents(events []models.EventRecord, marketID string) []models.EventRecord {
	var matched []models.EventRecord
	for _, e := range events {
		if strings.EqualFold(e.MarketID, models.MarketAll) || strings.EqualFold(e.MarketID, marketID) {
			matched = append(matched, e)
		}
	}
	return matched
}

// EventFactor derives the event multiplier from the matching events.
// The highest impact score governs; overlapping events are not averaged.
// The side output lists every matching event, not just the strongest.
func EventFactor(matched []models.EventRecord) (float64, []models.RelevantEvent) {
	if len(matched) == 0 {
		return 1.0, nil
	}

	maxImpact := 0
	relevant := make([]models.RelevantEvent, 0, len(matched))
	for _, e := range matched {
		if e.ImpactScore > maxImpact {
			maxImpact = e.ImpactScore
		}
		relevant = append(relevant, models.RelevantEvent{
			Name:        e.Name,
			EventType:   e.EventType,
			ImpactScore: e.ImpactScore,
		})
	}

	return 1 + (float64(maxImpact)/10)*0.45, relevant
}

// CompetitorFactor maps the latest ARI to a corrective multiplier.
// Thresholds are strict: ARI exactly 1.2 or 0.8 stays neutral.
func CompetitorFactor(ari *float64) float64 {
	if ari == nil {
		return 1.00
	}
	switch {
	case *ari > 1.2:
		return 0.95 // priced above market, discount
	case *ari < 0.8:
		return 1.10 // priced below market, raise
	default:
		return 1.00
	}
}

// OccupancyFactor averages the recent daily occupancy rates and maps the
// mean to a multiplier. Rows with no recorded rate count as zero in the
// average; the divisor is the number of rows fetched, not the window size.
func OccupancyFactor(history []models.OccupancyRow) float64 {
	if len(history) == 0 {
		return 1.00
	}

	sum := 0.0
	for _, row := range history {
		if row.Rate != nil {
			sum += *row.Rate
		}
	}
	avg := sum / float64(len(history))

	switch {
	case avg > 0.85:
		return 1.15
	case avg > 0.70:
		return 1.05
	case avg < 0.40:
		return 0.90
	default:
		return 1.00
	}
}

// DaysUntil returns the number of days between now and the target date,
// rounded up.
func DaysUntil(target, now time.Time) int {
	return int(math.Ceil(target.Sub(now).Hours() / 24))
}

// LeadTimeFactor discounts last-minute dates and far-out dates.
func LeadTimeFactor(daysUntil int) float64 {
	switch {
	case daysUntil <= 3:
		return 0.85
	case daysUntil <= 7:
		return 0.92
	case daysUntil > 90:
		return 0.95
	default:
		return 1.00
	}
}

// ComposePrice multiplies the base price by all six factors, rounds to
// the nearest integer currency unit and formats the percent change with
// one decimal. Pure: no state, no reads.
func ComposePrice(basePrice float64, f models.PricingFactors) (int64, string) {
	product := f.DayOfWeekFactor *
		f.SeasonalityFactor *
		f.EventFactor *
		f.CompetitorFactor *
		f.OccupancyFactor *
		f.LeadTimeFactor

	suggested := int64(math.Round(basePrice * product))
	changePercent := (float64(suggested) - basePrice) / basePrice * 100
	return suggested, fmt.Sprintf("%.1f", changePercent)
}
