package models

import "time"

// Alert types emitted by the KPI aggregation.
const (
	AlertLowOccupancy     = "low_occupancy"
	AlertOverpriced       = "overpriced"
	AlertUnderpriced      = "underpriced"
	AlertStaleRates       = "stale_rates"
	AlertPriceOpportunity = "price_opportunity"
)

// KPISnapshot is the aggregated view of a property used to derive alerts.
// Pointer fields are nil when the backing data is absent.
type KPISnapshot struct {
	PropertyID           string                 `json:"propertyId"`
	AvgOccupancy7d       *float64               `json:"avgOccupancy7d"`
	LatestARI            *float64               `json:"latestAri"`
	NewestRateAt         *time.Time             `json:"newestRateAt"`
	LatestRecommendation *PricingRecommendation `json:"latestRecommendation"`
}

// Alert is one actionable signal for the admin dashboard.
type Alert struct {
	Type     string `json:"type"`
	Severity string `json:"severity"` // "info" or "warning"
	Message  string `json:"message"`
}

// AlertsResponse wraps GET /admin/alerts.
type AlertsResponse struct {
	Snapshot KPISnapshot `json:"snapshot"`
	Alerts   []Alert     `json:"alerts"`
}
