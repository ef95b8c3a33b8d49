package models

import "time"

// PricingRequest is the input for a dynamic price calculation.
// market_id is optional; it falls back to the default market when empty.
type PricingRequest struct {
	PropertyID string  `json:"property_id"`
	BasePrice  float64 `json:"base_price"`
	TargetDate string  `json:"target_date"` // YYYY-MM-DD
	MarketID   string  `json:"market_id,omitempty"`
}

// PricingFactors holds the six multipliers applied to the base price.
// Every factor defaults to 1.0 when its backing data is unavailable.
type PricingFactors struct {
	DayOfWeekFactor   float64 `json:"day_of_week_factor"`
	SeasonalityFactor float64 `json:"seasonality_factor"`
	EventFactor       float64 `json:"event_factor"`
	CompetitorFactor  float64 `json:"competitor_factor"`
	OccupancyFactor   float64 `json:"occupancy_factor"`
	LeadTimeFactor    float64 `json:"lead_time_factor"`
}

// RelevantEvent is the reduced view of an event that influenced a price.
type RelevantEvent struct {
	Name        string `json:"name"`
	EventType   string `json:"event_type"`
	ImpactScore int    `json:"impact_score"`
}

// PricingResponse is returned by POST /admin/pricing/calculate.
type PricingResponse struct {
	Success            bool            `json:"success"`
	BasePrice          float64         `json:"base_price"`
	SuggestedPrice     int64           `json:"suggested_price"`
	PriceChangePercent string          `json:"price_change_percent"`
	Factors            PricingFactors  `json:"factors"`
	RelevantEvents     []RelevantEvent `json:"relevant_events"`
	MarketID           string          `json:"market_id"`
	TargetDate         string          `json:"target_date"`
}

// PricingRecommendation is the persisted result of a calculation,
// keyed by (property_id, date). Recalculating overwrites the row.
type PricingRecommendation struct {
	PropertyID     string          `json:"propertyId"`
	Date           string          `json:"date"` // YYYY-MM-DD
	BasePrice      float64         `json:"basePrice"`
	SuggestedPrice int64           `json:"suggestedPrice"`
	Factors        PricingFactors  `json:"factors"`
	RelevantEvents []RelevantEvent `json:"relevantEvents"`
	ComputedAt     time.Time       `json:"computedAt"`
}

// RecommendationListResponse wraps GET /admin/pricing/recommendations.
type RecommendationListResponse struct {
	Recommendations []PricingRecommendation `json:"recommendations"`
}
