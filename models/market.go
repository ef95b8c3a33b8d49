package models

import "time"

// MarketAll is the wildcard market on events: the event applies everywhere.
const MarketAll = "all"

// SeasonalityRecord is one row of market_seasonality, one per (market, month).
// Factor is stored as entered; ingestion validates it, calculation does not.
type SeasonalityRecord struct {
	MarketID       string  `json:"marketId"`
	Month          int     `json:"month"` // 1-12
	Factor         float64 `json:"factor"`
	WeekendPremium float64 `json:"weekendPremium"`
}

// EventRecord is one row of market_events. Events with MarketID "all"
// apply to every market. Dates are inclusive on both ends.
type EventRecord struct {
	ID          int64     `json:"id"`
	MarketID    string    `json:"marketId"`
	Name        string    `json:"name"`
	EventType   string    `json:"eventType"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	ImpactScore int       `json:"impactScore"` // 1-10
}

// SeasonalityUpsertRequest is the body of PUT /admin/markets/seasonality.
type SeasonalityUpsertRequest struct {
	MarketID       string  `json:"market_id"`
	Month          int     `json:"month"`
	Factor         float64 `json:"factor"`
	WeekendPremium float64 `json:"weekend_premium"`
}

// EventCreateRequest is the body of POST /admin/markets/events.
type EventCreateRequest struct {
	MarketID    string `json:"market_id"`
	Name        string `json:"name"`
	EventType   string `json:"event_type"`
	StartDate   string `json:"start_date"` // YYYY-MM-DD
	EndDate     string `json:"end_date"`   // YYYY-MM-DD
	ImpactScore int    `json:"impact_score"`
}

// EventListResponse wraps GET /admin/markets/events.
type EventListResponse struct {
	Events []EventRecord `json:"events"`
}
