package models

import "time"

// CompetitorRate is one scraped nightly rate from a comp-set listing.
type CompetitorRate struct {
	ID             int64     `json:"id"`
	PropertyID     string    `json:"propertyId"`
	CompetitorName string    `json:"competitorName"`
	NightlyRate    float64   `json:"nightlyRate"`
	ScrapedAt      time.Time `json:"scrapedAt"`
}

// CompetitorIndex is the ARI (Average Rate Index) of a property against
// its comp set. The latest row by ComputedAt is the one that counts.
type CompetitorIndex struct {
	PropertyID string    `json:"propertyId"`
	ARI        float64   `json:"ari"`
	ComputedAt time.Time `json:"computedAt"`
}

// OccupancyRow is one daily occupancy reading. Rate is nil when the day
// was recorded without a value; the pricing average counts it as zero.
type OccupancyRow struct {
	Date time.Time `json:"date"`
	Rate *float64  `json:"rate"`
}

// ScrapeRequest is the body of POST /admin/competitor-rates/scrape.
type ScrapeRequest struct {
	PropertyID string   `json:"property_id"`
	URLs       []string `json:"urls"`
}

// ScrapeResponse reports the outcome of a comp-set scrape run.
type ScrapeResponse struct {
	PropertyID  string           `json:"property_id"`
	RatesStored int              `json:"rates_stored"`
	ARI         float64          `json:"ari"`
	Rates       []CompetitorRate `json:"rates"`
}
