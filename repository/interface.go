package repository

import (
	"context"
	"time"

	"mariafaz-analytics/models"
)

// SeasonalityRepositoryInterface defines the contract for seasonality data access
type SeasonalityRepositoryInterface interface {
	Upsert(ctx context.Context, rec *models.SeasonalityRecord) error
	GetByMarketMonth(ctx context.Context, marketID string, month int) (*models.SeasonalityRecord, error)
}

// EventRepositoryInterface defines the contract for market event data access
type EventRepositoryInterface interface {
	Create(ctx context.Context, event *models.EventRecord) (*models.EventRecord, error)
	ListForDate(ctx context.Context, date time.Time) ([]models.EventRecord, error)
}

// CompetitorRepositoryInterface defines the contract for comp-set data access
type CompetitorRepositoryInterface interface {
	LatestIndex(ctx context.Context, propertyID string) (*models.CompetitorIndex, error)
	UpsertIndex(ctx context.Context, index *models.CompetitorIndex) error
	InsertRates(ctx context.Context, rates []models.CompetitorRate) error
	NewestRateAt(ctx context.Context, propertyID string) (*time.Time, error)
}

// OccupancyRepositoryInterface defines the contract for occupancy history access
type OccupancyRepositoryInterface interface {
	GetRecent(ctx context.Context, propertyID string, limit int) ([]models.OccupancyRow, error)
}

// RecommendationRepositoryInterface defines the contract for pricing recommendation persistence
type RecommendationRepositoryInterface interface {
	Upsert(ctx context.Context, rec *models.PricingRecommendation) error
	List(ctx context.Context, propertyID string, from, to *string) ([]models.PricingRecommendation, error)
	GetLatest(ctx context.Context, propertyID string) (*models.PricingRecommendation, error)
}

// PropertyRepositoryInterface defines the contract for property registry access
type PropertyRepositoryInterface interface {
	Create(ctx context.Context, property *models.Property) (*models.Property, error)
	GetByID(ctx context.Context, id string) (*models.Property, error)
	SavePhoto(ctx context.Context, photo *models.PropertyPhoto) error
	GetPhoto(ctx context.Context, propertyID string) (*models.PropertyPhoto, error)
}
