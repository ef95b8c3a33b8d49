package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"mariafaz-analytics/db"
	"mariafaz-analytics/models"
)

// SeasonalityRepository handles database operations for market seasonality
type SeasonalityRepository struct{}

// NewSeasonalityRepository creates a new SeasonalityRepository
func NewSeasonalityRepository() *SeasonalityRepository {
	return &SeasonalityRepository{}
}

// Ensure SeasonalityRepository implements SeasonalityRepositoryInterface
var _ SeasonalityRepositoryInterface = (*SeasonalityRepository)(nil)

// Upsert inserts or replaces the seasonality row for (market_id, month)
func (r *SeasonalityRepository) Upsert(ctx context.Context, rec *models.SeasonalityRecord) error {
	query := `
		INSERT INTO market_seasonality (market_id, month, factor, weekend_premium)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (market_id, month)
		DO UPDATE SET factor = EXCLUDED.factor, weekend_premium = EXCLUDED.weekend_premium
	`
	_, err := db.DB.ExecContext(ctx, query, rec.MarketID, rec.Month, rec.Factor, rec.WeekendPremium)
	if err != nil {
		log.Printf("❌ Upsert: Error upserting seasonality for %s/%d: %v", rec.MarketID, rec.Month, err)
		return fmt.Errorf("failed to upsert seasonality: %w", err)
	}
	log.Printf("✅ Upsert: Seasonality saved for market=%s month=%d factor=%.3f", rec.MarketID, rec.Month, rec.Factor)
	return nil
}

// GetByMarketMonth returns the seasonality row for (market_id, month),
// or nil when no row exists
func (r *SeasonalityRepository) GetByMarketMonth(ctx context.Context, marketID string, month int) (*models.SeasonalityRecord, error) {
	query := `
		SELECT market_id, month, factor, weekend_premium
		FROM market_seasonality
		WHERE market_id = $1 AND month = $2
	`
	var rec models.SeasonalityRecord
	err := db.DB.QueryRowContext(ctx, query, marketID, month).Scan(
		&rec.MarketID,
		&rec.Month,
		&rec.Factor,
		&rec.WeekendPremium,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch seasonality: %w", err)
	}
	return &rec, nil
}
