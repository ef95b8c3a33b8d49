package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"mariafaz-analytics/db"
	"mariafaz-analytics/models"
)

// CompetitorRepository handles database operations for comp-set data
type CompetitorRepository struct{}

// NewCompetitorRepository creates a new CompetitorRepository
func NewCompetitorRepository() *CompetitorRepository {
	return &CompetitorRepository{}
}

// Ensure CompetitorRepository implements CompetitorRepositoryInterface
var _ CompetitorRepositoryInterface = (*CompetitorRepository)(nil)

// LatestIndex returns the most recent ARI row for a property, or nil
// when the property has never been indexed
func (r *CompetitorRepository) LatestIndex(ctx context.Context, propertyID string) (*models.CompetitorIndex, error) {
	query := `
		SELECT property_id, ari, computed_at
		FROM competitor_index
		WHERE property_id = $1
		ORDER BY computed_at DESC
		LIMIT 1
	`
	var index models.CompetitorIndex
	err := db.DB.QueryRowContext(ctx, query, propertyID).Scan(&index.PropertyID, &index.ARI, &index.ComputedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch competitor index: %w", err)
	}
	return &index, nil
}

// UpsertIndex appends a new ARI row for a property. History is kept so
// ARI drift stays visible in the dashboards; LatestIndex picks the newest.
func (r *CompetitorRepository) UpsertIndex(ctx context.Context, index *models.CompetitorIndex) error {
	query := `
		INSERT INTO competitor_index (property_id, ari, computed_at)
		VALUES ($1, $2, $3)
	`
	_, err := db.DB.ExecContext(ctx, query, index.PropertyID, index.ARI, index.ComputedAt)
	if err != nil {
		log.Printf("❌ UpsertIndex: Error saving ARI for property %s: %v", index.PropertyID, err)
		return fmt.Errorf("failed to save competitor index: %w", err)
	}
	log.Printf("✅ UpsertIndex: ARI=%.3f saved for property %s", index.ARI, index.PropertyID)
	return nil
}

// InsertRates stores a batch of scraped competitor rates
func (r *CompetitorRepository) InsertRates(ctx context.Context, rates []models.CompetitorRate) error {
	if len(rates) == 0 {
		return nil
	}

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO competitor_rates (property_id, competitor_name, nightly_rate, scraped_at)
		VALUES ($1, $2, $3, $4)
	`
	for _, rate := range rates {
		if _, err := tx.ExecContext(ctx, query, rate.PropertyID, rate.CompetitorName, rate.NightlyRate, rate.ScrapedAt); err != nil {
			log.Printf("❌ InsertRates: Error inserting rate for %s: %v", rate.CompetitorName, err)
			return fmt.Errorf("failed to insert competitor rate: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit competitor rates: %w", err)
	}
	log.Printf("✅ InsertRates: Stored %d competitor rates for property %s", len(rates), rates[0].PropertyID)
	return nil
}

// NewestRateAt returns the scrape time of the most recent rate for a
// property, or nil when nothing has been scraped yet
func (r *CompetitorRepository) NewestRateAt(ctx context.Context, propertyID string) (*time.Time, error) {
	query := `
		SELECT scraped_at
		FROM competitor_rates
		WHERE property_id = $1
		ORDER BY scraped_at DESC
		LIMIT 1
	`
	var scrapedAt time.Time
	err := db.DB.QueryRowContext(ctx, query, propertyID).Scan(&scrapedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch newest rate: %w", err)
	}
	return &scrapedAt, nil
}
