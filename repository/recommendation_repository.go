package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"mariafaz-analytics/db"
	"mariafaz-analytics/models"
)

// RecommendationRepository handles persistence of pricing recommendations
type RecommendationRepository struct{}

// NewRecommendationRepository creates a new RecommendationRepository
func NewRecommendationRepository() *RecommendationRepository {
	return &RecommendationRepository{}
}

// Ensure RecommendationRepository implements RecommendationRepositoryInterface
var _ RecommendationRepositoryInterface = (*RecommendationRepository)(nil)

// Upsert writes the recommendation for (property_id, date), overwriting
// any prior row for the same key. No history is kept.
func (r *RecommendationRepository) Upsert(ctx context.Context, rec *models.PricingRecommendation) error {
	eventsJSON, err := json.Marshal(rec.RelevantEvents)
	if err != nil {
		return fmt.Errorf("failed to encode relevant events: %w", err)
	}

	query := `
		INSERT INTO pricing_recommendations (
			property_id, date, base_price, suggested_price,
			day_of_week_factor, seasonality_factor, event_factor,
			competitor_factor, occupancy_factor, lead_time_factor,
			relevant_events, computed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (property_id, date)
		DO UPDATE SET
			base_price = EXCLUDED.base_price,
			suggested_price = EXCLUDED.suggested_price,
			day_of_week_factor = EXCLUDED.day_of_week_factor,
			seasonality_factor = EXCLUDED.seasonality_factor,
			event_factor = EXCLUDED.event_factor,
			competitor_factor = EXCLUDED.competitor_factor,
			occupancy_factor = EXCLUDED.occupancy_factor,
			lead_time_factor = EXCLUDED.lead_time_factor,
			relevant_events = EXCLUDED.relevant_events,
			computed_at = EXCLUDED.computed_at
	`
	_, err = db.DB.ExecContext(ctx, query,
		rec.PropertyID,
		rec.Date,
		rec.BasePrice,
		rec.SuggestedPrice,
		rec.Factors.DayOfWeekFactor,
		rec.Factors.SeasonalityFactor,
		rec.Factors.EventFactor,
		rec.Factors.CompetitorFactor,
		rec.Factors.OccupancyFactor,
		rec.Factors.LeadTimeFactor,
		eventsJSON,
		rec.ComputedAt,
	)
	if err != nil {
		log.Printf("❌ Upsert: Error saving recommendation for %s/%s: %v", rec.PropertyID, rec.Date, err)
		return fmt.Errorf("failed to upsert recommendation: %w", err)
	}
	log.Printf("✅ Upsert: Recommendation saved property=%s date=%s suggested=%d", rec.PropertyID, rec.Date, rec.SuggestedPrice)
	return nil
}

// List returns recommendations for a property, optionally bounded by
// from/to dates (YYYY-MM-DD, inclusive)
func (r *RecommendationRepository) List(ctx context.Context, propertyID string, from, to *string) ([]models.PricingRecommendation, error) {
	query := `
		SELECT property_id, to_char(date, 'YYYY-MM-DD'), base_price, suggested_price,
		       day_of_week_factor, seasonality_factor, event_factor,
		       competitor_factor, occupancy_factor, lead_time_factor,
		       relevant_events, computed_at
		FROM pricing_recommendations
		WHERE property_id = $1
	`
	args := []interface{}{propertyID}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	query += " ORDER BY date ASC"

	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recommendations: %w", err)
	}
	defer rows.Close()

	var recs []models.PricingRecommendation
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, *rec)
	}
	return recs, rows.Err()
}

// GetLatest returns the most recently computed recommendation for a
// property, or nil when none exists
func (r *RecommendationRepository) GetLatest(ctx context.Context, propertyID string) (*models.PricingRecommendation, error) {
	query := `
		SELECT property_id, to_char(date, 'YYYY-MM-DD'), base_price, suggested_price,
		       day_of_week_factor, seasonality_factor, event_factor,
		       competitor_factor, occupancy_factor, lead_time_factor,
		       relevant_events, computed_at
		FROM pricing_recommendations
		WHERE property_id = $1
		ORDER BY computed_at DESC
		LIMIT 1
	`
	rows, err := db.DB.QueryContext(ctx, query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest recommendation: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to fetch latest recommendation: %w", err)
		}
		return nil, nil
	}
	return scanRecommendation(rows)
}

// scanRecommendation scans one recommendation row including the JSONB events
func scanRecommendation(rows *sql.Rows) (*models.PricingRecommendation, error) {
	var rec models.PricingRecommendation
	var eventsJSON []byte
	err := rows.Scan(
		&rec.PropertyID,
		&rec.Date,
		&rec.BasePrice,
		&rec.SuggestedPrice,
		&rec.Factors.DayOfWeekFactor,
		&rec.Factors.SeasonalityFactor,
		&rec.Factors.EventFactor,
		&rec.Factors.CompetitorFactor,
		&rec.Factors.OccupancyFactor,
		&rec.Factors.LeadTimeFactor,
		&eventsJSON,
		&rec.ComputedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan recommendation: %w", err)
	}
	if len(eventsJSON) > 0 {
		if err := json.Unmarshal(eventsJSON, &rec.RelevantEvents); err != nil {
			return nil, fmt.Errorf("failed to decode relevant events: %w", err)
		}
	}
	if rec.RelevantEvents == nil {
		rec.RelevantEvents = []models.RelevantEvent{}
	}
	return &rec, nil
}
