package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"mariafaz-analytics/db"
	"mariafaz-analytics/models"
)

// EventRepository handles database operations for market events
type EventRepository struct{}

// NewEventRepository creates a new EventRepository
func NewEventRepository() *EventRepository {
	return &EventRepository{}
}

// Ensure EventRepository implements EventRepositoryInterface
var _ EventRepositoryInterface = (*EventRepository)(nil)

// Create inserts a new market event and returns it with its generated ID
func (r *EventRepository) Create(ctx context.Context, event *models.EventRecord) (*models.EventRecord, error) {
	query := `
		INSERT INTO market_events (market_id, name, event_type, start_date, end_date, impact_score)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := db.DB.QueryRowContext(ctx, query,
		event.MarketID,
		event.Name,
		event.EventType,
		event.StartDate,
		event.EndDate,
		event.ImpactScore,
	).Scan(&event.ID)
	if err != nil {
		log.Printf("❌ Create: Error inserting event %s: %v", event.Name, err)
		return nil, fmt.Errorf("failed to insert event: %w", err)
	}
	log.Printf("✅ Create: Event saved id=%d name=%s impact=%d", event.ID, event.Name, event.ImpactScore)
	return event, nil
}

// ListForDate returns every event whose date range covers the given date,
// regardless of market. Market matching happens in the pricing package so
// the case-insensitive "all" semantics live in one testable place.
func (r *EventRepository) ListForDate(ctx context.Context, date time.Time) ([]models.EventRecord, error) {
	query := `
		SELECT id, market_id, name, event_type, start_date, end_date, impact_score
		FROM market_events
		WHERE start_date <= $1 AND end_date >= $1
		ORDER BY impact_score DESC, id ASC
	`
	rows, err := db.DB.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	defer rows.Close()

	var events []models.EventRecord
	for rows.Next() {
		var e models.EventRecord
		err := rows.Scan(&e.ID, &e.MarketID, &e.Name, &e.EventType, &e.StartDate, &e.EndDate, &e.ImpactScore)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
