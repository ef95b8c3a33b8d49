package repository

import (
	"context"
	"database/sql"
	"fmt"

	"mariafaz-analytics/db"
	"mariafaz-analytics/models"
)

// OccupancyRepository handles database operations for occupancy history
type OccupancyRepository struct{}

// NewOccupancyRepository creates a new OccupancyRepository
func NewOccupancyRepository() *OccupancyRepository {
	return &OccupancyRepository{}
}

// Ensure OccupancyRepository implements OccupancyRepositoryInterface
var _ OccupancyRepositoryInterface = (*OccupancyRepository)(nil)

// GetRecent returns up to limit daily occupancy rows for a property,
// most recent first. Rows without a recorded rate come back with a nil
// Rate; the pricing average counts them as zero.
func (r *OccupancyRepository) GetRecent(ctx context.Context, propertyID string, limit int) ([]models.OccupancyRow, error) {
	query := `
		SELECT date, occupancy_rate
		FROM occupancy_history
		WHERE property_id = $1
		ORDER BY date DESC
		LIMIT $2
	`
	rows, err := db.DB.QueryContext(ctx, query, propertyID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch occupancy history: %w", err)
	}
	defer rows.Close()

	var history []models.OccupancyRow
	for rows.Next() {
		var row models.OccupancyRow
		var rate sql.NullFloat64
		if err := rows.Scan(&row.Date, &rate); err != nil {
			return nil, fmt.Errorf("failed to scan occupancy row: %w", err)
		}
		if rate.Valid {
			v := rate.Float64
			row.Rate = &v
		}
		history = append(history, row)
	}
	return history, rows.Err()
}
