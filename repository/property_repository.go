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

// PropertyRepository handles database operations for the property registry
type PropertyRepository struct{}

// NewPropertyRepository creates a new PropertyRepository
func NewPropertyRepository() *PropertyRepository {
	return &PropertyRepository{}
}

// Ensure PropertyRepository implements PropertyRepositoryInterface
var _ PropertyRepositoryInterface = (*PropertyRepository)(nil)

// Create inserts a new property
func (r *PropertyRepository) Create(ctx context.Context, property *models.Property) (*models.Property, error) {
	query := `
		INSERT INTO properties (id, name, market_id, base_price, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	property.CreatedAt = time.Now().UTC()
	err := db.DB.QueryRowContext(ctx, query,
		property.ID,
		property.Name,
		property.MarketID,
		property.BasePrice,
		property.CreatedAt,
	).Scan(&property.CreatedAt)
	if err != nil {
		log.Printf("❌ Create: Error inserting property %s: %v", property.ID, err)
		return nil, fmt.Errorf("failed to insert property: %w", err)
	}
	log.Printf("✅ Create: Property saved id=%s market=%s", property.ID, property.MarketID)
	return property, nil
}

// GetByID returns a property by its ID
func (r *PropertyRepository) GetByID(ctx context.Context, id string) (*models.Property, error) {
	query := `
		SELECT id, name, market_id, base_price, created_at
		FROM properties
		WHERE id = $1
	`
	var property models.Property
	err := db.DB.QueryRowContext(ctx, query, id).Scan(
		&property.ID,
		&property.Name,
		&property.MarketID,
		&property.BasePrice,
		&property.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("property not found")
		}
		return nil, fmt.Errorf("failed to fetch property: %w", err)
	}
	return &property, nil
}

// SavePhoto stores or replaces the optimized dashboard photo of a property
func (r *PropertyRepository) SavePhoto(ctx context.Context, photo *models.PropertyPhoto) error {
	query := `
		INSERT INTO property_photos (property_id, photo, content_type, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (property_id)
		DO UPDATE SET photo = EXCLUDED.photo, content_type = EXCLUDED.content_type, updated_at = EXCLUDED.updated_at
	`
	photo.UpdatedAt = time.Now().UTC()
	_, err := db.DB.ExecContext(ctx, query, photo.PropertyID, photo.Photo, photo.ContentType, photo.UpdatedAt)
	if err != nil {
		log.Printf("❌ SavePhoto: Error saving photo for property %s: %v", photo.PropertyID, err)
		return fmt.Errorf("failed to save property photo: %w", err)
	}
	log.Printf("✅ SavePhoto: Photo saved for property %s (%d bytes)", photo.PropertyID, len(photo.Photo))
	return nil
}

// GetPhoto returns the stored photo for a property
func (r *PropertyRepository) GetPhoto(ctx context.Context, propertyID string) (*models.PropertyPhoto, error) {
	query := `
		SELECT property_id, photo, content_type, updated_at
		FROM property_photos
		WHERE property_id = $1
	`
	var photo models.PropertyPhoto
	err := db.DB.QueryRowContext(ctx, query, propertyID).Scan(
		&photo.PropertyID,
		&photo.Photo,
		&photo.ContentType,
		&photo.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("photo not found")
		}
		return nil, fmt.Errorf("failed to fetch property photo: %w", err)
	}
	return &photo, nil
}
