package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"math"

	"mariafaz-analytics/models"
	"mariafaz-analytics/repository"
	"mariafaz-analytics/utils"
)

// ReportService builds pricing recommendation reports and exports them
// to Google Drive.
type ReportService struct {
	recommendationRepo repository.RecommendationRepositoryInterface
	driveService       DriveServiceInterface
}

// NewReportService creates a new ReportService
func NewReportService(
	recommendationRepo repository.RecommendationRepositoryInterface,
	driveService DriveServiceInterface,
) *ReportService {
	return &ReportService{
		recommendationRepo: recommendationRepo,
		driveService:       driveService,
	}
}

// ExportResult reports where an exported file ended up.
type ExportResult struct {
	FileID string `json:"fileId"`
	Link   string `json:"link"`
	Rows   int    `json:"rows"`
}

// Export builds the CSV report for a property and date range and uploads
// it to Drive.
func (s *ReportService) Export(ctx context.Context, propertyID string, from, to *string) (*ExportResult, error) {
	if s.driveService == nil {
		return nil, fmt.Errorf("drive export not configured")
	}

	recs, err := s.recommendationRepo.List(ctx, propertyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load recommendations: %w", err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("no recommendations found for property %s", propertyID)
	}

	data, err := BuildRecommendationsCSV(recs)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("pricing_%s_%s.csv", propertyID, recs[0].Date)
	fileID, link, err := s.driveService.UploadReport(name, data)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Export: %d recommendation rows exported for property %s", len(recs), propertyID)
	return &ExportResult{FileID: fileID, Link: link, Rows: len(recs)}, nil
}

// BuildRecommendationsCSV renders recommendations as CSV: one header
// plus one row per (property, date).
func BuildRecommendationsCSV(recs []models.PricingRecommendation) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"property_id", "date", "base_price", "suggested_price", "change_percent",
		"day_of_week", "seasonality", "event", "competitor", "occupancy", "lead_time",
		"events",
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, rec := range recs {
		changePercent := (float64(rec.SuggestedPrice) - rec.BasePrice) / rec.BasePrice * 100

		events := ""
		for i, e := range rec.RelevantEvents {
			if i > 0 {
				events += "; "
			}
			events += fmt.Sprintf("%s (%d)", e.Name, e.ImpactScore)
		}

		row := []string{
			rec.PropertyID,
			rec.Date,
			utils.FormatEUR(int64(math.Round(rec.BasePrice))),
			utils.FormatEUR(rec.SuggestedPrice),
			fmt.Sprintf("%.1f", changePercent),
			fmt.Sprintf("%.3f", rec.Factors.DayOfWeekFactor),
			fmt.Sprintf("%.3f", rec.Factors.SeasonalityFactor),
			fmt.Sprintf("%.3f", rec.Factors.EventFactor),
			fmt.Sprintf("%.3f", rec.Factors.CompetitorFactor),
			fmt.Sprintf("%.3f", rec.Factors.OccupancyFactor),
			fmt.Sprintf("%.3f", rec.Factors.LeadTimeFactor),
			events,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
