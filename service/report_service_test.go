package service

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"mariafaz-analytics/models"
)

func TestBuildRecommendationsCSV(t *testing.T) {
	recs := []models.PricingRecommendation{
		{
			PropertyID:     "casa-azul",
			Date:           "2026-01-03",
			BasePrice:      1200,
			SuggestedPrice: 1430,
			Factors: models.PricingFactors{
				DayOfWeekFactor:   1.25,
				SeasonalityFactor: 1.1,
				EventFactor:       1.36,
				CompetitorFactor:  1.0,
				OccupancyFactor:   1.0,
				LeadTimeFactor:    0.92,
			},
			RelevantEvents: []models.RelevantEvent{
				{Name: "music festival", EventType: "festival", ImpactScore: 8},
				{Name: "street fair", EventType: "market", ImpactScore: 3},
			},
			ComputedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	data, err := BuildRecommendationsCSV(recs)
	if err != nil {
		t.Fatalf("BuildRecommendationsCSV returned error: %v", err)
	}

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("generated CSV does not parse: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1", len(rows))
	}

	header := rows[0]
	if header[0] != "property_id" || header[len(header)-1] != "events" {
		t.Errorf("unexpected header: %v", header)
	}

	row := rows[1]
	if row[0] != "casa-azul" || row[1] != "2026-01-03" {
		t.Errorf("unexpected key columns: %v", row[:2])
	}
	if row[2] != "€1.200" {
		t.Errorf("base price = %q, want €1.200", row[2])
	}
	if row[3] != "€1.430" {
		t.Errorf("suggested price = %q, want €1.430", row[3])
	}
	if row[4] != "19.2" {
		t.Errorf("change percent = %q, want 19.2", row[4])
	}
	if row[len(row)-1] != "music festival (8); street fair (3)" {
		t.Errorf("events column = %q", row[len(row)-1])
	}
}
