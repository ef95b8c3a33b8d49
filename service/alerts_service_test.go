package service

import (
	"testing"
	"time"

	"mariafaz-analytics/models"
)

func TestBuildAlerts(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	f := func(v float64) *float64 { return &v }
	at := func(daysAgo int) *time.Time {
		ts := now.AddDate(0, 0, -daysAgo)
		return &ts
	}

	tests := []struct {
		name      string
		snapshot  models.KPISnapshot
		wantTypes []string
	}{
		{
			"empty snapshot",
			models.KPISnapshot{PropertyID: "casa-azul"},
			nil,
		},
		{
			"low occupancy",
			models.KPISnapshot{AvgOccupancy7d: f(0.25)},
			[]string{models.AlertLowOccupancy},
		},
		{
			"occupancy at threshold stays quiet",
			models.KPISnapshot{AvgOccupancy7d: f(0.40)},
			nil,
		},
		{
			"overpriced",
			models.KPISnapshot{LatestARI: f(1.35)},
			[]string{models.AlertOverpriced},
		},
		{
			"ARI exactly 1.2 stays quiet",
			models.KPISnapshot{LatestARI: f(1.2)},
			nil,
		},
		{
			"underpriced",
			models.KPISnapshot{LatestARI: f(0.6)},
			[]string{models.AlertUnderpriced},
		},
		{
			"ARI exactly 0.8 stays quiet",
			models.KPISnapshot{LatestARI: f(0.8)},
			nil,
		},
		{
			"stale rates after a week",
			models.KPISnapshot{NewestRateAt: at(8)},
			[]string{models.AlertStaleRates},
		},
		{
			"fresh rates stay quiet",
			models.KPISnapshot{NewestRateAt: at(6)},
			nil,
		},
		{
			"price opportunity",
			models.KPISnapshot{LatestRecommendation: &models.PricingRecommendation{
				BasePrice: 100, SuggestedPrice: 115, Date: "2026-01-10",
			}},
			[]string{models.AlertPriceOpportunity},
		},
		{
			"small raise stays quiet",
			models.KPISnapshot{LatestRecommendation: &models.PricingRecommendation{
				BasePrice: 100, SuggestedPrice: 105,
			}},
			nil,
		},
		{
			"multiple alerts stack",
			models.KPISnapshot{
				AvgOccupancy7d: f(0.2),
				LatestARI:      f(1.5),
				NewestRateAt:   at(10),
			},
			[]string{models.AlertLowOccupancy, models.AlertOverpriced, models.AlertStaleRates},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alerts := BuildAlerts(&tt.snapshot, now)
			if len(alerts) != len(tt.wantTypes) {
				t.Fatalf("got %d alerts (%v), want %d", len(alerts), alerts, len(tt.wantTypes))
			}
			for i, want := range tt.wantTypes {
				if alerts[i].Type != want {
					t.Errorf("alert[%d].Type = %q, want %q", i, alerts[i].Type, want)
				}
			}
		})
	}
}
