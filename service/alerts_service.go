package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"mariafaz-analytics/models"
	"mariafaz-analytics/pricing"
	"mariafaz-analytics/repository"
)

// Alert thresholds. Occupancy and ARI bounds match the pricing factor
// thresholds so the dashboard and the engine never disagree.
const (
	lowOccupancyThreshold  = 0.40
	overpricedARI          = 1.2
	underpricedARI         = 0.8
	staleRateAge           = 7 * 24 * time.Hour
	priceOpportunityChange = 10.0 // percent
)

// AlertsService aggregates per-property KPIs and derives smart alerts
// for the admin dashboard.
type AlertsService struct {
	occupancyRepo      repository.OccupancyRepositoryInterface
	competitorRepo     repository.CompetitorRepositoryInterface
	recommendationRepo repository.RecommendationRepositoryInterface
}

// NewAlertsService creates a new AlertsService
func NewAlertsService(
	occupancyRepo repository.OccupancyRepositoryInterface,
	competitorRepo repository.CompetitorRepositoryInterface,
	recommendationRepo repository.RecommendationRepositoryInterface,
) *AlertsService {
	return &AlertsService{
		occupancyRepo:      occupancyRepo,
		competitorRepo:     competitorRepo,
		recommendationRepo: recommendationRepo,
	}
}

// GetAlerts builds the KPI snapshot for a property and derives alerts.
func (s *AlertsService) GetAlerts(ctx context.Context, propertyID string) (*models.AlertsResponse, error) {
	snapshot, err := s.buildSnapshot(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	alerts := BuildAlerts(snapshot, time.Now().UTC())
	log.Printf("✅ GetAlerts: property=%s alerts=%d", propertyID, len(alerts))

	return &models.AlertsResponse{
		Snapshot: *snapshot,
		Alerts:   alerts,
	}, nil
}

// buildSnapshot gathers the KPI inputs. Absent data stays nil.
func (s *AlertsService) buildSnapshot(ctx context.Context, propertyID string) (*models.KPISnapshot, error) {
	snapshot := &models.KPISnapshot{PropertyID: propertyID}

	history, err := s.occupancyRepo.GetRecent(ctx, propertyID, pricing.OccupancyWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to load occupancy: %w", err)
	}
	if len(history) > 0 {
		sum := 0.0
		for _, row := range history {
			if row.Rate != nil {
				sum += *row.Rate
			}
		}
		avg := sum / float64(len(history))
		snapshot.AvgOccupancy7d = &avg
	}

	index, err := s.competitorRepo.LatestIndex(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load competitor index: %w", err)
	}
	if index != nil {
		ari := index.ARI
		snapshot.LatestARI = &ari
	}

	newestRateAt, err := s.competitorRepo.NewestRateAt(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load newest rate: %w", err)
	}
	snapshot.NewestRateAt = newestRateAt

	latest, err := s.recommendationRepo.GetLatest(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest recommendation: %w", err)
	}
	snapshot.LatestRecommendation = latest

	return snapshot, nil
}

// BuildAlerts derives alerts from a snapshot. Pure: no reads, no clock
// other than the one passed in.
func BuildAlerts(snapshot *models.KPISnapshot, now time.Time) []models.Alert {
	alerts := []models.Alert{}

	if snapshot.AvgOccupancy7d != nil && *snapshot.AvgOccupancy7d < lowOccupancyThreshold {
		alerts = append(alerts, models.Alert{
			Type:     models.AlertLowOccupancy,
			Severity: "warning",
			Message:  fmt.Sprintf("7-day occupancy at %.0f%%, below %.0f%%", *snapshot.AvgOccupancy7d*100, lowOccupancyThreshold*100),
		})
	}

	if snapshot.LatestARI != nil {
		if *snapshot.LatestARI > overpricedARI {
			alerts = append(alerts, models.Alert{
				Type:     models.AlertOverpriced,
				Severity: "warning",
				Message:  fmt.Sprintf("ARI %.2f: priced above comp set", *snapshot.LatestARI),
			})
		} else if *snapshot.LatestARI < underpricedARI {
			alerts = append(alerts, models.Alert{
				Type:     models.AlertUnderpriced,
				Severity: "info",
				Message:  fmt.Sprintf("ARI %.2f: priced below comp set", *snapshot.LatestARI),
			})
		}
	}

	if snapshot.NewestRateAt != nil && now.Sub(*snapshot.NewestRateAt) > staleRateAge {
		alerts = append(alerts, models.Alert{
			Type:     models.AlertStaleRates,
			Severity: "info",
			Message:  fmt.Sprintf("competitor rates last scraped %s", snapshot.NewestRateAt.Format("2006-01-02")),
		})
	}

	if rec := snapshot.LatestRecommendation; rec != nil && rec.BasePrice > 0 {
		change := (float64(rec.SuggestedPrice) - rec.BasePrice) / rec.BasePrice * 100
		if change >= priceOpportunityChange {
			alerts = append(alerts, models.Alert{
				Type:     models.AlertPriceOpportunity,
				Severity: "info",
				Message:  fmt.Sprintf("latest recommendation raises price %.1f%% for %s", change, rec.Date),
			})
		}
	}

	return alerts
}
