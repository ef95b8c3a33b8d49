package pricing

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"mariafaz-analytics/models"
	"mariafaz-analytics/repository"
)

// Engine computes dynamic price recommendations. It fans out one read
// per factor store, degrades any failed or empty read to a neutral
// factor, composes the price and persists the result.
type Engine struct {
	seasonality     repository.SeasonalityRepositoryInterface
	events          repository.EventRepositoryInterface
	competitors     repository.CompetitorRepositoryInterface
	occupancy       repository.OccupancyRepositoryInterface
	recommendations repository.RecommendationRepositoryInterface
	now             func() time.Time
}

// NewEngine creates a new pricing Engine
func NewEngine(
	seasonality repository.SeasonalityRepositoryInterface,
	events repository.EventRepositoryInterface,
	competitors repository.CompetitorRepositoryInterface,
	occupancy repository.OccupancyRepositoryInterface,
	recommendations repository.RecommendationRepositoryInterface,
) *Engine {
	return &Engine{
		seasonality:     seasonality,
		events:          events,
		competitors:     competitors,
		occupancy:       occupancy,
		recommendations: recommendations,
		now:             time.Now,
	}
}

// factorInputs carries whatever the four stores returned. Nil / empty
// fields mean the data was absent or the fetch failed; the resolvers
// turn those into neutral factors.
type factorInputs struct {
	seasonality *models.SeasonalityRecord
	events      []models.EventRecord
	ari         *float64
	occupancy   []models.OccupancyRow
}

// Calculate runs one pricing computation for a request and upserts the
// resulting recommendation keyed by (property_id, date).
func (e *Engine) Calculate(ctx context.Context, req *models.PricingRequest) (*models.PricingResponse, error) {
	targetDate, err := time.Parse("2006-01-02", req.TargetDate)
	if err != nil {
		return nil, fmt.Errorf("invalid target_date format, expected YYYY-MM-DD")
	}

	now := e.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if targetDate.Before(today) {
		return nil, fmt.Errorf("target_date must not be in the past")
	}

	marketID := req.MarketID
	if marketID == "" {
		marketID = DefaultMarket
	}

	inputs := e.collectInputs(ctx, req.PropertyID, marketID, targetDate)

	matched := MatchEvents(inputs.events, marketID)
	eventFactor, relevantEvents := EventFactor(matched)

	factors := models.PricingFactors{
		DayOfWeekFactor:   DayOfWeekFactor(targetDate, inputs.seasonality),
		SeasonalityFactor: SeasonalityFactor(inputs.seasonality),
		EventFactor:       eventFactor,
		CompetitorFactor:  CompetitorFactor(inputs.ari),
		OccupancyFactor:   OccupancyFactor(inputs.occupancy),
		LeadTimeFactor:    LeadTimeFactor(DaysUntil(targetDate, now)),
	}

	suggestedPrice, changePercent := ComposePrice(req.BasePrice, factors)
	log.Printf("💰 Calculate: property=%s date=%s base=%.2f suggested=%d (%s%%)",
		req.PropertyID, req.TargetDate, req.BasePrice, suggestedPrice, changePercent)

	if relevantEvents == nil {
		relevantEvents = []models.RelevantEvent{}
	}

	rec := &models.PricingRecommendation{
		PropertyID:     req.PropertyID,
		Date:           req.TargetDate,
		BasePrice:      req.BasePrice,
		SuggestedPrice: suggestedPrice,
		Factors:        factors,
		RelevantEvents: relevantEvents,
		ComputedAt:     now,
	}
	if err := e.recommendations.Upsert(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to persist recommendation: %w", err)
	}

	return &models.PricingResponse{
		Success:            true,
		BasePrice:          req.BasePrice,
		SuggestedPrice:     suggestedPrice,
		PriceChangePercent: changePercent,
		Factors:            factors,
		RelevantEvents:     relevantEvents,
		MarketID:           marketID,
		TargetDate:         req.TargetDate,
	}, nil
}

// collectInputs issues the four independent reads concurrently and joins
// them. A failed read logs a warning and leaves its input absent; it
// never aborts the calculation.
func (e *Engine) collectInputs(ctx context.Context, propertyID, marketID string, targetDate time.Time) factorInputs {
	var inputs factorInputs
	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		rec, err := e.seasonality.GetByMarketMonth(ctx, marketID, int(targetDate.Month()))
		if err != nil {
			log.Printf("⚠️ collectInputs: seasonality fetch failed for %s/%d: %v", marketID, int(targetDate.Month()), err)
			return
		}
		inputs.seasonality = rec
	}()

	go func() {
		defer wg.Done()
		events, err := e.events.ListForDate(ctx, targetDate)
		if err != nil {
			log.Printf("⚠️ collectInputs: event fetch failed for %s: %v", targetDate.Format("2006-01-02"), err)
			return
		}
		inputs.events = events
	}()

	go func() {
		defer wg.Done()
		index, err := e.competitors.LatestIndex(ctx, propertyID)
		if err != nil {
			log.Printf("⚠️ collectInputs: competitor index fetch failed for %s: %v", propertyID, err)
			return
		}
		if index != nil {
			ari := index.ARI
			inputs.ari = &ari
		}
	}()

	go func() {
		defer wg.Done()
		history, err := e.occupancy.GetRecent(ctx, propertyID, OccupancyWindow)
		if err != nil {
			log.Printf("⚠️ collectInputs: occupancy fetch failed for %s: %v", propertyID, err)
			return
		}
		inputs.occupancy = history
	}()

	wg.Wait()
	return inputs
}
