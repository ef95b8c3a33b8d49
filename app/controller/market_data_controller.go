package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"mariafaz-analytics/models"
	"mariafaz-analytics/pricing"
	"mariafaz-analytics/repository"
)

// MarketDataController handles HTTP requests for seasonality and events
type MarketDataController struct {
	seasonalityRepo repository.SeasonalityRepositoryInterface
	eventRepo       repository.EventRepositoryInterface
}

// NewMarketDataController creates a new MarketDataController
func NewMarketDataController(
	seasonalityRepo repository.SeasonalityRepositoryInterface,
	eventRepo repository.EventRepositoryInterface,
) *MarketDataController {
	return &MarketDataController{
		seasonalityRepo: seasonalityRepo,
		eventRepo:       eventRepo,
	}
}

// UpsertSeasonality handles PUT /admin/markets/seasonality
// Seasonality factors are untrusted data-entry input, so the range checks
// happen here at ingestion; calculation passes stored values through.
func (c *MarketDataController) UpsertSeasonality(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 UpsertSeasonality: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPut {
		log.Printf("❌ UpsertSeasonality: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.SeasonalityUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ UpsertSeasonality: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if req.MarketID == "" {
		http.Error(w, "market_id is required", http.StatusBadRequest)
		return
	}
	if req.Month < 1 || req.Month > 12 {
		http.Error(w, "month must be between 1 and 12", http.StatusBadRequest)
		return
	}
	if req.Factor <= 0 {
		http.Error(w, "factor must be greater than 0", http.StatusBadRequest)
		return
	}
	if req.WeekendPremium < 0 {
		http.Error(w, "weekend_premium must not be negative", http.StatusBadRequest)
		return
	}

	rec := &models.SeasonalityRecord{
		MarketID:       req.MarketID,
		Month:          req.Month,
		Factor:         req.Factor,
		WeekendPremium: req.WeekendPremium,
	}

	ctx := context.Background()
	if err := c.seasonalityRepo.Upsert(ctx, rec); err != nil {
		log.Printf("❌ UpsertSeasonality: Error saving seasonality: %v", err)
		http.Error(w, fmt.Sprintf("Failed to save seasonality: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ UpsertSeasonality: Saved market=%s month=%d", req.MarketID, req.Month)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(rec); err != nil {
		log.Printf("❌ UpsertSeasonality: Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// CreateEvent handles POST /admin/markets/events
func (c *MarketDataController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateEvent: Received %s request to %s", r.Method, r.URL.Path)

	var req models.EventCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ CreateEvent: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if req.MarketID == "" || req.Name == "" {
		http.Error(w, "market_id and name are required", http.StatusBadRequest)
		return
	}
	if req.ImpactScore < 1 || req.ImpactScore > 10 {
		http.Error(w, "impact_score must be between 1 and 10", http.StatusBadRequest)
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		http.Error(w, "Invalid start_date format. Use YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		http.Error(w, "Invalid end_date format. Use YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if endDate.Before(startDate) {
		http.Error(w, "end_date must not be before start_date", http.StatusBadRequest)
		return
	}

	event := &models.EventRecord{
		MarketID:    req.MarketID,
		Name:        req.Name,
		EventType:   req.EventType,
		StartDate:   startDate,
		EndDate:     endDate,
		ImpactScore: req.ImpactScore,
	}

	ctx := context.Background()
	created, err := c.eventRepo.Create(ctx, event)
	if err != nil {
		log.Printf("❌ CreateEvent: Error saving event: %v", err)
		http.Error(w, fmt.Sprintf("Failed to save event: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ CreateEvent: Saved event id=%d name=%s", created.ID, created.Name)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		log.Printf("❌ CreateEvent: Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListEvents handles GET /admin/markets/events?market_id=&date=YYYY-MM-DD
// Returns the events that would influence a calculation for that
// market/date, matched the same way the pricing engine matches them.
func (c *MarketDataController) ListEvents(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListEvents: Received %s request to %s", r.Method, r.URL.Path)

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		http.Error(w, "date parameter is required", http.StatusBadRequest)
		return
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		http.Error(w, "Invalid date format. Use YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	marketID := r.URL.Query().Get("market_id")
	if marketID == "" {
		marketID = pricing.DefaultMarket
	}

	ctx := context.Background()
	events, err := c.eventRepo.ListForDate(ctx, date)
	if err != nil {
		log.Printf("❌ ListEvents: Error fetching events: %v", err)
		http.Error(w, fmt.Sprintf("Failed to fetch events: %v", err), http.StatusInternalServerError)
		return
	}

	matched := pricing.MatchEvents(events, marketID)
	if matched == nil {
		matched = []models.EventRecord{}
	}

	log.Printf("✅ ListEvents: %d events match market=%s date=%s", len(matched), marketID, dateStr)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(models.EventListResponse{Events: matched}); err != nil {
		log.Printf("❌ ListEvents: Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}
