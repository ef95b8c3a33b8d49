package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"mariafaz-analytics/models"
	"mariafaz-analytics/pricing"
	"mariafaz-analytics/repository"
)

// PricingController handles HTTP requests for price calculations
type PricingController struct {
	engine             *pricing.Engine
	recommendationRepo repository.RecommendationRepositoryInterface
}

// NewPricingController creates a new PricingController
func NewPricingController(engine *pricing.Engine, recommendationRepo repository.RecommendationRepositoryInterface) *PricingController {
	return &PricingController{
		engine:             engine,
		recommendationRepo: recommendationRepo,
	}
}

// Calculate handles POST /admin/pricing/calculate
// Example request:
// {
//   "property_id": "casa-azul",
//   "base_price": 100,
//   "target_date": "2026-09-12",
//   "market_id": "sintra"
// }
// Example response:
// {
//   "success": true,
//   "base_price": 100,
//   "suggested_price": 143,
//   "price_change_percent": "43.0",
//   "factors": {"day_of_week_factor": 1.3, ...},
//   "relevant_events": [{"name": "Festival", "event_type": "festival", "impact_score": 8}],
//   "market_id": "sintra",
//   "target_date": "2026-09-12"
// }
func (c *PricingController) Calculate(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Calculate: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ Calculate: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.PricingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Calculate: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	// base_price must be present and positive; an absent field decodes to 0
	if req.PropertyID == "" || req.BasePrice <= 0 || req.TargetDate == "" {
		log.Printf("❌ Calculate: Missing required fields: property_id=%q base_price=%v target_date=%q",
			req.PropertyID, req.BasePrice, req.TargetDate)
		http.Error(w, "Missing required fields: property_id, base_price, target_date", http.StatusBadRequest)
		return
	}

	ctx := context.Background()
	response, err := c.engine.Calculate(ctx, &req)
	if err != nil {
		log.Printf("❌ Calculate: Error calculating price: %v", err)
		if strings.Contains(err.Error(), "target_date") {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Calculate: property=%s date=%s suggested=%d", req.PropertyID, req.TargetDate, response.SuggestedPrice)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("❌ Calculate: Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListRecommendations handles GET /admin/pricing/recommendations?property_id=&from=&to=
func (c *PricingController) ListRecommendations(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListRecommendations: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ ListRecommendations: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	propertyID := r.URL.Query().Get("property_id")
	if propertyID == "" {
		http.Error(w, "property_id parameter is required", http.StatusBadRequest)
		return
	}

	var from, to *string
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr != "" {
		if _, err := time.Parse("2006-01-02", fromStr); err != nil {
			http.Error(w, "Invalid from date format. Use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		from = &fromStr
	}
	if toStr != "" {
		if _, err := time.Parse("2006-01-02", toStr); err != nil {
			http.Error(w, "Invalid to date format. Use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		to = &toStr
	}

	ctx := context.Background()
	recs, err := c.recommendationRepo.List(ctx, propertyID, from, to)
	if err != nil {
		log.Printf("❌ ListRecommendations: Error fetching recommendations: %v", err)
		http.Error(w, fmt.Sprintf("Failed to fetch recommendations: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ ListRecommendations: Fetched %d recommendations for property %s", len(recs), propertyID)

	if recs == nil {
		recs = []models.PricingRecommendation{}
	}
	response := models.RecommendationListResponse{Recommendations: recs}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("❌ ListRecommendations: Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}
