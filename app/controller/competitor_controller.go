package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"mariafaz-analytics/models"
	"mariafaz-analytics/service"
)

// CompetitorController handles HTTP requests for comp-set scraping
type CompetitorController struct {
	scraper *service.RateScraperService
}

// NewCompetitorController creates a new CompetitorController
func NewCompetitorController(scraper *service.RateScraperService) *CompetitorController {
	return &CompetitorController{
		scraper: scraper,
	}
}

// Scrape handles POST /admin/competitor-rates/scrape
// Example request:
// {
//   "property_id": "casa-azul",
//   "urls": ["https://example.com/listing/1", "https://example.com/listing/2"]
// }
func (c *CompetitorController) Scrape(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Scrape: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ Scrape: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.ScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Scrape: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if req.PropertyID == "" {
		http.Error(w, "property_id is required", http.StatusBadRequest)
		return
	}
	if len(req.URLs) == 0 {
		http.Error(w, "urls must not be empty", http.StatusBadRequest)
		return
	}

	ctx := context.Background()
	result, err := c.scraper.RefreshIndex(ctx, req.PropertyID, req.URLs)
	if err != nil {
		log.Printf("❌ Scrape: Error refreshing index: %v", err)
		if strings.Contains(err.Error(), "property not found") {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to scrape comp set: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Scrape: property=%s stored=%d ari=%.3f", req.PropertyID, result.RatesStored, result.ARI)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Printf("❌ Scrape: Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}
