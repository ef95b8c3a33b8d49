package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"mariafaz-analytics/service"
)

// ReportController handles HTTP requests for report exports
type ReportController struct {
	reportService *service.ReportService
}

// NewReportController creates a new ReportController
func NewReportController(reportService *service.ReportService) *ReportController {
	return &ReportController{
		reportService: reportService,
	}
}

// Export handles POST /admin/reports/export
// Example request:
// {
//   "property_id": "casa-azul",
//   "from": "2026-09-01",
//   "to": "2026-09-30"
// }
func (c *ReportController) Export(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Export: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ Export: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		PropertyID string `json:"property_id"`
		From       string `json:"from"`
		To         string `json:"to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Export: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if req.PropertyID == "" {
		http.Error(w, "property_id is required", http.StatusBadRequest)
		return
	}

	var from, to *string
	if req.From != "" {
		if _, err := time.Parse("2006-01-02", req.From); err != nil {
			http.Error(w, "Invalid from date format. Use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		from = &req.From
	}
	if req.To != "" {
		if _, err := time.Parse("2006-01-02", req.To); err != nil {
			http.Error(w, "Invalid to date format. Use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		to = &req.To
	}

	ctx := context.Background()
	result, err := c.reportService.Export(ctx, req.PropertyID, from, to)
	if err != nil {
		log.Printf("❌ Export: Error exporting report: %v", err)
		errMsg := err.Error()
		if strings.Contains(errMsg, "not configured") {
			http.Error(w, errMsg, http.StatusServiceUnavailable)
			return
		}
		if strings.Contains(errMsg, "no recommendations found") {
			http.Error(w, errMsg, http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to export report: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Export: Report with %d rows uploaded (id=%s)", result.Rows, result.FileID)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Printf("❌ Export: Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}
