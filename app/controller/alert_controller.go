package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"mariafaz-analytics/service"
)

// AlertController handles HTTP requests for KPI alerts
type AlertController struct {
	alertsService *service.AlertsService
}

// NewAlertController creates a new AlertController
func NewAlertController(alertsService *service.AlertsService) *AlertController {
	return &AlertController{
		alertsService: alertsService,
	}
}

// GetAlerts handles GET /admin/alerts?property_id=
func (c *AlertController) GetAlerts(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetAlerts: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ GetAlerts: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	propertyID := r.URL.Query().Get("property_id")
	if propertyID == "" {
		http.Error(w, "property_id parameter is required", http.StatusBadRequest)
		return
	}

	ctx := context.Background()
	response, err := c.alertsService.GetAlerts(ctx, propertyID)
	if err != nil {
		log.Printf("❌ GetAlerts: Error building alerts: %v", err)
		http.Error(w, fmt.Sprintf("Failed to build alerts: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("❌ GetAlerts: Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}
