package router

import (
	"net/http"
	"strings"

	"mariafaz-analytics/app/controller"
)

type Controllers struct {
	Pricing    *controller.PricingController
	MarketData *controller.MarketDataController
	Competitor *controller.CompetitorController
	Alert      *controller.AlertController
	Report     *controller.ReportController
	Property   *controller.PropertyController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Pricing routes
	http.HandleFunc("/admin/pricing/calculate", controllers.Pricing.Calculate)
	http.HandleFunc("/admin/pricing/recommendations", controllers.Pricing.ListRecommendations)

	// Market data routes
	http.HandleFunc("/admin/markets/seasonality", controllers.MarketData.UpsertSeasonality)
	http.HandleFunc("/admin/markets/events", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			controllers.MarketData.CreateEvent(w, r)
		} else if r.Method == http.MethodGet {
			controllers.MarketData.ListEvents(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Competitor scraping
	http.HandleFunc("/admin/competitor-rates/scrape", controllers.Competitor.Scrape)

	// KPI alerts
	http.HandleFunc("/admin/alerts", controllers.Alert.GetAlerts)

	// Report export
	http.HandleFunc("/admin/reports/export", controllers.Report.Export)

	// Property routes
	http.HandleFunc("/admin/properties", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			controllers.Property.Create(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Property by ID - handles GET /admin/properties/:id and the photo sub-resource
	http.HandleFunc("/admin/properties/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/photo") {
			if r.Method == http.MethodPost {
				controllers.Property.UploadPhoto(w, r)
			} else if r.Method == http.MethodGet {
				controllers.Property.GetPhoto(w, r)
			} else {
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			}
			return
		}

		if r.Method == http.MethodGet {
			controllers.Property.Get(w, r)
			return
		}
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	})
}
