package app

import (
	"fmt"
	"log"
	"os"

	"mariafaz-analytics/app/controller"
	"mariafaz-analytics/app/router"
	"mariafaz-analytics/db"
	"mariafaz-analytics/pricing"
	"mariafaz-analytics/repository"
	"mariafaz-analytics/service"
)

// Initialize initializes the application
func Initialize() error {
	// Initialize database connection
	if err := db.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize repositories
	seasonalityRepo := repository.NewSeasonalityRepository()
	eventRepo := repository.NewEventRepository()
	competitorRepo := repository.NewCompetitorRepository()
	occupancyRepo := repository.NewOccupancyRepository()
	recommendationRepo := repository.NewRecommendationRepository()
	propertyRepo := repository.NewPropertyRepository()

	// Pricing engine
	engine := pricing.NewEngine(seasonalityRepo, eventRepo, competitorRepo, occupancyRepo, recommendationRepo)

	// Services
	scraper := service.NewRateScraperService(competitorRepo, propertyRepo)
	alertsService := service.NewAlertsService(occupancyRepo, competitorRepo, recommendationRepo)

	// Drive export is optional: without credentials the export endpoint
	// reports itself as not configured instead of blocking startup.
	var driveService service.DriveServiceInterface
	credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	if credentialsPath != "" {
		ds, err := service.NewDriveService(credentialsPath, os.Getenv("DRIVE_REPORTS_FOLDER_ID"))
		if err != nil {
			return err
		}
		driveService = ds
	} else {
		log.Printf("⚠️ GOOGLE_APPLICATION_CREDENTIALS not set, report export disabled")
	}
	reportService := service.NewReportService(recommendationRepo, driveService)

	// Create controllers
	controllers := &router.Controllers{
		Pricing:    controller.NewPricingController(engine, recommendationRepo),
		MarketData: controller.NewMarketDataController(seasonalityRepo, eventRepo),
		Competitor: controller.NewCompetitorController(scraper),
		Alert:      controller.NewAlertController(alertsService),
		Report:     controller.NewReportController(reportService),
		Property:   controller.NewPropertyController(propertyRepo),
	}

	// Setup routes using standard http router
	router.SetupRoutes(controllers)

	return nil
}
