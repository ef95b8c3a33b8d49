package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"mariafaz-analytics/models"
	"mariafaz-analytics/repository"
	"mariafaz-analytics/utils"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

const (
	scrapeDelayMs    = 1500
	scrapeRetries    = 3
	scrapeTimeout    = 2 * time.Minute
	renderSettle     = 4 * time.Second
	acceptLanguage   = "pt-PT,pt;q=0.9,en;q=0.8"
	scraperUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// RateScraperService collects competitor nightly rates with a headless
// browser and refreshes the per-property ARI.
type RateScraperService struct {
	competitorRepo repository.CompetitorRepositoryInterface
	propertyRepo   repository.PropertyRepositoryInterface
	rateLimiter    *utils.RateLimiter
}

// NewRateScraperService creates a new RateScraperService
func NewRateScraperService(
	competitorRepo repository.CompetitorRepositoryInterface,
	propertyRepo repository.PropertyRepositoryInterface,
) *RateScraperService {
	return &RateScraperService{
		competitorRepo: competitorRepo,
		propertyRepo:   propertyRepo,
		rateLimiter:    utils.NewRateLimiter(scrapeDelayMs),
	}
}

// detectChromePath detects the path to Chrome/Chromium executable.
// Checks CHROME_PATH env var first, then common installation paths.
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// newContext creates a fresh chromedp context (one browser, one tab at a time)
func (s *RateScraperService) newContext() (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(scraperUserAgent),
		chromedp.WindowSize(1280, 900),
	)
	if chromePath := detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	cancel := func() {
		cancelCtx()
		cancelAlloc()
	}
	return ctx, cancel
}

// RefreshIndex scrapes the comp-set URLs for a property, stores the
// collected rates and recomputes the property's ARI.
func (s *RateScraperService) RefreshIndex(ctx context.Context, propertyID string, urls []string) (*models.ScrapeResponse, error) {
	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	rates, err := s.scrapeCompSet(propertyID, urls)
	if err != nil {
		return nil, err
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("no competitor rates collected from %d urls", len(urls))
	}

	if err := s.competitorRepo.InsertRates(ctx, rates); err != nil {
		return nil, err
	}

	ari := ComputeARI(property.BasePrice, rates)
	index := &models.CompetitorIndex{
		PropertyID: propertyID,
		ARI:        ari,
		ComputedAt: time.Now().UTC(),
	}
	if err := s.competitorRepo.UpsertIndex(ctx, index); err != nil {
		return nil, err
	}

	log.Printf("✅ RefreshIndex: property=%s rates=%d ari=%.3f", propertyID, len(rates), ari)
	return &models.ScrapeResponse{
		PropertyID:  propertyID,
		RatesStored: len(rates),
		ARI:         ari,
		Rates:       rates,
	}, nil
}

// scrapeCompSet visits each comp-set URL sequentially and extracts the
// listing name and nightly rate. A failed page is skipped, not fatal.
func (s *RateScraperService) scrapeCompSet(propertyID string, urls []string) ([]models.CompetitorRate, error) {
	ctx, cancel := s.newContext()
	defer cancel()

	ctx, cancelTimeout := context.WithTimeout(ctx, scrapeTimeout)
	defer cancelTimeout()

	var rates []models.CompetitorRate
	scrapedAt := time.Now().UTC()

	for _, url := range urls {
		s.rateLimiter.Wait()

		var extracted struct {
			Name  string `json:"name"`
			Price string `json:"price"`
		}
		err := utils.RetryWithBackoff(scrapeRetries, func() error {
			return chromedp.Run(ctx,
				network.Enable(),
				network.SetExtraHTTPHeaders(network.Headers{"Accept-Language": acceptLanguage}),
				chromedp.Navigate(url),
				chromedp.Sleep(renderSettle), // give JS time to render
				chromedp.Evaluate(listingExtractJS, &extracted),
			)
		})
		if err != nil {
			log.Printf("❌ scrapeCompSet: page failed, skipping %s: %v", url, err)
			continue
		}

		rate, ok := ParseNightlyRate(extracted.Price)
		if !ok {
			log.Printf("⚠️ scrapeCompSet: no parseable rate on %s (got %q)", url, extracted.Price)
			continue
		}
		name := extracted.Name
		if name == "" {
			name = url
		}

		rates = append(rates, models.CompetitorRate{
			PropertyID:     propertyID,
			CompetitorName: name,
			NightlyRate:    rate,
			ScrapedAt:      scrapedAt,
		})
		log.Printf("💰 scrapeCompSet: %s -> %.2f/night", name, rate)
	}

	return rates, nil
}

// listingExtractJS pulls the listing title and the first price-looking
// string out of a rendered listing page.
const listingExtractJS = `
	(function() {
		var name = '';
		var h1 = document.querySelector('h1');
		if (h1) name = h1.innerText.trim();

		var price = '';
		var selectors = ['[data-testid*="price"]', '[class*="price"]', 'span[aria-label*="night"]'];
		for (var i = 0; i < selectors.length && !price; i++) {
			var nodes = document.querySelectorAll(selectors[i]);
			for (var j = 0; j < nodes.length; j++) {
				var text = nodes[j].innerText || '';
				if (/\d/.test(text)) { price = text.trim(); break; }
			}
		}
		return {name: name, price: price};
	})()
`

// ParseNightlyRate extracts a numeric nightly rate from scraped text
// like "€ 120", "120 € / noite" or "1.250,50". European formatting is
// assumed: dot thousands separator, comma decimal separator.
func ParseNightlyRate(text string) (float64, bool) {
	var b strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	raw := b.String()
	if raw == "" {
		return 0, false
	}

	if strings.Contains(raw, ",") {
		raw = strings.ReplaceAll(raw, ".", "")
		raw = strings.Replace(raw, ",", ".", 1)
	} else if strings.Count(raw, ".") > 1 {
		raw = strings.ReplaceAll(raw, ".", "")
	} else if idx := strings.Index(raw, "."); idx >= 0 && len(raw)-idx-1 == 3 {
		// A lone dot with exactly three trailing digits is a thousands separator.
		raw = strings.ReplaceAll(raw, ".", "")
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value <= 0 {
		return 0, false
	}
	return value, true
}

// ComputeARI relates a property's base price to the mean competitor
// nightly rate. >1 means priced above market.
func ComputeARI(basePrice float64, rates []models.CompetitorRate) float64 {
	if len(rates) == 0 || basePrice <= 0 {
		return 1.0
	}
	sum := 0.0
	for _, r := range rates {
		sum += r.NightlyRate
	}
	mean := sum / float64(len(rates))
	if mean <= 0 {
		return 1.0
	}
	return basePrice / mean
}
