package pricing

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"mariafaz-analytics/models"
)

// Fake repositories. Each returns canned data or a canned error so the
// engine's degradation and persistence behavior can be pinned without a
// database.

type fakeSeasonalityRepo struct {
	rec *models.SeasonalityRecord
	err error
}

func (f *fakeSeasonalityRepo) Upsert(ctx context.Context, rec *models.SeasonalityRecord) error {
	return nil
}

func (f *fakeSeasonalityRepo) GetByMarketMonth(ctx context.Context, marketID string, month int) (*models.SeasonalityRecord, error) {
	return f.rec, f.err
}

type fakeEventRepo struct {
	events []models.EventRecord
	err    error
}

func (f *fakeEventRepo) Create(ctx context.Context, event *models.EventRecord) (*models.EventRecord, error) {
	return event, nil
}

func (f *fakeEventRepo) ListForDate(ctx context.Context, date time.Time) ([]models.EventRecord, error) {
	return f.events, f.err
}

type fakeCompetitorRepo struct {
	index *models.CompetitorIndex
	err   error
}

func (f *fakeCompetitorRepo) LatestIndex(ctx context.Context, propertyID string) (*models.CompetitorIndex, error) {
	return f.index, f.err
}

func (f *fakeCompetitorRepo) UpsertIndex(ctx context.Context, index *models.CompetitorIndex) error {
	return nil
}

func (f *fakeCompetitorRepo) InsertRates(ctx context.Context, rates []models.CompetitorRate) error {
	return nil
}

func (f *fakeCompetitorRepo) NewestRateAt(ctx context.Context, propertyID string) (*time.Time, error) {
	return nil, nil
}

type fakeOccupancyRepo struct {
	history []models.OccupancyRow
	err     error
}

func (f *fakeOccupancyRepo) GetRecent(ctx context.Context, propertyID string, limit int) ([]models.OccupancyRow, error) {
	return f.history, f.err
}

type fakeRecommendationRepo struct {
	store       map[string]*models.PricingRecommendation
	upsertCalls int
	err         error
}

func newFakeRecommendationRepo() *fakeRecommendationRepo {
	return &fakeRecommendationRepo{store: make(map[string]*models.PricingRecommendation)}
}

func (f *fakeRecommendationRepo) Upsert(ctx context.Context, rec *models.PricingRecommendation) error {
	f.upsertCalls++
	if f.err != nil {
		return f.err
	}
	f.store[rec.PropertyID+"/"+rec.Date] = rec
	return nil
}

func (f *fakeRecommendationRepo) List(ctx context.Context, propertyID string, from, to *string) ([]models.PricingRecommendation, error) {
	var recs []models.PricingRecommendation
	for _, rec := range f.store {
		if rec.PropertyID == propertyID {
			recs = append(recs, *rec)
		}
	}
	return recs, nil
}

func (f *fakeRecommendationRepo) GetLatest(ctx context.Context, propertyID string) (*models.PricingRecommendation, error) {
	return nil, nil
}

type engineFixture struct {
	seasonality *fakeSeasonalityRepo
	events      *fakeEventRepo
	competitors *fakeCompetitorRepo
	occupancy   *fakeOccupancyRepo
	recs        *fakeRecommendationRepo
	engine      *Engine
}

// newFixture wires an engine over empty fakes with the clock frozen at
// Monday 2026-01-05 12:00 UTC.
func newFixture() *engineFixture {
	f := &engineFixture{
		seasonality: &fakeSeasonalityRepo{},
		events:      &fakeEventRepo{},
		competitors: &fakeCompetitorRepo{},
		occupancy:   &fakeOccupancyRepo{},
		recs:        newFakeRecommendationRepo(),
	}
	f.engine = NewEngine(f.seasonality, f.events, f.competitors, f.occupancy, f.recs)
	f.engine.now = func() time.Time {
		return time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	}
	return f
}

func TestCalculateMissingDataDefaults(t *testing.T) {
	f := newFixture()

	// 2026-02-04 is a Wednesday, 30 days out: every factor neutral.
	resp, err := f.engine.Calculate(context.Background(), &models.PricingRequest{
		PropertyID: "casa-azul",
		BasePrice:  100,
		TargetDate: "2026-02-04",
	})
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}

	if !resp.Success {
		t.Errorf("Success = false, want true")
	}
	if resp.SuggestedPrice != 100 {
		t.Errorf("SuggestedPrice = %d, want 100", resp.SuggestedPrice)
	}
	if resp.PriceChangePercent != "0.0" {
		t.Errorf("PriceChangePercent = %q, want \"0.0\"", resp.PriceChangePercent)
	}
	if resp.MarketID != DefaultMarket {
		t.Errorf("MarketID = %q, want %q", resp.MarketID, DefaultMarket)
	}

	wantFactors := models.PricingFactors{
		DayOfWeekFactor:   1.0,
		SeasonalityFactor: 1.0,
		EventFactor:       1.0,
		CompetitorFactor:  1.0,
		OccupancyFactor:   1.0,
		LeadTimeFactor:    1.0,
	}
	if resp.Factors != wantFactors {
		t.Errorf("Factors = %+v, want all neutral", resp.Factors)
	}
	if len(resp.RelevantEvents) != 0 {
		t.Errorf("RelevantEvents = %v, want empty", resp.RelevantEvents)
	}
}

func TestCalculateWeekendOnlyDependsOnDayOfWeek(t *testing.T) {
	f := newFixture()

	// Saturday 2026-01-10 with no backing data: only the day-of-week
	// factor moves the price.
	resp, err := f.engine.Calculate(context.Background(), &models.PricingRequest{
		PropertyID: "casa-azul",
		BasePrice:  200,
		TargetDate: "2026-01-10",
	})
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}
	// 200 × 1.25 × 0.92 (5 days lead) = 230
	if resp.SuggestedPrice != 230 {
		t.Errorf("SuggestedPrice = %d, want 230", resp.SuggestedPrice)
	}
	if resp.Factors.DayOfWeekFactor != 1.25 {
		t.Errorf("DayOfWeekFactor = %v, want 1.25", resp.Factors.DayOfWeekFactor)
	}
}

func TestCalculateFullScenario(t *testing.T) {
	f := newFixture()
	f.engine.now = func() time.Time {
		return time.Date(2025, 12, 29, 12, 0, 0, 0, time.UTC) // Monday
	}

	f.seasonality.rec = &models.SeasonalityRecord{
		MarketID: "sintra", Month: 1, Factor: 1.1, WeekendPremium: 0.3,
	}
	f.competitors.index = &models.CompetitorIndex{PropertyID: "casa-azul", ARI: 0.75}
	rate := 0.9
	for i := 0; i < 7; i++ {
		f.occupancy.history = append(f.occupancy.history, models.OccupancyRow{Rate: &rate})
	}

	// Saturday 2026-01-03, 5 days out.
	resp, err := f.engine.Calculate(context.Background(), &models.PricingRequest{
		PropertyID: "casa-azul",
		BasePrice:  100,
		TargetDate: "2026-01-03",
		MarketID:   "sintra",
	})
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}

	want := models.PricingFactors{
		DayOfWeekFactor:   1.30, // max(1.25, 1+0.3)
		SeasonalityFactor: 1.10,
		EventFactor:       1.00,
		CompetitorFactor:  1.10, // ARI 0.75 < 0.8
		OccupancyFactor:   1.15, // mean 0.9
		LeadTimeFactor:    0.92, // 5 days out
	}
	if resp.Factors != want {
		t.Errorf("Factors = %+v, want %+v", resp.Factors, want)
	}
	// 100 × 1.3 × 1.1 × 1.0 × 1.10 × 1.15 × 0.92 = 166.42
	if resp.SuggestedPrice != 166 {
		t.Errorf("SuggestedPrice = %d, want 166", resp.SuggestedPrice)
	}
	if resp.PriceChangePercent != "66.0" {
		t.Errorf("PriceChangePercent = %q, want \"66.0\"", resp.PriceChangePercent)
	}
}

func TestCalculateEventTieBreak(t *testing.T) {
	f := newFixture()
	f.events.events = []models.EventRecord{
		{Name: "street fair", EventType: "market", MarketID: "sintra", ImpactScore: 3},
		{Name: "music festival", EventType: "festival", MarketID: "ALL", ImpactScore: 8},
		{Name: "lisbon marathon", EventType: "sport", MarketID: "lisboa", ImpactScore: 10},
	}

	resp, err := f.engine.Calculate(context.Background(), &models.PricingRequest{
		PropertyID: "casa-azul",
		BasePrice:  100,
		TargetDate: "2026-02-04",
		MarketID:   "sintra",
	})
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}

	// max impact 8 among the two matching events; the lisboa event is out
	if !almostEqual(resp.Factors.EventFactor, 1.36) {
		t.Errorf("EventFactor = %v, want 1.36", resp.Factors.EventFactor)
	}
	if len(resp.RelevantEvents) != 2 {
		t.Fatalf("RelevantEvents = %d entries, want 2", len(resp.RelevantEvents))
	}
	for _, e := range resp.RelevantEvents {
		if e.Name == "lisbon marathon" {
			t.Errorf("event from another market leaked into relevant_events")
		}
	}
}

func TestCalculateRejectsPastDate(t *testing.T) {
	f := newFixture()

	_, err := f.engine.Calculate(context.Background(), &models.PricingRequest{
		PropertyID: "casa-azul",
		BasePrice:  100,
		TargetDate: "2026-01-04", // yesterday relative to the frozen clock
	})
	if err == nil {
		t.Fatal("Calculate accepted a past target_date")
	}
	if !strings.Contains(err.Error(), "must not be in the past") {
		t.Errorf("error = %v, want past-date rejection", err)
	}
	if f.recs.upsertCalls != 0 {
		t.Errorf("rejected request still persisted a recommendation")
	}
}

func TestCalculateRejectsBadDateFormat(t *testing.T) {
	f := newFixture()

	_, err := f.engine.Calculate(context.Background(), &models.PricingRequest{
		PropertyID: "casa-azul",
		BasePrice:  100,
		TargetDate: "04/02/2026",
	})
	if err == nil || !strings.Contains(err.Error(), "target_date") {
		t.Errorf("error = %v, want target_date format rejection", err)
	}
}

func TestCalculateIdempotentUpsert(t *testing.T) {
	f := newFixture()
	req := &models.PricingRequest{
		PropertyID: "casa-azul",
		BasePrice:  100,
		TargetDate: "2026-02-04",
	}

	first, err := f.engine.Calculate(context.Background(), req)
	if err != nil {
		t.Fatalf("first Calculate returned error: %v", err)
	}
	second, err := f.engine.Calculate(context.Background(), req)
	if err != nil {
		t.Fatalf("second Calculate returned error: %v", err)
	}

	if first.SuggestedPrice != second.SuggestedPrice {
		t.Errorf("repeated calculation changed price: %d -> %d", first.SuggestedPrice, second.SuggestedPrice)
	}
	if f.recs.upsertCalls != 2 {
		t.Errorf("upsertCalls = %d, want 2", f.recs.upsertCalls)
	}
	if len(f.recs.store) != 1 {
		t.Errorf("store holds %d rows, want 1 (overwrite, not duplicate)", len(f.recs.store))
	}
}

func TestCalculateDegradesOnFetchFailure(t *testing.T) {
	f := newFixture()
	f.seasonality.err = errors.New("seasonality store down")
	f.events.err = errors.New("event store down")
	f.competitors.err = errors.New("index store down")
	f.occupancy.err = errors.New("occupancy store down")

	resp, err := f.engine.Calculate(context.Background(), &models.PricingRequest{
		PropertyID: "casa-azul",
		BasePrice:  100,
		TargetDate: "2026-02-04",
	})
	if err != nil {
		t.Fatalf("Calculate should degrade, not fail: %v", err)
	}
	if resp.SuggestedPrice != 100 {
		t.Errorf("SuggestedPrice = %d, want 100 with all factors degraded", resp.SuggestedPrice)
	}
}

func TestCalculatePropagatesPersistFailure(t *testing.T) {
	f := newFixture()
	f.recs.err = errors.New("connection reset")

	_, err := f.engine.Calculate(context.Background(), &models.PricingRequest{
		PropertyID: "casa-azul",
		BasePrice:  100,
		TargetDate: "2026-02-04",
	})
	if err == nil {
		t.Fatal("Calculate swallowed a persistence failure")
	}
	if !strings.Contains(err.Error(), "failed to persist recommendation") {
		t.Errorf("error = %v, want persistence failure", err)
	}
}
