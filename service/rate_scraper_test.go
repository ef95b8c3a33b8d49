package service

import (
	"testing"

	"mariafaz-analytics/models"
)

func TestParseNightlyRate(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   float64
		wantOK bool
	}{
		{"plain euro prefix", "€ 120", 120, true},
		{"euro suffix with noise", "120 € / noite", 120, true},
		{"dollar with words", "Total: $99 per night", 99, true},
		{"thousands separator", "1.250", 1250, true},
		{"thousands and decimal", "1.250,50", 1250.50, true},
		{"comma decimal", "89,90", 89.90, true},
		{"short decimal", "12.5", 12.5, true},
		{"no digits", "price on request", 0, false},
		{"empty", "", 0, false},
		{"zero is not a rate", "€ 0", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseNightlyRate(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("ParseNightlyRate(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseNightlyRate(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestComputeARI(t *testing.T) {
	rates := func(values ...float64) []models.CompetitorRate {
		var out []models.CompetitorRate
		for _, v := range values {
			out = append(out, models.CompetitorRate{NightlyRate: v})
		}
		return out
	}

	tests := []struct {
		name      string
		basePrice float64
		rates     []models.CompetitorRate
		want      float64
	}{
		{"priced above market", 120, rates(100, 100, 100), 1.2},
		{"priced below market", 80, rates(100), 0.8},
		{"at market", 100, rates(90, 110), 1.0},
		{"no rates defaults neutral", 100, nil, 1.0},
		{"zero base defaults neutral", 0, rates(100), 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeARI(tt.basePrice, tt.rates)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("ComputeARI = %v, want %v", got, tt.want)
			}
		})
	}
}
