package utils

import "testing"

func TestFormatEUR(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "€0"},
		{7, "€7"},
		{999, "€999"},
		{1000, "€1.000"},
		{1250, "€1.250"},
		{12500, "€12.500"},
		{1234567, "€1.234.567"},
		{-1250, "-€1.250"},
		{-7, "-€7"},
	}

	for _, tt := range tests {
		if got := FormatEUR(tt.amount); got != tt.want {
			t.Errorf("FormatEUR(%d) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}
