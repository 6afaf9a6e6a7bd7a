package format

import "testing"

func TestCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{155, "$155.00"},
		{155.234, "$155.23"},
		{155.235, "$155.24"},
		{1234.5, "$1,234.50"},
		{1234567.891, "$1,234,567.89"},
		{-42.1, "-$42.10"},
		{-0.001, "$0.00"},
	}

	for _, tt := range tests {
		if got := Currency(tt.in); got != tt.want {
			t.Errorf("Currency(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestMoney(t *testing.T) {
	euro := Money("€", 0)
	if got := euro(1999.6); got != "€2,000" {
		t.Errorf("Expected '€2,000', got '%s'", got)
	}
}
