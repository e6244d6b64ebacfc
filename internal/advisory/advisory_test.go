package advisory_test

import (
	"strings"
	"testing"

	"github.com/ruralconnect/sahayak/internal/advisory"
)

func TestMarketPricesTable(t *testing.T) {
	t.Parallel()

	prices := advisory.MarketPrices()
	if len(prices) != 4 {
		t.Fatalf("got %d commodities, want 4", len(prices))
	}
	if prices[0].Commodity != "Rice" || prices[0].Price != "₹2,200/quintal" {
		t.Errorf("first row = %+v", prices[0])
	}

	out := advisory.FormatMarketPrices(prices)
	for _, want := range []string{"Rice", "Wheat", "Pulses", "Vegetables", "rising", "falling"} {
		if !strings.Contains(out, want) {
			t.Errorf("formatted output missing %q:\n%s", want, out)
		}
	}
}

func TestCurrentWeatherDefaultsLocation(t *testing.T) {
	t.Parallel()

	w := advisory.CurrentWeather("")
	if w.Location != advisory.DefaultLocation {
		t.Errorf("location = %q, want %q", w.Location, advisory.DefaultLocation)
	}
	out := advisory.FormatWeather(advisory.CurrentWeather("Mandya"))
	if !strings.Contains(out, "Mandya") || !strings.Contains(out, "Forecast:") {
		t.Errorf("formatted output:\n%s", out)
	}
}

func TestLoanSchemesTable(t *testing.T) {
	t.Parallel()

	schemes := advisory.LoanSchemes()
	if len(schemes) != 4 {
		t.Fatalf("got %d schemes, want 4", len(schemes))
	}
	out := advisory.FormatLoanSchemes(schemes)
	for _, want := range []string{"SHG Loans", "Kisan Credit Card", "7.5%", "₹25,00,000"} {
		if !strings.Contains(out, want) {
			t.Errorf("formatted output missing %q:\n%s", want, out)
		}
	}
}
