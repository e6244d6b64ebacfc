// Package advisory serves locally-held reference data for the console
// commands: indicative market prices, a weather outlook, and rural loan
// schemes. The figures are placeholders until live data feeds are wired in;
// callers should present them as general guidance, not quotes.
package advisory

import (
	"fmt"
	"strings"
)

// MarketPrice is an indicative commodity price.
type MarketPrice struct {
	Commodity string
	Price     string
	Trend     string
}

// Weather is the current weather outlook for a region.
type Weather struct {
	Location    string
	Temperature string
	Humidity    string
	Condition   string
	Forecast    string
	WindSpeed   string
}

// LoanScheme is one rural credit scheme with its indicative terms.
type LoanScheme struct {
	Name      string
	Rate      string
	MaxAmount string
}

// DefaultLocation is the region reported when the caller does not name one.
const DefaultLocation = "Karnataka"

// TODO: replace the static tables with live agricultural market and weather
// feeds once access is arranged.

// MarketPrices returns the indicative commodity price table.
func MarketPrices() []MarketPrice {
	return []MarketPrice{
		{Commodity: "Rice", Price: "₹2,200/quintal", Trend: "stable"},
		{Commodity: "Wheat", Price: "₹2,100/quintal", Trend: "rising"},
		{Commodity: "Pulses", Price: "₹8,500/quintal", Trend: "falling"},
		{Commodity: "Vegetables", Price: "₹40/kg", Trend: "stable"},
	}
}

// CurrentWeather returns the weather outlook for location. An empty location
// defaults to [DefaultLocation].
func CurrentWeather(location string) Weather {
	if location == "" {
		location = DefaultLocation
	}
	return Weather{
		Location:    location,
		Temperature: "28°C",
		Humidity:    "65%",
		Condition:   "Partly Cloudy",
		Forecast:    "Light rain expected in next 2 days",
		WindSpeed:   "12 km/h",
	}
}

// LoanSchemes returns the rural credit scheme table.
func LoanSchemes() []LoanScheme {
	return []LoanScheme{
		{Name: "SHG Loans", Rate: "7.5%", MaxAmount: "₹50,000"},
		{Name: "Kisan Credit Card", Rate: "9.0%", MaxAmount: "₹3,00,000"},
		{Name: "Agricultural Loans", Rate: "8.5%", MaxAmount: "₹10,00,000"},
		{Name: "MSME Loans", Rate: "11.0%", MaxAmount: "₹25,00,000"},
	}
}

// FormatMarketPrices renders the price table for the console.
func FormatMarketPrices(prices []MarketPrice) string {
	var b strings.Builder
	b.WriteString("Market prices (indicative):\n")
	for _, p := range prices {
		fmt.Fprintf(&b, "  %-12s %-16s (%s)\n", p.Commodity, p.Price, p.Trend)
	}
	b.WriteString("Actual prices vary by mandi; check your local market.")
	return b.String()
}

// FormatWeather renders the weather outlook for the console.
func FormatWeather(w Weather) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Weather for %s:\n", w.Location)
	fmt.Fprintf(&b, "  %s, %s, humidity %s, wind %s\n", w.Condition, w.Temperature, w.Humidity, w.WindSpeed)
	fmt.Fprintf(&b, "  Forecast: %s", w.Forecast)
	return b.String()
}

// FormatLoanSchemes renders the loan scheme table for the console.
func FormatLoanSchemes(schemes []LoanScheme) string {
	var b strings.Builder
	b.WriteString("Loan schemes (indicative):\n")
	for _, s := range schemes {
		fmt.Fprintf(&b, "  %-20s rate %-6s up to %s\n", s.Name, s.Rate, s.MaxAmount)
	}
	b.WriteString("Terms depend on the lender; visit your nearest branch for details.")
	return b.String()
}
