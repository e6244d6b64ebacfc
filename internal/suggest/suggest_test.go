package suggest_test

import (
	"testing"

	"github.com/ruralconnect/sahayak/internal/i18n"
	"github.com/ruralconnect/sahayak/internal/suggest"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text string
		want i18n.Category
	}{
		{"What about rice prices?", i18n.CategoryMarket},
		{"How is the MARKET today", i18n.CategoryMarket},
		{"Will it rain tomorrow?", i18n.CategoryWeather},
		{"weather update please", i18n.CategoryWeather},
		{"How do I get a loan", i18n.CategoryLoan},
		{"kisan credit card details", i18n.CategoryLoan},
		{"Tell me about sowing", i18n.CategoryDefault},
		{"", i18n.CategoryDefault},
	}
	for _, tc := range cases {
		if got := suggest.Classify(tc.text); got != tc.want {
			t.Errorf("Classify(%q) = %s, want %s", tc.text, got, tc.want)
		}
	}
}

// TestPrecedence verifies the fixed group order: market/price beats
// weather/rain, which beats loan/credit.
func TestPrecedence(t *testing.T) {
	t.Parallel()

	if got := suggest.Classify("loan for a market stall in the rain"); got != i18n.CategoryMarket {
		t.Errorf("market keywords must win: got %s", got)
	}
	if got := suggest.Classify("loan if the rain fails"); got != i18n.CategoryWeather {
		t.Errorf("weather keywords must beat loan: got %s", got)
	}
}

func TestSuggestDeterministic(t *testing.T) {
	t.Parallel()

	a := suggest.Suggest("What about rice prices?", i18n.English)
	b := suggest.Suggest("What about rice prices?", i18n.English)
	if a != b {
		t.Errorf("Suggest is not deterministic: %v vs %v", a, b)
	}

	want := [3]string{"Show me rice prices", "What about vegetables?", "Tell me about pulses"}
	if a != want {
		t.Errorf("Suggest = %v, want %v", a, want)
	}
}

func TestSuggestLocalised(t *testing.T) {
	t.Parallel()

	kn := suggest.Suggest("market", i18n.Kannada)
	if want := i18n.Replies(i18n.CategoryMarket, i18n.Kannada); kn != want {
		t.Errorf("Suggest(market, kannada) = %v, want %v", kn, want)
	}

	en := suggest.Suggest("market", i18n.English)
	if kn == en {
		t.Error("Kannada and English reply sets must differ")
	}
}
