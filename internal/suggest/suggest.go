// Package suggest derives quick-reply suggestions from a user message.
//
// Classification is a fixed-priority keyword scan: the first matching keyword
// group selects the category, so the result is fully deterministic for a
// given (text, language) pair.
package suggest

import (
	"strings"

	"github.com/ruralconnect/sahayak/internal/i18n"
)

// keywordGroups lists the classifier groups in priority order. The first
// group with any keyword contained in the lowered input wins.
var keywordGroups = []struct {
	category i18n.Category
	keywords []string
}{
	{i18n.CategoryMarket, []string{"market", "price"}},
	{i18n.CategoryWeather, []string{"weather", "rain"}},
	{i18n.CategoryLoan, []string{"loan", "credit"}},
}

// Classify returns the suggestion category for userText.
func Classify(userText string) i18n.Category {
	text := strings.ToLower(userText)
	for _, g := range keywordGroups {
		for _, kw := range g.keywords {
			if strings.Contains(text, kw) {
				return g.category
			}
		}
	}
	return i18n.CategoryDefault
}

// Suggest returns the ordered three-element quick-reply set for userText in
// the given language.
func Suggest(userText string, lang i18n.Language) [3]string {
	return i18n.Replies(Classify(userText), lang)
}
