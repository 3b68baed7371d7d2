// Package advisor implements the conversational core of CryptoBuddy: a
// priority-ordered keyword intent classifier, the desirability scoring
// engine, and the deterministic text renderers for each intent. The
// Advisor type wires them together with live market data and the static
// reference catalog.
package advisor

import (
	"strings"

	"github.com/MichelleInnovates/cryptobuddy/pkg/models"
)

// intentRule pairs a set of trigger keywords with the intent they select.
type intentRule struct {
	Intent   models.Intent
	Keywords []string
}

// intentRules is a first-match decision list. Order is load-bearing: an
// input matching several rules takes the earliest one, which is a designed
// tie-break (e.g. "price of the best trending coin" is a price lookup).
// Do not reorder.
var intentRules = []intentRule{
	{models.IntentPriceLookup, []string{"price"}},
	{models.IntentTrending, []string{"trending", "rising", "hot", "growing"}},
	{models.IntentSustainability, []string{"sustainable", "green", "eco", "environment"}},
	{models.IntentLongTerm, []string{"long-term", "long term", "growth", "future"}},
	{models.IntentCompare, []string{"compare"}},
	{models.IntentListAll, []string{"all", "list", "show all"}},
	{models.IntentRecommend, []string{"recommend", "best", "balanced", "invest"}},
	{models.IntentPortfolio, []string{"portfolio"}},
}

// Classify maps free-text input to an intent. Input is case-folded and
// trimmed; matching is substring containment against the ordered rule list.
// Pure and deterministic.
func Classify(text string) models.Intent {
	q := strings.ToLower(strings.TrimSpace(text))
	for _, rule := range intentRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(q, kw) {
				return rule.Intent
			}
		}
	}
	return models.IntentUnknown
}
