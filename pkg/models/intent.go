package models

// Intent identifies what a free-text chat query is asking for.
// The set is closed: exactly one intent is selected per input and there is
// no intent hierarchy.
type Intent string

const (
	IntentPriceLookup    Intent = "price_lookup"
	IntentTrending       Intent = "trending"
	IntentSustainability Intent = "sustainability"
	IntentLongTerm       Intent = "long_term"
	IntentCompare        Intent = "compare"
	IntentListAll        Intent = "list_all"
	IntentRecommend      Intent = "recommend"
	IntentPortfolio      Intent = "portfolio"
	IntentUnknown        Intent = "unknown"
)

// String returns the intent's wire name.
func (i Intent) String() string { return string(i) }
