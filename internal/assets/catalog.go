// Package assets holds the static reference catalog: the curated set of
// tracked assets with their sustainability and consensus metadata, plus the
// qualitative fields used when live market data is unavailable.
//
// The catalog is built once at process start and is read-only afterwards.
// Iteration order is fixed to the declaration order of the table, which
// matters for tie-breaking (first max wins) and name resolution.
package assets

import (
	"strings"

	"github.com/MichelleInnovates/cryptobuddy/pkg/models"
)

// defaultProfiles is the curated asset table. Sustainability scores are
// hand-assigned from consensus mechanism and energy footprint, not derived
// from live data.
var defaultProfiles = []models.AssetProfile{
	{ID: "bitcoin", Name: "Bitcoin", Symbol: "BTC", Trend: "rising", Sustainability: 3, EnergyUse: models.EnergyHigh, Consensus: "Proof of Work", CapTier: models.CapHigh},
	{ID: "ethereum", Name: "Ethereum", Symbol: "ETH", Trend: "stable", Sustainability: 8, EnergyUse: models.EnergyLow, Consensus: "Proof of Stake", CapTier: models.CapHigh},
	{ID: "cardano", Name: "Cardano", Symbol: "ADA", Trend: "rising", Sustainability: 9, EnergyUse: models.EnergyLow, Consensus: "Proof of Stake", CapTier: models.CapMedium},
	{ID: "solana", Name: "Solana", Symbol: "SOL", Trend: "volatile", Sustainability: 7, EnergyUse: models.EnergyLow, Consensus: "Proof of Stake", CapTier: models.CapMedium},
	{ID: "ripple", Name: "Ripple", Symbol: "XRP", Trend: "stable", Sustainability: 8, EnergyUse: models.EnergyLow, Consensus: "Federated Consensus", CapTier: models.CapHigh},
	{ID: "binancecoin", Name: "BNB", Symbol: "BNB", Trend: "stable", Sustainability: 6, EnergyUse: models.EnergyLow, Consensus: "Proof of Stake", CapTier: models.CapHigh},
	{ID: "dogecoin", Name: "Dogecoin", Symbol: "DOGE", Trend: "volatile", Sustainability: 3, EnergyUse: models.EnergyHigh, Consensus: "Proof of Work", CapTier: models.CapMedium},
	{ID: "polkadot", Name: "Polkadot", Symbol: "DOT", Trend: "stable", Sustainability: 8, EnergyUse: models.EnergyLow, Consensus: "Nominated Proof of Stake", CapTier: models.CapLow},
}

// Catalog is an immutable lookup table over asset profiles.
type Catalog struct {
	profiles []*models.AssetProfile
	byID     map[string]*models.AssetProfile
}

// Default returns a catalog built from the curated default table.
func Default() *Catalog {
	return New(defaultProfiles)
}

// New builds a catalog from the given profiles, preserving their order.
// The input is copied; callers cannot mutate the catalog afterwards.
func New(profiles []models.AssetProfile) *Catalog {
	c := &Catalog{
		profiles: make([]*models.AssetProfile, 0, len(profiles)),
		byID:     make(map[string]*models.AssetProfile, len(profiles)),
	}
	for i := range profiles {
		p := profiles[i] // copy
		c.profiles = append(c.profiles, &p)
		c.byID[p.ID] = &p
	}
	return c
}

// ByID returns the profile for the given asset identifier.
func (c *Catalog) ByID(id string) (*models.AssetProfile, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Profiles returns all profiles in table order.
func (c *Catalog) Profiles() []*models.AssetProfile {
	return c.profiles
}

// Len returns the number of tracked assets.
func (c *Catalog) Len() int { return len(c.profiles) }

// IDs returns all asset identifiers in table order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.profiles))
	for _, p := range c.profiles {
		ids = append(ids, p.ID)
	}
	return ids
}

// Names returns all display names in table order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.profiles))
	for _, p := range c.profiles {
		names = append(names, p.Name)
	}
	return names
}

// MostSustainable returns the profile with the highest sustainability score.
// Ties are broken by table order: the first max wins.
func (c *Catalog) MostSustainable() *models.AssetProfile {
	var best *models.AssetProfile
	for _, p := range c.profiles {
		if best == nil || p.Sustainability > best.Sustainability {
			best = p
		}
	}
	return best
}

// ResolveInText scans free text for display names and returns the matching
// profiles in table order. Matching is naive case-insensitive substring
// containment, so names that are substrings of unrelated words will match.
// This mirrors the comparison query resolution and is a known limitation.
func (c *Catalog) ResolveInText(text string) []*models.AssetProfile {
	lower := strings.ToLower(text)
	var matched []*models.AssetProfile
	for _, p := range c.profiles {
		if strings.Contains(lower, strings.ToLower(p.Name)) {
			matched = append(matched, p)
		}
	}
	return matched
}
