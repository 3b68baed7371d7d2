// Package models defines the shared data types used across CryptoBuddy:
// static asset profiles, live market snapshots, scored rankings, news
// articles, and the chat intent enum.
package models

// EnergyUse classifies an asset's energy footprint.
type EnergyUse string

const (
	EnergyLow  EnergyUse = "low"
	EnergyHigh EnergyUse = "high"
)

// CapTier is a qualitative market-cap class used by the offline dataset.
type CapTier string

const (
	CapHigh   CapTier = "high"
	CapMedium CapTier = "medium"
	CapLow    CapTier = "low"
)

// AssetProfile holds curated, static metadata for one tracked asset.
// Profiles are built once at process start and never mutated.
type AssetProfile struct {
	ID             string    `json:"id"`     // canonical lowercase slug, e.g. "binancecoin"
	Name           string    `json:"name"`   // display name, e.g. "BNB"
	Symbol         string    `json:"symbol"` // ticker, e.g. "BNB"
	Trend          string    `json:"trend"`  // qualitative label: "rising", "stable", "volatile"
	Sustainability int       `json:"sustainability"` // curated 0–10
	EnergyUse      EnergyUse `json:"energy_use"`
	Consensus      string    `json:"consensus"` // e.g. "Proof of Stake"
	CapTier        CapTier   `json:"cap_tier"`  // offline fallback only
}

// ScoredAsset pairs a market snapshot with its computed desirability score.
type ScoredAsset struct {
	Snapshot Snapshot `json:"snapshot"`
	Score    float64  `json:"score"`
}

// ScoredProfile pairs a static profile with its offline heuristic score.
type ScoredProfile struct {
	Profile *AssetProfile `json:"profile"`
	Score   float64       `json:"score"`
}
