package advisor

import (
	"math"
	"sort"

	"github.com/MichelleInnovates/cryptobuddy/internal/assets"
	"github.com/MichelleInnovates/cryptobuddy/pkg/models"
)

// rankUnknown stands in for a missing market-cap rank; it is beyond every
// bonus threshold so unranked assets earn no rank bonus.
const rankUnknown = 9999

// trendingLimit caps the trending report at the top positive movers.
const trendingLimit = 5

// effectiveRank returns the snapshot's rank, substituting rankUnknown for
// absent or malformed values.
func effectiveRank(s models.Snapshot) int {
	if s.MarketCapRank <= 0 {
		return rankUnknown
	}
	return s.MarketCapRank
}

// Score computes the balanced-recommendation desirability score for one
// snapshot. The profile may be nil; its sustainability contribution is then
// zero. Missing fields degrade to worst-case values; Score never fails.
//
// Weighting: positive 24h momentum earns 3 plus a tenth of the change
// capped at 2; market-cap rank earns 2 (top 5) or 1 (top 15); each
// sustainability point earns 0.4.
func Score(s models.Snapshot, p *models.AssetProfile) float64 {
	score := 0.0

	if change := s.Change24h(); change > 0 {
		score += 3 + math.Min(change*0.1, 2)
	}

	switch rank := effectiveRank(s); {
	case rank <= 5:
		score += 2
	case rank <= 15:
		score += 1
	}

	if p != nil {
		score += float64(p.Sustainability) * 0.4
	}
	return score
}

// LongTermScore computes the long-term growth variant. It weighs the same
// signals as Score but with different constants; the two formulas are kept
// separate on purpose, they serve different questions.
func LongTermScore(s models.Snapshot, p *models.AssetProfile) float64 {
	score := 0.0

	if s.Change24h() > 0 {
		score += 3
	}
	if effectiveRank(s) <= 10 {
		score += 2
	}
	if p != nil {
		if p.Sustainability >= 7 {
			score += 3
		}
		score += float64(p.Sustainability) * 0.2
	}
	return score
}

// Rank scores every snapshot with the balanced formula and returns them in
// descending score order. The sort is stable: on an exact score tie the
// snapshot appearing earlier in the input comes first. An empty input
// yields an empty (non-nil) result.
func Rank(snapshots []models.Snapshot, catalog *assets.Catalog) []models.ScoredAsset {
	return rankWith(snapshots, catalog, Score)
}

// LongTermRank is Rank with the long-term formula. It is computed
// independently, not sliced out of the balanced ranking.
func LongTermRank(snapshots []models.Snapshot, catalog *assets.Catalog) []models.ScoredAsset {
	return rankWith(snapshots, catalog, LongTermScore)
}

func rankWith(snapshots []models.Snapshot, catalog *assets.Catalog, score func(models.Snapshot, *models.AssetProfile) float64) []models.ScoredAsset {
	ranked := make([]models.ScoredAsset, 0, len(snapshots))
	for _, s := range snapshots {
		var profile *models.AssetProfile
		if p, ok := catalog.ByID(s.ID); ok {
			profile = p
		}
		ranked = append(ranked, models.ScoredAsset{Snapshot: s, Score: score(s, profile)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// TopTrending filters to assets with positive 24h change, sorted by change
// descending, truncated to the top five. An empty result is legitimate and
// the renderer reports it explicitly.
func TopTrending(snapshots []models.Snapshot) []models.Snapshot {
	trending := make([]models.Snapshot, 0, len(snapshots))
	for _, s := range snapshots {
		if s.Change24h() > 0 {
			trending = append(trending, s)
		}
	}
	sort.SliceStable(trending, func(i, j int) bool {
		return trending[i].Change24h() > trending[j].Change24h()
	})
	if len(trending) > trendingLimit {
		trending = trending[:trendingLimit]
	}
	return trending
}

// --- Offline variants over the static catalog ---

// OfflineScore is the balanced formula over qualitative fields: trend label
// instead of numeric change, cap tier instead of numeric rank.
func OfflineScore(p *models.AssetProfile) float64 {
	score := 0.0
	if p.Trend == "rising" {
		score += 3
	}
	switch p.CapTier {
	case models.CapHigh:
		score += 2
	case models.CapMedium:
		score += 1
	}
	score += float64(p.Sustainability) * 0.4
	return score
}

// OfflineLongTermScore is the long-term variant over qualitative fields.
func OfflineLongTermScore(p *models.AssetProfile) float64 {
	score := 0.0
	if p.Trend == "rising" {
		score += 3
	}
	switch p.CapTier {
	case models.CapHigh:
		score += 2
	case models.CapMedium:
		score += 1
	}
	score += float64(p.Sustainability) * 0.3
	return score
}

// OfflineRank scores the whole catalog with the offline balanced formula,
// descending, stable on ties (table order wins).
func OfflineRank(catalog *assets.Catalog) []models.ScoredProfile {
	return offlineRankWith(catalog, OfflineScore)
}

// OfflineLongTermRank is OfflineRank with the long-term variant.
func OfflineLongTermRank(catalog *assets.Catalog) []models.ScoredProfile {
	return offlineRankWith(catalog, OfflineLongTermScore)
}

func offlineRankWith(catalog *assets.Catalog, score func(*models.AssetProfile) float64) []models.ScoredProfile {
	ranked := make([]models.ScoredProfile, 0, catalog.Len())
	for _, p := range catalog.Profiles() {
		ranked = append(ranked, models.ScoredProfile{Profile: p, Score: score(p)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
