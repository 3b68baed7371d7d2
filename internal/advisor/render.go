package advisor

import (
	"fmt"
	"strings"

	"github.com/MichelleInnovates/cryptobuddy/internal/assets"
	"github.com/MichelleInnovates/cryptobuddy/internal/portfolio"
	"github.com/MichelleInnovates/cryptobuddy/pkg/models"
	"github.com/MichelleInnovates/cryptobuddy/pkg/utils"
)

// offlineNotice prefixes every degraded report so the user knows the
// numbers are qualitative estimates, not live market data.
const offlineNotice = "Live data unavailable, showing offline estimate.\n"

// disclaimer closes every recommendation-style report.
const disclaimer = "Disclaimer: Crypto is risky - always do your own research!"

var divider = strings.Repeat("=", 70)

// Renderer turns resolved data into deterministic text reports. It performs
// no I/O and holds only the immutable catalog.
type Renderer struct {
	catalog *assets.Catalog
}

// NewRenderer creates a renderer over the given catalog.
func NewRenderer(catalog *assets.Catalog) *Renderer {
	return &Renderer{catalog: catalog}
}

// sustainabilityBlock renders the curated metadata lines for a profile.
func sustainabilityBlock(b *strings.Builder, p *models.AssetProfile) {
	fmt.Fprintf(b, "   Sustainability: %d/10\n", p.Sustainability)
	fmt.Fprintf(b, "   Energy Use: %s\n", strings.ToUpper(string(p.EnergyUse)))
	fmt.Fprintf(b, "   Consensus: %s\n", p.Consensus)
}

// --- Price lookup ---

// PriceReport renders a single-asset live report. The profile may be nil;
// the sustainability block is then omitted.
func (r *Renderer) PriceReport(d *models.AssetDetail, p *models.AssetProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s) - LIVE DATA\n", d.Name, strings.ToUpper(d.Symbol))
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "   Current Price: %s\n", utils.FormatUSD(d.Price))
	fmt.Fprintf(&b, "   24h Change: %s\n", utils.FormatPct(d.Change24h()))
	fmt.Fprintf(&b, "   Market Cap: %s\n", utils.FormatUSDWhole(d.MarketCap))
	fmt.Fprintf(&b, "   24h Volume: %s\n", utils.FormatUSDWhole(d.Volume24h))
	if p != nil {
		b.WriteString("\n")
		sustainabilityBlock(&b, p)
	}
	return b.String()
}

// OfflinePriceReport renders the qualitative stand-in for a price lookup.
func (r *Renderer) OfflinePriceReport(p *models.AssetProfile) string {
	var b strings.Builder
	b.WriteString(offlineNotice)
	fmt.Fprintf(&b, "%s (%s)\n", p.Name, p.Symbol)
	fmt.Fprintf(&b, "   Trend: %s | Market cap: %s\n", p.Trend, p.CapTier)
	fmt.Fprintf(&b, "   Sustainability: %d/10 | Energy: %s\n", p.Sustainability, p.EnergyUse)
	return b.String()
}

// UnknownAssetReport guides the user to the tracked assets.
func (r *Renderer) UnknownAssetReport(name string) string {
	return fmt.Sprintf("Sorry, I don't have data for %s. Try: %s\n",
		name, strings.Join(r.catalog.Names(), ", "))
}

// --- Trending ---

// TrendingReport renders the top positive movers, or an explicit
// empty-state message when nothing moved up.
func (r *Renderer) TrendingReport(trending []models.Snapshot) string {
	var b strings.Builder
	b.WriteString("TRENDING CRYPTOCURRENCIES (LIVE DATA):\n" + divider + "\n")
	if len(trending) == 0 {
		b.WriteString("No positive movers in the last 24h - the market is cooling off.\n")
		return b.String()
	}
	for _, s := range trending {
		fmt.Fprintf(&b, "\n%s (%s)\n", s.Name, strings.ToUpper(s.Symbol))
		fmt.Fprintf(&b, "   Price: %s\n", utils.FormatUSD(s.Price))
		fmt.Fprintf(&b, "   24h Change: %s\n", utils.FormatPct(s.Change24h()))
		fmt.Fprintf(&b, "   Market Cap: %s\n", utils.FormatUSDWhole(s.MarketCap))
		if p, ok := r.catalog.ByID(s.ID); ok {
			fmt.Fprintf(&b, "   Sustainability: %d/10\n", p.Sustainability)
		}
	}
	return b.String()
}

// OfflineTrendingReport lists catalog assets with a rising trend label.
func (r *Renderer) OfflineTrendingReport() string {
	var b strings.Builder
	b.WriteString(offlineNotice)
	b.WriteString("TRENDING CRYPTOCURRENCIES:\n" + divider + "\n")
	found := false
	for _, p := range r.catalog.Profiles() {
		if p.Trend != "rising" {
			continue
		}
		found = true
		fmt.Fprintf(&b, "%s (%s) - trend: %s | sustainability: %d/10\n",
			p.Name, p.Symbol, p.Trend, p.Sustainability)
	}
	if !found {
		b.WriteString("No assets currently flagged as rising.\n")
	}
	return b.String()
}

// --- Sustainability ---

// SustainabilityReport renders the greenest asset with live pricing.
func (r *Renderer) SustainabilityReport(d *models.AssetDetail, p *models.AssetProfile) string {
	var b strings.Builder
	b.WriteString("MOST SUSTAINABLE CRYPTO (LIVE DATA):\n" + divider + "\n")
	fmt.Fprintf(&b, "%s (%s)\n\n", d.Name, strings.ToUpper(d.Symbol))
	fmt.Fprintf(&b, "   Price: %s\n", utils.FormatUSD(d.Price))
	fmt.Fprintf(&b, "   24h Change: %s\n", utils.FormatPct(d.Change24h()))
	sustainabilityBlock(&b, p)
	return b.String()
}

// OfflineSustainabilityReport names the greenest asset from the catalog.
func (r *Renderer) OfflineSustainabilityReport() string {
	p := r.catalog.MostSustainable()
	var b strings.Builder
	b.WriteString(offlineNotice)
	fmt.Fprintf(&b, "Most sustainable: %s (%s)\n", p.Name, p.Symbol)
	sustainabilityBlock(&b, p)
	return b.String()
}

// --- Long-term ---

// LongTermReport renders the top three long-term candidates.
func (r *Renderer) LongTermReport(ranked []models.ScoredAsset) string {
	var b strings.Builder
	b.WriteString("BEST FOR LONG-TERM GROWTH (LIVE DATA):\n" + divider + "\n")
	if len(ranked) == 0 {
		b.WriteString("No market data to rank right now.\n")
		return b.String()
	}
	for i, sa := range ranked {
		if i == 3 {
			break
		}
		s := sa.Snapshot
		fmt.Fprintf(&b, "\n%d. %s (%s) - Score: %.1f/10\n", i+1, s.Name, strings.ToUpper(s.Symbol), sa.Score)
		fmt.Fprintf(&b, "   Price: %s\n", utils.FormatUSD(s.Price))
		fmt.Fprintf(&b, "   24h Change: %s\n", utils.FormatPct(s.Change24h()))
		fmt.Fprintf(&b, "   Market Cap Rank: #%d\n", s.MarketCapRank)
		if p, ok := r.catalog.ByID(s.ID); ok {
			fmt.Fprintf(&b, "   Sustainability: %d/10\n", p.Sustainability)
		}
	}
	return b.String()
}

// OfflineLongTermReport ranks the catalog with the offline long-term formula.
func (r *Renderer) OfflineLongTermReport(ranked []models.ScoredProfile) string {
	var b strings.Builder
	b.WriteString(offlineNotice)
	b.WriteString("Best for long-term growth: ")
	parts := make([]string, 0, 3)
	for i, sp := range ranked {
		if i == 3 {
			break
		}
		parts = append(parts, fmt.Sprintf("%s (%.1f)", sp.Profile.Name, sp.Score))
	}
	b.WriteString(strings.Join(parts, ", ") + "\n")
	return b.String()
}

// --- Compare ---

// CompareReport renders two assets side by side with live data.
func (r *Renderer) CompareReport(d1, d2 *models.AssetDetail, p1, p2 *models.AssetProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Comparison (live): %s vs %s\n", d1.Name, d2.Name)
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "%-16s %-20s %s\n", "Current Price", utils.FormatUSD(d1.Price), utils.FormatUSD(d2.Price))
	fmt.Fprintf(&b, "%-16s %-20s %s\n", "24h Change", utils.FormatPct(d1.Change24h()), utils.FormatPct(d2.Change24h()))
	fmt.Fprintf(&b, "%-16s %-20s %s\n", "Market Cap", utils.FormatUSDCompact(d1.MarketCap), utils.FormatUSDCompact(d2.MarketCap))
	if p1 != nil && p2 != nil {
		fmt.Fprintf(&b, "%-16s %-20s %s\n", "Sustainability",
			fmt.Sprintf("%d/10", p1.Sustainability), fmt.Sprintf("%d/10", p2.Sustainability))
		fmt.Fprintf(&b, "%-16s %-20s %s\n", "Energy Use", p1.EnergyUse, p2.EnergyUse)
	}
	return b.String()
}

// OfflineCompareReport compares two assets by their qualitative fields.
func (r *Renderer) OfflineCompareReport(p1, p2 *models.AssetProfile) string {
	var b strings.Builder
	b.WriteString(offlineNotice)
	fmt.Fprintf(&b, "Comparison: %s vs %s\n", p1.Name, p2.Name)
	fmt.Fprintf(&b, "   Sustainability: %d/10 vs %d/10\n", p1.Sustainability, p2.Sustainability)
	fmt.Fprintf(&b, "   Trend: %s vs %s\n", p1.Trend, p2.Trend)
	fmt.Fprintf(&b, "   Energy: %s vs %s\n", p1.EnergyUse, p2.EnergyUse)
	return b.String()
}

// CompareGuidance asks for two resolvable names. Fewer than two matches is
// user guidance, not an error.
func (r *Renderer) CompareGuidance() string {
	return "Please specify two cryptocurrencies to compare.\n" +
		"Available: " + strings.Join(r.catalog.Names(), ", ") + "\n" +
		"Example: 'compare Bitcoin and Ethereum'\n"
}

// --- Recommend ---

// RecommendReport renders the balanced pick: the top-ranked asset.
func (r *Renderer) RecommendReport(winner models.ScoredAsset) string {
	s := winner.Snapshot
	var b strings.Builder
	b.WriteString("CRYPTOBUDDY'S BALANCED PICK (LIVE DATA):\n" + divider + "\n")
	fmt.Fprintf(&b, "Winner: %s (%s)\n", s.Name, strings.ToUpper(s.Symbol))
	fmt.Fprintf(&b, "Score: %.1f/10\n", winner.Score)
	fmt.Fprintf(&b, "Price: %s\n", utils.FormatUSD(s.Price))
	fmt.Fprintf(&b, "24h: %s\n", utils.FormatPct(s.Change24h()))
	fmt.Fprintf(&b, "Market Cap Rank: #%d\n", s.MarketCapRank)
	if p, ok := r.catalog.ByID(s.ID); ok {
		fmt.Fprintf(&b, "Sustainability: %d/10, Energy: %s\n",
			p.Sustainability, strings.ToUpper(string(p.EnergyUse)))
	}
	b.WriteString("\n" + disclaimer + "\n")
	return b.String()
}

// OfflineRecommendReport names the offline balanced pick.
func (r *Renderer) OfflineRecommendReport(winner models.ScoredProfile) string {
	var b strings.Builder
	b.WriteString(offlineNotice)
	fmt.Fprintf(&b, "Balanced pick: %s with score %.1f/10\n", winner.Profile.Name, winner.Score)
	b.WriteString(disclaimer + "\n")
	return b.String()
}

// --- List all ---

// ListAllReport renders the full live market table.
func (r *Renderer) ListAllReport(snapshots []models.Snapshot) string {
	var b strings.Builder
	b.WriteString("ALL CRYPTOCURRENCIES (LIVE DATA):\n" + divider + "\n")
	for _, s := range snapshots {
		fmt.Fprintf(&b, "\n%s (%s)\n", s.Name, strings.ToUpper(s.Symbol))
		fmt.Fprintf(&b, "   Price: %s | 24h: %s\n", utils.FormatUSD(s.Price), utils.FormatPct(s.Change24h()))
		fmt.Fprintf(&b, "   Market Cap: %s\n", utils.FormatUSDWhole(s.MarketCap))
		if p, ok := r.catalog.ByID(s.ID); ok {
			fmt.Fprintf(&b, "   Sustainability: %d/10 | Energy: %s\n", p.Sustainability, p.EnergyUse)
		}
	}
	b.WriteString("\n" + divider + "\n")
	return b.String()
}

// OfflineListAllReport renders the full catalog with qualitative fields.
func (r *Renderer) OfflineListAllReport() string {
	var b strings.Builder
	b.WriteString(offlineNotice)
	b.WriteString("ALL CRYPTOCURRENCIES:\n" + divider + "\n")
	for _, p := range r.catalog.Profiles() {
		fmt.Fprintf(&b, "\n%s (%s)\n", p.Name, p.Symbol)
		fmt.Fprintf(&b, "   Trend: %s | Cap: %s | Sustainability: %d/10\n", p.Trend, p.CapTier, p.Sustainability)
	}
	return b.String()
}

// --- Portfolio ---

// PortfolioReport renders a holdings valuation supplied by the caller.
func (r *Renderer) PortfolioReport(v portfolio.Valuation) string {
	var b strings.Builder
	b.WriteString("YOUR PORTFOLIO (LIVE DATA):\n" + divider + "\n")
	for _, line := range v.Lines {
		fmt.Fprintf(&b, "%-12s %12.4f x %-14s = %s\n",
			line.Symbol, line.Amount, utils.FormatUSD(line.Price), utils.FormatUSD(line.Value))
	}
	fmt.Fprintf(&b, "\nTotal Portfolio Value: %s\n", utils.FormatUSD(v.Total))
	return b.String()
}

// PortfolioGuidance explains how to record holdings.
func (r *Renderer) PortfolioGuidance() string {
	return "You haven't entered any holdings yet.\n" +
		"Pass --holdings (e.g. --holdings bitcoin=0.5,ethereum=2) to track your portfolio value.\n"
}

// OfflinePortfolioReport lists holdings without live valuation.
func (r *Renderer) OfflinePortfolioReport(ids []string, amounts map[string]float64) string {
	var b strings.Builder
	b.WriteString(offlineNotice)
	b.WriteString("Holdings on record (cannot value without live prices):\n")
	for _, id := range ids {
		name := id
		if p, ok := r.catalog.ByID(id); ok {
			name = p.Name
		}
		fmt.Fprintf(&b, "   %s: %.4f\n", name, amounts[id])
	}
	return b.String()
}

// --- Unknown ---

// HelpReport is the static fallback enumerating what CryptoBuddy can do.
func (r *Renderer) HelpReport() string {
	return "I'm not sure about that. Try asking about:\n" +
		"   - prices (\"What's the price of Bitcoin?\")\n" +
		"   - trending coins (\"Which crypto is trending?\")\n" +
		"   - sustainability (\"What's the most sustainable coin?\")\n" +
		"   - long-term growth (\"Best for long-term growth?\")\n" +
		"   - comparisons (\"Compare Bitcoin and Ethereum\")\n" +
		"   - the full list (\"Show all cryptocurrencies\")\n" +
		"   - a balanced recommendation (\"Give me a recommendation\")\n" +
		"   - your portfolio (\"How is my portfolio?\")\n"
}
