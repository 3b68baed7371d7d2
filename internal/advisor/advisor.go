package advisor

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/MichelleInnovates/cryptobuddy/internal/assets"
	"github.com/MichelleInnovates/cryptobuddy/internal/portfolio"
	"github.com/MichelleInnovates/cryptobuddy/pkg/models"
)

// MarketData is the slice of the market client the advisor consumes.
// Implementations signal unavailability by returning an error; the advisor
// then degrades to the static catalog and never surfaces transport detail.
type MarketData interface {
	GetMarketData(ctx context.Context, ids []string) ([]models.Snapshot, error)
	GetAssetDetail(ctx context.Context, id string) (*models.AssetDetail, error)
}

// Responder is an optional conversational fallback for inputs no rule
// matches. It may be absent; absence disables nothing else.
type Responder interface {
	Respond(text string) (string, error)
}

// Advisor answers free-text questions about the tracked assets.
type Advisor struct {
	catalog  *assets.Catalog
	market   MarketData
	render   *Renderer
	book     *portfolio.Book
	fallback Responder
}

// AdvisorOption configures optional advisor collaborators.
type AdvisorOption func(*Advisor)

// WithPortfolio attaches a holdings book for portfolio questions.
func WithPortfolio(book *portfolio.Book) AdvisorOption {
	return func(a *Advisor) { a.book = book }
}

// WithFallback attaches a conversational fallback for unknown intents.
func WithFallback(r Responder) AdvisorOption {
	return func(a *Advisor) { a.fallback = r }
}

// New creates an advisor over the given catalog and market client.
func New(catalog *assets.Catalog, market MarketData, opts ...AdvisorOption) *Advisor {
	a := &Advisor{
		catalog: catalog,
		market:  market,
		render:  NewRenderer(catalog),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Renderer exposes the advisor's renderer for callers that resolve their
// own data (the HTTP API, the CLI subcommands).
func (a *Advisor) Renderer() *Renderer { return a.render }

// Catalog returns the immutable reference catalog.
func (a *Advisor) Catalog() *assets.Catalog { return a.catalog }

// Respond classifies the input, resolves data live or offline, and returns
// a rendered report. It always returns a non-empty string; no input is an
// error from the caller's point of view.
func (a *Advisor) Respond(ctx context.Context, text string) string {
	switch Classify(text) {
	case models.IntentPriceLookup:
		return a.respondPrice(ctx, text)
	case models.IntentTrending:
		return a.respondTrending(ctx)
	case models.IntentSustainability:
		return a.respondSustainability(ctx)
	case models.IntentLongTerm:
		return a.respondLongTerm(ctx)
	case models.IntentCompare:
		return a.respondCompare(ctx, text)
	case models.IntentListAll:
		return a.respondListAll(ctx)
	case models.IntentRecommend:
		return a.respondRecommend(ctx)
	case models.IntentPortfolio:
		return a.respondPortfolio(ctx)
	default:
		return a.respondUnknown(text)
	}
}

// Exported per-intent entry points for callers that already know what
// they want (the CLI subcommands), bypassing classification.

// Trending reports the top positive movers.
func (a *Advisor) Trending(ctx context.Context) string { return a.respondTrending(ctx) }

// Sustainability reports the greenest tracked asset.
func (a *Advisor) Sustainability(ctx context.Context) string { return a.respondSustainability(ctx) }

// LongTerm reports the top long-term growth candidates.
func (a *Advisor) LongTerm(ctx context.Context) string { return a.respondLongTerm(ctx) }

// Compare reports on the first two assets named in the text.
func (a *Advisor) Compare(ctx context.Context, text string) string {
	return a.respondCompare(ctx, text)
}

// ListAll reports the full market table.
func (a *Advisor) ListAll(ctx context.Context) string { return a.respondListAll(ctx) }

// Recommend reports the balanced pick.
func (a *Advisor) Recommend(ctx context.Context) string { return a.respondRecommend(ctx) }

// Portfolio reports the valued holdings book.
func (a *Advisor) Portfolio(ctx context.Context) string { return a.respondPortfolio(ctx) }

// respondPrice reports on the first asset named in the query. A price
// question naming no tracked asset falls through to the full table.
func (a *Advisor) respondPrice(ctx context.Context, text string) string {
	matched := a.catalog.ResolveInText(text)
	if len(matched) == 0 {
		return a.respondListAll(ctx)
	}
	return a.PriceFor(ctx, matched[0].ID)
}

// PriceFor renders the single-asset report for a known asset ID.
func (a *Advisor) PriceFor(ctx context.Context, id string) string {
	profile, ok := a.catalog.ByID(id)
	if !ok {
		return a.render.UnknownAssetReport(id)
	}
	detail, err := a.market.GetAssetDetail(ctx, id)
	if err != nil {
		return a.render.OfflinePriceReport(profile)
	}
	return a.render.PriceReport(detail, profile)
}

func (a *Advisor) respondTrending(ctx context.Context) string {
	snapshots, err := a.market.GetMarketData(ctx, a.catalog.IDs())
	if err != nil {
		return a.render.OfflineTrendingReport()
	}
	return a.render.TrendingReport(TopTrending(snapshots))
}

func (a *Advisor) respondSustainability(ctx context.Context) string {
	best := a.catalog.MostSustainable()
	detail, err := a.market.GetAssetDetail(ctx, best.ID)
	if err != nil {
		return a.render.OfflineSustainabilityReport()
	}
	return a.render.SustainabilityReport(detail, best)
}

func (a *Advisor) respondLongTerm(ctx context.Context) string {
	snapshots, err := a.market.GetMarketData(ctx, a.catalog.IDs())
	if err != nil {
		return a.render.OfflineLongTermReport(OfflineLongTermRank(a.catalog))
	}
	return a.render.LongTermReport(LongTermRank(snapshots, a.catalog))
}

// respondCompare resolves exactly two asset names from the query by naive
// substring match; fewer than two yields guidance, not an error. The two
// detail fetches run concurrently.
func (a *Advisor) respondCompare(ctx context.Context, text string) string {
	matched := a.catalog.ResolveInText(text)
	if len(matched) < 2 {
		return a.render.CompareGuidance()
	}
	p1, p2 := matched[0], matched[1]

	var d1, d2 *models.AssetDetail
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		d1, err = a.market.GetAssetDetail(gctx, p1.ID)
		return err
	})
	g.Go(func() error {
		var err error
		d2, err = a.market.GetAssetDetail(gctx, p2.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return a.render.OfflineCompareReport(p1, p2)
	}
	return a.render.CompareReport(d1, d2, p1, p2)
}

func (a *Advisor) respondListAll(ctx context.Context) string {
	snapshots, err := a.market.GetMarketData(ctx, a.catalog.IDs())
	if err != nil {
		return a.render.OfflineListAllReport()
	}
	return a.render.ListAllReport(snapshots)
}

func (a *Advisor) respondRecommend(ctx context.Context) string {
	snapshots, err := a.market.GetMarketData(ctx, a.catalog.IDs())
	if err != nil || len(snapshots) == 0 {
		ranked := OfflineRank(a.catalog)
		return a.render.OfflineRecommendReport(ranked[0])
	}
	ranked := Rank(snapshots, a.catalog)
	return a.render.RecommendReport(ranked[0])
}

func (a *Advisor) respondPortfolio(ctx context.Context) string {
	if a.book == nil || a.book.Empty() {
		return a.render.PortfolioGuidance()
	}
	snapshots, err := a.market.GetMarketData(ctx, a.book.IDs())
	if err != nil {
		amounts := make(map[string]float64)
		for _, id := range a.book.IDs() {
			amounts[id] = a.book.Amount(id)
		}
		return a.render.OfflinePortfolioReport(a.book.IDs(), amounts)
	}
	return a.render.PortfolioReport(a.book.Value(snapshots))
}

// respondUnknown tries the conversational fallback when configured; any
// fallback failure degrades to the static help text.
func (a *Advisor) respondUnknown(text string) string {
	if a.fallback != nil {
		if reply, err := a.fallback.Respond(text); err == nil && reply != "" {
			return reply
		}
	}
	return a.render.HelpReport()
}
