package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/MichelleInnovates/cryptobuddy/internal/assets"
	"github.com/MichelleInnovates/cryptobuddy/internal/market"
	"github.com/MichelleInnovates/cryptobuddy/internal/portfolio"
	"github.com/MichelleInnovates/cryptobuddy/pkg/models"
)

// fakeMarket implements MarketData with canned snapshots and a switch to
// simulate provider unavailability.
type fakeMarket struct {
	snapshots   []models.Snapshot
	details     map[string]*models.AssetDetail
	unavailable bool
}

func (f *fakeMarket) GetMarketData(_ context.Context, _ []string) ([]models.Snapshot, error) {
	if f.unavailable {
		return nil, market.ErrUnavailable
	}
	return f.snapshots, nil
}

func (f *fakeMarket) GetAssetDetail(_ context.Context, id string) (*models.AssetDetail, error) {
	if f.unavailable {
		return nil, market.ErrUnavailable
	}
	if d, ok := f.details[id]; ok {
		return d, nil
	}
	return nil, market.ErrUnknownAsset
}

func liveMarket() *fakeMarket {
	btcDetail := &models.AssetDetail{Snapshot: models.Snapshot{
		ID: "bitcoin", Name: "Bitcoin", Symbol: "BTC",
		Price: 67891.23, ChangePct24h: fp(2.5), MarketCap: 1.34e12,
		MarketCapRank: 1, Volume24h: 3.5e10,
	}}
	ethDetail := &models.AssetDetail{Snapshot: models.Snapshot{
		ID: "ethereum", Name: "Ethereum", Symbol: "ETH",
		Price: 3456.78, ChangePct24h: fp(-1.2), MarketCap: 4.15e11,
		MarketCapRank: 2, Volume24h: 1.8e10,
	}}
	adaDetail := &models.AssetDetail{Snapshot: models.Snapshot{
		ID: "cardano", Name: "Cardano", Symbol: "ADA",
		Price: 0.42, ChangePct24h: fp(4.1), MarketCap: 1.5e10,
		MarketCapRank: 12, Volume24h: 4e8,
	}}
	return &fakeMarket{
		snapshots: []models.Snapshot{
			btcDetail.Snapshot,
			ethDetail.Snapshot,
			adaDetail.Snapshot,
		},
		details: map[string]*models.AssetDetail{
			"bitcoin":  btcDetail,
			"ethereum": ethDetail,
			"cardano":  adaDetail,
		},
	}
}

func newTestAdvisor(m MarketData, opts ...AdvisorOption) *Advisor {
	return New(assets.Default(), m, opts...)
}

func TestRespondPriceLive(t *testing.T) {
	a := newTestAdvisor(liveMarket())
	out := a.Respond(context.Background(), "What's the price of Bitcoin?")
	if !strings.Contains(out, "Bitcoin (BTC)") {
		t.Errorf("expected Bitcoin header, got:\n%s", out)
	}
	if !strings.Contains(out, "$67,891.23") {
		t.Errorf("expected formatted price, got:\n%s", out)
	}
	if !strings.Contains(out, "Sustainability: 3/10") {
		t.Errorf("expected sustainability block, got:\n%s", out)
	}
}

func TestRespondPriceNoAssetNameFallsBackToList(t *testing.T) {
	a := newTestAdvisor(liveMarket())
	out := a.Respond(context.Background(), "show me a price")
	if !strings.Contains(out, "ALL CRYPTOCURRENCIES") {
		t.Errorf("expected full table fallback, got:\n%s", out)
	}
}

func TestRespondTrendingLive(t *testing.T) {
	a := newTestAdvisor(liveMarket())
	out := a.Respond(context.Background(), "Which crypto is trending?")
	// Cardano (+4.1) should lead Bitcoin (+2.5); Ethereum (-1.2) excluded.
	if !strings.Contains(out, "Cardano") || !strings.Contains(out, "Bitcoin") {
		t.Errorf("expected positive movers, got:\n%s", out)
	}
	if strings.Contains(out, "Ethereum") {
		t.Errorf("negative mover should be excluded, got:\n%s", out)
	}
	if strings.Index(out, "Cardano") > strings.Index(out, "Bitcoin") {
		t.Errorf("movers should be sorted by change descending, got:\n%s", out)
	}
}

func TestRespondTrendingNoPositiveMovers(t *testing.T) {
	m := liveMarket()
	for i := range m.snapshots {
		m.snapshots[i].ChangePct24h = fp(-1)
	}
	a := newTestAdvisor(m)
	out := a.Respond(context.Background(), "Which crypto is trending?")
	if !strings.Contains(out, "No positive movers") {
		t.Errorf("expected explicit empty-state message, got:\n%s", out)
	}
}

func TestRespondSustainabilityLive(t *testing.T) {
	a := newTestAdvisor(liveMarket())
	out := a.Respond(context.Background(), "What's the most sustainable coin?")
	if !strings.Contains(out, "Cardano") {
		t.Errorf("expected Cardano (max sustainability), got:\n%s", out)
	}
}

func TestRespondCompareLive(t *testing.T) {
	a := newTestAdvisor(liveMarket())
	out := a.Respond(context.Background(), "compare Bitcoin and Ethereum")
	if !strings.Contains(out, "Bitcoin") || !strings.Contains(out, "Ethereum") {
		t.Errorf("expected both names, got:\n%s", out)
	}
	if !strings.Contains(out, "$67,891.23") || !strings.Contains(out, "$3,456.78") {
		t.Errorf("expected both prices, got:\n%s", out)
	}
}

func TestRespondCompareNeedsTwoNames(t *testing.T) {
	a := newTestAdvisor(liveMarket())
	out := a.Respond(context.Background(), "compare Bitcoin")
	if !strings.Contains(out, "Please specify two") {
		t.Errorf("expected guidance message, got:\n%s", out)
	}
	if !strings.Contains(out, "Cardano") {
		t.Errorf("guidance should list known assets, got:\n%s", out)
	}
}

func TestRespondCompareOffline(t *testing.T) {
	a := newTestAdvisor(&fakeMarket{unavailable: true})
	out := a.Respond(context.Background(), "compare Bitcoin and Ethereum")
	if !strings.Contains(out, "Bitcoin") || !strings.Contains(out, "Ethereum") {
		t.Errorf("expected both names offline, got:\n%s", out)
	}
	// Qualitative fields, not live numbers.
	if !strings.Contains(out, "rising") || !strings.Contains(out, "Sustainability") {
		t.Errorf("expected qualitative comparison, got:\n%s", out)
	}
	if strings.Contains(out, "$") {
		t.Errorf("offline compare must not show live prices, got:\n%s", out)
	}
}

func TestRespondRecommendLive(t *testing.T) {
	a := newTestAdvisor(liveMarket())
	out := a.Respond(context.Background(), "give me a recommendation")
	// Cardano: 3+min(0.41,2)+1+3.6 = 8.01; Bitcoin: 3+0.25+2+1.2 = 6.45.
	if !strings.Contains(out, "Winner: Cardano (ADA)") {
		t.Errorf("expected Cardano as balanced pick, got:\n%s", out)
	}
	if !strings.Contains(out, "Disclaimer") {
		t.Errorf("expected disclaimer, got:\n%s", out)
	}
}

func TestRespondPortfolioLive(t *testing.T) {
	book := portfolio.NewBook()
	book.Set("bitcoin", 1)
	a := newTestAdvisor(liveMarket(), WithPortfolio(book))
	out := a.Respond(context.Background(), "How is my portfolio?")
	if !strings.Contains(out, "Total Portfolio Value: $67,891.23") {
		t.Errorf("expected valued portfolio, got:\n%s", out)
	}
}

func TestRespondPortfolioEmptyBook(t *testing.T) {
	a := newTestAdvisor(liveMarket())
	out := a.Respond(context.Background(), "How is my portfolio?")
	if !strings.Contains(out, "haven't entered any holdings") {
		t.Errorf("expected holdings guidance, got:\n%s", out)
	}
}

// Offline fallback must be total: every intent still produces a non-empty
// report when the provider is down.
func TestOfflineFallbackIsTotal(t *testing.T) {
	book := portfolio.NewBook()
	book.Set("bitcoin", 1)
	a := newTestAdvisor(&fakeMarket{unavailable: true}, WithPortfolio(book))

	inputs := map[string]models.Intent{
		"price of Bitcoin":           models.IntentPriceLookup,
		"what is trending":           models.IntentTrending,
		"most sustainable coin":      models.IntentSustainability,
		"best long term growth":      models.IntentLongTerm,
		"compare Bitcoin and Solana": models.IntentCompare,
		"list everything":            models.IntentListAll,
		"recommend me a coin":        models.IntentRecommend,
		"my portfolio please":        models.IntentPortfolio,
		"how are you today":          models.IntentUnknown,
	}

	for input, intent := range inputs {
		out := a.Respond(context.Background(), input)
		if strings.TrimSpace(out) == "" {
			t.Errorf("intent %s returned an empty report", intent)
		}
	}
}

func TestOfflineReportsCarryNotice(t *testing.T) {
	a := newTestAdvisor(&fakeMarket{unavailable: true})
	for _, input := range []string{
		"price of Bitcoin",
		"what is trending",
		"most sustainable coin",
		"best long term growth",
		"list everything",
		"recommend me a coin",
	} {
		out := a.Respond(context.Background(), input)
		if !strings.Contains(out, "Live data unavailable") {
			t.Errorf("input %q: expected offline notice, got:\n%s", input, out)
		}
	}
}

func TestRespondOfflineRecommendPicksCardano(t *testing.T) {
	a := newTestAdvisor(&fakeMarket{unavailable: true})
	out := a.Respond(context.Background(), "recommend me a coin")
	// Offline balanced: Cardano 3+1+3.6 = 7.6 beats Bitcoin 3+2+1.2 = 6.2.
	if !strings.Contains(out, "Cardano") || !strings.Contains(out, "7.6") {
		t.Errorf("expected Cardano with score 7.6, got:\n%s", out)
	}
}

// stubResponder is a canned conversational fallback.
type stubResponder struct {
	reply string
	err   error
}

func (s *stubResponder) Respond(string) (string, error) { return s.reply, s.err }

func TestUnknownUsesFallbackWhenPresent(t *testing.T) {
	a := newTestAdvisor(liveMarket(), WithFallback(&stubResponder{reply: "Hi! I'm CryptoBuddy."}))
	out := a.Respond(context.Background(), "hello")
	if out != "Hi! I'm CryptoBuddy." {
		t.Errorf("expected fallback reply, got:\n%s", out)
	}
}

func TestUnknownFallbackErrorDegradesToHelp(t *testing.T) {
	a := newTestAdvisor(liveMarket(), WithFallback(&stubResponder{err: errors.New("no match")}))
	out := a.Respond(context.Background(), "hello")
	if !strings.Contains(out, "Try asking about") {
		t.Errorf("expected help text, got:\n%s", out)
	}
}

func TestUnknownWithoutFallback(t *testing.T) {
	a := newTestAdvisor(liveMarket())
	out := a.Respond(context.Background(), "hello")
	if !strings.Contains(out, "Try asking about") {
		t.Errorf("expected help text, got:\n%s", out)
	}
}
