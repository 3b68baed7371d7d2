package assets

import (
	"testing"

	"github.com/MichelleInnovates/cryptobuddy/pkg/models"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	if c.Len() != 8 {
		t.Fatalf("expected 8 tracked assets, got %d", c.Len())
	}

	btc, ok := c.ByID("bitcoin")
	if !ok {
		t.Fatal("expected bitcoin in catalog")
	}
	if btc.Symbol != "BTC" {
		t.Errorf("bitcoin symbol = %s, want BTC", btc.Symbol)
	}
	if btc.EnergyUse != models.EnergyHigh {
		t.Errorf("bitcoin energy use = %s, want high", btc.EnergyUse)
	}

	if _, ok := c.ByID("shiba-inu"); ok {
		t.Error("expected miss for untracked asset")
	}
}

func TestCatalogOrderIsStable(t *testing.T) {
	c := Default()
	ids := c.IDs()
	if ids[0] != "bitcoin" || ids[1] != "ethereum" || ids[2] != "cardano" {
		t.Errorf("unexpected table order: %v", ids[:3])
	}
}

func TestMostSustainable(t *testing.T) {
	c := Default()
	best := c.MostSustainable()
	if best.ID != "cardano" {
		t.Errorf("most sustainable = %s, want cardano", best.ID)
	}
}

func TestMostSustainableFirstMaxWins(t *testing.T) {
	c := New([]models.AssetProfile{
		{ID: "a", Name: "A", Sustainability: 8},
		{ID: "b", Name: "B", Sustainability: 8},
		{ID: "c", Name: "C", Sustainability: 5},
	})
	if got := c.MostSustainable(); got.ID != "a" {
		t.Errorf("tie should go to first in table order, got %s", got.ID)
	}
}

func TestResolveInText(t *testing.T) {
	c := Default()

	matched := c.ResolveInText("compare Bitcoin and Ethereum")
	if len(matched) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matched))
	}
	if matched[0].ID != "bitcoin" || matched[1].ID != "ethereum" {
		t.Errorf("unexpected matches: %s, %s", matched[0].ID, matched[1].ID)
	}

	if got := c.ResolveInText("compare apples and oranges"); len(got) != 0 {
		t.Errorf("expected no matches, got %d", len(got))
	}
}

func TestResolveInTextTableOrder(t *testing.T) {
	// Matches come back in table order, not query order.
	c := Default()
	matched := c.ResolveInText("how do Ethereum and Bitcoin compare?")
	if len(matched) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matched))
	}
	if matched[0].ID != "bitcoin" {
		t.Errorf("expected bitcoin first (table order), got %s", matched[0].ID)
	}
}

func TestResolveInTextSubstringLimitation(t *testing.T) {
	// Known limitation: resolution is naive substring containment, so a
	// display name inside an unrelated word still matches.
	c := New([]models.AssetProfile{
		{ID: "ada", Name: "Ada", Sustainability: 5},
	})
	if got := c.ResolveInText("I love Adapters"); len(got) != 1 {
		t.Errorf("substring matching is expected to misfire here, got %d matches", len(got))
	}
}
