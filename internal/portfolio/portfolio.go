// Package portfolio tracks user-entered asset holdings and values them
// against live market snapshots. Holdings live for the process lifetime
// only; nothing is persisted.
package portfolio

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/MichelleInnovates/cryptobuddy/pkg/models"
)

// Book holds the amounts of each asset the user owns, keyed by asset ID.
type Book struct {
	holdings map[string]float64
	order    []string // insertion order, for deterministic rendering
}

// NewBook creates an empty holdings book.
func NewBook() *Book {
	return &Book{holdings: make(map[string]float64)}
}

// ParseHoldings builds a book from a comma-separated "id=amount" list,
// e.g. "bitcoin=0.5,ethereum=2". Unknown IDs are accepted here; valuation
// simply skips anything the market response doesn't cover.
func ParseHoldings(spec string) (*Book, error) {
	b := NewBook()
	if strings.TrimSpace(spec) == "" {
		return b, nil
	}
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, amountStr, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("invalid holding %q: want id=amount", part)
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(amountStr), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid amount in %q: %w", part, err)
		}
		b.Set(strings.ToLower(strings.TrimSpace(id)), amount)
	}
	return b, nil
}

// Set records the amount held for an asset. Zero or negative removes it.
func (b *Book) Set(id string, amount float64) {
	if amount <= 0 {
		if _, ok := b.holdings[id]; ok {
			delete(b.holdings, id)
			for i, existing := range b.order {
				if existing == id {
					b.order = append(b.order[:i], b.order[i+1:]...)
					break
				}
			}
		}
		return
	}
	if _, ok := b.holdings[id]; !ok {
		b.order = append(b.order, id)
	}
	b.holdings[id] = amount
}

// Amount returns the held amount for an asset, or 0.
func (b *Book) Amount(id string) float64 { return b.holdings[id] }

// Empty reports whether the book has no holdings.
func (b *Book) Empty() bool { return len(b.holdings) == 0 }

// IDs returns the held asset IDs in insertion order.
func (b *Book) IDs() []string {
	ids := make([]string, len(b.order))
	copy(ids, b.order)
	return ids
}

// Line is one valued holding.
type Line struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Symbol string  `json:"symbol"`
	Amount float64 `json:"amount"`
	Price  float64 `json:"price"`
	Value  float64 `json:"value"`
}

// Valuation is the result of pricing a book against market snapshots.
type Valuation struct {
	Lines []Line  `json:"lines"`
	Total float64 `json:"total"`
}

// Value prices the book against the given snapshots. Holdings with no
// matching snapshot are skipped; they contribute nothing rather than
// failing the valuation.
func (b *Book) Value(snapshots []models.Snapshot) Valuation {
	byID := make(map[string]models.Snapshot, len(snapshots))
	for _, s := range snapshots {
		byID[s.ID] = s
	}

	var v Valuation
	for _, id := range b.order {
		snap, ok := byID[id]
		if !ok {
			continue
		}
		line := Line{
			ID:     id,
			Name:   snap.Name,
			Symbol: snap.Symbol,
			Amount: b.holdings[id],
			Price:  snap.Price,
			Value:  snap.Price * b.holdings[id],
		}
		v.Lines = append(v.Lines, line)
		v.Total += line.Value
	}

	sort.SliceStable(v.Lines, func(i, j int) bool {
		return v.Lines[i].Value > v.Lines[j].Value
	})
	return v
}
