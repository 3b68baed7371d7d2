// Package news fetches crypto headlines from public RSS feeds and tags
// them with a keyword-based tone. It is a read-only supplement to the
// advisor: headlines never feed into scoring or recommendations.
package news

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/MichelleInnovates/cryptobuddy/internal/market"
	"github.com/MichelleInnovates/cryptobuddy/pkg/models"
)

// Source is one RSS feed to pull headlines from.
type Source struct {
	Name   string
	RSSURL string
}

// DefaultSources lists the configured crypto news RSS feeds.
var DefaultSources = []Source{
	{Name: "CoinDesk", RSSURL: "https://www.coindesk.com/arc/outboundfeeds/rss/"},
	{Name: "Cointelegraph", RSSURL: "https://cointelegraph.com/rss"},
	{Name: "Decrypt", RSSURL: "https://decrypt.co/feed"},
	{Name: "Bitcoin Magazine", RSSURL: "https://bitcoinmagazine.com/.rss/full/"},
}

// Fetcher pulls and filters headlines. Safe for concurrent use.
type Fetcher struct {
	sources []Source
	cache   *market.Cache
	limiter *market.RateLimiter
	parser  *gofeed.Parser
}

// NewFetcher creates a fetcher over the default sources.
func NewFetcher() *Fetcher {
	return NewFetcherWithSources(DefaultSources)
}

// NewFetcherWithSources creates a fetcher over custom sources.
func NewFetcherWithSources(sources []Source) *Fetcher {
	return &Fetcher{
		sources: sources,
		cache:   market.NewCache(10 * time.Minute),
		limiter: market.NewRateLimiter(2, time.Second), // conservative: 2 req/s
		parser:  gofeed.NewParser(),
	}
}

// Latest returns recent headlines from all configured sources, newest
// first. Sources that fail to parse are skipped; the result is empty only
// when every source failed.
func (f *Fetcher) Latest(ctx context.Context, limit int) ([]models.NewsArticle, error) {
	cacheKey := fmt.Sprintf("news:all:%d", limit)
	if cached, ok := f.cache.Get(cacheKey); ok {
		return cached.([]models.NewsArticle), nil
	}

	var all []models.NewsArticle
	for _, src := range f.sources {
		articles, err := f.fetchRSS(ctx, src)
		if err != nil {
			// Non-critical: skip failed sources.
			continue
		}
		all = append(all, articles...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].PublishedAt.After(all[j].PublishedAt)
	})

	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}

	f.cache.Set(cacheKey, all)
	return all, nil
}

// ForAsset returns headlines mentioning the given asset by name or symbol.
func (f *Fetcher) ForAsset(ctx context.Context, p *models.AssetProfile, limit int) ([]models.NewsArticle, error) {
	cacheKey := fmt.Sprintf("news:asset:%s:%d", p.ID, limit)
	if cached, ok := f.cache.Get(cacheKey); ok {
		return cached.([]models.NewsArticle), nil
	}

	all, err := f.Latest(ctx, 0)
	if err != nil {
		return nil, err
	}

	var filtered []models.NewsArticle
	for _, a := range all {
		if mentionsAsset(a.Title+" "+a.Summary, p) {
			filtered = append(filtered, a)
		}
	}

	if limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}

	f.cache.Set(cacheKey, filtered)
	return filtered, nil
}

func (f *Fetcher) fetchRSS(ctx context.Context, src Source) ([]models.NewsArticle, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	feed, err := f.parser.ParseURLWithContext(src.RSSURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse RSS %s: %w", src.Name, err)
	}

	articles := make([]models.NewsArticle, 0, len(feed.Items))
	for _, item := range feed.Items {
		a := models.NewsArticle{
			Title:   item.Title,
			URL:     item.Link,
			Source:  src.Name,
			Summary: cleanHTML(item.Description),
		}
		if item.PublishedParsed != nil {
			a.PublishedAt = *item.PublishedParsed
		}
		a.Tone = Tone(a.Title + " " + a.Summary)
		articles = append(articles, a)
	}

	return articles, nil
}

// cleanHTML strips HTML tags from a string using goquery.
func cleanHTML(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}

// mentionsAsset reports whether the text mentions the asset by name or by
// symbol. Symbols are matched as whole words only; short tickers like ADA
// and DOT appear inside unrelated English words far too often.
func mentionsAsset(text string, p *models.AssetProfile) bool {
	lower := strings.ToLower(text)
	if strings.Contains(lower, strings.ToLower(p.Name)) {
		return true
	}
	symbol := strings.ToLower(p.Symbol)
	for _, word := range strings.FieldsFunc(lower, func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < '0' || r > '9')
	}) {
		if word == symbol {
			return true
		}
	}
	return false
}

// Keyword dictionaries for tone tagging (lowercase).
var bullishWords = []string{
	"rally", "surge", "soar", "jump", "record high", "all-time high",
	"breakout", "bullish", "adoption", "approval", "inflow", "accumulate",
	"recovery", "gain", "upgrade",
}

var bearishWords = []string{
	"crash", "plunge", "slump", "selloff", "sell-off", "bearish", "hack",
	"exploit", "fraud", "scam", "ban", "lawsuit", "outflow", "liquidation",
	"decline", "drop", "downgrade", "warning",
}

// Tone tags a headline as "bullish", "bearish", or "" when keyword counts
// tie or nothing matched. Counting keeps a single strong word from being
// outvoted by boilerplate.
func Tone(text string) string {
	lower := strings.ToLower(text)
	bull, bear := 0, 0
	for _, w := range bullishWords {
		if strings.Contains(lower, w) {
			bull++
		}
	}
	for _, w := range bearishWords {
		if strings.Contains(lower, w) {
			bear++
		}
	}
	switch {
	case bull > bear:
		return "bullish"
	case bear > bull:
		return "bearish"
	default:
		return ""
	}
}
