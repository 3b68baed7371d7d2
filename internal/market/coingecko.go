package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MichelleInnovates/cryptobuddy/pkg/models"
)

// DefaultBaseURL is the CoinGecko v3 API root.
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// apiKeyHeader carries the optional demo API key. Absence is fine; requests
// then run against the unauthenticated rate-limited tier.
const apiKeyHeader = "x-cg-demo-api-key"

// Client fetches market data from CoinGecko.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	cache   *Cache
	limiter *RateLimiter

	chartTTL time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root (used in tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithAPIKey attaches a demo API key to every request.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithCacheTTL overrides the market data cache TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) { c.cache = NewCache(ttl) }
}

// WithHTTPClient overrides the underlying HTTP client (used in tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient creates a CoinGecko client. Market responses are memoized for
// 60 seconds and chart responses for 5 minutes to bound the outbound call
// rate; staleness within those windows is acceptable.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:  DefaultBaseURL,
		http:     &http.Client{Timeout: requestTimeout},
		cache:    NewCache(60 * time.Second),
		limiter:  NewRateLimiter(5, time.Second),
		chartTTL: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// headers returns the per-request headers, including the API key when set.
func (c *Client) headers() map[string]string {
	h := map[string]string{"Accept": "application/json"}
	if c.apiKey != "" {
		h[apiKeyHeader] = c.apiKey
	}
	return h
}

// GetMarketData returns current snapshots for the given asset identifiers,
// ordered by descending market cap. Any failure is reported as ErrUnavailable.
func (c *Client) GetMarketData(ctx context.Context, ids []string) ([]models.Snapshot, error) {
	cacheKey := "markets:" + strings.Join(ids, ",")
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.([]models.Snapshot), nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("ids", strings.Join(ids, ","))
	q.Set("order", "market_cap_desc")
	q.Set("sparkline", "false")
	q.Set("price_change_percentage", "24h,7d")

	var snapshots []models.Snapshot
	if err := c.fetchJSON(ctx, c.baseURL+"/coins/markets?"+q.Encode(), &snapshots); err != nil {
		return nil, err
	}

	c.cache.Set(cacheKey, snapshots)
	return snapshots, nil
}

// cgDetailResponse is the subset of the /coins/{id} payload we consume.
type cgDetailResponse struct {
	ID         string `json:"id"`
	Symbol     string `json:"symbol"`
	Name       string `json:"name"`
	MarketData struct {
		CurrentPrice      map[string]float64 `json:"current_price"`
		ChangePct24h      *float64           `json:"price_change_percentage_24h"`
		MarketCap         map[string]float64 `json:"market_cap"`
		MarketCapRank     int                `json:"market_cap_rank"`
		TotalVolume       map[string]float64 `json:"total_volume"`
		High24h           map[string]float64 `json:"high_24h"`
		Low24h            map[string]float64 `json:"low_24h"`
		CirculatingSupply float64            `json:"circulating_supply"`
	} `json:"market_data"`
}

// GetAssetDetail returns an extended snapshot for a single asset. An asset
// the provider does not know is reported as ErrUnknownAsset; every other
// failure as ErrUnavailable.
func (c *Client) GetAssetDetail(ctx context.Context, id string) (*models.AssetDetail, error) {
	cacheKey := "detail:" + id
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.(*models.AssetDetail), nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	q := url.Values{}
	q.Set("localization", "false")
	q.Set("tickers", "false")
	q.Set("community_data", "false")
	q.Set("developer_data", "false")

	var resp cgDetailResponse
	if err := c.fetchJSON(ctx, c.baseURL+"/coins/"+url.PathEscape(id)+"?"+q.Encode(), &resp); err != nil {
		var httpErr *ErrHTTP
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrUnknownAsset, id)
		}
		return nil, err
	}

	detail := &models.AssetDetail{
		Snapshot: models.Snapshot{
			ID:            resp.ID,
			Name:          resp.Name,
			Symbol:        strings.ToUpper(resp.Symbol),
			Price:         resp.MarketData.CurrentPrice["usd"],
			ChangePct24h:  resp.MarketData.ChangePct24h,
			MarketCap:     resp.MarketData.MarketCap["usd"],
			MarketCapRank: resp.MarketData.MarketCapRank,
			Volume24h:     resp.MarketData.TotalVolume["usd"],
		},
		High24h:           resp.MarketData.High24h["usd"],
		Low24h:            resp.MarketData.Low24h["usd"],
		CirculatingSupply: resp.MarketData.CirculatingSupply,
	}

	c.cache.Set(cacheKey, detail)
	return detail, nil
}

// cgChartResponse is the /coins/{id}/market_chart payload.
type cgChartResponse struct {
	Prices [][]float64 `json:"prices"` // [unix millis, price] pairs
}

// GetMarketChart returns price history samples for the given asset over the
// last N days.
func (c *Client) GetMarketChart(ctx context.Context, id string, days int) ([]models.ChartPoint, error) {
	cacheKey := fmt.Sprintf("chart:%s:%d", id, days)
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.([]models.ChartPoint), nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("days", fmt.Sprintf("%d", days))

	var resp cgChartResponse
	if err := c.fetchJSON(ctx, c.baseURL+"/coins/"+url.PathEscape(id)+"/market_chart?"+q.Encode(), &resp); err != nil {
		return nil, err
	}

	points := make([]models.ChartPoint, 0, len(resp.Prices))
	for _, pair := range resp.Prices {
		if len(pair) != 2 {
			continue
		}
		points = append(points, models.ChartPoint{
			Timestamp: time.UnixMilli(int64(pair[0])),
			Price:     pair[1],
		})
	}

	c.cache.SetWithTTL(cacheKey, points, c.chartTTL)
	return points, nil
}

// fetchJSON performs a GET request and decodes the response into dest.
// Every failure mode collapses into ErrUnavailable.
func (c *Client) fetchJSON(ctx context.Context, url string, dest any) error {
	body, _, err := doGet(ctx, c.http, url, c.headers())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("%w: parse response: %v", ErrUnavailable, err)
	}
	return nil
}
