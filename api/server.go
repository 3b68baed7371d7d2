// Package api provides the HTTP REST API server for CryptoBuddy.
//
// It exposes endpoints for chat, live market data, price lookups,
// recommendations, portfolio valuation, news headlines, and CSV export.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MichelleInnovates/cryptobuddy/internal/advisor"
	"github.com/MichelleInnovates/cryptobuddy/internal/assets"
	"github.com/MichelleInnovates/cryptobuddy/internal/config"
	"github.com/MichelleInnovates/cryptobuddy/internal/export"
	"github.com/MichelleInnovates/cryptobuddy/internal/market"
	"github.com/MichelleInnovates/cryptobuddy/internal/portfolio"
	"github.com/MichelleInnovates/cryptobuddy/pkg/models"
)

// MarketData is the provider surface the server needs.
type MarketData interface {
	GetMarketData(ctx context.Context, ids []string) ([]models.Snapshot, error)
	GetAssetDetail(ctx context.Context, id string) (*models.AssetDetail, error)
	GetMarketChart(ctx context.Context, id string, days int) ([]models.ChartPoint, error)
}

// NewsSource is the headline surface the server needs.
type NewsSource interface {
	Latest(ctx context.Context, limit int) ([]models.NewsArticle, error)
	ForAsset(ctx context.Context, p *models.AssetProfile, limit int) ([]models.NewsArticle, error)
}

// Server is the HTTP API server.
type Server struct {
	router  chi.Router
	cfg     *config.Config
	catalog *assets.Catalog
	advisor *advisor.Advisor
	market  MarketData
	news    NewsSource
	book    *portfolio.Book
	version string
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithVersion sets the version string reported by /health.
func WithVersion(v string) ServerOption {
	return func(s *Server) { s.version = v }
}

// WithNews wires a headline source; without it the news endpoint returns 404.
func WithNews(n NewsSource) ServerOption {
	return func(s *Server) { s.news = n }
}

// WithPortfolio wires a holdings book for the portfolio endpoint.
func WithPortfolio(b *portfolio.Book) ServerOption {
	return func(s *Server) { s.book = b }
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(cfg *config.Config, catalog *assets.Catalog, adv *advisor.Advisor, md MarketData, opts ...ServerOption) *Server {
	srv := &Server{
		cfg:     cfg,
		catalog: catalog,
		advisor: adv,
		market:  md,
		version: "dev",
	}
	for _, opt := range opts {
		opt(srv)
	}
	srv.router = srv.buildRouter()
	return srv
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server with graceful shutdown.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return httpSrv.Shutdown(ctx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", s.handleHealth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		// Chat
		r.Post("/chat", s.handleChat)

		// Market data
		r.Get("/market", s.handleMarket)
		r.Get("/price/{id}", s.handlePrice)
		r.Get("/chart/{id}", s.handleChart)

		// Advice
		r.Get("/recommend", s.handleRecommend)
		r.Get("/longterm", s.handleLongTerm)

		// Portfolio
		r.Get("/portfolio", s.handlePortfolio)

		// News
		r.Get("/news", s.handleNews)

		// Export
		r.Get("/export.csv", s.handleExportCSV)

		// Configuration
		r.Get("/config/keys", s.handleConfigKeys)
	})

	return r
}

// ============================================================
// Request / Response types
// ============================================================

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ChatRequest is the body for POST /api/v1/chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the reply for POST /api/v1/chat.
type ChatResponse struct {
	Intent string `json:"intent"`
	Reply  string `json:"reply"`
}

// ScoredEntry is one row of a recommendation ranking.
type ScoredEntry struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Symbol string  `json:"symbol"`
	Score  float64 `json:"score"`
}

// RankingResponse carries a live or offline recommendation ranking.
type RankingResponse struct {
	Offline bool          `json:"offline"`
	Results []ScoredEntry `json:"results"`
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":  "ok",
			"version": s.version,
			"assets":  s.catalog.Len(),
			"time":    time.Now().UTC().Format(time.RFC3339),
		},
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	reply := s.advisor.Respond(r.Context(), req.Message)
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: ChatResponse{
			Intent: string(advisor.Classify(req.Message)),
			Reply:  reply,
		},
	})
}

func (s *Server) handleMarket(w http.ResponseWriter, r *http.Request) {
	snapshots, err := s.market.GetMarketData(r.Context(), s.catalog.IDs())
	if err != nil {
		writeError(w, unavailableStatus(err), "live market data unavailable")
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: snapshots})
}

func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.catalog.ByID(id); !ok {
		writeError(w, http.StatusNotFound, "unknown asset: "+id)
		return
	}

	detail, err := s.market.GetAssetDetail(r.Context(), id)
	if err != nil {
		if errors.Is(err, market.ErrUnknownAsset) {
			writeError(w, http.StatusNotFound, "unknown asset: "+id)
			return
		}
		writeError(w, unavailableStatus(err), "live market data unavailable")
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: detail})
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.catalog.ByID(id); !ok {
		writeError(w, http.StatusNotFound, "unknown asset: "+id)
		return
	}

	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 365 {
			writeError(w, http.StatusBadRequest, "days must be between 1 and 365")
			return
		}
		days = n
	}

	points, err := s.market.GetMarketChart(r.Context(), id, days)
	if err != nil {
		writeError(w, unavailableStatus(err), "live market data unavailable")
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: points})
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	s.handleRanking(w, r, advisor.Rank, advisor.OfflineRank)
}

func (s *Server) handleLongTerm(w http.ResponseWriter, r *http.Request) {
	s.handleRanking(w, r, advisor.LongTermRank, advisor.OfflineLongTermRank)
}

// handleRanking runs a live ranking, degrading to the offline catalog
// ranking when the provider is down.
func (s *Server) handleRanking(
	w http.ResponseWriter,
	r *http.Request,
	live func([]models.Snapshot, *assets.Catalog) []models.ScoredAsset,
	offline func(*assets.Catalog) []models.ScoredProfile,
) {
	snapshots, err := s.market.GetMarketData(r.Context(), s.catalog.IDs())
	if err != nil {
		results := make([]ScoredEntry, 0)
		for _, sp := range offline(s.catalog) {
			results = append(results, ScoredEntry{
				ID:     sp.Profile.ID,
				Name:   sp.Profile.Name,
				Symbol: sp.Profile.Symbol,
				Score:  sp.Score,
			})
		}
		writeJSON(w, http.StatusOK, APIResponse{
			Success: true,
			Data:    RankingResponse{Offline: true, Results: results},
		})
		return
	}

	results := make([]ScoredEntry, 0)
	for _, sa := range live(snapshots, s.catalog) {
		results = append(results, ScoredEntry{
			ID:     sa.Snapshot.ID,
			Name:   sa.Snapshot.Name,
			Symbol: sa.Snapshot.Symbol,
			Score:  sa.Score,
		})
	}
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    RankingResponse{Offline: false, Results: results},
	})
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	if s.book == nil || s.book.Empty() {
		writeError(w, http.StatusBadRequest, "no holdings configured")
		return
	}

	snapshots, err := s.market.GetMarketData(r.Context(), s.book.IDs())
	if err != nil {
		writeError(w, unavailableStatus(err), "live market data unavailable")
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: s.book.Value(snapshots)})
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	if s.news == nil {
		writeError(w, http.StatusNotFound, "news source not configured")
		return
	}

	limit := s.cfg.News.Limit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	var (
		articles []models.NewsArticle
		err      error
	)
	if asset := r.URL.Query().Get("asset"); asset != "" {
		p, ok := s.catalog.ByID(asset)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown asset: "+asset)
			return
		}
		articles, err = s.news.ForAsset(r.Context(), p, limit)
	} else {
		articles, err = s.news.Latest(r.Context(), limit)
	}
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "news feeds unavailable")
		return
	}
	if articles == nil {
		articles = []models.NewsArticle{}
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: articles})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	snapshots, err := s.market.GetMarketData(r.Context(), s.catalog.IDs())
	if err != nil {
		writeError(w, unavailableStatus(err), "live market data unavailable")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="market.csv"`)
	if err := export.MarketCSV(w, snapshots); err != nil {
		log.Printf("csv export failed: %v", err)
	}
}

func (s *Server) handleConfigKeys(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    config.CheckAPIKeys(s.cfg),
	})
}

// ============================================================
// Helpers
// ============================================================

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}

// unavailableStatus maps provider errors to a status code: the "down"
// sentinel is a 503, anything else is a 500.
func unavailableStatus(err error) int {
	if errors.Is(err, market.ErrUnavailable) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
