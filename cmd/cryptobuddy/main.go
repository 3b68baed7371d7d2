// CryptoBuddy is a conversational crypto advisor with live CoinGecko data.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/MichelleInnovates/cryptobuddy/api"
	"github.com/MichelleInnovates/cryptobuddy/internal/advisor"
	"github.com/MichelleInnovates/cryptobuddy/internal/assets"
	"github.com/MichelleInnovates/cryptobuddy/internal/chatterbox"
	"github.com/MichelleInnovates/cryptobuddy/internal/config"
	"github.com/MichelleInnovates/cryptobuddy/internal/export"
	"github.com/MichelleInnovates/cryptobuddy/internal/market"
	"github.com/MichelleInnovates/cryptobuddy/internal/news"
	"github.com/MichelleInnovates/cryptobuddy/internal/portfolio"
	"github.com/MichelleInnovates/cryptobuddy/pkg/models"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cryptobuddy",
	Short: "CryptoBuddy, a conversational crypto advisor with live market data",
	Long: `CryptoBuddy
A chat-style cryptocurrency advisor backed by live CoinGecko market data,
with a curated sustainability catalog and a full offline fallback when the
API is unreachable.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("holdings", "", `portfolio holdings, e.g. "bitcoin=0.5,ethereum=2"`)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(priceCmd)
	rootCmd.AddCommand(trendingCmd)
	rootCmd.AddCommand(sustainableCmd)
	rootCmd.AddCommand(longtermCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(portfolioCmd)
	rootCmd.AddCommand(newsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
}

// --- Wiring helpers ---

func newMarketClient() *market.Client {
	opts := []market.Option{
		market.WithCacheTTL(time.Duration(cfg.Provider.CacheTTLSec) * time.Second),
	}
	if cfg.Provider.BaseURL != "" {
		opts = append(opts, market.WithBaseURL(cfg.Provider.BaseURL))
	}
	if cfg.Provider.APIKey != "" {
		opts = append(opts, market.WithAPIKey(cfg.Provider.APIKey))
	}
	return market.NewClient(opts...)
}

// newBook builds the holdings book from the --holdings flag, falling back
// to the configured holdings.
func newBook(cmd *cobra.Command) (*portfolio.Book, error) {
	spec, _ := cmd.Flags().GetString("holdings")
	if spec == "" {
		spec = cfg.Portfolio.Holdings
	}
	return portfolio.ParseHoldings(spec)
}

func newAdvisor(cmd *cobra.Command) (*advisor.Advisor, error) {
	book, err := newBook(cmd)
	if err != nil {
		return nil, err
	}

	opts := []advisor.AdvisorOption{advisor.WithPortfolio(book)}
	if cfg.Chat.FallbackEnabled {
		bot := chatterbox.New(chatterbox.DefaultTraining(),
			chatterbox.WithThreshold(cfg.Chat.FallbackThreshold))
		opts = append(opts, advisor.WithFallback(bot))
	}

	return advisor.New(assets.Default(), newMarketClient(), opts...), nil
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("CryptoBuddy %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Chat Command ---

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start interactive chat mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		adv, err := newAdvisor(cmd)
		if err != nil {
			return err
		}

		divider := strings.Repeat("=", 70)
		fmt.Println("\n" + divider)
		fmt.Println("Hey there! I'm CryptoBuddy, your crypto sidekick!")
		fmt.Println("I use REAL-TIME data from CoinGecko API when available.")
		fmt.Println("Get live prices, market trends, and sustainability insights!")
		fmt.Println(divider + "\n")
		fmt.Println("Disclaimer: This bot may use real-time data from CoinGecko. Crypto is risky.")
		fmt.Println("Always do your own research!")
		fmt.Println()
		fmt.Println("Try:")
		fmt.Println(" - What's the price of Bitcoin?")
		fmt.Println(" - Which crypto is trending?")
		fmt.Println(" - What's the most sustainable coin?")
		fmt.Println(" - Best for long-term growth?")
		fmt.Println(" - Compare Bitcoin and Ethereum")
		fmt.Println(" - Show all cryptocurrencies")
		fmt.Println(" - Give me a recommendation")
		fmt.Println("\nType 'bye', 'exit', or 'quit' to end")
		fmt.Println(strings.Repeat("-", 70))

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("\nYou: ")
			if !scanner.Scan() {
				fmt.Println("\n\nGoodbye! - CryptoBuddy")
				return scanner.Err()
			}
			input := strings.TrimSpace(scanner.Text())
			if input == "" {
				continue
			}
			switch strings.ToLower(input) {
			case "bye", "exit", "quit", "goodbye":
				fmt.Println("\nGoodbye! Stay green and grow your wealth!")
				return nil
			}

			fmt.Printf("\nCryptoBuddy: %s\n", adv.Respond(cmd.Context(), input))
			fmt.Println(time.Now().Format("15:04:05"))
			fmt.Println(strings.Repeat("-", 70))
		}
	},
}

// --- Ask Command ---

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question and exit",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		adv, err := newAdvisor(cmd)
		if err != nil {
			return err
		}
		fmt.Println(adv.Respond(cmd.Context(), strings.Join(args, " ")))
		return nil
	},
}

// --- Price Command ---

var priceCmd = &cobra.Command{
	Use:   "price [asset]",
	Short: "Show the live price of an asset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		adv, err := newAdvisor(cmd)
		if err != nil {
			return err
		}

		name := args[0]
		catalog := adv.Catalog()
		id := strings.ToLower(name)
		if _, ok := catalog.ByID(id); !ok {
			matched := catalog.ResolveInText(name)
			if len(matched) == 0 {
				fmt.Println(adv.Renderer().UnknownAssetReport(name))
				return nil
			}
			id = matched[0].ID
		}
		fmt.Println(adv.PriceFor(cmd.Context(), id))
		return nil
	},
}

// --- Trending Command ---

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "Show the top positive movers",
	RunE: func(cmd *cobra.Command, args []string) error {
		adv, err := newAdvisor(cmd)
		if err != nil {
			return err
		}
		fmt.Println(adv.Trending(cmd.Context()))
		return nil
	},
}

// --- Sustainable Command ---

var sustainableCmd = &cobra.Command{
	Use:   "sustainable",
	Short: "Show the most sustainable asset",
	RunE: func(cmd *cobra.Command, args []string) error {
		adv, err := newAdvisor(cmd)
		if err != nil {
			return err
		}
		fmt.Println(adv.Sustainability(cmd.Context()))
		return nil
	},
}

// --- Longterm Command ---

var longtermCmd = &cobra.Command{
	Use:   "longterm",
	Short: "Show the best assets for long-term growth",
	RunE: func(cmd *cobra.Command, args []string) error {
		adv, err := newAdvisor(cmd)
		if err != nil {
			return err
		}
		fmt.Println(adv.LongTerm(cmd.Context()))
		return nil
	},
}

// --- Compare Command ---

var compareCmd = &cobra.Command{
	Use:   "compare [asset] [asset]",
	Short: "Compare two assets side by side",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		adv, err := newAdvisor(cmd)
		if err != nil {
			return err
		}
		fmt.Println(adv.Compare(cmd.Context(), strings.Join(args, " ")))
		return nil
	},
}

// --- List Command ---

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all tracked cryptocurrencies",
	RunE: func(cmd *cobra.Command, args []string) error {
		adv, err := newAdvisor(cmd)
		if err != nil {
			return err
		}
		fmt.Println(adv.ListAll(cmd.Context()))
		return nil
	},
}

// --- Recommend Command ---

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Show the balanced recommendation",
	RunE: func(cmd *cobra.Command, args []string) error {
		adv, err := newAdvisor(cmd)
		if err != nil {
			return err
		}
		fmt.Println(adv.Recommend(cmd.Context()))
		return nil
	},
}

// --- Portfolio Command ---

var portfolioCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Value your holdings against live prices",
	RunE: func(cmd *cobra.Command, args []string) error {
		adv, err := newAdvisor(cmd)
		if err != nil {
			return err
		}
		fmt.Println(adv.Portfolio(cmd.Context()))
		return nil
	},
}

// --- News Command ---

var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "Show recent crypto headlines",
	RunE: func(cmd *cobra.Command, args []string) error {
		assetID, _ := cmd.Flags().GetString("asset")
		limit, _ := cmd.Flags().GetInt("limit")
		if limit <= 0 {
			limit = cfg.News.Limit
		}

		catalog := assets.Default()
		fetcher := news.NewFetcher()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if assetID != "" {
			p, ok := catalog.ByID(strings.ToLower(assetID))
			if !ok {
				return fmt.Errorf("unknown asset %q; known: %s", assetID, strings.Join(catalog.IDs(), ", "))
			}
			items, err := fetcher.ForAsset(ctx, p, limit)
			if err != nil {
				return fmt.Errorf("fetch news: %w", err)
			}
			printArticles(items)
			return nil
		}

		items, err := fetcher.Latest(ctx, limit)
		if err != nil {
			return fmt.Errorf("fetch news: %w", err)
		}
		printArticles(items)
		return nil
	},
}

func init() {
	newsCmd.Flags().String("asset", "", "filter headlines by asset id (e.g. bitcoin)")
	newsCmd.Flags().Int("limit", 0, "maximum number of headlines")
}

func printArticles(items []models.NewsArticle) {
	if len(items) == 0 {
		fmt.Println("No headlines right now.")
		return
	}
	for _, a := range items {
		tone := ""
		if a.Tone != "" {
			tone = " [" + a.Tone + "]"
		}
		fmt.Printf("%s  %s%s\n", a.PublishedAt.Format("2006-01-02"), a.Title, tone)
		fmt.Printf("    %s | %s\n", a.Source, a.URL)
	}
}

// --- Export Command ---

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the live market table as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")

		client := newMarketClient()
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		snapshots, err := client.GetMarketData(ctx, assets.Default().IDs())
		if err != nil {
			return fmt.Errorf("fetch market data: %w", err)
		}

		w := os.Stdout
		if out != "" {
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			defer f.Close()
			w = f
		}
		if err := export.MarketCSV(w, snapshots); err != nil {
			return err
		}
		if out != "" {
			fmt.Printf("Wrote %d rows to %s\n", len(snapshots), out)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().String("out", "", "output file (default: stdout)")
}

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		adv, err := newAdvisor(cmd)
		if err != nil {
			return err
		}
		book, err := newBook(cmd)
		if err != nil {
			return err
		}

		srv := api.NewServer(cfg, assets.Default(), adv, newMarketClient(),
			api.WithVersion(version),
			api.WithNews(news.NewFetcher()),
			api.WithPortfolio(book),
		)

		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		fmt.Printf("Starting CryptoBuddy API server on %s\n", addr)
		return srv.ListenAndServe(addr)
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show system status and configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  CryptoBuddy System Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:       %s (%s)\n", version, commit)
		fmt.Printf("  Tracked:       %d assets\n", assets.Default().Len())
		fmt.Printf("  Time (UTC):    %s\n", time.Now().UTC().Format("2006-01-02 15:04:05"))
		fmt.Println()

		fmt.Println("  Configuration:")
		fmt.Printf("    Provider:      %s\n", cfg.Provider.BaseURL)
		fmt.Printf("    Cache TTL:     %ds\n", cfg.Provider.CacheTTLSec)
		fmt.Printf("    Chat Fallback: %t\n", cfg.Chat.FallbackEnabled)
		fmt.Printf("    API Server:    %s:%d\n", cfg.API.Host, cfg.API.Port)
		fmt.Println()

		fmt.Println("  API Keys:")
		keys := config.CheckAPIKeys(cfg)
		for _, k := range keys {
			status := "not set (public rate limits apply)"
			if k.IsSet {
				status = fmt.Sprintf("set (%s: %s)", k.Source, k.Masked)
			}
			fmt.Printf("    %-20s %s\n", k.Name+":", status)
		}

		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}
