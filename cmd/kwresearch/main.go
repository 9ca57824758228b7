// Command kwresearch runs keyword opportunity research from the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/config"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/version"
	kwscout "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/pkg/sdk"
)

var (
	country     string
	currency    string
	limit       int
	useAI       bool
	sortBy      string
	output      string
	period      string
	providerKey string
	providerURL string
	openAIKey   string
	openAIModel string
	valkeyAddr  string
	timeout     time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "kwresearch",
	Short: "Keyword opportunity research",
	Long: `kwresearch expands a seed phrase into candidate keywords, fetches their
search metrics in one provider call and ranks them by opportunity score.

Credentials are read from KEYWORDS_API_KEY and OPENAI_API_KEY (a .env file
in the working directory is loaded first) or from flags.`,
	Version:      version.String(),
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if err := config.LoadDotEnv(".env"); err != nil {
			return fmt.Errorf("load .env: %w", err)
		}
		if providerKey == "" {
			providerKey = os.Getenv("KEYWORDS_API_KEY")
		}
		if openAIKey == "" {
			openAIKey = os.Getenv("OPENAI_API_KEY")
		}
		return nil
	},
}

var researchCmd = &cobra.Command{
	Use:   "research [seed phrase]",
	Short: "Research keyword opportunities for a seed phrase",
	Long: `Runs one research pipeline: rule-based (and optionally AI) candidate
generation, a single batched metrics lookup, scoring and ranking.

Example:
  kwresearch research "content marketing" --country gb --limit 25 --ai`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResearch,
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score keyword metrics read as JSON from stdin",
	Long: `Reads a JSON array of {"keyword", "volume", "cpc", "competition", "trend"}
objects and prints their opportunity scores. No provider call is made.`,
	Args: cobra.NoArgs,
	RunE: runScore,
}

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show provider credit usage",
	Long:  `Shows the credit counters persisted in valkey. Requires --valkey.`,
	Args:  cobra.NoArgs,
	RunE:  runUsage,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&output, "output", "o", "table", "Output format: table or json")
	pf.StringVar(&providerKey, "api-key", "", "Keyword provider API key (default $KEYWORDS_API_KEY)")
	pf.StringVar(&providerURL, "provider-url", "", "Keyword provider base URL")
	pf.StringVar(&openAIKey, "openai-key", "", "OpenAI API key for AI expansion (default $OPENAI_API_KEY)")
	pf.StringVar(&openAIModel, "model", "", "OpenAI model for AI expansion")
	pf.StringVar(&valkeyAddr, "valkey", "", "Valkey address for the metric cache and persisted counters")
	pf.DurationVar(&timeout, "timeout", 60*time.Second, "Overall command timeout")

	rf := researchCmd.Flags()
	rf.StringVarP(&country, "country", "c", "", "2-letter target market (default us)")
	rf.StringVar(&currency, "currency", "", "3-letter CPC currency (default usd)")
	rf.IntVarP(&limit, "limit", "n", 100, "Maximum related keywords (0-1000)")
	rf.BoolVar(&useAI, "ai", false, "Use AI candidate expansion")
	rf.StringVarP(&sortBy, "sort", "s", "score", "Sort by: score, volume, cpc, competition")

	usageCmd.Flags().StringVar(&period, "period", "month", "Period: day, month or total")

	rootCmd.AddCommand(researchCmd, scoreCmd, usageCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newClient builds an SDK client from the persistent flags.
func newClient(ctx context.Context) (*kwscout.Client, error) {
	opts := []kwscout.Option{kwscout.WithProvider(providerKey)}
	if providerURL != "" {
		opts = append(opts, kwscout.WithProviderBaseURL(providerURL))
	}
	if openAIKey != "" {
		opts = append(opts, kwscout.WithOpenAI(openAIKey, openAIModel))
	}
	if valkeyAddr != "" {
		opts = append(opts, kwscout.WithValkey(valkeyAddr, os.Getenv("VALKEY_PASSWORD")))
	}
	client, err := kwscout.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return client, nil
}
