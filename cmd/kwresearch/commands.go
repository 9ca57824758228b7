package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	kwscout "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/pkg/sdk"
)

func runResearch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	client, err := newClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	seed := strings.Join(args, " ")
	res, err := client.Research(ctx, seed,
		kwscout.Country(country),
		kwscout.Currency(currency),
		kwscout.Limit(limit),
		kwscout.UseAI(useAI),
		kwscout.Sort(kwscout.SortBy(sortBy)),
	)
	if err != nil {
		var perr *kwscout.ProviderError
		if errors.As(err, &perr) && perr.Hint != "" {
			cmd.PrintErrln("hint:", perr.Hint)
		}
		return fmt.Errorf("research %q: %w", seed, err)
	}

	return render(cmd.OutOrStdout(), output, res, func() string { return researchTable(&res) })
}

func runScore(cmd *cobra.Command, _ []string) error {
	var items []kwscout.MetricInput
	dec := json.NewDecoder(cmd.InOrStdin())
	if err := dec.Decode(&items); err != nil {
		return fmt.Errorf("decode metrics from stdin: %w", err)
	}

	scored, err := kwscout.Score(items)
	if err != nil {
		return fmt.Errorf("score: %w", err)
	}

	return render(cmd.OutOrStdout(), output, scored, func() string {
		return keywordTable("Scores", scored)
	})
}

// errNoStore is returned by usage without --valkey: counters live in valkey,
// so a fresh process would always report zero.
var errNoStore = errors.New("usage needs --valkey: credit counters are only persisted in valkey")

func runUsage(cmd *cobra.Command, _ []string) error {
	if valkeyAddr == "" {
		return errNoStore
	}

	client, err := newClient(cmd.Context())
	if err != nil {
		return err
	}
	defer client.Close()

	report := client.Usage(cmd.Context(), kwscout.UsagePeriod(period))
	return render(cmd.OutOrStdout(), output, report, func() string { return usageTable(&report) })
}
