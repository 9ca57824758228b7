// Package kwscout provides an embeddable Go client for keyword opportunity
// research: candidate generation, one batched metrics lookup and
// opportunity scoring, without running the HTTP server.
//
// # Basic usage
//
//	client, _ := kwscout.New(ctx,
//	    kwscout.WithProvider(os.Getenv("KEYWORDS_API_KEY")),
//	    kwscout.WithOpenAI(os.Getenv("OPENAI_API_KEY"), "gpt-4o-mini"),
//	)
//	defer client.Close()
//
//	res, err := client.Research(ctx, "content marketing",
//	    kwscout.Country("gb"), kwscout.Limit(25), kwscout.UseAI(true),
//	)
//	for _, k := range res.RelatedKeywords {
//	    fmt.Println(k.Keyword, k.Score, k.Rationale)
//	}
//
// # Metric cache and persisted credit counters
//
//	client, _ := kwscout.New(ctx,
//	    kwscout.WithProvider(key),
//	    kwscout.WithValkey("localhost:6379", ""),
//	    kwscout.WithBudget(1000, 20000, true),
//	)
//
// Without WithValkey every lookup goes to the provider and credit counters
// live in process memory.
package kwscout
