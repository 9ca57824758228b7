package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	kwscout "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/pkg/sdk"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginTop(1)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

// render writes v as indented JSON, or the table produced by asTable.
func render(w io.Writer, format string, v any, asTable func() string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case "table", "":
		_, err := fmt.Fprintln(w, asTable())
		return err //nolint:wrapcheck
	default:
		return fmt.Errorf("unknown output format %q (want table or json)", format)
	}
}

func researchTable(res *kwscout.ResearchResult) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Seed: %s", res.SeedKeyword)))
	b.WriteString("\n")
	if len(res.Keywords) > 0 {
		b.WriteString(keywordTable("Seed metrics", res.Keywords))
		b.WriteString("\n")
	}
	b.WriteString(keywordTable("Related keywords", res.RelatedKeywords))
	b.WriteString("\n")
	b.WriteString(keywordTable("Question keywords", res.QuestionKeywords))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d phrases with data, %d credits used, %d cache hits",
		res.TotalResults, res.CreditsUsed, res.CacheHits)))
	return b.String()
}

func keywordTable(title string, rows []kwscout.Keyword) string {
	if len(rows) == 0 {
		return titleStyle.Render(title) + "\n" + mutedStyle.Render("(none)")
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("KEYWORD", "SCORE", "VOLUME", "CPC", "COMP", "WHY").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, k := range rows {
		t.Row(
			k.Keyword,
			strconv.Itoa(k.Score),
			formatInt(k.Volume),
			formatFloat(k.CPC, 2),
			formatFloat(k.Competition, 2),
			k.Rationale,
		)
	}
	return titleStyle.Render(title) + "\n" + t.String()
}

func usageTable(r *kwscout.UsageReport) string {
	limit := "unlimited"
	if r.Budget.CreditsLimit > 0 {
		limit = strconv.FormatInt(r.Budget.CreditsLimit, 10)
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(_, _ int) lipgloss.Style { return cellStyle }).
		Row("period", string(r.Period)).
		Row("provider requests", strconv.FormatInt(r.Metrics.ProviderRequests, 10)).
		Row("credits used", strconv.FormatInt(r.Metrics.CreditsUsed, 10)).
		Row("cache hits", strconv.FormatInt(r.Metrics.CacheHits, 10)).
		Row("credit limit", limit)
	if r.Budget.CreditsLimit > 0 {
		t.Row("credits remaining", strconv.FormatInt(r.Budget.CreditsRemaining, 10))
	}
	return titleStyle.Render("Credit usage") + "\n" + t.String()
}

func formatInt(v *int64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatInt(*v, 10)
}

func formatFloat(v *float64, prec int) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', prec, 64)
}
