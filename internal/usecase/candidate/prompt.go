package candidate

import (
	"fmt"
	"strings"
)

var countryNames = map[string]string{
	"us": "United States",
	"gb": "United Kingdom",
	"uk": "United Kingdom",
	"ca": "Canada",
	"au": "Australia",
	"nz": "New Zealand",
	"ie": "Ireland",
	"in": "India",
	"de": "Germany",
	"fr": "France",
	"es": "Spain",
	"it": "Italy",
	"nl": "Netherlands",
	"br": "Brazil",
	"mx": "Mexico",
	"jp": "Japan",
}

// countryName maps a country code to the market name used in prompts.
func countryName(code string) string {
	if name, ok := countryNames[strings.ToLower(code)]; ok {
		return name
	}
	return strings.ToUpper(code)
}

// BuildPrompt returns the intent-analysis prompt for a seed phrase.
func BuildPrompt(seed, country string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an SEO keyword researcher for the %s market.\n", countryName(country))
	fmt.Fprintf(&b, "Research the topic %q and analyze the search intent behind it.\n\n", seed)
	b.WriteString("Produce realistic search queries people type into a search engine, covering these categories:\n")
	b.WriteString("- core: direct variations of the topic\n")
	b.WriteString("- informational: learning and research queries\n")
	b.WriteString("- problem-solving: queries from people trying to fix or achieve something\n")
	b.WriteString("- commercial: comparison and evaluation queries\n")
	b.WriteString("- transactional: buying and signup queries\n")
	b.WriteString("- question: full questions starting with how, what, why, when or where\n")
	b.WriteString("- long-tail: specific phrases of four or more words\n\n")
	b.WriteString("Rules:\n")
	b.WriteString("- lowercase only, no punctuation except hyphens and apostrophes\n")
	b.WriteString("- at most 10 words per query\n")
	fmt.Fprintf(&b, "- do not repeat %q itself\n", seed)
	b.WriteString("- between 60 and 90 queries in total\n\n")
	b.WriteString("Respond with ONLY a JSON array of strings, flattened across all categories. ")
	b.WriteString("No markdown, no category names, no explanations.")
	return b.String()
}
