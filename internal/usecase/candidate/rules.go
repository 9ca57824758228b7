package candidate

import (
	"slices"
	"strconv"
	"strings"
	"time"

	domcand "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/candidate"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/keyword"
)

var (
	intentPrefixes = []string{
		"best", "how to", "what is", "top", "cheap", "free", "easy", "online", "professional", "diy",
	}

	staticSuffixes = []string{
		"guide", "tips", "cost", "price", "near me", "examples", "ideas", "tools",
		"software", "services", "for beginners", "checklist", "benefits", "reviews",
	}

	// %s is replaced by the seed.
	questionTemplates = []string{
		"how to %s", "what is %s", "why is %s important", "how does %s work", "when to use %s",
		"where to find %s", "how much does %s cost", "what are the benefits of %s", "is %s worth it", "%s vs",
	}

	intentModifiers = []string{
		"%s vs", "%s alternatives", "buy %s", "%s for sale", "%s comparison", "%s review",
	}

	stopWords = map[string]struct{}{
		"the": {}, "and": {}, "for": {}, "with": {}, "from": {}, "that": {}, "this": {},
		"your": {}, "are": {}, "how": {}, "what": {}, "why": {}, "when": {}, "where": {},
	}
)

// minWordLength is the shortest word that gets its own per-word variants.
const minWordLength = 3

// RuleExpander builds candidate phrases from fixed templates. No I/O.
type RuleExpander struct {
	year int
}

// RuleOption configures a RuleExpander.
type RuleOption func(*RuleExpander)

// WithYear pins the year used by the "<seed> <year>" suffix.
func WithYear(year int) RuleOption {
	return func(r *RuleExpander) { r.year = year }
}

// NewRuleExpander creates a rule-based expander using the current UTC year.
func NewRuleExpander(opts ...RuleOption) *RuleExpander {
	r := &RuleExpander{year: time.Now().UTC().Year()}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Expand returns up to MaxRuleBased variants of seed, shortest first.
// The seed itself is never part of the output.
func (r *RuleExpander) Expand(seed string) []string {
	s := keyword.Normalize(seed)
	if s == "" {
		return nil
	}

	c := newCollector(s)

	for _, p := range intentPrefixes {
		c.add(p + " " + s)
	}
	for _, suf := range staticSuffixes {
		c.add(s + " " + suf)
	}
	c.add(s + " " + strconv.Itoa(r.year))
	for _, tpl := range questionTemplates {
		c.add(strings.ReplaceAll(tpl, "%s", s))
	}

	c.add(pluralize(s))
	c.add(singularize(s))

	words := strings.Fields(s)
	if len(words) > 1 {
		for _, w := range words {
			if !significant(w) {
				continue
			}
			c.add(w)
			c.add("best " + w)
			c.add(w + " " + "tips")
		}
	}

	for _, tpl := range intentModifiers {
		c.add(strings.ReplaceAll(tpl, "%s", s))
	}

	out := c.phrases
	slices.SortStableFunc(out, func(a, b string) int {
		return keyword.Length(a) - keyword.Length(b)
	})
	if len(out) > domcand.MaxRuleBased {
		out = out[:domcand.MaxRuleBased]
	}
	return out
}

// collector keeps normalized, unique, length-bounded phrases in insertion order.
type collector struct {
	seed    string
	seen    map[string]struct{}
	phrases []string
}

func newCollector(seed string) *collector {
	return &collector{seed: seed, seen: map[string]struct{}{seed: {}}}
}

func (c *collector) add(p string) {
	n := keyword.Normalize(p)
	if n == "" || keyword.Length(n) > keyword.MaxPhraseLength {
		return
	}
	if _, ok := c.seen[n]; ok {
		return
	}
	c.seen[n] = struct{}{}
	c.phrases = append(c.phrases, n)
}

func significant(w string) bool {
	if keyword.Length(w) < minWordLength {
		return false
	}
	_, stop := stopWords[w]
	return !stop
}

// pluralize applies English plural rules to the last word of a phrase.
func pluralize(phrase string) string {
	head, last := splitLast(phrase)
	switch {
	case last == "":
		return phrase
	case strings.HasSuffix(last, "s") && !strings.HasSuffix(last, "ss"):
		return phrase
	case strings.HasSuffix(last, "y") && len(last) > 1 && !isVowel(last[len(last)-2]):
		last = last[:len(last)-1] + "ies"
	case hasAnySuffix(last, "ss", "x", "z", "ch", "sh"):
		last += "es"
	default:
		last += "s"
	}
	return head + last
}

// singularize reverses pluralize for the last word of a phrase.
func singularize(phrase string) string {
	head, last := splitLast(phrase)
	switch {
	case len(last) > 3 && strings.HasSuffix(last, "ies"):
		last = last[:len(last)-3] + "y"
	case len(last) > 3 && hasAnySuffix(last, "sses", "xes", "zes", "ches", "shes"):
		last = last[:len(last)-2]
	case len(last) > 1 && strings.HasSuffix(last, "s") && !hasAnySuffix(last, "ss", "us", "is"):
		last = last[:len(last)-1]
	}
	return head + last
}

func splitLast(phrase string) (string, string) {
	i := strings.LastIndexByte(phrase, ' ')
	return phrase[:i+1], phrase[i+1:]
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

func isVowel(b byte) bool {
	return strings.IndexByte("aeiou", b) >= 0
}
