package candidate

import (
	"encoding/json"
	"slices"
	"strings"
	"unicode"

	domcand "github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/candidate"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/keyword"
)

// AI phrase validation bounds.
const (
	minAIPhraseLength = 3
	maxAIPhraseWords  = 10
)

var categoryOrder = []string{
	"core", "informational", "problem-solving", "commercial", "transactional", "question", "long-tail",
}

// extractPhrases pulls raw phrases out of a completion. It tries a strict
// JSON parse, then the outermost [...] span, then plain lines.
func extractPhrases(text string) []string {
	text = stripFences(text)

	if out, ok := parseJSON(text); ok {
		return out
	}

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start >= 0 && end > start {
		if out, ok := parseJSON(text[start : end+1]); ok {
			return out
		}
	}

	return splitLines(text)
}

func stripFences(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// parseJSON accepts a flat string array or an object of category arrays.
func parseJSON(text string) ([]string, bool) {
	var flat []string
	if err := json.Unmarshal([]byte(text), &flat); err == nil {
		return flat, true
	}

	var grouped map[string][]string
	if err := json.Unmarshal([]byte(text), &grouped); err != nil || len(grouped) == 0 {
		return nil, false
	}
	keys := make([]string, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		ia, ib := categoryIndex(a), categoryIndex(b)
		if ia != ib {
			return ia - ib
		}
		return strings.Compare(a, b)
	})
	var out []string
	for _, k := range keys {
		out = append(out, grouped[k]...)
	}
	return out, true
}

func categoryIndex(name string) int {
	if i := slices.Index(categoryOrder, strings.ToLower(name)); i >= 0 {
		return i
	}
	return len(categoryOrder)
}

func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*•·+>[ \t")
		line = trimNumbering(line)
		line = strings.TrimRight(line, ",;] \t")
		line = strings.Trim(line, "\"'`“”‘’")
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// trimNumbering removes "1." or "12)" list markers.
func trimNumbering(line string) string {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')') {
		return strings.TrimSpace(line[i+1:])
	}
	return line
}

// sanitizePhrases lowercases and filters raw model output, dropping the seed,
// out-of-bounds phrases and duplicates, and caps the result at MaxAIGenerated.
func sanitizePhrases(seed string, raw []string) []string {
	seed = keyword.Normalize(seed)
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, min(len(raw), domcand.MaxAIGenerated))

	for _, r := range raw {
		p := keyword.Normalize(r)
		if p == seed {
			continue
		}
		if n := keyword.Length(p); n < minAIPhraseLength || n > keyword.MaxPhraseLength {
			continue
		}
		if keyword.WordCount(p) > maxAIPhraseWords || !allowedChars(p) {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
		if len(out) == domcand.MaxAIGenerated {
			break
		}
	}
	return out
}

func allowedChars(p string) bool {
	for _, r := range p {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '\'' {
			continue
		}
		return false
	}
	return true
}
