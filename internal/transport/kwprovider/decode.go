package kwprovider

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain/keyword"
)

type response struct {
	Data []row `json:"data"`
}

type row struct {
	Keyword     string       `json:"keyword"`
	Vol         flexNumber   `json:"vol"`
	CPC         flexNumber   `json:"cpc"`
	Competition flexNumber   `json:"competition"`
	Trend       []flexNumber `json:"trend"`
}

// flexNumber accepts a number, a numeric string, null, or an object with a
// "value" field. Anything else decodes as unknown.
type flexNumber struct {
	v *float64
}

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		n.v = nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("decode numeric string: %w", err)
		}
		n.v = parseNumber(s)
	case b[0] == '{':
		var obj struct {
			Value flexNumber `json:"value"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return fmt.Errorf("decode value object: %w", err)
		}
		n.v = obj.Value.v
	default:
		n.v = parseNumber(string(b))
	}
	return nil
}

func parseNumber(s string) *float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func decodeMetrics(body []byte) ([]keyword.Metric, error) {
	if !looksLikeJSON(body) {
		return nil, errors.New("response is not JSON: " + snippet(body))
	}
	var resp response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	out := make([]keyword.Metric, 0, len(resp.Data))
	for _, r := range resp.Data {
		var trend []float64
		for _, t := range r.Trend {
			if t.v == nil {
				trend = append(trend, 0)
				continue
			}
			trend = append(trend, *t.v)
		}
		m, err := keyword.NewMetric(r.Keyword, r.Vol.v, r.CPC.v, r.Competition.v, trend)
		if err != nil {
			// Rows with an unusable phrase carry no signal.
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func looksLikeJSON(body []byte) bool {
	b := bytes.TrimSpace(body)
	return len(b) > 0 && (b[0] == '{' || b[0] == '[')
}

// errorDetail pulls a message out of a JSON error body, or a short snippet otherwise.
func errorDetail(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
		Error   any    `json:"error"`
		Detail  string `json:"detail"`
	}
	if looksLikeJSON(body) && json.Unmarshal(body, &parsed) == nil {
		switch {
		case parsed.Message != "":
			return parsed.Message
		case parsed.Detail != "":
			return parsed.Detail
		}
		switch e := parsed.Error.(type) {
		case string:
			if e != "" {
				return e
			}
		case map[string]any:
			if msg, ok := e["message"].(string); ok && msg != "" {
				return msg
			}
		}
	}
	return snippet(body)
}

func snippet(body []byte) string {
	s := strings.Join(strings.Fields(string(body)), " ")
	if r := []rune(s); len(r) > maxDetailLen {
		s = string(r[:maxDetailLen]) + "..."
	}
	return s
}
