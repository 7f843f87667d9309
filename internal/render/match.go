package render

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/kozaktomas/celebrity-twin/internal/config"
)

// Match is a celebrity name paired with a similarity percentage (0-100).
type Match struct {
	Name    string  `json:"name"`
	Percent float64 `json:"percent"`

	// rank overrides Percent for ordering when the payload carried a
	// non-number percent that still reads as a number, e.g. "90".
	rank    float64
	hasRank bool
}

// UnmarshalJSON decodes a match leniently: a missing, null or non-numeric
// percent becomes 0 and a missing or non-string name becomes "". Elements
// that are not objects decode to the zero Match.
//
// A numeric string or boolean percent is displayed as 0 but still ordered by
// its numeric value ("90" sorts as 90, true as 1).
func (m *Match) UnmarshalJSON(data []byte) error {
	*m = Match{}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil //nolint:nilerr // non-object elements render as "Unknown" / 0%
	}

	var name string
	if err := json.Unmarshal(raw["name"], &name); err == nil {
		m.Name = name
	}

	var percent float64
	if err := json.Unmarshal(raw["percent"], &percent); err == nil {
		if !math.IsNaN(percent) && !math.IsInf(percent, 0) {
			m.Percent = percent
		}
		return nil
	}

	if rank, ok := coerceRank(raw["percent"]); ok {
		m.rank, m.hasRank = rank, true
	}
	return nil
}

// coerceRank reads a string or boolean percent as a number.
func coerceRank(raw json.RawMessage) (float64, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil && b {
		return 1, true
	}
	return 0, false
}

// sortPercent is the value a match is ordered by.
func (m Match) sortPercent() float64 {
	if m.hasRank {
		return m.rank
	}
	return m.Percent
}

// ParseMatches decodes a JSON array of matches. Anything that is not a JSON
// array yields nil, which the renderer reports as "No matches found.".
func ParseMatches(data []byte) []Match {
	var matches []Match
	if err := json.Unmarshal(data, &matches); err != nil {
		return nil
	}
	return matches
}

// FormatPercent renders a percentage the shortest way that round-trips,
// e.g. 88 -> "88%", 87.5 -> "87.5%".
func FormatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64) + "%"
}

// DemoMatches converts the configured demo list into matches.
func DemoMatches(demo config.DemoConfig) []Match {
	matches := make([]Match, 0, len(demo.Matches))
	for _, m := range demo.Matches {
		matches = append(matches, Match{Name: m.Name, Percent: m.Percent})
	}
	return matches
}
