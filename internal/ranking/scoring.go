// internal/ranking/scoring.go
package ranking

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Weights are hand-tuned; changing any of them changes observable ordering.
const (
	signalWeight      = 2.5
	liveWeight        = 4.0
	stateWeight       = 5.0
	coverageWeight    = 14.0
	freshnessCeiling  = 12.0
	freshnessDecayMin = 30.0

	// DefaultFreshnessMinutes applies to labels that do not parse and to an empty universe.
	DefaultFreshnessMinutes = 60
)

var freshnessPattern = regexp.MustCompile(`^\s*(\d+)([mhd])\b`)

// Tokenize lower-cases the query and splits it on whitespace. Repeated tokens
// are kept; each occurrence counts toward coverage.
func Tokenize(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	if fields == nil {
		return []string{}
	}
	return fields
}

// ParseFreshness converts a relative label such as "15m ago" into minutes.
func ParseFreshness(label string) int {
	m := freshnessPattern.FindStringSubmatch(strings.ToLower(label))
	if m == nil {
		return DefaultFreshnessMinutes
	}
	amount, err := strconv.Atoi(m[1])
	if err != nil {
		return DefaultFreshnessMinutes
	}
	switch m[2] {
	case "h":
		return amount * 60
	case "d":
		return amount * 1440
	default:
		return amount
	}
}

// StateAligned reports whether location satisfies the state filter.
func StateAligned(location, stateFilter string) bool {
	if stateFilter == AllStates {
		return true
	}
	return strings.Contains(strings.ToLower(location), strings.ToLower(stateFilter))
}

func countMatchedTokens(p Profile, tokens []string) int {
	name := strings.ToLower(p.Name)
	location := strings.ToLower(p.Location)
	matched := 0
	for _, tok := range tokens {
		if strings.Contains(name, tok) || strings.Contains(location, tok) {
			matched++
		}
	}
	return matched
}

func freshnessBonus(minutes int) float64 {
	return math.Max(0, freshnessCeiling-math.Min(float64(minutes)/freshnessDecayMin, freshnessCeiling))
}

// roundHalfUp rounds .5 toward positive infinity.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// scoreProfile computes every annotation except category and rank.
func scoreProfile(p Profile, tokens []string, stateFilter string) Score {
	matched := countMatchedTokens(p, tokens)
	coverage := 1.0
	if len(tokens) > 0 {
		coverage = float64(matched) / float64(len(tokens))
	}

	aligned := StateAligned(p.Location, stateFilter)
	minutes := ParseFreshness(p.Updated)
	footprint := len(p.Signals)

	total := p.BaseScore +
		float64(footprint)*signalWeight +
		coverage*coverageWeight +
		freshnessBonus(minutes)
	if p.Status == StatusLive {
		total += liveWeight
	}
	if aligned {
		total += stateWeight
	}

	return Score{
		RelevanceScore:   roundHalfUp(total),
		CoverageRatio:    coverage,
		TokensMatched:    matched,
		FreshnessMinutes: minutes,
		InsightFootprint: footprint,
		StateAligned:     aligned,
	}
}
