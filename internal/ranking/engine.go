// internal/ranking/engine.go
package ranking

import "sort"

const (
	// MaxPrimaryFallback caps the primary list when no record matches every token.
	MaxPrimaryFallback = 30
	// MaxRelatedFallback caps the related list when no record partially matches.
	MaxRelatedFallback = 25
)

type scored struct {
	index int
	score Score
}

// RankEntities scores, sorts and partitions items against the query. It does
// not modify items and keeps no state between calls.
func RankEntities[T Rankable](query, stateFilter string, items []T) EntityResponse[T] {
	tokens := Tokenize(query)

	all := make([]scored, len(items))
	for i, item := range items {
		all[i] = scored{index: i, score: scoreProfile(item.Profile(), tokens, stateFilter)}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].score.RelevanceScore > all[j].score.RelevanceScore
	})

	var direct, adjacent []scored
	for _, s := range all {
		switch {
		case s.score.CoverageRatio == 1:
			direct = append(direct, s)
		case s.score.TokensMatched > 0:
			adjacent = append(adjacent, s)
		}
	}

	meta := buildMeta(items, tokens, stateFilter)

	if len(direct) == 0 {
		meta.PrimaryFallback = true
		direct = all[:min(MaxPrimaryFallback, len(all))]
		adjacent = excluding(adjacent, direct, len(adjacent))
	}

	if len(adjacent) == 0 {
		meta.RelatedFallback = true
		adjacent = excluding(all, direct, MaxRelatedFallback)
	}

	return EntityResponse[T]{
		Primary: annotate(items, direct, MatchDirect),
		Related: annotate(items, adjacent, MatchAdjacent),
		Meta:    meta,
	}
}

// Rank is the Candidate entry point; results carry the candidate fields inline.
func Rank(query, stateFilter string, candidates []Candidate) SearchEngineResponse {
	res := RankEntities(query, stateFilter, candidates)
	return SearchEngineResponse{
		Primary: flatten(res.Primary),
		Related: flatten(res.Related),
		Meta:    res.Meta,
	}
}

func excluding(from, taken []scored, limit int) []scored {
	skip := make(map[int]bool, len(taken))
	for _, s := range taken {
		skip[s.index] = true
	}
	out := make([]scored, 0, min(limit, len(from)))
	for _, s := range from {
		if len(out) == limit {
			break
		}
		if !skip[s.index] {
			out = append(out, s)
		}
	}
	return out
}

func annotate[T Rankable](items []T, list []scored, category MatchCategory) []Ranked[T] {
	out := make([]Ranked[T], len(list))
	for i, s := range list {
		score := s.score
		score.MatchCategory = category
		score.Rank = i + 1
		out[i] = Ranked[T]{Item: items[s.index], Score: score}
	}
	return out
}

func flatten(list []Ranked[Candidate]) []RankedResult {
	out := make([]RankedResult, len(list))
	for i, r := range list {
		c := r.Item
		c.Insights = append([]string(nil), c.Insights...)
		out[i] = RankedResult{Candidate: c, Score: r.Score}
	}
	return out
}

func buildMeta[T Rankable](items []T, tokens []string, stateFilter string) Meta {
	meta := Meta{
		TotalCandidates:    len(items),
		QueryTokens:        tokens,
		StateFilter:        stateFilter,
		LastRefreshMinutes: DefaultFreshnessMinutes,
		SignalCoverage:     make(map[string]int),
	}

	for i, item := range items {
		p := item.Profile()
		if p.Status == StatusLive {
			meta.LiveCount++
		}

		minutes := ParseFreshness(p.Updated)
		if i == 0 || minutes < meta.LastRefreshMinutes {
			meta.LastRefreshMinutes = minutes
		}

		seen := make(map[string]bool, len(p.Signals))
		for _, label := range p.Signals {
			if seen[label] {
				continue
			}
			seen[label] = true
			meta.SignalCoverage[label]++
		}
	}
	meta.ArchivedCount = meta.TotalCandidates - meta.LiveCount

	return meta
}
