// Package suggest computes "did you mean" suggestions for undefined
// identifiers, wiring github.com/lithammer/fuzzysearch into the
// evaluator's runtime-error path the way the corpus's runtime module
// pulls in the same dependency for fuzzy matching.
package suggest

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Closest returns the best fuzzy match for name among candidates, or
// "" if nothing is close enough to be worth suggesting. Ties are
// broken by shortest edit distance first, then lexical order, so the
// result is deterministic.
func Closest(name string, candidates []string) string {
	ranks := fuzzy.RankFindFold(name, candidates)
	if len(ranks) == 0 {
		return ""
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].Target < ranks[j].Target
	})
	return ranks[0].Target
}
