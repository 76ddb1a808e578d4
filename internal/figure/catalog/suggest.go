package catalog

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// SuggestFamilies returns the declared family codes closest to raw, best
// match first. It is meant for "did you mean" hints on user input and
// returns nil when raw is itself a family or nothing is close enough.
func (c *Catalog) SuggestFamilies(raw string) []FamilyCode {
	needle := strings.ToLower(strings.TrimSpace(raw))
	if needle == "" || c.HasFamily(FamilyCode(needle)) {
		return nil
	}

	type candidate struct {
		code FamilyCode
		dist int
	}
	var cands []candidate
	limit := suggestionLimit(len(needle))
	for _, code := range c.families {
		dist := levenshtein.ComputeDistance(needle, string(code))
		if dist > limit {
			continue
		}
		cands = append(cands, candidate{code: code, dist: dist})
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].dist == cands[j].dist {
			return c.ranks[cands[i].code] < c.ranks[cands[j].code]
		}
		return cands[i].dist < cands[j].dist
	})

	out := make([]FamilyCode, 0, len(cands))
	for _, cand := range cands {
		out = append(out, cand.code)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Family codes are two letters; longer input gets one more edit of slack.
func suggestionLimit(length int) int {
	if length <= 3 {
		return 1
	}
	return 2
}
