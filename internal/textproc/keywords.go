package textproc

import (
	"regexp"
	"sort"
)

// DefaultKeywordLimit is the keyword count used when callers pass a non-positive limit.
const DefaultKeywordLimit = 20

var numericRe = regexp.MustCompile(`^\d+$`)

// TopKeywords returns up to limit of the most frequent tokens of text.
// Ties keep first-occurrence order so the ranking is deterministic.
func TopKeywords(text string, limit int) []string {
	if limit <= 0 {
		limit = DefaultKeywordLimit
	}

	counts := make(map[string]int)
	var order []string
	for tok := range Tokens(text) {
		if _, seen := counts[tok]; !seen {
			order = append(order, tok)
		}
		counts[tok]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > 2*limit {
		order = order[:2*limit]
	}

	out := make([]string, 0, limit)
	seen := make(map[string]struct{}, limit)
	for _, word := range order {
		if numericRe.MatchString(word) {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		out = append(out, word)
		if len(out) >= limit {
			break
		}
	}
	return out
}
