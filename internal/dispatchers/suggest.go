package dispatchers

import (
	"cmp"
	"slices"
	"unicode"
	"unicode/utf8"
)

// editDistance is the case-insensitive Levenshtein distance between a
// and b, counted in runes.
func editDistance(a, b string) int {
	ra, rb := foldRunes(a), foldRunes(b)
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}

	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i, ca := range ra {
		cur[0] = i + 1
		for j, cb := range rb {
			sub := prev[j]
			if ca != cb {
				sub++
			}
			cur[j+1] = min(prev[j+1]+1, cur[j]+1, sub)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

func foldRunes(s string) []rune {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		out = append(out, unicode.ToLower(r))
	}
	return out
}

// suggestLimit is the largest edit distance worth suggesting for a
// keyword: one typo for short keywords, up to three for long ones.
func suggestLimit(keyword string) int {
	return min(3, 1+utf8.RuneCountInString(keyword)/3)
}

// FindSimilarCommands returns up to maxResults names close to input,
// closest first and then alphabetically. Exact matches are not
// suggestions.
func FindSimilarCommands(input string, names []string, maxResults int) []string {
	type candidate struct {
		name string
		dist int
	}

	limit := suggestLimit(input)
	var found []candidate
	for _, name := range names {
		if d := editDistance(input, name); d > 0 && d <= limit {
			found = append(found, candidate{name, d})
		}
	}
	slices.SortFunc(found, func(a, b candidate) int {
		return cmp.Or(cmp.Compare(a.dist, b.dist), cmp.Compare(a.name, b.name))
	})

	out := make([]string, 0, min(len(found), max(maxResults, 0)))
	for _, c := range found {
		if len(out) == maxResults {
			break
		}
		out = append(out, c.name)
	}
	return out
}
