package diag

import "sort"

// levenshtein returns the edit distance between a and b, used to rank
// candidate names for "did you mean" suggestions.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			curr[j] = min3(del, ins, sub)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// maxSuggestions bounds how many candidates Suggest returns.
const maxSuggestions = 5

// maxSuggestionDistance discards candidates too far from name to plausibly
// be the intended spelling.
const maxSuggestionDistance = 5

// Suggest ranks candidates by edit distance to name and returns the
// closest few, closest first, ties broken alphabetically.
func Suggest(candidates []string, name string) []string {
	type scored struct {
		name string
		dist int
	}
	var pool []scored
	for _, c := range candidates {
		if c == name {
			continue
		}
		d := levenshtein(c, name)
		if d <= maxSuggestionDistance {
			pool = append(pool, scored{c, d})
		}
	}
	sort.Slice(pool, func(i, j int) bool {
		if pool[i].dist != pool[j].dist {
			return pool[i].dist < pool[j].dist
		}
		return pool[i].name < pool[j].name
	})
	if len(pool) > maxSuggestions {
		pool = pool[:maxSuggestions]
	}
	out := make([]string, len(pool))
	for i, s := range pool {
		out[i] = s.name
	}
	return out
}
