package data

import "github.com/agnivade/levenshtein"

// maxSuggestDistance caps how far a suggestion may be from the query.
const maxSuggestDistance = 5

// NearestIngredient returns the catalog ingredient name closest to the
// query by edit distance, for "did you mean" hints in API errors.
// Returns "" when nothing is within maxSuggestDistance.
func (c *Catalog) NearestIngredient(name string) string {
	best := ""
	bestDist := maxSuggestDistance + 1
	for _, candidate := range c.order {
		d := levenshtein.ComputeDistance(name, candidate)
		if d < bestDist {
			best = candidate
			bestDist = d
		}
	}
	return best
}
