package pokedex

import "sort"

// AllTypes is the filter value that selects every Pokémon.
const AllTypes = "all"

// DistinctTypes returns the type names present in ps, deduplicated and
// sorted. The result does not depend on the order of ps.
func DistinctTypes(ps []Summary) []string {
	seen := make(map[string]struct{})
	for _, p := range ps {
		for _, t := range p.Types {
			seen[t] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// FilterByType returns the Pokémon in ps having type t, in input order.
// Filtering by [AllTypes] (or "") returns ps itself.
func FilterByType(ps []Summary, t string) []Summary {
	if t == AllTypes || t == "" {
		return ps
	}
	out := make([]Summary, 0, len(ps))
	for _, p := range ps {
		if p.HasType(t) {
			out = append(out, p)
		}
	}
	return out
}
