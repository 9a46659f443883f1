package catalog

import "strings"

// neighborhoodAliases maps a normalized quiz value to extra fragments that
// also identify it in catalog neighborhood labels.
var neighborhoodAliases = map[string][]string{
	"east":              {"east nashville", "five points", "lockeland"},
	"east nashville":    {"five points", "lockeland", "inglewood"},
	"the gulch":         {"gulch"},
	"gulch":             {"gulch"},
	"12 south":          {"12 south", "twelve south"},
	"12south":           {"12 south"},
	"twelve south":      {"12 south"},
	"weho":              {"wedgewood houston"},
	"wedgewood houston": {"weho"},
	"sobro":             {"downtown"},
	"downtown":          {"sobro", "rutledge hill", "broadway"},
	"midtown":           {"music row", "west end", "vanderbilt"},
	"hillsboro village": {"hillsboro", "belmont"},
	"the nations":       {"nations"},
	"nations":           {"nations"},
	"belle meade":       {"belle meade"},
	"germantown":        {"germantown"},
	"green hills":       {"green hills"},
}

// NormalizeNeighborhood lowercases s and turns slug separators into spaces.
func NormalizeNeighborhood(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("-", " ", "_", " ", "/", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// MatchesNeighborhood reports whether a catalog label satisfies a requested
// neighborhood: case-insensitive substring either way, or an alias hit.
func MatchesNeighborhood(label, requested string) bool {
	l := NormalizeNeighborhood(label)
	r := NormalizeNeighborhood(requested)
	if l == "" || r == "" {
		return false
	}

	if strings.Contains(l, r) || strings.Contains(r, l) {
		return true
	}
	if strings.Contains(compact(l), compact(r)) {
		return true
	}

	for _, alias := range neighborhoodAliases[r] {
		if strings.Contains(l, alias) {
			return true
		}
	}
	return false
}

// MatchesAnyNeighborhood is MatchesNeighborhood over a set of requests.
func MatchesAnyNeighborhood(label string, requested []string) bool {
	for _, r := range requested {
		if MatchesNeighborhood(label, r) {
			return true
		}
	}
	return false
}

func compact(s string) string {
	return strings.ReplaceAll(s, " ", "")
}
