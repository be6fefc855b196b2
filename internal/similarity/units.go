package similarity

import "strings"

var unitGroups = []map[string]struct{}{
	unitSet("km", "kilometers", "kilometer", "kms", "au", "astronomical units", "light years", "ly"),
	unitSet("c", "celsius", "°c", "k", "kelvin", "°k", "f", "fahrenheit", "°f"),
	unitSet("s", "seconds", "sec", "min", "minutes", "h", "hours", "hr", "hrs", "days", "years", "yr", "yrs"),
	unitSet("kg", "kilograms", "g", "grams", "tons", "tonnes"),
}

func unitSet(units ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(units))
	for _, u := range units {
		set[u] = struct{}{}
	}
	return set
}

// UnitsCompatible reports whether two unit tokens measure the same dimension.
// Units outside the known groups only match themselves.
func UnitsCompatible(a, b string) bool {
	a = strings.Trim(strings.ToLower(a), ".")
	b = strings.Trim(strings.ToLower(b), ".")
	if a == b {
		return true
	}
	for _, group := range unitGroups {
		_, okA := group[a]
		_, okB := group[b]
		if okA && okB {
			return true
		}
	}
	return false
}
