package funds

import "slices"

// MaxCompare is how many funds the comparison view holds at once.
const MaxCompare = 4

// ToggleMembership removes id from ids if present, otherwise appends it.
// The input slice is not modified.
func ToggleMembership(ids []int, id int) []int {
	if slices.Contains(ids, id) {
		return slices.DeleteFunc(slices.Clone(ids), func(x int) bool { return x == id })
	}
	return append(slices.Clone(ids), id)
}

// ToggleCompare is ToggleMembership that keeps only the MaxCompare most
// recently added funds.
func ToggleCompare(ids []int, id int) []int {
	out := ToggleMembership(ids, id)
	if len(out) > MaxCompare {
		out = out[len(out)-MaxCompare:]
	}
	return out
}
