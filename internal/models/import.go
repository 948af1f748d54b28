package models

// ImportRecord represents one distinct top-level import found in a script
type ImportRecord struct {
	Root       string // Module root name (first dot-separated segment)
	IsRelative bool   // True for relative from-imports; Root is empty
	Line       int    // 1-based line of first appearance, for diagnostics
}

// Analysis partitions a script's non-relative import roots into three
// disjoint, lexicographically sorted sets
type Analysis struct {
	Stdlib     []string
	Local      []string
	ThirdParty []string
}

// Total returns the number of classified module roots
func (a Analysis) Total() int {
	return len(a.Stdlib) + len(a.Local) + len(a.ThirdParty)
}
