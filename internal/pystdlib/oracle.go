package pystdlib

import (
	"strings"
	"sync"
)

// Oracle answers whether a module root name belongs to the Python
// standard library. Implementations must be safe for concurrent reads.
type Oracle interface {
	// IsStdlib returns true if name is a standard-library module
	IsStdlib(name string) bool

	// Source describes where the name set came from, for reporting
	Source() string
}

// SetOracle is an Oracle backed by an immutable name set
type SetOracle struct {
	names  map[string]struct{}
	source string
}

// NewSetOracle creates a SetOracle from a list of module names
func NewSetOracle(names []string, source string) *SetOracle {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			set[n] = struct{}{}
		}
	}
	return &SetOracle{names: set, source: source}
}

// IsStdlib returns true if name is in the oracle's name set
func (o *SetOracle) IsStdlib(name string) bool {
	_, ok := o.names[name]
	return ok
}

// Source describes where the name set came from
func (o *SetOracle) Source() string {
	return o.source
}

var (
	embeddedOnce   sync.Once
	embeddedOracle *SetOracle
)

// Embedded returns the process-wide oracle backed by the bundled
// sys.stdlib_module_names listing. Built once, immutable afterwards.
func Embedded() *SetOracle {
	embeddedOnce.Do(func() {
		embeddedOracle = NewSetOracle(strings.Fields(rawNames), "bundled")
	})
	return embeddedOracle
}
