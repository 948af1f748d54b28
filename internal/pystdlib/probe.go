package pystdlib

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/uvstool/uvs/internal/cache"
)

// probeScript asks an interpreter for its own standard-library names.
// Interpreters older than 3.10 lack sys.stdlib_module_names; for those we
// only trust built-in modules, matching the authoritative set's intent.
const probeScript = `import sys
names = getattr(sys, "stdlib_module_names", None) or sys.builtin_module_names
print("\n".join(sorted(names)))`

// Probe builds an Oracle from a Python interpreter's view of its standard
// library. The result is cached on disk keyed by the interpreter path, so
// repeated runs do not spawn a process. The interpreter never sees any
// script being processed.
func Probe(interpreter string, c *cache.Cache) (*SetOracle, error) {
	key := "stdlib-names:" + interpreter

	if c != nil {
		if data, ok := c.Get(key); ok {
			return NewSetOracle(strings.Fields(string(data)), interpreter), nil
		}
	}

	out, err := exec.Command(interpreter, "-c", probeScript).Output()
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", interpreter, err)
	}

	names := strings.Fields(string(out))
	if len(names) == 0 {
		return nil, fmt.Errorf("probe %s: empty module list", interpreter)
	}

	if c != nil {
		// Cache failures are non-fatal; next run probes again
		_ = c.Set(key, out)
	}

	return NewSetOracle(names, interpreter), nil
}
