package header

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Block sentinel markers, per PEP 723
const (
	BlockStart = "# /// script"
	BlockEnd   = "# ///"
)

// Metadata holds the recognized fields of a script metadata block.
// All other fields pass through the merge opaquely.
type Metadata struct {
	RequiresPython string   `toml:"requires-python"`
	Dependencies   []string `toml:"dependencies"`
}

// BlockError indicates a malformed metadata block. The file is skipped
// and the batch continues.
type BlockError struct {
	Line int
	Msg  string
}

// Error returns a human-readable description
func (e *BlockError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Inject returns source with its script metadata block's dependencies
// field replaced by deps (assumed sorted and deduplicated). A script
// without a block gets a fresh one with the given requires-python
// specifier, inserted at the top — below the shebang line when one
// exists, the shebang always stays first. Every other line of an
// existing block is preserved byte-for-byte. Pure transform: applying
// it twice yields the same bytes as applying it once.
func Inject(source []byte, deps []string, python string) ([]byte, error) {
	lines := strings.Split(string(source), "\n")

	start, end, err := locate(lines)
	if err != nil {
		return nil, err
	}

	if start < 0 {
		return []byte(strings.Join(synthesize(lines, deps, python), "\n")), nil
	}

	// Reject blocks whose body is not valid TOML before touching them
	if _, err := decodeBlock(lines, start, end); err != nil {
		return nil, err
	}

	field := depLines(deps)
	depS, depE, insertAt, err := locateDependencies(lines, start, end)
	if err != nil {
		return nil, err
	}

	var merged []string
	if depS < 0 {
		// Block without a dependencies field: add one in the top-level
		// key region, before any table header
		merged = splice(lines, insertAt, insertAt-1, field)
	} else {
		merged = splice(lines, depS, depE, field)
	}
	return []byte(strings.Join(merged, "\n")), nil
}

// Parse extracts the recognized metadata fields from source. The second
// return value is false when no block exists.
func Parse(source []byte) (*Metadata, bool, error) {
	lines := strings.Split(string(source), "\n")

	start, end, err := locate(lines)
	if err != nil {
		return nil, false, err
	}
	if start < 0 {
		return nil, false, nil
	}

	md, err := decodeBlock(lines, start, end)
	if err != nil {
		return nil, true, err
	}
	return md, true, nil
}

// locate finds the first metadata block within the leading comment
// region (shebang, blank lines and # comments before any other
// content). Returns start = -1 when no block exists; a start marker
// without a matching end marker is a BlockError.
func locate(lines []string) (start, end int, err error) {
	i := 0
	if len(lines) > 0 && strings.HasPrefix(lines[0], "#!") {
		i = 1
	}

	start = -1
	for ; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if strings.TrimRight(lines[i], " \t") == BlockStart {
			start = i
			break
		}
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			return -1, -1, nil
		}
	}
	if start < 0 {
		return -1, -1, nil
	}

	for j := start + 1; j < len(lines); j++ {
		if strings.TrimRight(lines[j], " \t") == BlockEnd {
			return start, j, nil
		}
		if !strings.HasPrefix(lines[j], "#") {
			return -1, -1, &BlockError{Line: j + 1, Msg: "metadata block interrupted by non-comment line"}
		}
	}
	return -1, -1, &BlockError{Line: start + 1, Msg: "unterminated metadata block"}
}

// locateDependencies finds the dependencies field within a block.
// The search stops at the first table header, so keys nested under
// [tool.*] tables are never mistaken for the top-level field. When the
// field is absent (depS = -1), insertAt is where a new one belongs:
// still inside the top-level key region, before any table header.
func locateDependencies(lines []string, start, end int) (depS, depE, insertAt int, err error) {
	for i := start + 1; i < end; i++ {
		body := stripPrefix(lines[i])
		trimmed := strings.TrimSpace(body)

		if strings.HasPrefix(trimmed, "[") {
			return -1, -1, i, nil
		}
		if !isDependenciesKey(trimmed) {
			continue
		}

		open := strings.Index(trimmed, "[")
		if open >= 0 && strings.Contains(trimmed[open:], "]") {
			return i, i, 0, nil // Inline form: # dependencies = [...]
		}
		for j := i + 1; j <= end; j++ {
			if strings.TrimSpace(stripPrefix(lines[j])) == "]" {
				return i, j, 0, nil
			}
		}
		return -1, -1, 0, &BlockError{Line: i + 1, Msg: "unterminated dependencies list"}
	}
	return -1, -1, end, nil
}

// isDependenciesKey reports whether a stripped block line assigns the
// dependencies field
func isDependenciesKey(trimmed string) bool {
	rest, ok := strings.CutPrefix(trimmed, "dependencies")
	if !ok {
		return false
	}
	return strings.HasPrefix(strings.TrimSpace(rest), "=")
}

// decodeBlock strips the comment prefixes of a block body and decodes
// it as TOML
func decodeBlock(lines []string, start, end int) (*Metadata, error) {
	var body strings.Builder
	for i := start + 1; i < end; i++ {
		body.WriteString(stripPrefix(lines[i]))
		body.WriteByte('\n')
	}

	var md Metadata
	if err := toml.Unmarshal([]byte(body.String()), &md); err != nil {
		return nil, &BlockError{Line: start + 1, Msg: fmt.Sprintf("metadata block is not valid TOML: %v", err)}
	}
	return &md, nil
}

// stripPrefix removes the "# " comment prefix of a block body line
func stripPrefix(line string) string {
	body := strings.TrimPrefix(line, "#")
	return strings.TrimPrefix(body, " ")
}

// depLines serializes the dependencies field, one quoted entry per
// line; an empty set is an empty inline list, never an absent field
func depLines(deps []string) []string {
	if len(deps) == 0 {
		return []string{"# dependencies = []"}
	}
	lines := make([]string, 0, len(deps)+2)
	lines = append(lines, "# dependencies = [")
	for _, d := range deps {
		lines = append(lines, fmt.Sprintf("#   %q,", d))
	}
	return append(lines, "# ]")
}

// synthesize builds a fresh block and inserts it at the top of the
// file, keeping an existing shebang line above it
func synthesize(lines []string, deps []string, python string) []string {
	block := []string{BlockStart, fmt.Sprintf("# requires-python = %q", python)}
	block = append(block, depLines(deps)...)
	block = append(block, BlockEnd, "")

	insert := 0
	if len(lines) > 0 && strings.HasPrefix(lines[0], "#!") {
		insert = 1
	}

	out := make([]string, 0, len(lines)+len(block))
	out = append(out, lines[:insert]...)
	out = append(out, block...)
	return append(out, lines[insert:]...)
}

// splice replaces lines[from..to] (inclusive) with repl
func splice(lines []string, from, to int, repl []string) []string {
	out := make([]string, 0, len(lines)-(to-from+1)+len(repl))
	out = append(out, lines[:from]...)
	out = append(out, repl...)
	return append(out, lines[to+1:]...)
}
