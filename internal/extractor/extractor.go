package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/uvstool/uvs/internal/models"
)

// SyntaxError indicates the source could not be parsed as Python
type SyntaxError struct {
	Line int
	Msg  string
}

// Error returns a human-readable description
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Extract parses source and returns one ImportRecord per distinct
// top-level import root, in order of first appearance. Relative
// from-imports collapse into a single record with an empty root.
// The source is never executed; imports inside functions, conditionals
// and try/except blocks all count.
func Extract(source []byte) ([]models.ImportRecord, error) {
	if bytes.IndexByte(source, 0) >= 0 {
		return nil, &SyntaxError{Line: 1, Msg: "source contains NUL byte"}
	}

	logical, err := logicalLines(string(source))
	if err != nil {
		return nil, err
	}

	var records []models.ImportRecord
	seen := make(map[string]bool)
	sawRelative := false

	add := func(rec models.ImportRecord) {
		if rec.IsRelative {
			if sawRelative {
				return
			}
			sawRelative = true
		} else {
			if seen[rec.Root] {
				return
			}
			seen[rec.Root] = true
		}
		records = append(records, rec)
	}

	for _, ln := range logical {
		for _, stmt := range statements(ln.text) {
			recs, err := parseStatement(stmt, ln.line)
			if err != nil {
				return nil, err
			}
			for _, rec := range recs {
				add(rec)
			}
		}
	}

	return records, nil
}

// logicalLine is a physical-line sequence joined across bracket and
// backslash continuations, with strings and comments blanked out.
type logicalLine struct {
	text string
	line int // 1-based line where the statement starts
}

const (
	stateCode = iota
	stateComment
	stateString // single-quoted, terminated by end of line
	stateTriple
)

// logicalLines scans source once, tracking string literals, comments,
// bracket depth and backslash continuations, and emits completed
// logical lines of bare code text.
func logicalLines(source string) ([]logicalLine, error) {
	var (
		out       []logicalLine
		buf       strings.Builder
		state     = stateCode
		quote     rune
		quoteLine int
		depth     int
		line      = 1
		stmtLine  = 0
		continued = false
	)

	flush := func() {
		text := strings.TrimSpace(buf.String())
		if text != "" {
			out = append(out, logicalLine{text: text, line: stmtLine})
		}
		buf.Reset()
		stmtLine = 0
	}

	runes := []rune(source)
	for i := 0; i < len(runes); i++ {
		c := runes[i]

		switch state {
		case stateString:
			if c == '\\' {
				// Escaped character; an escaped newline continues the string
				if i+1 < len(runes) {
					i++
					if runes[i] == '\n' {
						line++
					}
				}
				continue
			}
			if c == quote {
				state = stateCode
				continue
			}
			if c == '\n' {
				return nil, &SyntaxError{Line: quoteLine, Msg: "unterminated string literal"}
			}
			continue

		case stateTriple:
			if c == '\\' {
				if i+1 < len(runes) {
					i++
					if runes[i] == '\n' {
						line++
					}
				}
				continue
			}
			if c == quote && hasRunePrefix(runes[i:], quote, 3) {
				i += 2
				state = stateCode
				continue
			}
			if c == '\n' {
				line++
			}
			continue

		case stateComment:
			if c != '\n' {
				continue
			}
			state = stateCode
			// Fall through to newline handling below
		}

		// stateCode (and newline after a comment)
		switch c {
		case '#':
			state = stateComment

		case '\'', '"':
			quote = c
			quoteLine = line
			if hasRunePrefix(runes[i:], c, 3) {
				i += 2
				state = stateTriple
			} else {
				state = stateString
			}
			markStart(&buf, &stmtLine, line)

		case '\n':
			line++
			// CRLF files leave a \r between the backslash and the newline
			text := strings.TrimSuffix(buf.String(), "\r")
			if strings.HasSuffix(text, "\\") {
				buf.Reset()
				buf.WriteString(strings.TrimSuffix(text, "\\"))
				buf.WriteByte(' ')
				continued = true
				continue
			}
			if depth > 0 {
				buf.WriteByte(' ')
				continue
			}
			continued = false
			flush()

		case '(', '[', '{':
			depth++
			markStart(&buf, &stmtLine, line)
			buf.WriteRune(c)

		case ')', ']', '}':
			depth--
			if depth < 0 {
				return nil, &SyntaxError{Line: line, Msg: fmt.Sprintf("unmatched %q", c)}
			}
			buf.WriteRune(c)

		default:
			if c != ' ' && c != '\t' && c != '\r' {
				markStart(&buf, &stmtLine, line)
			}
			buf.WriteRune(c)
		}
	}

	switch state {
	case stateString:
		return nil, &SyntaxError{Line: quoteLine, Msg: "unterminated string literal"}
	case stateTriple:
		return nil, &SyntaxError{Line: quoteLine, Msg: "unterminated triple-quoted string"}
	}
	if depth > 0 {
		return nil, &SyntaxError{Line: stmtLine, Msg: "unexpected end of file, unclosed bracket"}
	}
	if continued && strings.TrimSpace(buf.String()) == "" {
		return nil, &SyntaxError{Line: line, Msg: "unexpected end of file after line continuation"}
	}
	flush()

	return out, nil
}

// markStart records the statement's first line the moment the buffer
// receives its first meaningful character.
func markStart(buf *strings.Builder, stmtLine *int, line int) {
	if *stmtLine == 0 && strings.TrimSpace(buf.String()) == "" {
		*stmtLine = line
	}
}

// hasRunePrefix reports whether rs starts with n repetitions of c
func hasRunePrefix(rs []rune, c rune, n int) bool {
	if len(rs) < n {
		return false
	}
	for i := 0; i < n; i++ {
		if rs[i] != c {
			return false
		}
	}
	return true
}

// statements splits a logical line into candidate simple statements:
// semicolon-separated pieces, plus the body following each top-level
// colon so forms like "try: import x" are still seen.
func statements(text string) []string {
	var out []string
	for _, piece := range splitTopLevel(text, ';') {
		segments := splitTopLevel(piece, ':')
		for _, seg := range segments {
			if seg = strings.TrimSpace(seg); seg != "" {
				out = append(out, seg)
			}
		}
	}
	return out
}

// splitTopLevel splits text on sep, ignoring separators nested inside
// brackets. Strings are already blanked by the scanner.
func splitTopLevel(text string, sep rune) []string {
	var out []string
	depth := 0
	start := 0
	for i, c := range text {
		switch c {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case sep:
			if depth == 0 {
				out = append(out, text[start:i])
				start = i + len(string(sep))
			}
		}
	}
	return append(out, text[start:])
}

// parseStatement extracts ImportRecords from a single simple statement,
// or nothing if the statement is not an import.
func parseStatement(stmt string, line int) ([]models.ImportRecord, error) {
	switch {
	case stmt == "import" || strings.HasPrefix(stmt, "import ") || strings.HasPrefix(stmt, "import\t"):
		return parseImport(strings.TrimSpace(stmt[len("import"):]), line)
	case stmt == "from" || strings.HasPrefix(stmt, "from ") || strings.HasPrefix(stmt, "from\t"):
		return parseFrom(strings.TrimSpace(stmt[len("from"):]), line)
	}
	return nil, nil
}

// parseImport handles "import X[.sub][ as a][, Y...]"
func parseImport(rest string, line int) ([]models.ImportRecord, error) {
	if rest == "" {
		return nil, &SyntaxError{Line: line, Msg: "expected module name after 'import'"}
	}

	var records []models.ImportRecord
	for _, item := range strings.Split(rest, ",") {
		fields := strings.Fields(item)
		if len(fields) == 0 {
			return nil, &SyntaxError{Line: line, Msg: "expected module name after 'import'"}
		}
		if len(fields) > 1 && (fields[1] != "as" || len(fields) != 3 || !isIdentifier(fields[2])) {
			return nil, &SyntaxError{Line: line, Msg: fmt.Sprintf("invalid import of %q", strings.TrimSpace(item))}
		}
		root, err := rootName(fields[0], line)
		if err != nil {
			return nil, err
		}
		records = append(records, models.ImportRecord{Root: root, Line: line})
	}
	return records, nil
}

// parseFrom handles "from [.]*X[.sub] import ..." including the pure
// relative form "from . import x". The import keyword needs no space
// before what it imports: "from typing import(List)" and
// "from os import*" are valid Python.
func parseFrom(rest string, line int) ([]models.ImportRecord, error) {
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return nil, &SyntaxError{Line: line, Msg: "expected module name after 'from'"}
	}

	mod := fields[0]
	if isImportKeyword(mod) {
		return nil, &SyntaxError{Line: line, Msg: "expected module name after 'from'"}
	}

	if strings.HasPrefix(mod, ".") {
		// Relative import; never classified, never emitted. The keyword
		// may be glued straight onto the dots: "from .import x"
		if isImportKeyword(strings.TrimLeft(mod, ".")) {
			return []models.ImportRecord{{IsRelative: true, Line: line}}, nil
		}
	}

	remainder := strings.TrimSpace(strings.TrimPrefix(rest, mod))
	if remainder == "" {
		return nil, &SyntaxError{Line: line, Msg: "expected 'import' in from-statement"}
	}
	if !isImportKeyword(remainder) {
		return nil, &SyntaxError{Line: line, Msg: "expected 'import' after module name"}
	}

	if strings.HasPrefix(mod, ".") {
		return []models.ImportRecord{{IsRelative: true, Line: line}}, nil
	}

	root, err := rootName(mod, line)
	if err != nil {
		return nil, err
	}
	return []models.ImportRecord{{Root: root, Line: line}}, nil
}

// isImportKeyword reports whether s begins with the import keyword at a
// token boundary: end of input, whitespace, "(" or "*"
func isImportKeyword(s string) bool {
	rest, ok := strings.CutPrefix(s, "import")
	if !ok {
		return false
	}
	if rest == "" {
		return true
	}
	switch rest[0] {
	case ' ', '\t', '(', '*':
		return true
	}
	return false
}

// rootName validates a dotted module path and returns its first segment
func rootName(dotted string, line int) (string, error) {
	segments := strings.Split(dotted, ".")
	for _, seg := range segments {
		if !isIdentifier(seg) {
			return "", &SyntaxError{Line: line, Msg: fmt.Sprintf("invalid module name %q", dotted)}
		}
	}
	return segments[0], nil
}

// isIdentifier reports whether s is a valid Python identifier
// (ASCII form; unicode identifiers are vanishingly rare in module names)
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
