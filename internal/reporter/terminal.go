package reporter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/uvstool/uvs/internal/models"
)

// TerminalReporter outputs results in a human-readable terminal format
type TerminalReporter struct {
	Verbose bool
	NoColor bool
}

// styles groups the lipgloss styles used for terminal output
type styles struct {
	path, label, good, warn, bad, dim lipgloss.Style
}

func newStyles(noColor bool) styles {
	if noColor {
		s := lipgloss.NewStyle()
		return styles{path: s, label: s, good: s, warn: s, bad: s, dim: s}
	}
	return styles{
		path:  lipgloss.NewStyle().Bold(true),
		label: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		good:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		bad:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		dim:   lipgloss.NewStyle().Faint(true),
	}
}

// Report generates terminal output for the given results
func (r *TerminalReporter) Report(results []models.Result) ([]byte, error) {
	st := newStyles(r.NoColor)
	var sb strings.Builder

	for _, res := range results {
		sb.WriteString(st.path.Render(res.Path) + "\n")

		switch res.Outcome {
		case models.OutcomeSkipped:
			fmt.Fprintf(&sb, "  %s %s\n", st.warn.Render("skip    "), res.Reason)
			continue
		case models.OutcomeFailed:
			fmt.Fprintf(&sb, "  %s %v\n", st.bad.Render("error   "), res.Err)
			continue
		}

		if r.Verbose {
			if len(res.Analysis.Stdlib) > 0 {
				fmt.Fprintf(&sb, "  %s %s\n", st.dim.Render("stdlib  "), st.dim.Render(strings.Join(res.Analysis.Stdlib, ", ")))
			}
			if len(res.Analysis.Local) > 0 {
				fmt.Fprintf(&sb, "  %s %s\n", st.dim.Render("local   "), st.dim.Render(strings.Join(res.Analysis.Local, ", ")))
			}
			fmt.Fprintf(&sb, "  %s %s\n", st.dim.Render("python  "), st.dim.Render(res.RequiresPython))
		}

		deps := st.dim.Render("none")
		if len(res.Analysis.ThirdParty) > 0 {
			deps = strings.Join(res.Analysis.ThirdParty, ", ")
		}
		fmt.Fprintf(&sb, "  %s %s\n", st.label.Render("deps    "), deps)

		switch res.Outcome {
		case models.OutcomeWritten:
			fmt.Fprintf(&sb, "  %s metadata block written\n", st.good.Render("updated "))
		case models.OutcomePreview:
			fmt.Fprintf(&sb, "  %s would update metadata block\n", st.warn.Render("dry-run "))
		case models.OutcomeUnchanged:
			fmt.Fprintf(&sb, "  %s already up-to-date\n", st.dim.Render("skip    "))
		}
	}

	sb.WriteString("\n" + st.path.Render("done") + "  " + summaryLine(results, st) + "\n")
	return []byte(sb.String()), nil
}

// summaryLine builds the one-line batch summary
func summaryLine(results []models.Result, st styles) string {
	var written, unchanged, preview, skipped, failed int
	for _, res := range results {
		switch res.Outcome {
		case models.OutcomeWritten:
			written++
		case models.OutcomeUnchanged:
			unchanged++
		case models.OutcomePreview:
			preview++
		case models.OutcomeSkipped:
			skipped++
		case models.OutcomeFailed:
			failed++
		}
	}

	parts := []string{st.good.Render(fmt.Sprintf("%d updated", written))}
	if preview > 0 {
		parts = append(parts, st.warn.Render(fmt.Sprintf("%d would update", preview)))
	}
	if unchanged > 0 {
		parts = append(parts, st.dim.Render(fmt.Sprintf("%d up-to-date", unchanged)))
	}
	if skipped > 0 {
		parts = append(parts, st.warn.Render(fmt.Sprintf("%d skipped", skipped)))
	}
	if failed > 0 {
		parts = append(parts, st.bad.Render(fmt.Sprintf("%d failed", failed)))
	}
	return strings.Join(parts, " · ")
}
