// Package render turns comparison results into terminal output. The
// side-by-side layout mirrors the system's purpose: the same query, two
// strategies, inspected next to each other.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zen-systems/duet/pkg/trace"
)

const columnWidth = 48

var (
	queryStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	stepStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(columnWidth)
)

// Comparison renders both path results side by side.
func Comparison(cmp *trace.Comparison) string {
	var sb strings.Builder
	if cmp.Query != "" {
		sb.WriteString(queryStyle.Render("Query: " + cmp.Query))
		sb.WriteString("\n")
	}

	left := column("Direct (no tools)", cmp.Direct)
	right := column("Routed (tool-aware)", cmp.Routed)
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	return sb.String()
}

// Result renders a single path result, trace first.
func Result(res *trace.Result) string {
	var sb strings.Builder
	for _, step := range res.Steps {
		sb.WriteString(stepStyle.Render("• " + step))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(res.Response)
	sb.WriteString("\n")
	sb.WriteString(stepStyle.Render(fmt.Sprintf("(%d ms)", res.DurationMillis)))
	return sb.String()
}

func column(title string, res *trace.Result) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render(title))
	sb.WriteString("\n")

	if res == nil {
		sb.WriteString(stepStyle.Render("path failed; see error output"))
		return columnStyle.Render(sb.String())
	}

	for _, step := range res.Steps {
		sb.WriteString(stepStyle.Render("• " + step))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(res.Response)
	sb.WriteString("\n")
	sb.WriteString(stepStyle.Render(fmt.Sprintf("(%d ms)", res.DurationMillis)))
	return columnStyle.Render(sb.String())
}
