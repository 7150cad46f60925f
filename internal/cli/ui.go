package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal palette (ANSI 256).
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleTitle renders the root coordinate above the tree table.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	// StyleHighlight renders coordinates inside status lines.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)
)

var (
	styleValue       = lipgloss.NewStyle().Foreground(colorWhite)
	styleWarning     = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleDiffAdd    = lipgloss.NewStyle().Foreground(colorGreen)
	styleDiffRemove = lipgloss.NewStyle().Foreground(colorRed)
	styleDiffHunk   = lipgloss.NewStyle().Foreground(colorCyan)

	styleTableHeader = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	styleTableCell   = lipgloss.NewStyle().Padding(0, 1)
)

// statusIcon is the marker in front of a status line.
type statusIcon struct {
	glyph string
	color lipgloss.Color
}

var (
	iconSuccess = statusIcon{"✓", colorGreen}
	iconWarning = statusIcon{"!", colorYellow}
	iconInfo    = statusIcon{"›", colorGray}
)

func (i statusIcon) line(msg string) string {
	return lipgloss.NewStyle().Foreground(i.color).Render(i.glyph) + " " + msg
}

func printSuccess(format string, args ...any) {
	fmt.Fprintln(stdout, iconSuccess.line(fmt.Sprintf(format, args...)))
}

func printWarning(format string, args ...any) {
	fmt.Fprintln(stdout, iconWarning.line(styleWarning.Render(fmt.Sprintf(format, args...))))
}

func printInfo(format string, args ...any) {
	fmt.Fprintln(stdout, iconInfo.line(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented, dimmed line under the last status line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints "→ path" under the last status line.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render("→")+" "+styleValue.Render(path))
}

// printStats prints generation counts on a single dim line, skipping zeros.
func printStats(discovered, skipped, excluded, included int) {
	var parts []string
	for _, p := range []struct {
		n     int
		label string
	}{
		{discovered, "discovered"},
		{skipped, "skipped"},
		{excluded, "excluded"},
		{included, "included"},
	} {
		if p.n > 0 || p.label == "included" {
			parts = append(parts, fmt.Sprintf("%d %s", p.n, p.label))
		}
	}
	fmt.Fprintln(stdout, "  "+StyleDim.Render(strings.Join(parts, " · ")))
}

// printDiff prints a unified diff with added and removed lines colored.
func printDiff(unified string) {
	for _, line := range strings.Split(strings.TrimRight(unified, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			line = StyleDim.Render(line)
		case strings.HasPrefix(line, "@@"):
			line = styleDiffHunk.Render(line)
		case strings.HasPrefix(line, "+"):
			line = styleDiffAdd.Render(line)
		case strings.HasPrefix(line, "-"):
			line = styleDiffRemove.Render(line)
		}
		fmt.Fprintln(stdout, line)
	}
}
