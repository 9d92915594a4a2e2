// Package output holds the terminal formatting used to present trees and entries.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/temirov/pathtree/internal/utils"
)

const (
	// LabelWidth is the fixed width labels are padded to in detail blocks.
	LabelWidth = 20
	// RuleWidth is the width of the horizontal rules around the summary.
	RuleWidth = 30

	ruleCharacter       = "═"
	summaryEntriesLabel = "#entries:"
	summaryFilesLabel   = "#files:"
	summarySizeLabel    = "size:"
)

// Theme carries every style used while rendering. It is passed explicitly to
// render calls so styling never depends on global state.
type Theme struct {
	title     lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	directory lipgloss.Style
	file      lipgloss.Style
	root      lipgloss.Style
	rule      lipgloss.Style
	accent    lipgloss.Style
}

// PlainTheme returns a theme that only pads labels and adds no escape sequences.
func PlainTheme() Theme {
	return Theme{
		title:     lipgloss.NewStyle(),
		label:     lipgloss.NewStyle().Width(LabelWidth),
		value:     lipgloss.NewStyle(),
		directory: lipgloss.NewStyle(),
		file:      lipgloss.NewStyle(),
		root:      lipgloss.NewStyle(),
		rule:      lipgloss.NewStyle(),
		accent:    lipgloss.NewStyle(),
	}
}

// NewTheme returns a colored theme bound to writer. Color support is detected
// from writer, so piping output yields plain text. A disabled theme is plain.
func NewTheme(writer io.Writer, enabled bool) Theme {
	if !enabled || writer == nil {
		return PlainTheme()
	}
	renderer := lipgloss.NewRenderer(writer)
	return Theme{
		title:     renderer.NewStyle().Bold(true).Underline(true),
		label:     renderer.NewStyle().Width(LabelWidth).Foreground(lipgloss.Color("12")),
		value:     renderer.NewStyle(),
		directory: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		file:      renderer.NewStyle(),
		root:      renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		rule:      renderer.NewStyle().Foreground(lipgloss.Color("12")),
		accent:    renderer.NewStyle().Foreground(lipgloss.Color("14")),
	}
}

// Title renders a section heading.
func (theme Theme) Title(text string) string {
	return theme.title.Render(text)
}

// Info renders a label padded to LabelWidth followed by its value.
func (theme Theme) Info(label string, value string) string {
	return theme.label.Render(label) + theme.value.Render(value)
}

// Directory renders a directory name.
func (theme Theme) Directory(name string) string {
	return theme.directory.Render(name)
}

// File renders a file name.
func (theme Theme) File(name string) string {
	return theme.file.Render(name)
}

// Root renders the label of the tree root.
func (theme Theme) Root(path string) string {
	return theme.root.Render(path)
}

// Summary renders the block printed after a tree.
func (theme Theme) Summary(entries int, files int, bytes int64) string {
	rule := theme.rule.Render(strings.Repeat(ruleCharacter, RuleWidth))
	line := fmt.Sprintf("%s %s  %s %s  %s %s",
		theme.rule.Render(summaryEntriesLabel), theme.accent.Render(fmt.Sprint(entries)),
		theme.rule.Render(summaryFilesLabel), theme.accent.Render(fmt.Sprint(files)),
		theme.rule.Render(summarySizeLabel), theme.accent.Render(utils.FormatFileSize(bytes)),
	)
	return rule + "\n" + line + "\n" + rule
}
