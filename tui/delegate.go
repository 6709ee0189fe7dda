package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// listDelegate renders pull request entries as a title line with a dimmed
// summary line underneath.
type listDelegate struct {
	selected lipgloss.Style
	normal   lipgloss.Style
	desc     lipgloss.Style
	dimmed   lipgloss.Style
}

// Height returns the number of lines each item takes.
func (d listDelegate) Height() int { return 2 }

// Spacing returns the number of blank lines between items.
func (d listDelegate) Spacing() int { return 1 }

// Update handles per-item messages.
func (d listDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single pull request entry.
func (d listDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	entry, ok := item.(prItem)
	if !ok {
		return
	}

	title := d.normal.Render(entry.Title())
	desc := d.dimmed.Render("  " + entry.Description())

	if index == m.Index() {
		title = d.selected.Render("> " + entry.Title())
		desc = d.desc.Render("  " + entry.Description())
	} else {
		title = "  " + title
		desc = "  " + desc
	}

	fmt.Fprintf(w, "%s\n%s", title, desc)
}
