package tui

import "github.com/charmbracelet/lipgloss"

// Color constants - Dracula theme
const (
	colorForeground = "#f8f8f2"
	colorComment    = "#6272a4"
	colorCyan       = "#8be9fd"
	colorGreen      = "#50fa7b"
	colorPurple     = "#bd93f9"
	colorRed        = "#ff5555"
)

const (
	loadingText = "Loading pull requests..."
	footerList  = "↑/↓: move | /: filter | Enter: diff | r: reload | q: quit"
	footerDiff  = "↑/↓: scroll | PgUp/PgDn: paging | Esc: back | q: quit"
)

type styles struct {
	title  lipgloss.Style
	status lipgloss.Style
	errMsg lipgloss.Style
	diff   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorPurple)).
			Bold(true),
		status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorComment)),
		errMsg: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorRed)).
			Bold(true),
		diff: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorForeground)),
	}
}

// newListDelegate returns the list item delegate with theme colors applied.
func newListDelegate() listDelegate {
	return listDelegate{
		selected: lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreen)).Bold(true),
		normal:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorForeground)),
		desc:     lipgloss.NewStyle().Foreground(lipgloss.Color(colorCyan)),
		dimmed:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorComment)),
	}
}
