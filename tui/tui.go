// Package tui provides an interactive terminal browser for the open pull
// requests of a repository, with a scrollable diff view per entry.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ryclarke/stash-mcp/models"
	"github.com/ryclarke/stash-mcp/paging"
)

// Browser is the accessor capability set the TUI needs.
type Browser interface {
	PullRequests(ctx context.Context, project, slug, state, order string, opts paging.Options) ([]models.PullRequest, error)
	Diff(ctx context.Context, project, slug string, id int) (string, error)
}

// Run starts the pull request browser for a repository and blocks until
// the user quits.
func Run(ctx context.Context, browser Browser, project, slug string) error {
	p := tea.NewProgram(
		newModel(ctx, browser, project, slug),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()

	return err
}

type view int

const (
	viewList view = iota
	viewDiff
)

type prsLoadedMsg struct {
	prs []models.PullRequest
}

type diffLoadedMsg struct {
	id   int
	diff string
}

type errMsg struct {
	err error
}

type model struct {
	ctx     context.Context
	browser Browser
	project string
	slug    string

	view     view
	list     list.Model
	viewport viewport.Model
	styles   styles

	loading bool
	err     error
	current prItem
	ready   bool
	width   int
	height  int
}

func newModel(ctx context.Context, browser Browser, project, slug string) model {
	l := list.New([]list.Item{}, newListDelegate(), 0, 0)
	l.Title = fmt.Sprintf("Pull Requests - %s/%s", project, slug)
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)

	return model{
		ctx:     ctx,
		browser: browser,
		project: project,
		slug:    slug,
		list:    l,
		styles:  newStyles(),
		loading: true,
	}
}

func (m model) Init() tea.Cmd {
	return m.loadPullRequests()
}

func (m model) loadPullRequests() tea.Cmd {
	return func() tea.Msg {
		prs, err := m.browser.PullRequests(m.ctx, m.project, m.slug, "OPEN", "", paging.Options{All: true})
		if err != nil {
			return errMsg{err: err}
		}

		return prsLoadedMsg{prs: prs}
	}
}

func (m model) loadDiff(item prItem) tea.Cmd {
	return func() tea.Msg {
		id := 0
		if item.pr.ID != nil {
			id = *item.pr.ID
		}

		diff, err := m.browser.Diff(m.ctx, m.project, m.slug, id)
		if err != nil {
			return errMsg{err: err}
		}

		return diffLoadedMsg{id: id, diff: diff}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case prsLoadedMsg:
		m.loading = false
		m.err = nil

		items := make([]list.Item, len(msg.prs))
		for i, pr := range msg.prs {
			items[i] = prItem{pr: pr}
		}

		return m, m.list.SetItems(items)

	case diffLoadedMsg:
		m.loading = false
		m.err = nil
		m.view = viewDiff
		m.viewport.SetContent(m.styles.diff.Render(msg.diff))
		m.viewport.GotoTop()

		return m, nil

	case errMsg:
		m.loading = false
		m.err = msg.err

		return m, nil
	}

	return m.delegateUpdate(msg)
}

// delegateUpdate forwards messages to the active component.
func (m model) delegateUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.view == viewDiff {
		m.viewport, cmd = m.viewport.Update(msg)
	} else {
		m.list, cmd = m.list.Update(msg)
	}

	return m, cmd
}

func (m model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	headerHeight := 2
	footerHeight := 2

	m.list.SetSize(msg.Width, msg.Height-footerHeight)

	if !m.ready {
		m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - headerHeight - footerHeight
	}

	return m, nil
}

func (m model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While filtering, keys belong to the list input
	if m.view == viewList && m.list.FilterState() == list.Filtering {
		return m.delegateUpdate(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "enter":
		if m.view == viewList {
			if item, ok := m.list.SelectedItem().(prItem); ok {
				m.current = item
				m.loading = true

				return m, m.loadDiff(item)
			}
		}

	case "esc", "backspace":
		if m.view == viewDiff {
			m.view = viewList
			m.err = nil

			return m, nil
		}

	case "r":
		if m.view == viewList {
			m.loading = true

			return m, m.loadPullRequests()
		}
	}

	return m.delegateUpdate(msg)
}

func (m model) View() string {
	if m.loading {
		return m.styles.status.Render(loadingText) + "\n"
	}

	var b strings.Builder

	if m.err != nil {
		b.WriteString(m.styles.errMsg.Render(fmt.Sprintf("ERROR: %v", m.err)))
		b.WriteString("\n\n")
	}

	if m.view == viewDiff {
		b.WriteString(m.styles.title.Render(m.current.Title()))
		b.WriteString("\n")
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
		b.WriteString(m.styles.status.Render(footerDiff))
	} else {
		b.WriteString(m.list.View())
		b.WriteString("\n")
		b.WriteString(m.styles.status.Render(footerList))
	}

	return b.String()
}
