package tui

import (
	"fmt"
	"strings"

	"github.com/ryclarke/stash-mcp/models"
)

// prItem wraps a pull request so it can be used in a bubbles/list.
type prItem struct {
	pr models.PullRequest
}

// FilterValue returns the string used for fuzzy filtering.
func (i prItem) FilterValue() string {
	return i.pr.Title
}

// Title returns the list line for the pull request.
func (i prItem) Title() string {
	id := 0
	if i.pr.ID != nil {
		id = *i.pr.ID
	}

	return fmt.Sprintf("#%d %s", id, i.pr.Title)
}

// Description returns a short summary line for the list.
func (i prItem) Description() string {
	parts := []string{i.pr.State}

	if i.pr.Author != nil && i.pr.Author.User != nil {
		parts = append(parts, i.pr.Author.User.DisplayName)
	}

	if i.pr.FromRef != nil && i.pr.ToRef != nil {
		parts = append(parts, i.pr.FromRef.DisplayID+" -> "+i.pr.ToRef.DisplayID)
	}

	return strings.Join(parts, " | ")
}
