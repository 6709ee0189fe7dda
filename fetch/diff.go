package fetch

import (
	"fmt"
	"strings"

	"github.com/ryclarke/stash-mcp/models"
)

// shortCommitLen is the number of leading characters shown for a commit
// identifier in diff headers.
const shortCommitLen = 8

// Change is the simplified view of one file change in a pull request.
// SrcPath is only set for moves and copies.
type Change struct {
	Path    string
	Type    string
	SrcPath string
}

// normalizeChange maps a raw change payload into a Change.
func normalizeChange(data map[string]any) Change {
	change := Change{
		Path: nestedString(data, "path"),
		Type: "UNKNOWN",
	}

	if changeType, ok := data["type"].(string); ok {
		change.Type = changeType
	}

	change.SrcPath = nestedString(data, "srcPath")

	return change
}

// nestedString reads the toString representation of a nested path object.
func nestedString(data map[string]any, key string) string {
	if nested, ok := data[key].(map[string]any); ok {
		if s, ok := nested["toString"].(string); ok {
			return s
		}
	}

	return ""
}

// Simplified returns the flattened caller-facing view of the change.
func (c Change) Simplified() map[string]any {
	result := map[string]any{
		"path": c.Path,
		"type": c.Type,
	}

	if c.SrcPath != "" {
		result["src_path"] = c.SrcPath
	}

	return result
}

// SynthesizeDiff builds a best-effort textual diff summary for a pull
// request. When both refs carry a latest commit the output starts with a
// header block naming the PR, its branches and short commits, followed by
// one line per change. When either commit id is missing the output
// degrades to the bare change lines with no header. A pull request with
// no source or target ref at all fails with ErrMissingRefs instead of
// degrading.
func SynthesizeDiff(pr *models.PullRequest, changes []Change) (string, error) {
	if pr.FromRef == nil || pr.ToRef == nil {
		return "", ErrMissingRefs
	}

	if pr.FromRef.LatestCommit == "" || pr.ToRef.LatestCommit == "" {
		lines := make([]string, len(changes))
		for i, change := range changes {
			lines[i] = fmt.Sprintf("%s: %s", change.Type, change.Path)
		}

		return strings.Join(lines, "\n"), nil
	}

	id := 0
	if pr.ID != nil {
		id = *pr.ID
	}

	lines := []string{
		fmt.Sprintf("Pull Request #%d: %s", id, pr.Title),
		fmt.Sprintf("Source: %s (%s)", pr.FromRef.DisplayID, shortCommit(pr.FromRef.LatestCommit)),
		fmt.Sprintf("Target: %s (%s)", pr.ToRef.DisplayID, shortCommit(pr.ToRef.LatestCommit)),
		"",
		"Changed files:",
	}

	for _, change := range changes {
		lines = append(lines, fmt.Sprintf("  %s: %s", change.Type, change.Path))
	}

	return strings.Join(lines, "\n"), nil
}

// shortCommit truncates a commit identifier to its leading characters;
// identifiers already shorter than that pass through unmodified.
func shortCommit(commit string) string {
	if len(commit) > shortCommitLen {
		return commit[:shortCommitLen]
	}

	return commit
}
