package models

// CommitPerson identifies the author or committer of a commit.
type CommitPerson struct {
	Name  string
	Email string
}

// Commit represents a commit reachable from a pull request.
type Commit struct {
	ID        string
	DisplayID string
	Message   string
	Author    *CommitPerson
	Committer *CommitPerson
}

// NormalizeCommit maps a raw commit payload into a Commit.
func NormalizeCommit(data map[string]any) Commit {
	commit := Commit{
		ID:        strField(data, "id", ""),
		DisplayID: strField(data, "displayId", ""),
		Message:   strField(data, "message", ""),
	}

	if person := normalizeCommitPerson(mapField(data, "author")); person != nil {
		commit.Author = person
	}

	if person := normalizeCommitPerson(mapField(data, "committer")); person != nil {
		commit.Committer = person
	}

	return commit
}

func normalizeCommitPerson(data map[string]any) *CommitPerson {
	if data == nil {
		return nil
	}

	return &CommitPerson{
		Name:  strField(data, "name", ""),
		Email: strField(data, "emailAddress", ""),
	}
}

// Simplified returns the flattened caller-facing view of the commit.
func (c Commit) Simplified() map[string]any {
	result := map[string]any{
		"id":         c.ID,
		"display_id": c.DisplayID,
		"message":    c.Message,
	}

	if c.Author != nil {
		result["author"] = map[string]any{
			"name":  c.Author.Name,
			"email": c.Author.Email,
		}
	}

	if c.Committer != nil {
		result["committer"] = map[string]any{
			"name":  c.Committer.Name,
			"email": c.Committer.Email,
		}
	}

	return result
}
