package models

import "time"

// Comment represents a pull request comment. Comments form a tree: the
// Comments field holds the direct replies, each normalized depth-first from
// the same payload shape. Server payloads are acyclic by construction, so
// depth is bounded only by payload size; no cycle detection is performed.
type Comment struct {
	ID          *int
	Version     int
	Text        string
	Author      *User
	CreatedDate *time.Time
	UpdatedDate *time.Time
	Severity    string
	State       string
	Parent      *Comment
	Comments    []Comment
}

// NormalizeComment maps a raw comment payload into a Comment, recursing
// into the nested reply list. The Parent back-reference is never populated
// from payloads; it exists for callers that assemble threads themselves.
func NormalizeComment(data map[string]any) Comment {
	comment := Comment{
		ID:          optIntField(data, "id"),
		Version:     intField(data, "version", 0),
		Text:        strField(data, "text", ""),
		CreatedDate: timeField(data, "createdDate"),
		UpdatedDate: timeField(data, "updatedDate"),
		Severity:    strField(data, "severity", "NORMAL"),
		State:       strField(data, "state", "OPEN"),
	}

	if authorData := mapField(data, "author"); authorData != nil {
		author := NormalizeUser(authorData)
		comment.Author = &author
	}

	for _, entry := range listField(data, "comments") {
		comment.Comments = append(comment.Comments, NormalizeComment(entry))
	}

	return comment
}

// Simplified returns the flattened caller-facing view of the comment.
// Replies are rendered recursively under a "replies" key; severity and
// state only appear when they differ from their defaults.
func (c Comment) Simplified() map[string]any {
	result := map[string]any{
		"id":      c.ID,
		"text":    c.Text,
		"version": c.Version,
	}

	if c.Author != nil {
		result["author"] = c.Author.Simplified()
	}

	if c.CreatedDate != nil {
		result["created_date"] = c.CreatedDate.Format(time.RFC3339)
	}

	if c.UpdatedDate != nil {
		result["updated_date"] = c.UpdatedDate.Format(time.RFC3339)
	}

	if c.Severity != "NORMAL" {
		result["severity"] = c.Severity
	}

	if c.State != "OPEN" {
		result["state"] = c.State
	}

	if len(c.Comments) > 0 {
		replies := make([]map[string]any, len(c.Comments))
		for i, reply := range c.Comments {
			replies[i] = reply.Simplified()
		}

		result["replies"] = replies
	}

	return result
}
