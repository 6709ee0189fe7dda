package models

import "time"

// PullRequestRef identifies one side (source or target) of a pull request
// as it was at normalization time; it is not live-updated. The embedded
// Repository is nil when the payload carried none - callers rely on the
// distinction, so a missing repository is never synthesized.
type PullRequestRef struct {
	ID           string
	DisplayID    string
	LatestCommit string
	Repository   *Repository
}

// NormalizePullRequestRef maps a raw ref payload into a PullRequestRef.
func NormalizePullRequestRef(data map[string]any) PullRequestRef {
	ref := PullRequestRef{
		ID:           strField(data, "id", ""),
		DisplayID:    strField(data, "displayId", ""),
		LatestCommit: strField(data, "latestCommit", ""),
	}

	if repoData := mapField(data, "repository"); repoData != nil {
		repo := NormalizeRepository(repoData)
		ref.Repository = &repo
	}

	return ref
}

// Simplified returns the flattened caller-facing view of the ref.
func (r PullRequestRef) Simplified() map[string]any {
	result := map[string]any{
		"branch": r.DisplayID,
		"ref":    r.ID,
	}

	if r.LatestCommit != "" {
		result["commit"] = r.LatestCommit
	}

	if r.Repository != nil {
		var projectKey any
		if r.Repository.Project != nil {
			projectKey = r.Repository.Project.Key
		}

		result["repository"] = map[string]any{
			"slug":    r.Repository.Slug,
			"project": projectKey,
		}
	}

	return result
}

// PullRequestParticipant represents a user's involvement in a pull request.
// Role and status are open string enums passed through from the server
// (PARTICIPANT/REVIEWER/AUTHOR, APPROVED/UNAPPROVED/NEEDS_WORK).
type PullRequestParticipant struct {
	User     *User
	Role     string
	Approved bool
	Status   string
}

// NormalizePullRequestParticipant maps a raw participant payload into a
// PullRequestParticipant.
func NormalizePullRequestParticipant(data map[string]any) PullRequestParticipant {
	participant := PullRequestParticipant{
		Role:     strField(data, "role", "PARTICIPANT"),
		Approved: boolField(data, "approved", false),
		Status:   strField(data, "status", "UNAPPROVED"),
	}

	if userData := mapField(data, "user"); userData != nil {
		user := NormalizeUser(userData)
		participant.User = &user
	}

	return participant
}

// Simplified returns the flattened caller-facing view of the participant.
func (p PullRequestParticipant) Simplified() map[string]any {
	result := map[string]any{
		"role":     p.Role,
		"approved": p.Approved,
		"status":   p.Status,
	}

	if p.User != nil {
		result["user"] = p.User.Simplified()
	}

	return result
}

// PullRequest represents a Bitbucket pull request. The open/closed flags
// and state are redundant signals preserved exactly as the server reported
// them; they are never reconciled against each other.
type PullRequest struct {
	ID           *int
	Version      int
	Title        string
	Description  string
	State        string
	Open         bool
	Closed       bool
	Locked       bool
	CreatedDate  *time.Time
	UpdatedDate  *time.Time
	ClosedDate   *time.Time
	FromRef      *PullRequestRef
	ToRef        *PullRequestRef
	Author       *PullRequestParticipant
	Reviewers    []PullRequestParticipant
	Participants []PullRequestParticipant
	Links        LinkMap
}

// NormalizePullRequest maps a raw pull request payload into a PullRequest,
// recursively normalizing its refs, author, reviewers and participants.
// Timestamps arrive as epoch milliseconds and are converted to UTC.
func NormalizePullRequest(data map[string]any) PullRequest {
	pr := PullRequest{
		ID:          optIntField(data, "id"),
		Version:     intField(data, "version", 0),
		Title:       strField(data, "title", Unknown),
		Description: strField(data, "description", ""),
		State:       strField(data, "state", "OPEN"),
		Open:        boolField(data, "open", true),
		Closed:      boolField(data, "closed", false),
		Locked:      boolField(data, "locked", false),
		CreatedDate: timeField(data, "createdDate"),
		UpdatedDate: timeField(data, "updatedDate"),
		ClosedDate:  timeField(data, "closedDate"),
		Links:       NormalizeLinks(mapField(data, "links")),
	}

	if refData := mapField(data, "fromRef"); refData != nil {
		ref := NormalizePullRequestRef(refData)
		pr.FromRef = &ref
	}

	if refData := mapField(data, "toRef"); refData != nil {
		ref := NormalizePullRequestRef(refData)
		pr.ToRef = &ref
	}

	if authorData := mapField(data, "author"); authorData != nil {
		author := NormalizePullRequestParticipant(authorData)
		pr.Author = &author
	}

	for _, entry := range listField(data, "reviewers") {
		pr.Reviewers = append(pr.Reviewers, NormalizePullRequestParticipant(entry))
	}

	for _, entry := range listField(data, "participants") {
		pr.Participants = append(pr.Participants, NormalizePullRequestParticipant(entry))
	}

	return pr
}

// Simplified returns the flattened caller-facing view of the pull request,
// nesting the simplified views of its refs, author and reviewers.
func (pr PullRequest) Simplified() map[string]any {
	result := map[string]any{
		"id":      pr.ID,
		"title":   pr.Title,
		"state":   pr.State,
		"version": pr.Version,
	}

	if pr.Description != "" {
		result["description"] = pr.Description
	}

	if pr.CreatedDate != nil {
		result["created_date"] = pr.CreatedDate.Format(time.RFC3339)
	}

	if pr.UpdatedDate != nil {
		result["updated_date"] = pr.UpdatedDate.Format(time.RFC3339)
	}

	if pr.ClosedDate != nil {
		result["closed_date"] = pr.ClosedDate.Format(time.RFC3339)
	}

	if pr.FromRef != nil {
		result["source"] = pr.FromRef.Simplified()
	}

	if pr.ToRef != nil {
		result["target"] = pr.ToRef.Simplified()
	}

	if pr.Author != nil {
		result["author"] = pr.Author.Simplified()
	}

	if len(pr.Reviewers) > 0 {
		reviewers := make([]map[string]any, len(pr.Reviewers))
		for i, reviewer := range pr.Reviewers {
			reviewers[i] = reviewer.Simplified()
		}

		result["reviewers"] = reviewers
	}

	if url := pr.Links.SelfURL(); url != "" {
		result["url"] = url
	}

	return result
}
