package models

// Repository represents a Bitbucket repository. The owning Project is an
// owned copy taken from the payload, not a live reference, and is nil when
// the payload carried no project object.
type Repository struct {
	ID            *int
	Slug          string
	Name          string
	Description   string
	ScmID         string
	State         string
	StatusMessage string
	Forkable      bool
	Public        bool
	Project       *Project
	Links         LinkMap
}

// NormalizeRepository maps a raw repository payload into a Repository.
func NormalizeRepository(data map[string]any) Repository {
	repo := Repository{
		ID:            optIntField(data, "id"),
		Slug:          strField(data, "slug", ""),
		Name:          strField(data, "name", Unknown),
		Description:   strField(data, "description", ""),
		ScmID:         strField(data, "scmId", "git"),
		State:         strField(data, "state", "AVAILABLE"),
		StatusMessage: strField(data, "statusMessage", ""),
		Forkable:      boolField(data, "forkable", true),
		Public:        boolField(data, "public", false),
		Links:         NormalizeLinks(mapField(data, "links")),
	}

	if projData := mapField(data, "project"); projData != nil {
		project := NormalizeProject(projData)
		repo.Project = &project
	}

	return repo
}

// Simplified returns the flattened caller-facing view of the repository.
func (r Repository) Simplified() map[string]any {
	result := map[string]any{
		"slug":     r.Slug,
		"name":     r.Name,
		"scm":      r.ScmID,
		"state":    r.State,
		"forkable": r.Forkable,
		"public":   r.Public,
	}

	if r.ID != nil {
		result["id"] = *r.ID
	}

	if r.Description != "" {
		result["description"] = r.Description
	}

	if r.Project != nil {
		result["project"] = map[string]any{
			"key":  r.Project.Key,
			"name": r.Project.Name,
		}
	}

	if clone := r.Links["clone"]; len(clone) > 0 {
		urls := make(map[string]any, len(clone))
		for _, link := range clone {
			if link.Name != "" {
				urls[link.Name] = link.Href
			}
		}

		result["clone_urls"] = urls
	}

	if url := r.Links.SelfURL(); url != "" {
		result["url"] = url
	}

	return result
}

// Branch represents a branch head in a repository. The commit fields stay
// empty until the branch has at least one commit.
type Branch struct {
	ID              string
	DisplayID       string
	Type            string
	LatestCommit    string
	LatestChangeset string
	IsDefault       bool
}

// NormalizeBranch maps a raw branch payload into a Branch.
func NormalizeBranch(data map[string]any) Branch {
	return Branch{
		ID:              strField(data, "id", ""),
		DisplayID:       strField(data, "displayId", ""),
		Type:            strField(data, "type", "BRANCH"),
		LatestCommit:    strField(data, "latestCommit", ""),
		LatestChangeset: strField(data, "latestChangeset", ""),
		IsDefault:       boolField(data, "isDefault", false),
	}
}

// Simplified returns the flattened caller-facing view of the branch.
func (b Branch) Simplified() map[string]any {
	result := map[string]any{
		"id":         b.ID,
		"name":       b.DisplayID,
		"type":       b.Type,
		"is_default": b.IsDefault,
	}

	if b.LatestCommit != "" {
		result["latest_commit"] = b.LatestCommit
	}

	return result
}
