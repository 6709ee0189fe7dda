package models

// Project represents a Bitbucket project. The key is the natural
// identifier and is compared case-insensitively by callers.
type Project struct {
	ID          *int
	Key         string
	Name        string
	Description string
	Public      bool
	Type        string
	Links       LinkMap
}

// NormalizeProject maps a raw project payload into a Project.
func NormalizeProject(data map[string]any) Project {
	return Project{
		ID:          optIntField(data, "id"),
		Key:         strField(data, "key", ""),
		Name:        strField(data, "name", Unknown),
		Description: strField(data, "description", ""),
		Public:      boolField(data, "public", false),
		Type:        strField(data, "type", "NORMAL"),
		Links:       NormalizeLinks(mapField(data, "links")),
	}
}

// Simplified returns the flattened caller-facing view of the project.
func (p Project) Simplified() map[string]any {
	result := map[string]any{
		"key":    p.Key,
		"name":   p.Name,
		"public": p.Public,
		"type":   p.Type,
	}

	if p.ID != nil {
		result["id"] = *p.ID
	}

	if p.Description != "" {
		result["description"] = p.Description
	}

	if url := p.Links.SelfURL(); url != "" {
		result["url"] = url
	}

	return result
}
