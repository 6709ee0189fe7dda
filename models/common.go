// Package models defines the typed records produced from raw Bitbucket
// Server API payloads. Records are constructed once by their Normalize
// function and never mutated; every field holds either the value supplied by
// the server or its documented default, so a missing field can never fail.
package models

// Unknown is the sentinel used for required name-like fields that the
// server did not supply.
const Unknown = "unknown"

// User represents a Bitbucket user account.
type User struct {
	Name         string
	DisplayName  string
	EmailAddress string
	Active       bool
	Slug         string
	ID           *int
}

// NormalizeUser maps a raw user payload into a User. The display name and
// slug fall back to the account name when absent.
func NormalizeUser(data map[string]any) User {
	name := strField(data, "name", Unknown)

	return User{
		Name:         name,
		DisplayName:  strField(data, "displayName", name),
		EmailAddress: strField(data, "emailAddress", ""),
		Active:       boolField(data, "active", true),
		Slug:         strField(data, "slug", strField(data, "name", "")),
		ID:           optIntField(data, "id"),
	}
}

// Simplified returns the flattened caller-facing view of the user.
// Optional fields are omitted entirely when absent.
func (u User) Simplified() map[string]any {
	result := map[string]any{
		"name":         u.Name,
		"display_name": u.DisplayName,
		"active":       u.Active,
	}

	if u.EmailAddress != "" {
		result["email"] = u.EmailAddress
	}

	if u.Slug != "" {
		result["slug"] = u.Slug
	}

	if u.ID != nil {
		result["id"] = *u.ID
	}

	return result
}

// Link is a single hyperlink entry from a record's links map.
type Link struct {
	Href string
	Name string
}

// NormalizeLink maps a raw link payload into a Link.
func NormalizeLink(data map[string]any) Link {
	return Link{
		Href: strField(data, "href", ""),
		Name: strField(data, "name", ""),
	}
}

// LinkMap groups links by relation name (e.g. "self", "clone").
type LinkMap map[string][]Link

// NormalizeLinks maps a raw links payload into a LinkMap. A nil result
// means the payload carried no links at all.
func NormalizeLinks(data map[string]any) LinkMap {
	if data == nil {
		return nil
	}

	links := make(LinkMap, len(data))
	for rel := range data {
		for _, entry := range listField(data, rel) {
			links[rel] = append(links[rel], NormalizeLink(entry))
		}
	}

	return links
}

// SelfURL returns the first "self" link, or an empty string if none exists.
func (l LinkMap) SelfURL() string {
	if self := l["self"]; len(self) > 0 {
		return self[0].Href
	}

	return ""
}
