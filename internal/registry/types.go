package registry

import "context"

// SourceCandidate is one registry source that may host a given dependency
// name (e.g., the environment-bundled channel vs. the globally ambient one).
type SourceCandidate struct {
	Source      string `json:"source"`
	DisplayName string `json:"name,omitempty"`
}

// Label returns the candidate's display name, falling back to the source id.
func (c SourceCandidate) Label() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Source
}

// VersionInfo ties one semantic version to a concrete installable location.
// The location is opaque to this layer and passed through unmodified.
type VersionInfo struct {
	Version  string `json:"version"`
	Location string `json:"location"`
}

// SearchQuery describes a source search for a dependency name.
type SearchQuery struct {
	Name    string
	Ambient bool
}

// Client is the registry collaborator contract. Result ordering is owned
// by the client: Versions returns candidates in negotiation priority order
// (newest matching first), and callers select the first entry without
// re-sorting.
type Client interface {
	// Search returns every source hosting the named dependency, in
	// registry order. An empty result is not an error.
	Search(ctx context.Context, query SearchQuery) ([]SourceCandidate, error)

	// Versions returns the versions of name under source matching the
	// constraint, best match first. It fails with *NotFoundError when
	// nothing matches and *RegistryError on transport failure.
	Versions(ctx context.Context, source, name, constraint string) ([]VersionInfo, error)
}
