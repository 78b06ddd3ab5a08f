// Package location classifies raw dependency location strings.
//
// A location is either a registry coordinate ("dom", "node@4.2.1") resolved
// through registry sources, or a direct location (local path, VCS reference,
// remote URL) handed to the installer as-is. Classification is a pure string
// operation: no network or filesystem access, no error paths. Anything not
// recognized as a registry coordinate is a direct location, deferring
// validation to the installer.
package location

import "strings"

// Kind distinguishes the two reference variants.
type Kind int

const (
	// KindRegistry is a name (+optional version constraint) resolved
	// through one or more registry sources.
	KindRegistry Kind = iota
	// KindDirect is an opaque path, URL, or VCS string installed as-is.
	KindDirect
)

// Reference is the classified form of a raw location string.
// Exactly one variant is active, indicated by Kind.
type Reference struct {
	Kind       Kind
	Raw        string // the original string, unmodified
	Name       string // registry coordinate name (KindRegistry only)
	Constraint string // version constraint, "" means latest (KindRegistry only)
}

// directSchemes are URI-style prefixes that always denote a direct location.
var directSchemes = []string{
	"file:",
	"http:",
	"https:",
	"git:",
	"git+ssh:",
	"git+https:",
	"github:",
	"bitbucket:",
	"npm:",
	"bower:",
}

// pathPrefixes mark local filesystem references.
var pathPrefixes = []string{"/", "./", "../", "~/", `.\`, `..\`}

// Classify turns a raw location string into a Reference.
// A string is a registry coordinate iff it carries no direct-location
// prefix and contains no path separator; a trailing "@version" suffix
// becomes the version constraint.
func Classify(raw string) Reference {
	if isDirect(raw) {
		return Reference{Kind: KindDirect, Raw: raw}
	}

	name, constraint := splitVersion(raw)
	return Reference{
		Kind:       KindRegistry,
		Raw:        raw,
		Name:       name,
		Constraint: constraint,
	}
}

func isDirect(raw string) bool {
	lower := strings.ToLower(raw)
	for _, scheme := range directSchemes {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}
	for _, prefix := range pathPrefixes {
		if strings.HasPrefix(raw, prefix) {
			return true
		}
	}
	// Registry names never contain path separators.
	return strings.ContainsAny(raw, `/\`)
}

// splitVersion splits "name@constraint" on the last "@".
// A leading "@" belongs to the name, not a constraint.
func splitVersion(raw string) (name, constraint string) {
	idx := strings.LastIndex(raw, "@")
	if idx <= 0 {
		return raw, ""
	}
	return raw[:idx], raw[idx+1:]
}
