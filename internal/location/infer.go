package location

import (
	"path"
	"strings"
)

// declExtensions are stripped from inferred names, longest first.
var declExtensions = []string{".d.ts", ".ts", ".json"}

// InferName suggests a dependency name from a raw location string.
// It is best-effort and never authoritative: callers present the result
// as a pre-filled prompt default, not a final answer.
//
//	"file:./custom.d.ts"            -> "custom"
//	"github:org/repo"               -> "repo"
//	"https://example.com/env.d.ts"  -> "env"
//	"./typings/browser.d.ts"        -> "browser"
func InferName(raw string) string {
	s := raw

	// Strip a URI scheme (file:, github:, https:, ...).
	if idx := strings.Index(s, ":"); idx >= 0 {
		rest := s[idx+1:]
		rest = strings.TrimPrefix(rest, "//")
		s = rest
	}

	// Drop query string and fragment.
	if idx := strings.IndexAny(s, "?#"); idx >= 0 {
		s = s[:idx]
	}

	// VCS refs may pin a branch or tag after "#", already dropped above;
	// a trailing slash would yield an empty base.
	s = strings.TrimRight(s, "/")
	s = strings.ReplaceAll(s, `\`, "/")

	base := path.Base(s)
	if base == "." || base == "/" || base == "" {
		return ""
	}

	for _, ext := range declExtensions {
		if strings.HasSuffix(base, ext) {
			base = strings.TrimSuffix(base, ext)
			break
		}
	}

	return base
}
