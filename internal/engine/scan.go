package engine

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/declget/declget/internal/installer"
)

var (
	referencePattern = regexp.MustCompile(`///\s*<reference\s+path="([^"]+)"`)
	importPattern    = regexp.MustCompile(`(?m)^\s*import\b[^'"]*['"]([^'"]+)['"]`)
)

// scanDeclaration inspects installed declaration content for references the
// install did not satisfy. Reference tags pointing at files that do not
// exist next to the installed declaration are reported as unresolved
// references; bare (non-relative) import specifiers are reported as
// possible ambient modules.
func scanDeclaration(content []byte, name, dir string, result *installer.Result) {
	text := string(content)

	for _, m := range referencePattern.FindAllStringSubmatch(text, -1) {
		ref := m[1]
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(ref))); err == nil {
			continue
		}
		result.References.Add(ref, name)
	}

	for _, m := range importPattern.FindAllStringSubmatch(text, -1) {
		spec := m[1]
		if strings.HasPrefix(spec, ".") || strings.HasPrefix(spec, "/") {
			continue
		}
		result.Missing.Add(spec, name)
	}
}
