package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/declget/declget/internal/branding"
)

// extensions is the fallback order for finding the manifest file.
var extensions = []string{".json", ".yaml"}

// Find locates the manifest file in dir. Fallback order:
// declarations.json > declarations.yaml.
func Find(dir string) (string, error) {
	for _, ext := range extensions {
		p := filepath.Join(dir, branding.ManifestName()+ext)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("no %s manifest found in %s", branding.ManifestName(), dir)
}

// ParseFile reads and parses a manifest file. YAML handles both formats;
// JSON is a YAML subset.
func ParseFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}
