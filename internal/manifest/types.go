package manifest

// Manifest is the project's declaration manifest. Dependency values are
// opaque installable locations owned by the installer, e.g.
// "file:./typings/custom.d.ts" or "github:org/repo/node.d.ts#v4.2.1".
type Manifest struct {
	Name    string `yaml:"name" json:"name"`
	Main    string `yaml:"main,omitempty" json:"main,omitempty"`
	Version string `yaml:"version,omitempty" json:"version,omitempty"`

	Dependencies           map[string]string `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
	DevDependencies        map[string]string `yaml:"devDependencies,omitempty" json:"devDependencies,omitempty"`
	AmbientDependencies    map[string]string `yaml:"ambientDependencies,omitempty" json:"ambientDependencies,omitempty"`
	AmbientDevDependencies map[string]string `yaml:"ambientDevDependencies,omitempty" json:"ambientDevDependencies,omitempty"`
}

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue represents a single validation error from the schema.
type ValidationIssue struct {
	Path    string // instance location (e.g., "/dependencies/node")
	Message string // human-readable error message
	Keyword string // schema keyword that failed
}
