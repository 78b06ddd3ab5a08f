// Package installer defines the contract with the external installer that
// materializes dependencies on disk. This CLI drives it and renders its
// results; fetching, caching, and declaration-file merging live elsewhere.
package installer

import "context"

// Options is the install request configuration. It is constructed once per
// CLI run and extended by copy per location; callers never mutate a shared
// value across locations.
type Options struct {
	// Name overrides the dependency name the install is recorded under.
	Name string
	// Save records the dependency in the manifest's dependencies.
	Save bool
	// SaveDev records the dependency in the manifest's dev dependencies.
	// Save and SaveDev are independent here; any exclusivity is enforced
	// by the installer.
	SaveDev bool
	// Ambient installs the dependency as an ambient (global) declaration.
	Ambient bool
	// Production skips dev dependencies on the manifest-driven path.
	Production bool
	// Cwd is the project directory holding the manifest.
	Cwd string
}

// WithName returns a copy of o with the install name set.
func (o Options) WithName(name string) Options {
	o.Name = name
	return o
}

// Tree is the dependency tree returned by the installer. This layer only
// reads enough of its shape to render it.
type Tree struct {
	Name         string  `json:"name"`
	Version      string  `json:"version,omitempty"`
	Dependencies []*Tree `json:"dependencies,omitempty"`
}

// Dependent identifies a package that referenced an unresolved identifier.
type Dependent struct {
	Name string `json:"name"`
}

// ReferenceEntry maps one unresolved identifier to the dependents that
// referenced it, in the order the installer reported them.
type ReferenceEntry struct {
	Reference  string      `json:"reference"`
	Dependents []Dependent `json:"dependents"`
}

// ReferenceMap is an insertion-ordered mapping from unresolved identifiers
// to their dependents. It backs both the "references" and "possible ambient
// modules" diagnostics.
type ReferenceMap []ReferenceEntry

// Add appends name under reference, creating the entry on first use.
func (m *ReferenceMap) Add(reference, name string) {
	for i := range *m {
		if (*m)[i].Reference == reference {
			(*m)[i].Dependents = append((*m)[i].Dependents, Dependent{Name: name})
			return
		}
	}
	*m = append(*m, ReferenceEntry{
		Reference:  reference,
		Dependents: []Dependent{{Name: name}},
	})
}

// Result is the outcome of one install call.
type Result struct {
	Tree       *Tree
	References ReferenceMap // unresolved references, not installed
	Missing    ReferenceMap // possible ambient modules, not installed
}

// Installer is the external collaborator that performs installs.
type Installer interface {
	// Install runs the manifest-driven path: everything declared in the
	// local manifest under opts.Cwd.
	Install(ctx context.Context, opts Options) (*Result, error)

	// InstallDependency installs a single dependency from a concrete
	// location under the name carried in opts.
	InstallDependency(ctx context.Context, location string, opts Options) (*Result, error)
}
