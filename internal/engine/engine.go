// Package engine is the bundled implementation of the installer
// collaborator: it materializes declaration files under the project's
// typings directory, records saved dependencies in the manifest, and
// reports unresolved references. The resolution protocol depends only on
// the installer interface, so alternative engines can replace this one.
package engine

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/declget/declget/internal/installer"
	"github.com/declget/declget/internal/manifest"
)

const typingsDir = "typings"

// Engine installs declaration files locally.
type Engine struct {
	httpClient *http.Client
}

// New creates an Engine with a default HTTP client.
func New() *Engine {
	return &Engine{httpClient: &http.Client{Timeout: 30 * time.Second}}
}

// InstallDependency fetches a single declaration from location and writes
// it under <cwd>/typings/[ambient/]<name>/index.d.ts.
func (e *Engine) InstallDependency(ctx context.Context, location string, opts installer.Options) (*installer.Result, error) {
	name := opts.Name
	if name == "" {
		return nil, fmt.Errorf("install name required for %s", location)
	}

	content, err := e.fetch(ctx, location, opts.Cwd)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", location, err)
	}

	dir := filepath.Join(opts.Cwd, typingsDir)
	if opts.Ambient {
		dir = filepath.Join(dir, "ambient")
	}
	dir = filepath.Join(dir, name)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}
	target := filepath.Join(dir, "index.d.ts")
	if err := os.WriteFile(target, content, 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", target, err)
	}

	if err := e.record(location, name, opts); err != nil {
		return nil, err
	}

	result := &installer.Result{Tree: &installer.Tree{Name: name}}
	scanDeclaration(content, name, dir, result)
	return result, nil
}

// Install runs the manifest-driven path: every dependency declared in the
// manifest under opts.Cwd, dev dependencies skipped in production mode.
func (e *Engine) Install(ctx context.Context, opts installer.Options) (*installer.Result, error) {
	path, err := manifest.Find(opts.Cwd)
	if err != nil {
		return nil, err
	}
	m, err := manifest.ParseFile(path)
	if err != nil {
		return nil, err
	}

	rootName := m.Name
	if rootName == "" {
		rootName = filepath.Base(opts.Cwd)
	}
	root := &installer.Result{Tree: &installer.Tree{Name: rootName, Version: m.Version}}

	type group struct {
		deps    map[string]string
		ambient bool
		dev     bool
	}
	groups := []group{
		{m.Dependencies, false, false},
		{m.DevDependencies, false, true},
		{m.AmbientDependencies, true, false},
		{m.AmbientDevDependencies, true, true},
	}

	for _, g := range groups {
		if g.dev && opts.Production {
			continue
		}
		for _, name := range sortedKeys(g.deps) {
			depOpts := opts
			depOpts.Name = name
			depOpts.Ambient = g.ambient
			depOpts.Save = false
			depOpts.SaveDev = false

			res, err := e.InstallDependency(ctx, g.deps[name], depOpts)
			if err != nil {
				return nil, fmt.Errorf("installing %s: %w", name, err)
			}
			root.Tree.Dependencies = append(root.Tree.Dependencies, res.Tree)
			mergeReferences(&root.References, res.References)
			mergeReferences(&root.Missing, res.Missing)
		}
	}

	return root, nil
}

// record updates the manifest for --save / --save-dev installs.
func (e *Engine) record(location, name string, opts installer.Options) error {
	if !opts.Save && !opts.SaveDev {
		return nil
	}

	field := manifest.FieldDependencies
	switch {
	case opts.SaveDev && opts.Ambient:
		field = manifest.FieldAmbientDevDependencies
	case opts.SaveDev:
		field = manifest.FieldDevDependencies
	case opts.Ambient:
		field = manifest.FieldAmbientDependencies
	}

	if err := manifest.Record(opts.Cwd, name, location, field); err != nil {
		return fmt.Errorf("recording %s in manifest: %w", name, err)
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func mergeReferences(dst *installer.ReferenceMap, src installer.ReferenceMap) {
	for _, entry := range src {
		for _, dep := range entry.Dependents {
			dst.Add(entry.Reference, dep.Name)
		}
	}
}
