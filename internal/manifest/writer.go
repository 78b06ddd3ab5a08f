package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/declget/declget/internal/branding"
)

// Write marshals the manifest back to path, choosing JSON or YAML by
// extension. JSON output is indented the way npm-style manifests are.
func Write(path string, m *Manifest) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(m)
	} else {
		data, err = json.MarshalIndent(m, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	}
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}

// Field selects which dependency map an entry is recorded in.
type Field int

const (
	FieldDependencies Field = iota
	FieldDevDependencies
	FieldAmbientDependencies
	FieldAmbientDevDependencies
)

// Record adds name -> location under the selected field, creating the
// manifest file in dir if none exists yet.
func Record(dir, name, location string, field Field) error {
	path, err := Find(dir)
	m := &Manifest{}
	if err == nil {
		m, err = ParseFile(path)
		if err != nil {
			return err
		}
	} else {
		path = filepath.Join(dir, branding.ManifestName()+".json")
	}

	target := func(mp *map[string]string) {
		if *mp == nil {
			*mp = make(map[string]string)
		}
		(*mp)[name] = location
	}

	switch field {
	case FieldDevDependencies:
		target(&m.DevDependencies)
	case FieldAmbientDependencies:
		target(&m.AmbientDependencies)
	case FieldAmbientDevDependencies:
		target(&m.AmbientDevDependencies)
	default:
		target(&m.Dependencies)
	}

	return Write(path, m)
}
