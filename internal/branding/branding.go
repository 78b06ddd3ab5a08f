// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml in this package and rebuild; Go's //go:embed
// bakes the values into the binary.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName      string `yaml:"cli_name"`
	DisplayName  string `yaml:"display_name"`
	Description  string `yaml:"description"`
	HomeDir      string `yaml:"home_dir"`
	EnvPrefix    string `yaml:"env_prefix"`
	GoModule     string `yaml:"go_module"`
	RegistryURL  string `yaml:"registry_url"`
	ManifestName string `yaml:"manifest_name"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:      "declget",
			DisplayName:  "DeclGet",
			Description:  "Installer for type-declaration packages",
			HomeDir:      ".declget",
			EnvPrefix:    "DECLGET",
			GoModule:     "github.com/declget/declget",
			RegistryURL:  "https://registry.declget.dev",
			ManifestName: "declarations",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "declget").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "DeclGet").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".declget").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "DECLGET").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path. Used by rebrand scripts, not at runtime.
func GoModule() string { load(); return defaults.GoModule }

// RegistryURL returns the default registry base URL.
func RegistryURL() string { load(); return defaults.RegistryURL }

// ManifestName returns the manifest basename without extension
// (e.g., "declarations" for declarations.json / declarations.yaml).
func ManifestName() string { load(); return defaults.ManifestName }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("REGISTRY") → "DECLGET_REGISTRY".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
