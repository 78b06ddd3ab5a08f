package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/declget/declget/internal/branding"
	"github.com/declget/declget/internal/installer"
	"github.com/declget/declget/internal/registry"
)

type stubClient struct {
	results  []registry.SourceCandidate
	versions []registry.VersionInfo
	err      error

	searchCalls int
}

func (c *stubClient) Search(_ context.Context, _ registry.SearchQuery) ([]registry.SourceCandidate, error) {
	c.searchCalls++
	return c.results, c.err
}

func (c *stubClient) Versions(_ context.Context, _, _, _ string) ([]registry.VersionInfo, error) {
	return c.versions, c.err
}

type stubInstaller struct {
	calls []string
	opts  []installer.Options
}

func (s *stubInstaller) Install(_ context.Context, opts installer.Options) (*installer.Result, error) {
	s.calls = append(s.calls, "<manifest>")
	s.opts = append(s.opts, opts)
	return &installer.Result{Tree: &installer.Tree{Name: "manifest-root"}}, nil
}

func (s *stubInstaller) InstallDependency(_ context.Context, loc string, opts installer.Options) (*installer.Result, error) {
	s.calls = append(s.calls, loc)
	s.opts = append(s.opts, opts)
	return &installer.Result{Tree: &installer.Tree{Name: opts.Name}}, nil
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func withStubs(t *testing.T, client *stubClient, inst *stubInstaller) {
	t.Helper()

	prevClient, prevInstaller := newRegistryClient, newInstaller
	newRegistryClient = func() registry.Client { return client }
	newInstaller = func() installer.Installer { return inst }
	t.Cleanup(func() {
		newRegistryClient, newInstaller = prevClient, prevInstaller
		installSave, installSaveDev, installAmbient = false, false, false
		installProduction, installYes = false, false
		installName, installSource, installCwd = "", "", ""
		searchAmbient, searchJSON = false, false
	})
}

func TestSearchCommandTable(t *testing.T) {
	withStubs(t, &stubClient{results: []registry.SourceCandidate{
		{Source: "env", DisplayName: "Environment"},
		{Source: "global"},
	}}, &stubInstaller{})

	out, err := execute(t, "search", "foo")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "SOURCE") || !strings.Contains(out, "Environment") || !strings.Contains(out, "global") {
		t.Errorf("search output missing rows:\n%s", out)
	}
}

func TestSearchCommandNoResults(t *testing.T) {
	withStubs(t, &stubClient{}, &stubInstaller{})

	out, err := execute(t, "search", "nope")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "--ambient") {
		t.Errorf("empty search output should hint at --ambient:\n%s", out)
	}
}

func TestSearchCommandJSON(t *testing.T) {
	withStubs(t, &stubClient{results: []registry.SourceCandidate{{Source: "env"}}}, &stubInstaller{})

	out, err := execute(t, "search", "foo", "--json")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, `"source": "env"`) {
		t.Errorf("json output = %s", out)
	}
}

func TestInstallDirectLocationWithName(t *testing.T) {
	inst := &stubInstaller{}
	withStubs(t, &stubClient{}, inst)

	cwd := t.TempDir()
	out, err := execute(t, "install", "file:./local.d.ts", "--name", "bar", "--cwd", cwd)
	if err != nil {
		t.Fatalf("install: %v", err)
	}

	if len(inst.calls) != 1 || inst.calls[0] != "file:./local.d.ts" {
		t.Fatalf("installer calls = %v", inst.calls)
	}
	if inst.opts[0].Name != "bar" {
		t.Errorf("install name = %q, want %q", inst.opts[0].Name, "bar")
	}
	if !strings.HasPrefix(out, "bar\n") {
		t.Errorf("tree root not labeled with --name:\n%s", out)
	}
}

func TestInstallZeroArgsValidatesManifest(t *testing.T) {
	inst := &stubInstaller{}
	withStubs(t, &stubClient{}, inst)

	cwd := t.TempDir()
	bad := `{"name": "ok", "dependencies": {"node": 42}}`
	if err := os.WriteFile(filepath.Join(cwd, "declarations.json"), []byte(bad), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := execute(t, "install", "--cwd", cwd)
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if len(inst.calls) != 0 {
		t.Errorf("installer ran despite invalid manifest: %v", inst.calls)
	}
}

func TestInstallZeroArgsManifestPath(t *testing.T) {
	inst := &stubInstaller{}
	withStubs(t, &stubClient{}, inst)

	cwd := t.TempDir()
	good := `{"name": "proj", "dependencies": {"node": "file:./node.d.ts"}}`
	if err := os.WriteFile(filepath.Join(cwd, "declarations.json"), []byte(good), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "install", "--cwd", cwd, "--production")
	if err != nil {
		t.Fatalf("install: %v", err)
	}

	if len(inst.calls) != 1 || inst.calls[0] != "<manifest>" {
		t.Fatalf("installer calls = %v, want the manifest-driven path", inst.calls)
	}
	if !inst.opts[0].Production {
		t.Error("--production not passed through")
	}
	if !strings.Contains(out, "manifest-root") {
		t.Errorf("tree not rendered:\n%s", out)
	}
}

func TestInstallReportsFailureWithoutAborting(t *testing.T) {
	inst := &stubInstaller{}
	withStubs(t, &stubClient{err: &registry.RegistryError{Op: "search", Err: os.ErrDeadlineExceeded}}, inst)

	out, err := execute(t, "install", "missing-name", "--cwd", t.TempDir())
	if err != nil {
		t.Fatalf("recovered registry failures must not fail the command, got %v", err)
	}
	if !strings.Contains(out, "registry search failed") {
		t.Errorf("failure not reported:\n%s", out)
	}
	if len(inst.calls) != 0 {
		t.Errorf("installer ran despite search failure: %v", inst.calls)
	}
}

func TestInstallDefaultSourceFromConfig(t *testing.T) {
	client := &stubClient{versions: []registry.VersionInfo{{Version: "1.0.0", Location: "file:./foo.d.ts"}}}
	inst := &stubInstaller{}
	withStubs(t, client, inst)
	t.Setenv(branding.EnvVar("HOME"), t.TempDir())

	viper.Set("default.source", "env")
	t.Cleanup(viper.Reset)

	_, err := execute(t, "install", "foo", "--cwd", t.TempDir())
	if err != nil {
		t.Fatalf("install: %v", err)
	}

	if client.searchCalls != 0 {
		t.Errorf("search calls = %d, want 0 when default.source is configured", client.searchCalls)
	}
	if len(inst.calls) != 1 || inst.calls[0] != "file:./foo.d.ts" {
		t.Fatalf("installer calls = %v, want the negotiated location", inst.calls)
	}
}

func TestConfigSetGet(t *testing.T) {
	withStubs(t, &stubClient{}, &stubInstaller{})
	t.Setenv(branding.EnvVar("HOME"), t.TempDir())
	t.Cleanup(viper.Reset)

	if _, err := execute(t, "config", "set", "registry.url", "http://registry.local"); err != nil {
		t.Fatalf("config set: %v", err)
	}

	out, err := execute(t, "config", "get", "registry.url")
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	if strings.TrimSpace(out) != "http://registry.local" {
		t.Errorf("config get = %q, want the stored value", out)
	}
}

func TestVersionCommand(t *testing.T) {
	withStubs(t, &stubClient{}, &stubInstaller{})
	buildVersion = "1.2.3"

	out, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(out) != "1.2.3" {
		t.Errorf("version output = %q", out)
	}
}
