package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/declget/declget/internal/config"
	"github.com/declget/declget/internal/engine"
	"github.com/declget/declget/internal/installer"
	"github.com/declget/declget/internal/manifest"
	"github.com/declget/declget/internal/prompt"
	"github.com/declget/declget/internal/registry"
	"github.com/declget/declget/internal/render"
	"github.com/declget/declget/internal/resolve"
)

var (
	installSave       bool
	installSaveDev    bool
	installAmbient    bool
	installProduction bool
	installYes        bool
	installName       string
	installSource     string
	installCwd        string
)

var installCmd = &cobra.Command{
	Use:     "install [location...]",
	Aliases: []string{"i"},
	Short:   "Install type declarations",
	Long: `Install type declarations from the registry or from a direct location.

Locations may be registry names ("node", "node@4.2.1"), local paths,
file: references, VCS shorthands (github:, bitbucket:), or URLs. With no
locations, everything declared in the local manifest is installed.`,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().BoolVarP(&installSave, "save", "S", false, "Record the dependency in the manifest")
	installCmd.Flags().BoolVarP(&installSaveDev, "save-dev", "D", false, "Record the dependency as a dev dependency")
	installCmd.Flags().BoolVarP(&installAmbient, "ambient", "A", false, "Install as an ambient (global) declaration")
	installCmd.Flags().BoolVarP(&installProduction, "production", "p", false, "Skip dev dependencies on the manifest-driven path")
	installCmd.Flags().BoolVarP(&installYes, "yes", "y", false, "Accept confirmations and inferred names without prompting")
	installCmd.Flags().StringVarP(&installName, "name", "n", "", "Install under this name instead of the resolved one")
	installCmd.Flags().StringVarP(&installSource, "source", "s", "", "Pin the registry source, skipping disambiguation")
	installCmd.Flags().StringVar(&installCwd, "cwd", "", "Project directory (default: working directory)")
	rootCmd.AddCommand(installCmd)
}

// Construction seams, overridden in tests.
var (
	newRegistryClient = func() registry.Client {
		return registry.NewHTTPClient(config.RegistryURL())
	}
	newInstaller = func() installer.Installer {
		return engine.New()
	}
)

func runInstall(cmd *cobra.Command, args []string) error {
	cwd := installCwd
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}
		cwd = wd
	}

	opts := installer.Options{
		Name:       installName,
		Save:       installSave,
		SaveDev:    installSaveDev,
		Ambient:    installAmbient,
		Production: installProduction,
		Cwd:        cwd,
	}

	// The zero-argument path installs from the manifest; refuse early on
	// a malformed one rather than failing halfway through.
	if len(args) == 0 {
		if err := checkManifest(cmd, cwd); err != nil {
			return err
		}
	}

	source := installSource
	if source == "" {
		source = config.Get("default.source")
	}

	protocol := &resolve.Protocol{
		Registry:  newRegistryClient(),
		Installer: newInstaller(),
		Prompter:  prompt.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout()),
		Logger:    logger,
		Source:    source,
		Yes:       installYes,
		Out:       cmd.OutOrStdout(),
	}

	resolutions, err := protocol.Resolve(cmd.Context(), args, opts)
	report(cmd, resolutions)
	return err
}

// report prints each resolution: the rendered tree for installs, a note
// for skips, and the recovered error for failures. Recovered failures do
// not affect the exit code.
func report(cmd *cobra.Command, resolutions []resolve.Resolution) {
	for _, res := range resolutions {
		switch res.Status {
		case resolve.StatusInstalled:
			fmt.Fprint(cmd.OutOrStdout(), render.Result(res.Result, render.Options{Name: installName}))
		case resolve.StatusSkipped:
			fmt.Fprintf(cmd.OutOrStdout(), "Skipped %s.\n", res.Location)
		case resolve.StatusFailed:
			if verbose {
				logger.Error("resolution failed", "location", res.Location, "err", fmt.Sprintf("%+v", res.Err))
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s: %v\n", res.Location, res.Err)
		}
	}
}

func checkManifest(cmd *cobra.Command, cwd string) error {
	path, err := manifest.Find(cwd)
	if err != nil {
		return err
	}

	result, err := manifest.ValidateFile(path)
	if err != nil {
		return err
	}
	if !result.Valid {
		for _, issue := range result.Issues {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", issue.Path, issue.Message)
		}
		return fmt.Errorf("manifest %s failed validation", path)
	}
	return nil
}
