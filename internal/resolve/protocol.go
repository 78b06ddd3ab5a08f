package resolve

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/declget/declget/internal/installer"
	"github.com/declget/declget/internal/location"
	"github.com/declget/declget/internal/prompt"
	"github.com/declget/declget/internal/registry"
)

// Status is the tri-state outcome of one location's resolution.
type Status int

const (
	// StatusInstalled means the installer ran and returned a result.
	StatusInstalled Status = iota
	// StatusSkipped means the user declined the source confirmation;
	// no installer call happened and no error was raised.
	StatusSkipped
	// StatusFailed means a recoverable registry failure was reported;
	// later locations still proceed.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusInstalled:
		return "installed"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Resolution records what happened to one raw location.
type Resolution struct {
	Location string
	Name     string // the name the install was recorded under
	Status   Status
	Result   *installer.Result // set when Status is StatusInstalled
	Err      error             // set when Status is StatusFailed
}

// Protocol composes classification, source search, and version negotiation
// into the per-location install pipeline.
type Protocol struct {
	Registry  registry.Client
	Installer installer.Installer
	Prompter  prompt.Prompter
	Logger    *log.Logger

	// Source pins the registry source explicitly (--source); when set,
	// search and disambiguation are skipped entirely.
	Source string
	// Yes accepts confirmations and inferred-name defaults without
	// prompting. Multi-candidate selection still requires a choice.
	Yes bool

	// Out receives user-facing progress messages.
	Out io.Writer
}

// Resolve processes raw locations strictly in the order supplied. Each
// location is an independent unit of work: registry misses and transport
// failures are recorded on that location's Resolution and processing
// continues. Any other error (installer failures, prompt I/O) aborts the
// run and is returned alongside the resolutions gathered so far.
//
// With no locations at all, the manifest-driven path installs everything
// declared in the local manifest, bypassing classification entirely.
func (p *Protocol) Resolve(ctx context.Context, rawLocations []string, opts installer.Options) ([]Resolution, error) {
	if len(rawLocations) == 0 {
		result, err := p.Installer.Install(ctx, opts)
		if err != nil {
			return nil, err
		}
		return []Resolution{{Status: StatusInstalled, Result: result, Name: opts.Name}}, nil
	}

	resolutions := make([]Resolution, 0, len(rawLocations))
	for _, raw := range rawLocations {
		// Options are extended by copy per location; a failure on one
		// location cannot contaminate the next.
		res, err := p.resolveOne(ctx, raw, opts)
		if err != nil {
			var notFound *registry.NotFoundError
			var regErr *registry.RegistryError
			if errors.As(err, &notFound) || errors.As(err, &regErr) {
				p.logger().Debug("location failed", "location", raw, "err", err)
				resolutions = append(resolutions, Resolution{Location: raw, Status: StatusFailed, Err: err})
				continue
			}
			return resolutions, err
		}
		resolutions = append(resolutions, res)
	}
	return resolutions, nil
}

func (p *Protocol) resolveOne(ctx context.Context, raw string, opts installer.Options) (Resolution, error) {
	ref := location.Classify(raw)

	if ref.Kind == location.KindDirect {
		return p.installDirect(ctx, ref, opts)
	}
	return p.installCoordinate(ctx, ref, opts)
}

// installDirect installs a path/URL/VCS location as-is. When no name was
// given, one is inferred and offered as the prompt default.
func (p *Protocol) installDirect(ctx context.Context, ref location.Reference, opts installer.Options) (Resolution, error) {
	name := opts.Name
	if name == "" {
		inferred := location.InferName(ref.Raw)
		if p.Yes {
			name = inferred
		} else {
			answer, err := p.Prompter.Input("What name would you like to install this under?", inferred)
			if err != nil {
				return Resolution{}, err
			}
			name = answer
		}
	}

	p.logger().Debug("installing direct location", "location", ref.Raw, "name", name)
	result, err := p.Installer.InstallDependency(ctx, ref.Raw, opts.WithName(name))
	if err != nil {
		return Resolution{}, err
	}
	return Resolution{Location: ref.Raw, Name: name, Status: StatusInstalled, Result: result}, nil
}

// installCoordinate resolves a registry coordinate to a concrete location
// via source search (unless pinned) and version negotiation.
func (p *Protocol) installCoordinate(ctx context.Context, ref location.Reference, opts installer.Options) (Resolution, error) {
	source := p.Source
	if source == "" {
		chosen, ok, err := p.search().Choose(ctx, ref.Name, opts.Ambient)
		if err != nil {
			return Resolution{}, err
		}
		if !ok {
			p.logger().Debug("source declined", "name", ref.Name)
			return Resolution{Location: ref.Raw, Name: ref.Name, Status: StatusSkipped}, nil
		}
		source = chosen
	}

	version, err := Negotiate(ctx, p.Registry, source, ref.Name, ref.Constraint)
	if err != nil {
		return Resolution{}, err
	}

	name := ref.Name
	if opts.Name != "" {
		name = opts.Name
		if name != ref.Name {
			fmt.Fprintf(p.out(), "Installing %s as %q.\n", ref.Name, name)
		}
	}

	p.logger().Debug("negotiated version",
		"name", ref.Name, "source", source, "version", version.Version, "location", version.Location)

	result, err := p.Installer.InstallDependency(ctx, version.Location, opts.WithName(name))
	if err != nil {
		return Resolution{}, err
	}
	return Resolution{Location: ref.Raw, Name: name, Status: StatusInstalled, Result: result}, nil
}

func (p *Protocol) search() *SearchCoordinator {
	return &SearchCoordinator{Client: p.Registry, Prompter: p.Prompter, AssumeYes: p.Yes}
}

func (p *Protocol) out() io.Writer {
	if p.Out != nil {
		return p.Out
	}
	return io.Discard
}

func (p *Protocol) logger() *log.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return log.Default()
}
