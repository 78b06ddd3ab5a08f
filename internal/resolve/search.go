package resolve

import (
	"context"
	"fmt"

	"github.com/declget/declget/internal/branding"
	"github.com/declget/declget/internal/prompt"
	"github.com/declget/declget/internal/registry"
)

// SearchCoordinator reduces an ambiguous registry search to a single chosen
// source, prompting the user when needed. It operates only when no explicit
// source was pinned.
type SearchCoordinator struct {
	Client   registry.Client
	Prompter prompt.Prompter

	// AssumeYes accepts the single-candidate confirmation without
	// prompting. Multi-candidate selection still requires a choice.
	AssumeYes bool
}

// Choose searches every registry source for name and returns the chosen
// source id. ok is false when the user declined the single-candidate
// confirmation: that is a skip, not an error, and no install happens for
// the dependency. Zero results fail with *registry.NotFoundError carrying
// an ambient-sensitive remediation hint.
func (c *SearchCoordinator) Choose(ctx context.Context, name string, ambient bool) (source string, ok bool, err error) {
	candidates, err := c.Client.Search(ctx, registry.SearchQuery{Name: name, Ambient: ambient})
	if err != nil {
		return "", false, err
	}

	switch len(candidates) {
	case 0:
		hint := fmt.Sprintf("try %s install %s --ambient", branding.CLIName(), name)
		if ambient {
			hint = "consider contributing the declaration to the registry"
		}
		return "", false, &registry.NotFoundError{Name: name, Hint: hint}

	case 1:
		if c.AssumeYes {
			return candidates[0].Source, true, nil
		}
		question := fmt.Sprintf("Found %s declarations in %q. Install?", name, candidates[0].Label())
		confirmed, err := c.Prompter.Confirm(question, true)
		if err != nil {
			return "", false, err
		}
		if !confirmed {
			return "", false, nil
		}
		return candidates[0].Source, true, nil

	default:
		labels := make([]string, len(candidates))
		for i, cand := range candidates {
			labels[i] = cand.Label()
		}
		idx, err := c.Prompter.Select(fmt.Sprintf("Found %s declarations in multiple sources. Which do you want?", name), labels)
		if err != nil {
			return "", false, err
		}
		return candidates[idx].Source, true, nil
	}
}
