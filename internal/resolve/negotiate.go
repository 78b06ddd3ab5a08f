package resolve

import (
	"context"

	"github.com/declget/declget/internal/registry"
)

// Negotiate retrieves the candidate versions for name under source and
// selects one. The registry client owns ordering and constraint matching
// (newest matching first), so selection is always the first entry; this
// layer performs no additional sorting.
func Negotiate(ctx context.Context, client registry.Client, source, name, constraint string) (registry.VersionInfo, error) {
	versions, err := client.Versions(ctx, source, name, constraint)
	if err != nil {
		return registry.VersionInfo{}, err
	}
	if len(versions) == 0 {
		return registry.VersionInfo{}, &registry.NotFoundError{Name: name}
	}
	return versions[0], nil
}
