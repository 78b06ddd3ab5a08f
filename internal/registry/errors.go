package registry

import "fmt"

// NotFoundError reports that the registry has no match for a dependency:
// zero search results or zero versions under a source. Hint carries a
// user-facing remediation suggestion.
type NotFoundError struct {
	Name string
	Hint string
}

func (e *NotFoundError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("unable to find %q in the registry (%s)", e.Name, e.Hint)
	}
	return fmt.Sprintf("unable to find %q in the registry", e.Name)
}

// RegistryError reports a transport or protocol failure from the registry.
// It is surfaced as-is; no retries happen anywhere in this layer.
type RegistryError struct {
	Op  string // the failing operation, e.g. "search" or "versions"
	Err error
}

func (e *RegistryError) Error() string {
	return fmt.Sprintf("registry %s failed: %v", e.Op, e.Err)
}

func (e *RegistryError) Unwrap() error {
	return e.Err
}
