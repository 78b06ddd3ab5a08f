// Package cli wires the cobra command tree: install, search, version.
package cli
