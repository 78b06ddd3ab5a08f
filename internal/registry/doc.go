// Package registry talks to the declaration registry: source search and
// version listing. The Client interface is the seam the resolution
// protocol depends on; NewHTTPClient is the bundled implementation.
package registry
