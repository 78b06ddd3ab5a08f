// Package manifest reads and validates the local declarations manifest
// (declarations.json or declarations.yaml), the file driving the
// zero-argument install path.
package manifest
