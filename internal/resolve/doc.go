// Package resolve implements the installation resolution protocol: the
// decision procedure that turns a raw location string plus user options
// into a single unambiguous install request, including registry source
// disambiguation and version selection.
package resolve
