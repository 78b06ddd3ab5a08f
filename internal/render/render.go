// Package render formats installer results for the terminal: the unresolved
// reference diagnostics followed by the dependency tree. Output is
// deterministic and pure string work over already-resolved data.
package render

import (
	"fmt"
	"strings"

	"github.com/declget/declget/internal/installer"
)

// Options adjusts rendering.
type Options struct {
	// Name relabels the tree root with the user-supplied install name
	// instead of the installer-assigned one.
	Name string
}

// Result renders the three-part layout: unresolved references, possible
// ambient modules, then the dependency tree. Each section is omitted
// entirely when its source data is empty.
func Result(result *installer.Result, opts Options) string {
	var b strings.Builder

	writeReferences(&b, "References (not installed)", result.References)
	writeReferences(&b, "Possible ambient modules (not installed)", result.Missing)

	tree := result.Tree
	if tree != nil {
		if opts.Name != "" {
			relabeled := *tree
			relabeled.Name = opts.Name
			tree = &relabeled
		}
		writeTree(&b, tree)
	}

	return b.String()
}

// writeReferences prints one line per unresolved identifier, annotated with
// the distinct dependent names that referenced it, preserving insertion order.
func writeReferences(b *strings.Builder, heading string, refs installer.ReferenceMap) {
	if len(refs) == 0 {
		return
	}

	fmt.Fprintf(b, "%s:\n", heading)
	for _, entry := range refs {
		fmt.Fprintf(b, "  %s (from %s)\n", entry.Reference, strings.Join(distinctNames(entry.Dependents), ", "))
	}
	b.WriteString("\n")
}

func distinctNames(dependents []installer.Dependent) []string {
	seen := make(map[string]bool, len(dependents))
	var names []string
	for _, d := range dependents {
		if seen[d.Name] {
			continue
		}
		seen[d.Name] = true
		names = append(names, d.Name)
	}
	return names
}

// writeTree prints the dependency tree with box-drawing characters.
func writeTree(b *strings.Builder, tree *installer.Tree) {
	b.WriteString(label(tree))
	b.WriteString("\n")
	writeChildren(b, tree.Dependencies, "")
}

func writeChildren(b *strings.Builder, children []*installer.Tree, prefix string) {
	for i, child := range children {
		last := i == len(children)-1

		connector := "├── "
		childPrefix := prefix + "│   "
		if last {
			connector = "└── "
			childPrefix = prefix + "    "
		}

		fmt.Fprintf(b, "%s%s%s\n", prefix, connector, label(child))
		writeChildren(b, child.Dependencies, childPrefix)
	}
}

func label(node *installer.Tree) string {
	name := node.Name
	if name == "" {
		name = "(unnamed)"
	}
	if node.Version != "" {
		return name + "@" + node.Version
	}
	return name
}
