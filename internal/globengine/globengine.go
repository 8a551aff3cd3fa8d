// Package globengine matches a glob pattern against the tree and
// projects matches into a synthetic subtree so they can be navigated
// like any other directory.
package globengine

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/dua-go/dua/internal/tree"
)

// Options configures one glob pass.
type Options struct {
	CaseSensitive bool
}

// Match walks every node under root and returns the ids whose path
// (relative to root, '/'-separated) matches pattern. Matching uses
// doublestar's git-style globs, so "**" crosses directory boundaries.
func Match(t *tree.Tree, root tree.ID, pattern string, opts Options) []tree.ID {
	needle := pattern
	if !opts.CaseSensitive {
		needle = strings.ToLower(pattern)
	}

	var matches []tree.ID
	var walk func(id tree.ID, relParts []string)
	walk = func(id tree.ID, relParts []string) {
		for _, child := range t.Children(id) {
			data, ok := t.Get(child)
			if !ok {
				continue
			}
			parts := append(append([]string(nil), relParts...), data.Name)
			rel := strings.Join(parts, "/")
			candidate := rel
			if !opts.CaseSensitive {
				candidate = strings.ToLower(rel)
			}
			if ok, _ := doublestar.Match(needle, candidate); ok {
				// A directory match halts descent: the directory
				// itself is the match, its children are not re-tested.
				matches = append(matches, child)
				continue
			}
			if data.IsDir {
				walk(child, parts)
			}
		}
	}
	walk(root, nil)
	return matches
}

// InstallSubtree creates a synthetic directory under the virtual root
// whose children are the matched nodes, without reparenting them —
// their real parent and aggregated sizes are untouched. Navigation
// treats the returned id as a glob subtree root; RemoveVirtualNode
// tears it down again on exit from glob mode.
func InstallSubtree(t *tree.Tree, matches []tree.ID) tree.ID {
	globRoot := t.AddChild(tree.RootID, tree.EntryData{
		Name:  "<glob matches>",
		IsDir: true,
	})
	t.SetVirtualChildren(globRoot, matches)
	return globRoot
}
