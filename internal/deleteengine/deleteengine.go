// Package deleteengine removes a node's on-disk subtree and prunes
// the corresponding TreeStore entries, re-aggregating ancestor sizes
// afterward.
package deleteengine

import (
	"os"
	"path/filepath"

	"github.com/dua-go/dua/internal/tree"
)

// Result reports what one Delete call accomplished.
type Result struct {
	EntriesDeleted int
	IOErrors       int
}

// Delete removes the on-disk subtree rooted at path, then removes id
// (and everything beneath it) from t and recomputes ancestor
// aggregates from parent. It proceeds with the tree-side cleanup even
// if the disk-side delete hit errors, since a partially-deleted
// subtree must still be reflected accurately in the tree.
func Delete(t *tree.Tree, id tree.ID, path string) Result {
	res := Result{}
	res.IOErrors = removeFromDisk(path)

	parent := t.ParentOf(id)
	removed := t.RemoveSubtree(id)
	res.EntriesDeleted = removed

	if parent == tree.NoID {
		parent = tree.RootID
	}
	t.RecomputeSizesUpFrom(parent)

	return res
}

// removeFromDisk deletes path and everything under it, using an
// explicit worklist plus a dirs-to-remove-later stack so directories
// are only removed once they're empty (deepest first). Symlinks are
// unlinked directly, never followed. Returns the number of entries
// that could not be removed cleanly.
func removeFromDisk(path string) int {
	ioErrors := 0
	type item struct{ path string }

	worklist := []item{{path: path}}
	var dirStack []string

	for len(worklist) > 0 {
		cur := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		fi, err := os.Lstat(cur.path)
		if err != nil {
			ioErrors++
			continue
		}

		if fi.Mode()&os.ModeSymlink != 0 {
			if err := os.Remove(cur.path); err != nil {
				ioErrors++
			}
			continue
		}

		entries, err := os.ReadDir(cur.path)
		if err != nil {
			// Not a directory (or unreadable as one): try removing it
			// as a plain file, the last resort for exotic file types.
			if rmErr := os.Remove(cur.path); rmErr != nil {
				ioErrors++
			}
			continue
		}

		dirStack = append(dirStack, cur.path)
		for _, e := range entries {
			worklist = append(worklist, item{path: filepath.Join(cur.path, e.Name())})
		}
	}

	for i := len(dirStack) - 1; i >= 0; i-- {
		if err := os.Remove(dirStack[i]); err != nil {
			ioErrors++
		}
	}

	return ioErrors
}
