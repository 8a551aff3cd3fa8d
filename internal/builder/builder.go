// Package builder consumes a walker.Entry stream and attaches
// finished directories to a tree.Tree, maintaining a per-depth stack
// of in-progress aggregation frames.
package builder

import (
	"github.com/dua-go/dua/internal/inodefilter"
	"github.com/dua-go/dua/internal/tree"
	"github.com/dua-go/dua/internal/walker"
)

// frame records one open directory; its aggregate is computed from
// the tree when its close marker arrives.
type frame struct {
	id    tree.ID
	depth int
}

// Builder holds the stack of open directory frames for one root's
// traversal. A fresh Builder is created per user-supplied root path;
// the caller attaches the finished root node under the virtual root.
type Builder struct {
	t              *tree.Tree
	filter         *inodefilter.Filter
	countHardLinks bool
	stack          []frame
}

// New creates a builder that attaches nodes into t, starting a frame
// for the root directory itself under parent (normally tree.RootID).
// Every multiply-linked file is routed through the shared InodeFilter
// regardless of countHardLinks, so a filter is always supplied and
// always consulted and its bookkeeping always advances; countHardLinks
// only decides whether Handle uses the filter's verdict to gate
// Counted (false, the default: second-and-later links don't count) or
// ignores it and counts every occurrence (true, matching
// --count-hard-links).
func New(t *tree.Tree, filter *inodefilter.Filter, parent tree.ID, rootName string, rootIsDir bool, countHardLinks bool) (*Builder, tree.ID) {
	b := &Builder{t: t, filter: filter, countHardLinks: countHardLinks}
	id := t.AddChild(parent, tree.EntryData{Name: rootName, IsDir: rootIsDir, Counted: true})
	if rootIsDir {
		b.stack = append(b.stack, frame{id: id, depth: 0})
	}
	return b, id
}

// Handle processes one walker.Entry, mutating the tree. Returns an IO
// error count delta (0 or 1) for KindError events; callers accumulate
// this into their IO-error counter.
func (b *Builder) Handle(e walker.Entry) (ioErrors int) {
	switch e.Kind {
	case walker.KindError:
		if e.Name != "" {
			b.t.AddChild(b.top(), tree.EntryData{
				Name: e.Name, MetadataError: true, Counted: true,
			})
		}
		return 1

	case walker.KindEntry:
		parent := b.top()

		counted := true
		if e.Nlink > 1 {
			firstLink := b.filter.Observe(e.Dev, e.Ino, e.Nlink)
			if !b.countHardLinks {
				counted = firstLink
			}
		}

		if e.IsDir {
			id := b.t.AddChild(parent, tree.EntryData{
				Name: e.Name, IsDir: true, MTime: e.MTime,
			})
			b.stack = append(b.stack, frame{id: id, depth: e.Depth})
		} else {
			b.t.AddChild(parent, tree.EntryData{
				Name: e.Name, Size: e.Size, MTime: e.MTime, Counted: counted,
			})
		}
		return 0

	case walker.KindCloseDir:
		// The walker emits an explicit close marker immediately after
		// a directory's last child, so the frame to finalize is
		// always the current top of the stack.
		if len(b.stack) > 0 {
			top := b.stack[len(b.stack)-1]
			b.stack = b.stack[:len(b.stack)-1]
			b.t.RecomputeSizesUpFrom(top.id)
		}
		return 0
	}
	return 0
}

// top returns the id of the currently open directory, or the root
// frame's id if the stack has been fully drained early (shouldn't
// happen for well-formed streams but keeps Handle total).
func (b *Builder) top() tree.ID {
	if len(b.stack) == 0 {
		return tree.RootID
	}
	return b.stack[len(b.stack)-1].id
}

// RootID returns the id of the root node while its frame is still
// open. Once the root's close marker has been handled, or when the
// root is not a directory, it returns tree.NoID; the id returned by
// New is valid in every case.
func (b *Builder) RootID() tree.ID {
	if len(b.stack) > 0 {
		return b.stack[0].id
	}
	return tree.NoID
}
