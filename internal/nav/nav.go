// Package nav is the navigation state machine: the view over the
// tree, including sort mode, bookmarks, the focused pane's selection,
// and persistent column-visibility toggles and help-pane scroll
// position.
package nav

import (
	"sort"

	"github.com/dua-go/dua/internal/tree"
)

// SortMode is one of the eight cyclic sort orientations.
type SortMode int

const (
	SizeDescending SortMode = iota
	SizeAscending
	NameAscending
	NameDescending
	MTimeDescending
	MTimeAscending
	CountDescending
	CountAscending
)

// Pane identifies which widget currently owns keyboard focus.
type Pane int

const (
	PaneEntries Pane = iota
	PaneMark
	PaneGlob
	PaneHelp
)

// State is the navigation state machine.
type State struct {
	Tree *tree.Tree

	TreeRoot tree.ID
	ViewRoot tree.ID
	Selected tree.ID // tree.NoID if nothing selected

	Bookmarks map[tree.ID]tree.ID // view_root -> last-selected child

	Sort SortMode

	Focus Pane

	GlobRoot tree.ID // tree.NoID when not in glob mode

	// Column toggles are view state, not per-node data, so they live
	// here rather than on EntryData.
	ShowCount bool
	ShowMTime bool

	HelpScroll int // persists across help-pane open/close
}

// New creates a navigation state rooted at the virtual root, with
// selection seeded to the first child under the default sort mode.
func New(t *tree.Tree) *State {
	s := &State{
		Tree:      t,
		TreeRoot:  tree.RootID,
		ViewRoot:  tree.RootID,
		Bookmarks: make(map[tree.ID]tree.ID),
		Sort:      SizeDescending,
		GlobRoot:  tree.NoID,
	}
	s.reseedSelection()
	return s
}

// Reset reinitializes navigation for a freshly started scan: the
// selection re-seeds to the first child of the view root. Existing
// bookmarks are kept; stale ones are pruned lazily by ExitNode.
func (s *State) Reset() {
	s.ViewRoot = s.TreeRoot
	s.GlobRoot = tree.NoID
	s.reseedSelection()
}

// SortedChildren returns the children of id ordered by the current
// sort mode. Stable and id-preserving: it never mutates the tree.
func (s *State) SortedChildren(id tree.ID) []tree.ID {
	children := s.Tree.Children(id)
	less := s.less(children)
	sort.SliceStable(children, less)
	return children
}

func (s *State) less(children []tree.ID) func(i, j int) bool {
	get := func(id tree.ID) tree.EntryData {
		d, _ := s.Tree.Get(id)
		return d
	}
	switch s.Sort {
	case SizeDescending:
		return func(i, j int) bool { return get(children[i]).Size > get(children[j]).Size }
	case SizeAscending:
		return func(i, j int) bool { return get(children[i]).Size < get(children[j]).Size }
	case NameAscending:
		return func(i, j int) bool { return get(children[i]).Name < get(children[j]).Name }
	case NameDescending:
		return func(i, j int) bool { return get(children[i]).Name > get(children[j]).Name }
	case MTimeDescending:
		return func(i, j int) bool { return get(children[i]).MTime > get(children[j]).MTime }
	case MTimeAscending:
		return func(i, j int) bool { return get(children[i]).MTime < get(children[j]).MTime }
	case CountDescending:
		return func(i, j int) bool { return countOf(get(children[i])) > countOf(get(children[j])) }
	case CountAscending:
		return func(i, j int) bool { return countOf(get(children[i])) < countOf(get(children[j])) }
	default:
		return func(i, j int) bool { return get(children[i]).Size > get(children[j]).Size }
	}
}

func countOf(d tree.EntryData) uint64 {
	if d.EntryCount == nil {
		return 0
	}
	return *d.EntryCount
}

// ToggleSortKey implements the single-key toggle behavior: pressing
// the key for the current dimension flips orientation; pressing a
// different dimension's key installs its first variant (descending
// for size, mtime and count; ascending for name).
type SortKey int

const (
	KeySize SortKey = iota
	KeyName
	KeyMTime
	KeyCount
)

func (s *State) ToggleSortKey(key SortKey) {
	pairs := map[SortKey][2]SortMode{
		KeySize:  {SizeDescending, SizeAscending},
		KeyName:  {NameAscending, NameDescending}, // name's first press installs ascending
		KeyMTime: {MTimeDescending, MTimeAscending},
		KeyCount: {CountDescending, CountAscending},
	}
	pair := pairs[key]
	switch {
	case s.Sort == pair[0]:
		s.Sort = pair[1]
	case s.Sort == pair[1]:
		s.Sort = pair[0]
	default:
		s.Sort = pair[0]
	}
}

// EnterNode descends into the selected directory.
func (s *State) EnterNode() {
	if s.Selected == tree.NoID {
		return
	}
	data, ok := s.Tree.Get(s.Selected)
	if !ok || !data.IsDir {
		return
	}
	children := s.Tree.Children(s.Selected)
	if len(children) == 0 {
		return
	}
	s.Bookmarks[s.ViewRoot] = s.Selected
	s.ViewRoot = s.Selected
	s.reseedSelection()
}

// ExitNode ascends to the parent of view_root.
func (s *State) ExitNode() {
	parent := s.Tree.ParentOf(s.ViewRoot)
	if parent == tree.NoID && s.ViewRoot != s.TreeRoot {
		parent = s.TreeRoot
	}
	if s.ViewRoot == s.TreeRoot {
		return // top level reached
	}
	s.ViewRoot = parent
	if bm, ok := s.Bookmarks[parent]; ok && s.Tree.Exists(bm) {
		s.Selected = bm
		return
	}
	delete(s.Bookmarks, parent)
	s.reseedSelection()
}

// Select updates the current selection and its bookmark.
func (s *State) Select(id tree.ID) {
	s.Selected = id
	if id != tree.NoID {
		s.Bookmarks[s.ViewRoot] = id
	}
}

// Move shifts the selection by delta rows, saturating at both ends.
// delta may be negative.
func (s *State) Move(delta int) {
	children := s.SortedChildren(s.ViewRoot)
	if len(children) == 0 {
		s.Selected = tree.NoID
		return
	}
	idx := indexOf(children, s.Selected)
	if idx == -1 {
		idx = 0
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(children) {
		idx = len(children) - 1
	}
	s.Select(children[idx])
}

func (s *State) reseedSelection() {
	children := s.SortedChildren(s.ViewRoot)
	if len(children) == 0 {
		s.Selected = tree.NoID
		return
	}
	if bm, ok := s.Bookmarks[s.ViewRoot]; ok && s.Tree.Exists(bm) && contains(children, bm) {
		s.Selected = bm
		return
	}
	s.Selected = children[0]
}

func indexOf(ids []tree.ID, target tree.ID) int {
	for i, id := range ids {
		if id == target {
			return i
		}
	}
	return -1
}

func contains(ids []tree.ID, target tree.ID) bool {
	return indexOf(ids, target) != -1
}

// EnterGlob installs a synthetic subtree root for glob navigation and
// moves there; exiting glob mode is ExitGlob.
func (s *State) EnterGlob(globRoot tree.ID) {
	s.GlobRoot = globRoot
	s.Bookmarks[s.ViewRoot] = s.Selected
	s.ViewRoot = globRoot
	s.reseedSelection()
}

// ExitGlob leaves glob navigation and returns to the tree root.
func (s *State) ExitGlob() {
	s.GlobRoot = tree.NoID
	s.ViewRoot = s.TreeRoot
	s.reseedSelection()
}

// DetachIfInside resets view_root to the virtual root if it was
// inside a just-deleted subtree, and re-seeds selection if the
// previously selected node is gone.
func (s *State) DetachIfInside() {
	if s.ViewRoot != s.TreeRoot && !s.Tree.Exists(s.ViewRoot) {
		s.ViewRoot = s.TreeRoot
	}
	if s.Selected != tree.NoID && !s.Tree.Exists(s.Selected) {
		s.reseedSelection()
	}
}
