// Package markset tracks the user's multi-select "mark" pane: an
// insertion-ordered set of tree nodes slated for batch deletion.
package markset

import "github.com/dua-go/dua/internal/tree"

// Entry is one marked node's display-relevant snapshot, captured at
// mark time so the mark pane can render totals even if the tree
// mutates concurrently.
type Entry struct {
	ID    tree.ID
	Path  string
	Size  uint64
	Index int // insertion order, for stable display
}

// Set is an insertion-ordered collection of marked node ids.
type Set struct {
	order   []tree.ID
	entries map[tree.ID]Entry
	next    int
}

// New creates an empty mark set.
func New() *Set {
	return &Set{entries: make(map[tree.ID]Entry)}
}

// Toggle adds id if absent or removes it if present, returning the
// resulting membership state (true = now marked).
func (s *Set) Toggle(id tree.ID, path string, size uint64) bool {
	if _, ok := s.entries[id]; ok {
		s.remove(id)
		return false
	}
	s.entries[id] = Entry{ID: id, Path: path, Size: size, Index: s.next}
	s.next++
	s.order = append(s.order, id)
	return true
}

// Remove unmarks id if present; a no-op otherwise.
func (s *Set) Remove(id tree.ID) {
	if _, ok := s.entries[id]; ok {
		s.remove(id)
	}
}

func (s *Set) remove(id tree.ID) {
	delete(s.entries, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Contains reports whether id is currently marked.
func (s *Set) Contains(id tree.ID) bool {
	_, ok := s.entries[id]
	return ok
}

// Entries returns the marked entries in insertion order. The returned
// slice is a fresh copy; callers may not mutate the set through it.
func (s *Set) Entries() []Entry {
	out := make([]Entry, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.entries[id])
	}
	return out
}

// Len returns the number of marked nodes.
func (s *Set) Len() int { return len(s.order) }

// TotalSize sums the Size of every marked entry.
func (s *Set) TotalSize() uint64 {
	var total uint64
	for _, e := range s.entries {
		total += e.Size
	}
	return total
}

// Clear empties the set.
func (s *Set) Clear() {
	s.order = nil
	s.entries = make(map[tree.ID]Entry)
	s.next = 0
}

// Prune drops any marked id no longer present in t, e.g. after a
// deletion elsewhere in the tree invalidates a subtree.
func (s *Set) Prune(t *tree.Tree) {
	for _, id := range append([]tree.ID(nil), s.order...) {
		if !t.Exists(id) {
			s.remove(id)
		}
	}
}
