// Package tree is the entity graph behind the analyzer: nodes are
// filesystem entries, edges are parent-to-child, and every interior
// node keeps a running size/count aggregation over its descendants.
package tree

import "fmt"

// ID identifies a node. IDs are never reused after a node is removed,
// so a stale ID held by a bookmark or mark set is detectably invalid
// rather than silently pointing at an unrelated node.
type ID uint64

// NoID is the zero value, used to mean "no node".
const NoID ID = 0

// RootID is the virtual root's id. It is always present and is the
// only node with no parent.
const RootID ID = 1

// EntryData is the per-node payload stored in the tree.
type EntryData struct {
	Name          string
	Size          uint64
	MTime         int64 // epoch seconds
	EntryCount    *uint64
	MetadataError bool
	IsDir         bool
	// Counted is only meaningful for files: false means InodeFilter
	// rejected this link (already-seen hardlink), so its size and
	// count must not be added into any ancestor's aggregation even
	// though the node itself is kept for display.
	Counted bool
}

type node struct {
	data     EntryData
	parent   ID
	children []ID
}

// Tree is a directed acyclic graph with stable node identifiers and a
// single synthetic virtual root (id RootID). Every user-supplied root
// path is a direct child of the virtual root.
type Tree struct {
	nodes  map[ID]*node
	nextID ID

	// virtualChildren overrides Children for synthetic nodes (glob
	// subtree roots) whose listed children are real nodes living
	// elsewhere in the tree under their true parent. Used only by
	// globengine; real parent/child edges are untouched.
	virtualChildren map[ID][]ID
}

// New creates a tree containing only the virtual root.
func New() *Tree {
	t := &Tree{
		nodes:           make(map[ID]*node),
		nextID:          RootID + 1,
		virtualChildren: make(map[ID][]ID),
	}
	t.nodes[RootID] = &node{
		data:   EntryData{Name: "", IsDir: true},
		parent: NoID,
	}
	return t
}

// AddChild creates a new node under parent and returns its id.
// Panics if parent does not exist; this is an invariant violation per
// (e.g. popping a depth frame with no matching tree node).
func (t *Tree) AddChild(parent ID, data EntryData) ID {
	p, ok := t.nodes[parent]
	if !ok {
		panic(fmt.Sprintf("tree: add_child: parent %d does not exist", parent))
	}
	id := t.nextID
	t.nextID++
	t.nodes[id] = &node{data: data, parent: parent}
	p.children = append(p.children, id)
	return id
}

// Exists reports whether id currently denotes a live node.
func (t *Tree) Exists(id ID) bool {
	_, ok := t.nodes[id]
	return ok
}

// Get returns the entry data for id, and whether id exists.
func (t *Tree) Get(id ID) (EntryData, bool) {
	n, ok := t.nodes[id]
	if !ok {
		return EntryData{}, false
	}
	return n.data, true
}

// Set replaces the entry data for id. Directory aggregates are
// finalized through RecomputeSizesUpFrom, not through Set.
func (t *Tree) Set(id ID, data EntryData) {
	n, ok := t.nodes[id]
	if !ok {
		panic(fmt.Sprintf("tree: set: node %d does not exist", id))
	}
	n.data = data
}

// ParentOf returns the parent of id, or NoID if id is the virtual
// root or does not exist.
func (t *Tree) ParentOf(id ID) ID {
	n, ok := t.nodes[id]
	if !ok {
		return NoID
	}
	return n.parent
}

// Children returns the (unordered) child ids of id. For a synthetic
// node installed via SetVirtualChildren, this returns the virtual
// list instead of the (empty) real child list.
func (t *Tree) Children(id ID) []ID {
	if vc, ok := t.virtualChildren[id]; ok {
		out := make([]ID, len(vc))
		copy(out, vc)
		return out
	}
	n, ok := t.nodes[id]
	if !ok {
		return nil
	}
	out := make([]ID, len(n.children))
	copy(out, n.children)
	return out
}

// SetVirtualChildren installs a synthetic child list for id, used by
// globengine to project glob matches under a synthetic subtree root
// without reparenting the matched nodes.
func (t *Tree) SetVirtualChildren(id ID, children []ID) {
	t.virtualChildren[id] = append([]ID(nil), children...)
}

// RemoveVirtualNode deletes a synthetic node created for glob
// navigation, along with its virtual child list. Real nodes the
// virtual list pointed at are untouched.
func (t *Tree) RemoveVirtualNode(id ID) {
	delete(t.virtualChildren, id)
	if n, ok := t.nodes[id]; ok {
		if p, ok := t.nodes[n.parent]; ok {
			p.children = removeID(p.children, id)
		}
		delete(t.nodes, id)
	}
}

// PathOf returns the path fragments from root to id, skipping the
// virtual root and, if glob is non-zero, also skipping glob as a
// synthetic ancestor. The virtual root itself yields an empty path.
func (t *Tree) PathOf(id ID, glob ID) []string {
	if id == RootID {
		return nil
	}
	var frags []string
	for cur := id; cur != NoID && cur != RootID; cur = t.ParentOf(cur) {
		if cur == glob {
			break
		}
		n, ok := t.nodes[cur]
		if !ok {
			break
		}
		frags = append([]string{n.data.Name}, frags...)
	}
	return frags
}

// RemoveSubtree removes id and every node reachable from it (BFS),
// returning the count of removed nodes. Removing the virtual root is
// a no-op that returns 0, since the virtual root is never deleted.
func (t *Tree) RemoveSubtree(id ID) int {
	if id == RootID || id == NoID {
		return 0
	}
	n, ok := t.nodes[id]
	if !ok {
		return 0
	}

	// Detach from parent first.
	if p, ok := t.nodes[n.parent]; ok {
		p.children = removeID(p.children, id)
	}

	queue := []ID{id}
	removed := 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		cn, ok := t.nodes[cur]
		if !ok {
			continue
		}
		queue = append(queue, cn.children...)
		delete(t.nodes, cur)
		removed++
	}
	return removed
}

// RecomputeSizesUpFrom walks from id to the virtual root, setting
// each directory's size to the sum of its children's sizes and its
// entry count to 1 plus the sum of its children's counts.
func (t *Tree) RecomputeSizesUpFrom(id ID) {
	for cur := id; cur != NoID; cur = t.ParentOf(cur) {
		n, ok := t.nodes[cur]
		if !ok {
			return
		}
		if !n.data.IsDir {
			continue
		}
		var size uint64
		count := uint64(1) // the directory itself
		for _, c := range n.children {
			cd, ok := t.nodes[c]
			if !ok {
				continue
			}
			if cd.data.IsDir {
				size += cd.data.Size
				if cd.data.EntryCount != nil {
					count += *cd.data.EntryCount
				}
				continue
			}
			if cd.data.Counted {
				size += cd.data.Size
				count++
			}
		}
		n.data.Size = size
		n.data.EntryCount = &count
	}
}

func removeID(ids []ID, target ID) []ID {
	for i, id := range ids {
		if id == target {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
