package eventloop

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dua-go/dua/internal/builder"
	"github.com/dua-go/dua/internal/byteformat"
	"github.com/dua-go/dua/internal/config"
	"github.com/dua-go/dua/internal/fsprobe"
	"github.com/dua-go/dua/internal/globengine"
	"github.com/dua-go/dua/internal/nav"
	"github.com/dua-go/dua/internal/tree"
	"github.com/dua-go/dua/internal/walker"
)

func fixtureModel(t *testing.T) *Model {
	t.Helper()
	m := New(fsprobe.New(), []string{t.TempDir()}, walker.Options{Threads: 1}, byteformat.Bytes, config.Default())

	home := m.tree.AddChild(tree.RootID, tree.EntryData{Name: "home", IsDir: true, Counted: true})
	m.tree.AddChild(home, tree.EntryData{Name: "a.txt", Size: 10, Counted: true})
	m.tree.AddChild(home, tree.EntryData{Name: "b.txt", Size: 90, Counted: true})
	m.tree.RecomputeSizesUpFrom(home)
	m.nav = nav.New(m.tree)
	return m
}

func pressKey(m *Model, runes string) (tea.Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(runes)})
}

func TestMarkInPlaceTogglesMarkSet(t *testing.T) {
	m := fixtureModel(t)
	pressKey(m, "space")
	if m.marks.Len() != 1 {
		t.Fatalf("marks.Len() = %d, want 1 after marking selection", m.marks.Len())
	}
}

func TestQuitRequiresSecondPressWhenMarksNonEmpty(t *testing.T) {
	m := fixtureModel(t)
	pressKey(m, "space")

	_, cmd := pressKey(m, "q")
	if cmd != nil {
		t.Fatal("first q with marks present must not quit")
	}
	if !m.pendingExit {
		t.Fatal("first q with marks present should set pendingExit")
	}

	_, cmd = pressKey(m, "q")
	if cmd == nil {
		t.Fatal("second q should issue tea.Quit")
	}
}

func TestQuitImmediateWhenNoMarks(t *testing.T) {
	m := fixtureModel(t)
	_, cmd := pressKey(m, "q")
	if cmd == nil {
		t.Fatal("q with no marks should quit immediately")
	}
}

func TestRefreshSelectedRescansUnderOriginalParent(t *testing.T) {
	m := fixtureModel(t)
	home := m.nav.TreeRoot
	children := m.tree.Children(home)
	if len(children) == 0 {
		t.Fatal("fixture must have at least one child under home")
	}
	m.nav.Select(children[0])

	cmd := m.refreshSelected()
	if cmd == nil {
		t.Fatal("refreshSelected on a real node must return a scan command")
	}
	if !m.tree.Exists(home) {
		t.Fatal("refreshing a child must not remove its parent")
	}
}

func TestSortKeyTogglesSortMode(t *testing.T) {
	m := fixtureModel(t)
	pressKey(m, "s")
	if m.nav.Sort != nav.SizeAscending {
		t.Fatalf("after s, sort = %v, want SizeAscending (default is SizeDescending)", m.nav.Sort)
	}
}

func TestWalkerEventRoutesToOriginatingScanOnly(t *testing.T) {
	m := fixtureModel(t)

	rootA, rootB := "/root-a", "/root-b"
	chA := make(chan walker.Entry, 1)
	chB := make(chan walker.Entry, 1)
	m.scans = map[string]*scan{
		rootA: {out: chA, builder: mustBuilder(t, m), active: true},
		rootB: {out: chB, builder: mustBuilder(t, m), active: true},
	}

	before := m.entriesTraversed
	m.handleWalkerEvent(rootA, walker.Entry{Kind: walker.KindEntry, Name: "x", Size: 1})
	if m.entriesTraversed != before+1 {
		t.Fatalf("entriesTraversed = %d, want %d", m.entriesTraversed, before+1)
	}
	if !m.scans[rootB].active {
		t.Fatal("an event routed to rootA must not affect rootB's scan state")
	}
}

func mustBuilder(t *testing.T, m *Model) *builder.Builder {
	t.Helper()
	b, _ := builder.New(m.tree, m.filter, tree.RootID, "scratch-"+t.Name(), true, false)
	return b
}

func TestDeleteMarkedDecrementsEntriesTraversedByRemovedCount(t *testing.T) {
	m := fixtureModel(t)
	home := m.nav.TreeRoot
	children := m.tree.Children(home)

	m.entriesTraversed = uint64(len(children))
	for _, c := range children {
		data, _ := m.tree.Get(c)
		path := joinPath(m.tree.PathOf(c, tree.NoID))
		m.marks.Toggle(c, path, data.Size)
	}

	m.deleteMarked()

	if m.entriesTraversed != 0 {
		t.Fatalf("entriesTraversed = %d, want 0 after deleting every traversed entry", m.entriesTraversed)
	}
	if m.message == "Deleted entries" {
		t.Fatal("delete message must include the removed-entry count, not a fixed string")
	}
}

func TestExitingGlobSubtreeRemovesSyntheticNode(t *testing.T) {
	m := fixtureModel(t)
	home := m.nav.TreeRoot

	globRoot := globengine.InstallSubtree(m.tree, m.tree.Children(home))
	m.nav.EnterGlob(globRoot)
	if m.nav.ViewRoot != globRoot {
		t.Fatalf("ViewRoot = %v, want the installed glob root", m.nav.ViewRoot)
	}

	m.exitNode()

	if m.nav.GlobRoot != tree.NoID {
		t.Fatalf("GlobRoot = %v after exiting glob mode, want tree.NoID", m.nav.GlobRoot)
	}
	if m.tree.Exists(globRoot) {
		t.Fatal("synthetic glob root must be removed from the tree after exiting glob mode")
	}
}

func TestGlobPaneTypingAndBackspaceUseTextInput(t *testing.T) {
	m := fixtureModel(t)
	pressKey(m, "/") // ActionGlob's default binding, see keys.Lookup

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")})
	if m.globInput.Value() != "ab" {
		t.Fatalf("globInput.Value() = %q, want %q", m.globInput.Value(), "ab")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if m.globInput.Value() != "a" {
		t.Fatalf("globInput.Value() after backspace = %q, want %q", m.globInput.Value(), "a")
	}
}

type fakeOpener struct{ path string }

func (f *fakeOpener) Open(path string) error {
	f.path = path
	return nil
}

func TestOpenExternallyHandsSelectedPathToOpener(t *testing.T) {
	m := fixtureModel(t)
	home := m.nav.TreeRoot
	children := m.tree.Children(home)
	m.nav.Select(children[0])

	fake := &fakeOpener{}
	m.opener = fake

	pressKey(m, "O")

	want := joinPath(m.tree.PathOf(children[0], tree.NoID))
	if fake.path != want {
		t.Fatalf("opener.Open called with %q, want %q", fake.path, want)
	}
}

func TestCycleFocusMovesBetweenEntriesAndMark(t *testing.T) {
	m := fixtureModel(t)
	pressKey(m, "tab")
	if m.nav.Focus != nav.PaneMark {
		t.Fatalf("focus after tab = %v, want PaneMark", m.nav.Focus)
	}
	pressKey(m, "tab")
	if m.nav.Focus != nav.PaneEntries {
		t.Fatalf("focus after second tab = %v, want PaneEntries", m.nav.Focus)
	}
}
