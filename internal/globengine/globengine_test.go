package globengine

import (
	"testing"

	"github.com/dua-go/dua/internal/tree"
)

func buildFixture(t *testing.T) (*tree.Tree, tree.ID) {
	t.Helper()
	tr := tree.New()
	home := tr.AddChild(tree.RootID, tree.EntryData{Name: "home", IsDir: true})
	docs := tr.AddChild(home, tree.EntryData{Name: "docs", IsDir: true})
	tr.AddChild(docs, tree.EntryData{Name: "report.pdf", Size: 1, Counted: true})
	tr.AddChild(docs, tree.EntryData{Name: "notes.txt", Size: 1, Counted: true})
	node := tr.AddChild(home, tree.EntryData{Name: "node_modules", IsDir: true})
	tr.AddChild(node, tree.EntryData{Name: "leftpad.js", Size: 1, Counted: true})
	return tr, home
}

func TestMatchFindsFilesByExtensionAcrossDepths(t *testing.T) {
	tr, home := buildFixture(t)
	matches := Match(tr, home, "**/*.txt", Options{CaseSensitive: true})
	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(matches))
	}
	data, _ := tr.Get(matches[0])
	if data.Name != "notes.txt" {
		t.Fatalf("matched %q, want notes.txt", data.Name)
	}
}

func TestMatchOnDirectoryHaltsDescent(t *testing.T) {
	tr, home := buildFixture(t)
	matches := Match(tr, home, "**/node_modules", Options{CaseSensitive: true})
	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1 (node_modules dir itself)", len(matches))
	}
	data, _ := tr.Get(matches[0])
	if data.Name != "node_modules" {
		t.Fatalf("matched %q, want node_modules", data.Name)
	}
	// leftpad.js inside node_modules must not separately appear.
	for _, m := range matches {
		if d, _ := tr.Get(m); d.Name == "leftpad.js" {
			t.Fatal("node_modules children must not be re-tested once the directory matched")
		}
	}
}

func TestMatchIsCaseInsensitiveWhenRequested(t *testing.T) {
	tr, home := buildFixture(t)
	matches := Match(tr, home, "**/REPORT.PDF", Options{CaseSensitive: false})
	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1 under case-insensitive match", len(matches))
	}
}

func TestInstallSubtreeProjectsMatchesWithoutReparenting(t *testing.T) {
	tr, home := buildFixture(t)
	matches := Match(tr, home, "**/*.txt", Options{CaseSensitive: true})
	globRoot := InstallSubtree(tr, matches)

	kids := tr.Children(globRoot)
	if len(kids) != 1 || kids[0] != matches[0] {
		t.Fatalf("glob root children = %v, want %v", kids, matches)
	}

	parent := tr.ParentOf(matches[0])
	if parent == globRoot {
		t.Fatal("matched node must keep its real parent, not be reparented to the glob root")
	}
}
