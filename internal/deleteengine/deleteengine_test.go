package deleteengine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dua-go/dua/internal/tree"
)

func TestDeleteRemovesNestedDirectoryFromDiskAndTree(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "docs")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "a.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	tr := tree.New()
	home := tr.AddChild(tree.RootID, tree.EntryData{Name: "home", IsDir: true})
	docsID := tr.AddChild(home, tree.EntryData{Name: "docs", IsDir: true})
	tr.AddChild(docsID, tree.EntryData{Name: "a.txt", Size: 2, Counted: true})
	tr.RecomputeSizesUpFrom(docsID)

	res := Delete(tr, docsID, sub)
	if res.IOErrors != 0 {
		t.Fatalf("IOErrors = %d, want 0", res.IOErrors)
	}
	if res.EntriesDeleted != 2 {
		t.Fatalf("EntriesDeleted = %d, want 2", res.EntriesDeleted)
	}
	if _, err := os.Stat(sub); !os.IsNotExist(err) {
		t.Fatal("docs directory should no longer exist on disk")
	}
	if tr.Exists(docsID) {
		t.Fatal("docs node should be removed from the tree")
	}

	homeData, _ := tr.Get(home)
	if homeData.Size != 0 {
		t.Fatalf("home size after delete = %d, want 0", homeData.Size)
	}
}

func TestDeleteUnlinksSymlinkWithoutFollowing(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "target.txt")
	if err := os.WriteFile(target, []byte("keep me"), 0o644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(root, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	tr := tree.New()
	linkID := tr.AddChild(tree.RootID, tree.EntryData{Name: "link", Counted: true})

	res := Delete(tr, linkID, link)
	if res.IOErrors != 0 {
		t.Fatalf("IOErrors = %d, want 0", res.IOErrors)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatal("symlink target must survive deleting the link")
	}
	if _, err := os.Lstat(link); !os.IsNotExist(err) {
		t.Fatal("the symlink itself should be gone")
	}
}

func TestDeleteCountsIOErrorButStillPrunesTree(t *testing.T) {
	tr := tree.New()
	ghost := tr.AddChild(tree.RootID, tree.EntryData{Name: "ghost", Counted: true})

	res := Delete(tr, ghost, filepath.Join(t.TempDir(), "does-not-exist"))
	if res.IOErrors == 0 {
		t.Fatal("missing path should count as an IO error")
	}
	if tr.Exists(ghost) {
		t.Fatal("tree-side removal must proceed even when the disk-side delete failed")
	}
}
