package aggregate

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dua-go/dua/internal/byteformat"
	"github.com/dua-go/dua/internal/fsprobe"
	"github.com/dua-go/dua/internal/walker"
)

func writeFixture(t *testing.T, totalBytes int) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "f.bin"), make([]byte, totalBytes), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestRunSingleRootFormatsSize(t *testing.T) {
	dir := writeFixture(t, 1275454)

	var stdout, stderr bytes.Buffer
	hadErrors := Run(context.Background(), fsprobe.New(), []string{dir}, &stdout, &stderr, Options{
		Format: byteformat.Metric,
		Walker: walker.Options{Threads: 2, ApparentSize: true, CrossFilesystems: true},
	})

	if hadErrors {
		t.Fatalf("unexpected errors, stderr=%q", stderr.String())
	}
	out := stdout.String()
	if !strings.Contains(out, "1.28 MB") {
		t.Fatalf("stdout = %q, want it to contain 1.28 MB", out)
	}
	if !strings.Contains(out, dir) {
		t.Fatalf("stdout = %q, want it to contain path %q", out, dir)
	}
}

func TestRunMultiRootTotalLine(t *testing.T) {
	small := writeFixture(t, 100)
	big := writeFixture(t, 900)

	var stdout, stderr bytes.Buffer
	Run(context.Background(), fsprobe.New(), []string{small, big}, &stdout, &stderr, Options{
		Sort:   true,
		Total:  true,
		Format: byteformat.Bytes,
		Walker: walker.Options{Threads: 2, ApparentSize: true, CrossFilesystems: true},
	})

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %v, want 3 (small, big, total)", lines)
	}
	if !strings.Contains(lines[0], small) {
		t.Fatalf("smallest root must print first with --sort, got %q", lines[0])
	}
	if !strings.Contains(lines[2], "1000") || !strings.Contains(lines[2], "total") {
		t.Fatalf("total line = %q, want sum 1000", lines[2])
	}
}

func TestRunDedupsHardlinksUnlessCountHardLinksSet(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "f.bin")
	if err := os.WriteFile(original, make([]byte, 100), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Link(original, filepath.Join(dir, "f-link.bin")); err != nil {
		t.Skipf("hardlinks unsupported on this filesystem: %v", err)
	}

	var stdout, stderr bytes.Buffer
	Run(context.Background(), fsprobe.New(), []string{dir}, &stdout, &stderr, Options{
		Format: byteformat.Bytes,
		Walker: walker.Options{Threads: 1, ApparentSize: true},
	})
	if !strings.Contains(stdout.String(), "100 ") {
		t.Fatalf("stdout = %q, want total of 100 (hardlink counted once)", stdout.String())
	}

	stdout.Reset()
	stderr.Reset()
	Run(context.Background(), fsprobe.New(), []string{dir}, &stdout, &stderr, Options{
		Format: byteformat.Bytes,
		Walker: walker.Options{Threads: 1, ApparentSize: true, CountHardLinks: true},
	})
	if !strings.Contains(stdout.String(), "200 ") {
		t.Fatalf("stdout = %q, want total of 200 with --count-hard-links (every occurrence counted)", stdout.String())
	}
}

func TestRunUnreachableRootCountsAsError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	hadErrors := Run(context.Background(), fsprobe.New(), []string{"/nonexistent/path/xyz"}, &stdout, &stderr, Options{
		Format: byteformat.Bytes,
	})
	if !hadErrors {
		t.Fatal("unreachable root must report an error")
	}
}
