// Package walker implements the parallel, streaming filesystem
// traversal of a directory tree: it emits a depth-first,
// leaves-before-closing-parents event stream over a bounded channel.
// Metadata lookups for sibling entries run in parallel (bounded by
// Options.Threads); the stream itself stays serialized so the
// IncrementalBuilder can rely on strict depth-first ordering.
package walker

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/dua-go/dua/internal/fsprobe"
)

// SortMode controls sibling ordering within a directory.
type SortMode int

const (
	SortNameAsc SortMode = iota
	SortNameDesc
)

// Options configures one walk invocation.
type Options struct {
	Threads          int
	ApparentSize     bool
	CountHardLinks   bool
	CrossFilesystems bool
	IgnoreDirs       map[string]struct{}
	Sort             SortMode
}

// EntryKind distinguishes the event shapes on the stream.
type EntryKind int

const (
	// KindEntry reports a freshly-discovered file, or a directory
	// about to be descended into.
	KindEntry EntryKind = iota
	// KindCloseDir reports that a previously-opened directory has no
	// more children; the builder finalizes its aggregation here.
	KindCloseDir
	// KindError reports a per-entry IO failure; the walk continues.
	KindError
)

// Entry is one element of the walk's event stream.
type Entry struct {
	Kind  EntryKind
	Depth int
	Name  string
	Path  string
	IsDir bool
	Size  uint64
	MTime int64
	Dev   uint64
	Ino   uint64
	Nlink uint64
	Err   error
}

// Walk traverses root and sends events to out until the walk
// completes or ctx is cancelled. Cancelling ctx aborts promptly:
// in-flight metadata lookups may finish, but no further emission
// occurs. A consumer that stops reading without cancelling ctx leaves
// Walk blocked on its next send.
func Walk(ctx context.Context, probe fsprobe.Probe, root string, opts Options, out chan<- Entry) {
	threads := opts.Threads
	if threads < 1 {
		threads = 1
	}
	sem := make(chan struct{}, threads)

	rootDev, err := probe.DeviceOf(root)
	if err != nil {
		send(ctx, out, Entry{Kind: KindError, Err: err, Path: root})
		return
	}

	walkDir(ctx, probe, root, filepath.Base(root), 0, rootDev, opts, sem, out)
}

// statted holds the result of concurrently stat-ing one directory
// entry, before any recursion decision is made.
type statted struct {
	name    string
	path    string
	errName string // entry name, set even when err != nil
	entry   Entry  // valid when err == nil
	err     error
}

// walkDir reads one directory, stats its children in parallel, then
// replays results in sibling sort order: files are emitted directly,
// directories are emitted and then recursed into synchronously (so
// the wire stays strictly depth-first), and finally a KindCloseDir
// marker is sent for path itself.
func walkDir(ctx context.Context, probe fsprobe.Probe, path, name string, depth int, rootDev uint64, opts Options, sem chan struct{}, out chan<- Entry) bool {
	if ctx.Err() != nil {
		return false
	}

	if _, ignored := opts.IgnoreDirs[path]; ignored {
		return true
	}

	dirEntries, err := os.ReadDir(path)
	if err != nil {
		if !send(ctx, out, Entry{Kind: KindError, Err: err, Path: path, Depth: depth}) {
			return false
		}
		return send(ctx, out, Entry{Kind: KindCloseDir, Depth: depth, Name: name, Path: path, IsDir: true})
	}

	sort.Slice(dirEntries, func(i, j int) bool {
		if opts.Sort == SortNameDesc {
			return dirEntries[i].Name() > dirEntries[j].Name()
		}
		return dirEntries[i].Name() < dirEntries[j].Name()
	})

	results := make([]statted, len(dirEntries))
	var wg sync.WaitGroup
	for i, de := range dirEntries {
		i, de := i, de
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = statChild(probe, path, de, depth, rootDev, opts)
		}()
	}
	wg.Wait()

	for _, r := range results {
		if r.err != nil {
			if !send(ctx, out, Entry{Kind: KindError, Err: r.err, Path: r.path, Name: r.errName, Depth: depth + 1}) {
				return false
			}
			continue
		}
		if r.name == "" {
			continue // skipped: cross-device or ignored
		}
		if !send(ctx, out, r.entry) {
			return false
		}
		if r.entry.IsDir {
			if !walkDir(ctx, probe, r.entry.Path, r.entry.Name, depth+1, rootDev, opts, sem, out) {
				return false
			}
		}
	}

	return send(ctx, out, Entry{Kind: KindCloseDir, Depth: depth, Name: name, Path: path, IsDir: true})
}

// statChild resolves metadata for one directory entry. An empty name
// with a nil error means "skip silently" (cross-device boundary or
// ignored directory).
func statChild(probe fsprobe.Probe, parentPath string, de os.DirEntry, depth int, rootDev uint64, opts Options) statted {
	childPath := filepath.Join(parentPath, de.Name())
	info, err := de.Info()
	if err != nil {
		return statted{path: childPath, errName: de.Name(), err: err}
	}

	isDir := info.IsDir()
	if isDir {
		if _, ignored := opts.IgnoreDirs[childPath]; ignored {
			return statted{} // skipped, not an error
		}
	}
	if isDir && !opts.CrossFilesystems {
		dev, devErr := probe.DeviceOf(childPath)
		if devErr == nil && dev != rootDev {
			return statted{} // skipped, not an error
		}
	}

	id := probe.Identity(info)
	size := probe.ApparentSize(info)
	if !opts.ApparentSize {
		size = probe.SizeOnDisk(parentPath, de.Name(), info)
	}

	return statted{
		name: de.Name(),
		path: childPath,
		entry: Entry{
			Kind:  KindEntry,
			Depth: depth + 1,
			Name:  de.Name(),
			Path:  childPath,
			IsDir: isDir,
			Size:  size,
			MTime: info.ModTime().Unix(),
			Dev:   id.Device,
			Ino:   id.Inode,
			Nlink: id.Nlink,
		},
	}
}

func send(ctx context.Context, out chan<- Entry, e Entry) bool {
	select {
	case out <- e:
		return true
	case <-ctx.Done():
		return false
	}
}
