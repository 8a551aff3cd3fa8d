// Package aggregate drives the Walker headlessly for the
// non-interactive "aggregate" report mode.
package aggregate

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/schollz/progressbar/v3"

	"github.com/dua-go/dua/internal/byteformat"
	"github.com/dua-go/dua/internal/fsprobe"
	"github.com/dua-go/dua/internal/inodefilter"
	"github.com/dua-go/dua/internal/walker"
)

// RootResult is one root path's aggregated totals.
type RootResult struct {
	Path      string
	Bytes     uint64
	Entries   uint64
	MinSize   uint64
	MaxSize   uint64
	IOErrors  int
	Unreachable bool
}

// Options configures a batch run.
type Options struct {
	Sort    bool // sort output by size ascending before printing
	Total   bool // print a trailing total line (only when >1 roots)
	Stats   bool // print min/max/entry-count stats to stderr
	Format  byteformat.Format
	Walker  walker.Options
	Progress bool // show a stderr progress bar while scanning
}

// Run walks each root path in turn and writes the report to stdout
// (and, if Options.Stats, supplementary stats to stderr). It returns
// true if any IO error (including root-unreachable) occurred, which
// the caller maps to a nonzero exit code.
func Run(ctx context.Context, probe fsprobe.Probe, roots []string, stdout, stderr io.Writer, opts Options) bool {
	results := make([]RootResult, 0, len(roots))
	hadErrors := false

	for _, root := range roots {
		res := walkOneRoot(ctx, probe, root, opts)
		if res.Unreachable || res.IOErrors > 0 {
			hadErrors = true
		}
		results = append(results, res)
	}

	if opts.Sort {
		sort.Slice(results, func(i, j int) bool { return results[i].Bytes < results[j].Bytes })
	}

	var total uint64
	for _, r := range results {
		total += r.Bytes
		line := fmt.Sprintf("%10s %s", byteformat.Render(opts.Format, r.Bytes), r.Path)
		if r.Unreachable {
			line = fmt.Sprintf("%10s %s (unreachable)", "-", r.Path)
		} else if r.IOErrors > 0 {
			line += fmt.Sprintf(" <%d IO Error(s)>", r.IOErrors)
		}
		fmt.Fprintln(stdout, line)

		if opts.Stats {
			fmt.Fprintf(stderr, "Stats: %s entries=%d min=%s max=%s\n",
				r.Path, r.Entries,
				byteformat.Render(opts.Format, r.MinSize),
				byteformat.Render(opts.Format, r.MaxSize))
		}
	}

	if opts.Total && len(results) > 1 {
		fmt.Fprintf(stdout, "%10s %s\n", byteformat.Render(opts.Format, total), "total")
	}

	return hadErrors
}

func walkOneRoot(ctx context.Context, probe fsprobe.Probe, root string, opts Options) RootResult {
	res := RootResult{Path: root}

	if _, err := probe.DeviceOf(root); err != nil {
		res.Unreachable = true
		res.IOErrors = 1
		return res
	}

	out := make(chan walker.Entry, 100)
	done := make(chan struct{})

	var bar *progressbar.ProgressBar
	if opts.Progress {
		bar = progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("scanning "+root),
			progressbar.OptionSpinnerType(14),
		)
	}

	filter := inodefilter.New()

	go func() {
		defer close(done)
		first := true
		for e := range out {
			switch e.Kind {
			case walker.KindError:
				res.IOErrors++
			case walker.KindEntry:
				if !e.IsDir {
					counted := true
					if e.Nlink > 1 {
						firstLink := filter.Observe(e.Dev, e.Ino, e.Nlink)
						if !opts.Walker.CountHardLinks {
							counted = firstLink
						}
					}
					if counted {
						res.Bytes += e.Size
						res.Entries++
						if first || e.Size < res.MinSize {
							res.MinSize = e.Size
						}
						if e.Size > res.MaxSize {
							res.MaxSize = e.Size
						}
						first = false
					}
				}
				if bar != nil {
					_ = bar.Add(1)
				}
			}
		}
	}()

	walker.Walk(ctx, probe, root, opts.Walker, out)
	close(out)
	<-done

	if bar != nil {
		_ = bar.Finish()
	}
	return res
}
