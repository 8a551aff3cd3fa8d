package main

import (
	"github.com/spf13/cobra"

	"github.com/dua-go/dua/internal/byteformat"
	"github.com/dua-go/dua/internal/walker"
)

// globalOptions holds the flags shared by both subcommands.
type globalOptions struct {
	threads          int
	format           string
	apparentSize     bool
	countHardLinks   bool
	stayOnFilesystem bool
	ignoreDirs       []string
}

func (g *globalOptions) walkerOptions() walker.Options {
	ignore := make(map[string]struct{}, len(g.ignoreDirs))
	for _, d := range g.ignoreDirs {
		ignore[d] = struct{}{}
	}
	return walker.Options{
		Threads:          g.threads,
		ApparentSize:     g.apparentSize,
		CountHardLinks:   g.countHardLinks,
		CrossFilesystems: !g.stayOnFilesystem,
		IgnoreDirs:       ignore,
	}
}

func (g *globalOptions) byteFormat() (byteformat.Format, error) {
	return byteformat.Parse(g.format)
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{threads: 4, format: "metric"}

	root := &cobra.Command{
		Use:           "dua",
		Short:         "Interactive disk usage analyzer",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.PersistentFlags().IntVarP(&opts.threads, "threads", "t", opts.threads, "number of parallel directory-stat workers")
	root.PersistentFlags().StringVarP(&opts.format, "format", "f", opts.format, "byte format: metric|binary|bytes|gb|gib|mb|mib")
	root.PersistentFlags().BoolVarP(&opts.apparentSize, "apparent-size", "A", false, "use apparent size instead of size on disk")
	root.PersistentFlags().BoolVarP(&opts.countHardLinks, "count-hard-links", "l", false, "count every hardlink occurrence instead of once")
	root.PersistentFlags().BoolVarP(&opts.stayOnFilesystem, "stay-on-filesystem", "x", false, "do not cross filesystem boundaries")
	root.PersistentFlags().StringArrayVar(&opts.ignoreDirs, "ignore-dirs", nil, "directory path to skip (repeatable)")

	root.AddCommand(newAggregateCmd(opts))
	root.AddCommand(newInteractiveCmd(opts))

	return root
}
