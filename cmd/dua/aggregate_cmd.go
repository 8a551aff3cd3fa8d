package main

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/dua-go/dua/internal/aggregate"
	"github.com/dua-go/dua/internal/fsprobe"
)

func newAggregateCmd(global *globalOptions) *cobra.Command {
	var noSort, noTotal, stats, noProgress bool

	cmd := &cobra.Command{
		Use:     "aggregate [paths...]",
		Aliases: []string{"a"},
		Short:   "Print a one-line-per-root disk usage report",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			format, err := global.byteFormat()
			if err != nil {
				return err
			}

			opts := aggregate.Options{
				Sort:     !noSort,
				Total:    !noTotal,
				Stats:    stats,
				Format:   format,
				Walker:   global.walkerOptions(),
				Progress: !noProgress && isatty.IsTerminal(os.Stderr.Fd()),
			}

			hadErrors := aggregate.Run(context.Background(), fsprobe.New(), args, os.Stdout, os.Stderr, opts)
			if hadErrors {
				return exitError{code: 1}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noSort, "no-sort", false, "print roots in input order instead of smallest-first")
	cmd.Flags().BoolVar(&noTotal, "no-total", false, "omit the trailing total line")
	cmd.Flags().BoolVar(&stats, "stats", false, "print per-root min/max/entry-count stats to stderr")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the stderr progress spinner even when stderr is a terminal")

	return cmd
}
