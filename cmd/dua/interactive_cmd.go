package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dua-go/dua/internal/config"
	"github.com/dua-go/dua/internal/eventloop"
	"github.com/dua-go/dua/internal/fsprobe"
)

func newInteractiveCmd(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "interactive [paths...]",
		Aliases: []string{"i"},
		Short:   "Launch the full-screen interactive analyzer",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			format, err := global.byteFormat()
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("parse config: %w", err)
			}

			model := eventloop.New(fsprobe.New(), args, global.walkerOptions(), format, cfg)
			_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
			if err != nil {
				return exitError{code: 2}
			}
			return nil
		},
	}
	return cmd
}
