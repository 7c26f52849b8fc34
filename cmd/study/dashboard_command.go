package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"study/internal/api"
	"study/internal/history"
	"study/internal/logging"
	"study/internal/present"
)

func newDashboardCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show profile, saved notes and local history at a glance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := ctx.requireToken()
			if err != nil {
				return err
			}
			client, err := ctx.apiClient(cmd)
			if err != nil {
				return err
			}

			var (
				profile api.Profile
				notes   []api.NoteEntry
			)
			g, gctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				var err error
				profile, err = client.Me(gctx, token)
				return err
			})
			g.Go(func() error {
				var err error
				notes, err = client.ListNotes(gctx, token)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			dash := present.Dashboard{Profile: profile, Notes: notes}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cfg.History.Enabled {
				err := ctx.withHistory(func(store *history.Store) error {
					counts, err := store.Count(cmd.Context())
					dash.History = counts
					return err
				})
				ctx.loggerFor(cmd).Debug("history counted", logging.Any("counts", dash.History))
				if err != nil {
					return err
				}
			}

			printer, err := ctx.printer(cmd)
			if err != nil {
				return err
			}
			return printer.Dashboard(dash)
		},
	}
}
