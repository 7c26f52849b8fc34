package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"study/internal/history"
	"study/internal/logging"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"hist"},
		Short:   "Browse locally saved results",
	}
	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	historyCmd.AddCommand(newHistorySearchCommand(ctx))
	historyCmd.AddCommand(newHistoryRemoveCommand(ctx))
	historyCmd.AddCommand(newHistoryClearCommand(ctx))
	return historyCmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var (
		kindFlag string
		limit    int
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved results, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := history.ListOptions{Limit: limit}
			if strings.TrimSpace(kindFlag) != "" {
				kind, err := history.ParseKind(strings.ToLower(strings.TrimSpace(kindFlag)))
				if err != nil {
					return err
				}
				opts.Kind = kind
			}
			return ctx.withHistory(func(store *history.Store) error {
				entries, err := store.List(cmd.Context(), opts)
				if err != nil {
					return err
				}
				printer, err := ctx.printer(cmd)
				if err != nil {
					return err
				}
				return printer.HistoryList(entries)
			})
		},
	}
	cmd.Flags().StringVarP(&kindFlag, "kind", "k", "", "Only show one kind (summary, explanation, notes, quiz, answer)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to show (0 for all)")
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(func(store *history.Store) error {
				entry, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return historyLookupError(args[0], err)
				}
				printer, err := ctx.printer(cmd)
				if err != nil {
					return err
				}
				return printer.HistoryEntry(entry)
			})
		},
	}
}

func newHistorySearchCommand(ctx *commandContext) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find saved results similar to a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := joinArgs(args)
			return ctx.withHistory(func(store *history.Store) error {
				matches, err := store.Search(cmd.Context(), query, limit)
				if err != nil {
					return err
				}
				printer, err := ctx.printer(cmd)
				if err != nil {
					return err
				}
				return printer.HistoryMatches(query, matches)
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum matches to show")
	return cmd
}

func newHistoryRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Delete a saved result",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(func(store *history.Store) error {
				if err := store.Remove(cmd.Context(), args[0]); err != nil {
					return historyLookupError(args[0], err)
				}
				printer, err := ctx.printer(cmd)
				if err != nil {
					return err
				}
				return printer.Message(fmt.Sprintf("Removed %s", args[0]))
			})
		},
	}
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every saved result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to clear history without --yes")
			}
			return ctx.withHistory(func(store *history.Store) error {
				n, err := store.Clear(cmd.Context())
				if err != nil {
					return err
				}
				ctx.loggerFor(cmd).Info("history cleared", logging.Int64("removed", n))
				printer, err := ctx.printer(cmd)
				if err != nil {
					return err
				}
				return printer.Message(fmt.Sprintf("Removed %d entries", n))
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm clearing all entries")
	return cmd
}

func historyLookupError(id string, err error) error {
	switch {
	case errors.Is(err, history.ErrNotFound):
		return fmt.Errorf("no history entry matches %q", id)
	case errors.Is(err, history.ErrAmbiguousID):
		return fmt.Errorf("%q matches several entries; use a longer id", id)
	default:
		return err
	}
}
