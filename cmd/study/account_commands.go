package main

import (
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"study/internal/session"
	"study/internal/transport"
)

const deleteConfirmation = "DELETE"

func newMeCommand(ctx *commandContext) *cobra.Command {
	meCmd := &cobra.Command{
		Use:   "me",
		Short: "Show or manage the current account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showProfile(cmd, ctx)
		},
	}
	meCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showProfile(cmd, ctx)
		},
	})
	meCmd.AddCommand(newMeUpdateCommand(ctx))
	meCmd.AddCommand(newMeDeleteCommand(ctx))
	return meCmd
}

func showProfile(cmd *cobra.Command, ctx *commandContext) error {
	token, err := ctx.requireToken()
	if err != nil {
		return err
	}
	client, err := ctx.apiClient(cmd)
	if err != nil {
		return err
	}
	profile, err := client.Me(cmd.Context(), token)
	if err != nil {
		if transport.IsStatus(err, http.StatusUnauthorized) {
			return errNotLoggedIn
		}
		return err
	}
	printer, err := ctx.printer(cmd)
	if err != nil {
		return err
	}
	return printer.Profile(profile)
}

func newMeUpdateCommand(ctx *commandContext) *cobra.Command {
	var name, mobile string
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change the profile name and mobile number",
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
			result, err := client.UpdateMe(cmd.Context(), token, name, mobile)
			if err != nil {
				return err
			}
			if result.UserName != "" {
				store, err := ctx.sessionStore()
				if err != nil {
					return err
				}
				// A token passed with --token has no stored session to refresh.
				if err := store.SetUserName(result.UserName); err != nil && !errors.Is(err, session.ErrNotLoggedIn) {
					return err
				}
			}
			printer, err := ctx.printer(cmd)
			if err != nil {
				return err
			}
			return printer.Message("Updated ✓")
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New display name")
	cmd.Flags().StringVar(&mobile, "mobile", "", "New mobile number")
	return cmd
}

func newMeDeleteCommand(ctx *commandContext) *cobra.Command {
	var confirm string
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the account (requires --confirm DELETE)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if confirm != deleteConfirmation {
				return errDeleteNotConfirmed
			}
			token, err := ctx.requireToken()
			if err != nil {
				return err
			}
			client, err := ctx.apiClient(cmd)
			if err != nil {
				return err
			}
			result, err := client.DeleteMe(cmd.Context(), token)
			if err != nil {
				return err
			}
			store, err := ctx.sessionStore()
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}
			msg := result.Message
			if msg == "" {
				msg = "Account deleted"
			}
			printer, err := ctx.printer(cmd)
			if err != nil {
				return err
			}
			return printer.Message(msg)
		},
	}
	cmd.Flags().StringVar(&confirm, "confirm", "", "Type DELETE to confirm")
	return cmd
}
