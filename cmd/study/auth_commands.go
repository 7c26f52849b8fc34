package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"study/internal/api"
	"study/internal/logging"
	"study/internal/present"
	"study/internal/session"
)

func newRegisterCommand(ctx *commandContext) *cobra.Command {
	var (
		in            api.RegisterInput
		passwordStdin bool
	)
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readSecret(cmd, in.Password, passwordStdin)
			if err != nil {
				return err
			}
			in.Password = password

			client, err := ctx.apiClient(cmd)
			if err != nil {
				return err
			}
			result, err := client.Register(cmd.Context(), in)
			if err != nil {
				return err
			}
			if result.Token != "" {
				if err := saveSession(ctx, session.Session{Token: result.Token, UserName: in.Name, Email: in.Email}); err != nil {
					return err
				}
			}
			ctx.loggerFor(cmd).Info("account registered", logging.String("email", in.Email))
			printer, err := ctx.printer(cmd)
			if err != nil {
				return err
			}
			msg := result.Message
			if msg == "" {
				msg = "Account created ✓"
			}
			return printer.Message(msg)
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&in.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&in.Password, "password", "", "Password")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
	cmd.Flags().StringVar(&in.Mobile, "mobile", "", "Mobile number (optional)")
	return cmd
}

func newLoginCommand(ctx *commandContext) *cobra.Command {
	var (
		email         string
		password      string
		passwordStdin bool
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := readSecret(cmd, password, passwordStdin)
			if err != nil {
				return err
			}
			client, err := ctx.apiClient(cmd)
			if err != nil {
				return err
			}
			result, err := client.Login(cmd.Context(), email, secret)
			if err != nil {
				var inputErr *api.InputError
				if errors.As(err, &inputErr) {
					return err
				}
				return loginFailed(err)
			}
			sess := session.Session{Token: result.Token, UserName: result.User.Name, Email: result.User.Email}
			if sess.Email == "" {
				sess.Email = email
			}
			if err := saveSession(ctx, sess); err != nil {
				return err
			}
			ctx.loggerFor(cmd).Info("logged in", logging.String("email", sess.Email))

			printer, err := ctx.printer(cmd)
			if err != nil {
				return err
			}
			if err := printer.Message("Login successful ✓"); err != nil {
				return err
			}
			if printer.Format() == present.FormatText {
				fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", sess.DisplayName())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
	return cmd
}

func newLogoutCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.sessionStore()
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}
			printer, err := ctx.printer(cmd)
			if err != nil {
				return err
			}
			return printer.Message("Logged out")
		},
	}
}

func saveSession(ctx *commandContext, sess session.Session) error {
	store, err := ctx.sessionStore()
	if err != nil {
		return err
	}
	if err := store.Save(sess); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}
