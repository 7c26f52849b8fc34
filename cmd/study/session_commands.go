package main

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"study/internal/present"
	"study/internal/session"
)

func newSessionCommand(ctx *commandContext) *cobra.Command {
	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect the stored login",
	}
	sessionCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show who is logged in and when the token expires",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := sessionStatus(ctx)
			if err != nil {
				return err
			}
			printer, err := ctx.printer(cmd)
			if err != nil {
				return err
			}
			return printer.Session(status)
		},
	})
	return sessionCmd
}

func sessionStatus(ctx *commandContext) (present.SessionStatus, error) {
	store, err := ctx.sessionStore()
	if err != nil {
		return present.SessionStatus{}, err
	}
	status := present.SessionStatus{Path: store.Path()}

	var token string
	switch {
	case strings.TrimSpace(ctx.flags.token) != "":
		token = strings.TrimSpace(ctx.flags.token)
		status.UserName = "(from --token)"
	case strings.TrimSpace(os.Getenv(envToken)) != "":
		token = strings.TrimSpace(os.Getenv(envToken))
		status.UserName = "(from " + envToken + ")"
	default:
		sess, err := store.Load()
		if errors.Is(err, session.ErrNotLoggedIn) {
			return status, nil
		}
		if err != nil {
			return status, err
		}
		token = sess.Token
		status.UserName = sess.DisplayName()
		saved := sess.SavedAt
		status.SavedAt = &saved
	}
	status.LoggedIn = true

	claims, err := session.InspectToken(token)
	if err != nil {
		// Opaque tokens carry no claims to report.
		return status, nil
	}
	status.Subject = claims.Subject
	if claims.HasExpiry() {
		exp := claims.ExpiresAt
		status.ExpiresAt = &exp
		status.Expired = claims.Expired(time.Now())
	}
	return status, nil
}
