package app

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/rocketpop/rocketpop-sso/internal/daemon"
)

// ErrNotLoggedIn is returned by commands that need a session.
var ErrNotLoggedIn = errors.New("not logged in")

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, passwdCmd, checkCmd, pingCmd)
}

var (
	loginCmd = &cobra.Command{
		Use:   "login [username]",
		Short: "Sign in and keep the session token",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrompter(cmd)

			var (
				username string
				err      error
			)

			if len(args) == 1 {
				username = args[0]
			} else if username, err = p.line("Username"); err != nil {
				return err
			}

			password, err := p.secret("Password")
			if err != nil {
				return err
			}

			return withDaemon(cmd, func(ctx context.Context, d *daemon.Daemon) error {
				result := d.Sessions.Login(ctx, username, password)
				if !result.Success {
					if result.Message == "" {
						return result.Err
					}

					return errors.New(result.Message)
				}

				current := d.Sessions.Snapshot()
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", result.Message, current.State())

				return nil
			})
		},
	}

	logoutCmd = &cobra.Command{
		Use:   "logout",
		Short: "Forget the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDaemon(cmd, func(_ context.Context, d *daemon.Daemon) error {
				d.Sessions.Logout()
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")

				return nil
			})
		},
	}

	whoamiCmd = &cobra.Command{
		Use:   "whoami",
		Short: "Validate the session token and show its account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDaemon(cmd, func(ctx context.Context, d *daemon.Daemon) error {
				d.Initialize(ctx)

				current := d.Sessions.Snapshot()
				if !current.IsAuthenticated {
					return ErrNotLoggedIn
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> %s\n",
					current.User.Username, current.User.Email, current.State())

				return nil
			})
		},
	}

	passwdCmd = &cobra.Command{
		Use:   "passwd",
		Short: "Change the password of the session account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := newPrompter(cmd)

			oldPassword, err := p.secret("Current password")
			if err != nil {
				return err
			}

			newPassword, err := p.newSecret("New password")
			if err != nil {
				return err
			}

			return withDaemon(cmd, func(ctx context.Context, d *daemon.Daemon) error {
				d.Initialize(ctx)

				if !d.Sessions.Snapshot().IsAuthenticated {
					return ErrNotLoggedIn
				}

				msg, err := d.Sessions.ChangePassword(ctx, oldPassword, newPassword)
				if err != nil {
					return err //nolint:wrapcheck
				}

				_, _ = fmt.Fprintln(cmd.OutOrStdout(), msg)

				return nil
			})
		},
	}

	checkCmd = &cobra.Command{
		Use:   "check <path>",
		Short: "Show the route guard decision for path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDaemon(cmd, func(ctx context.Context, d *daemon.Daemon) error {
				d.Initialize(ctx)

				current := d.Sessions.Snapshot()
				decision := d.Guard.Navigate(args[0], current)

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s)\n", args[0], decision, current.State())

				return nil
			})
		},
	}

	pingCmd = &cobra.Command{
		Use:   "ping",
		Short: "Check that the backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDaemon(cmd, func(ctx context.Context, d *daemon.Daemon) error {
				resp, err := d.Client.Ping(ctx)
				if err != nil {
					return err //nolint:wrapcheck
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", resp.Status, resp.Message)

				return nil
			})
		},
	}
)
