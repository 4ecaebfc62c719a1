package app

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rocketpop/rocketpop-sso/internal/client"
	"github.com/rocketpop/rocketpop-sso/internal/daemon"
	"github.com/rocketpop/rocketpop-sso/internal/models"
)

func init() { //nolint: gochecknoinits
	usersListCmd.Flags().StringVar(&userFilter, "username", "", "list only accounts matching this username")

	for _, c := range []*cobra.Command{usersCreateCmd, usersCreateAdminCmd, usersEditCmd} {
		c.Flags().StringVar(&userForm.Email, "email", "", "email address")
		c.Flags().StringVar((*string)(&userForm.Role), "role", "", "role: user, manager or admin")
	}

	usersEditCmd.Flags().BoolVar(&userNewPassword, "password", false, "ask for a new password")

	usersCmd.AddCommand(usersListCmd, usersGetCmd, usersCreateCmd, usersCreateAdminCmd, usersEditCmd, usersDeleteCmd)
	rootCmd.AddCommand(usersCmd)
}

var (
	userFilter      string
	userForm        models.AccountUser
	userNewPassword bool

	usersCmd = &cobra.Command{
		Use:   "users",
		Short: "Administrate accounts (admin sessions only)",
	}

	usersListCmd = &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDaemon(cmd, func(ctx context.Context, d *daemon.Daemon) error {
				users, err := d.Client.ListUsers(ctx, userFilter)
				if err != nil {
					return err //nolint:wrapcheck
				}

				return printUsers(cmd.OutOrStdout(), users...)
			})
		},
	}

	usersGetCmd = &cobra.Command{
		Use:   "get <username>",
		Short: "Show an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDaemon(cmd, func(ctx context.Context, d *daemon.Daemon) error {
				u, err := d.Client.GetUser(ctx, args[0])
				if err != nil {
					return err //nolint:wrapcheck
				}

				return printUsers(cmd.OutOrStdout(), *u)
			})
		},
	}

	usersCreateCmd = &cobra.Command{
		Use:   "create <username>",
		Short: "Create a regular account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return createAccount(cmd, args[0], (*client.Client).CreateUser)
		},
	}

	usersCreateAdminCmd = &cobra.Command{
		Use:   "create-admin <username>",
		Short: "Create an admin account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return createAccount(cmd, args[0], (*client.Client).CreateAdmin)
		},
	}

	usersEditCmd = &cobra.Command{
		Use:   "edit <username>",
		Short: "Change an account, unset flags stay unchanged",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u := userForm
			u.Username = args[0]

			if userNewPassword {
				password, err := newPrompter(cmd).newSecret("New password")
				if err != nil {
					return err
				}

				u.Password = password
			}

			return withDaemon(cmd, func(ctx context.Context, d *daemon.Daemon) error {
				result, err := d.Client.EditUser(ctx, u)
				if err != nil {
					return err //nolint:wrapcheck
				}

				_, _ = fmt.Fprintln(cmd.OutOrStdout(), result.Message)

				return nil
			})
		},
	}

	usersDeleteCmd = &cobra.Command{
		Use:   "delete <username>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDaemon(cmd, func(ctx context.Context, d *daemon.Daemon) error {
				msg, err := d.Client.DeleteUser(ctx, args[0])
				if err != nil {
					return err //nolint:wrapcheck
				}

				_, _ = fmt.Fprintln(cmd.OutOrStdout(), msg)

				return nil
			})
		},
	}
)

type createFunc func(*client.Client, context.Context, models.AccountUser) (*client.AccountResult, error)

func createAccount(cmd *cobra.Command, username string, create createFunc) error {
	u := userForm
	u.Username = username

	password, err := newPrompter(cmd).newSecret("Password")
	if err != nil {
		return err
	}

	u.Password = password

	return withDaemon(cmd, func(ctx context.Context, d *daemon.Daemon) error {
		result, err := create(d.Client, ctx, u)
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), result.Message)

		return nil
	})
}

func printUsers(out io.Writer, users ...models.AccountUser) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0) //nolint:mnd

	_, _ = fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tROLE\tLOCATION")

	for _, u := range users {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, u.Role, u.Location)
	}

	return w.Flush() //nolint:wrapcheck
}
