// Package app implements the main application commands.
package app

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/rocketpop/rocketpop-sso/internal/config"
	"github.com/rocketpop/rocketpop-sso/internal/daemon"
	"github.com/rocketpop/rocketpop-sso/internal/logger"
)

var (
	configPath string // Path to the configuration directory
	cfg        config.Config

	rootCmd = &cobra.Command{
		Use:   "rocketpop-sso",
		Short: "RocketPop SSO is the session client of the RocketPop SSO backend",
		Long: `RocketPop SSO signs you in to the RocketPop SSO backend, keeps the session token
and guards the navigation of the local console by role.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			var err error

			if cfg, err = config.ReadConfig(configPath); err != nil {
				return err //nolint:wrapcheck
			}

			return errors.Wrap(logger.Init(cfg.Log), "failed to init logger")
		},
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./etc/", "directory of main.toml")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background()) //nolint:wrapcheck
}

// withDaemon wires the client from the loaded configuration and runs fn with it.
func withDaemon(cmd *cobra.Command, fn func(ctx context.Context, d *daemon.Daemon) error) error {
	d, err := daemon.New(&cfg)
	if err != nil {
		return err //nolint:wrapcheck
	}

	defer func() { _ = d.Close() }()

	return fn(cmd.Context(), d)
}
