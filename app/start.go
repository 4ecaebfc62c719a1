package app

import (
	"github.com/spf13/cobra"

	"github.com/rocketpop/rocketpop-sso/internal/daemon"
)

func init() { //nolint: gochecknoinits
	startCmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode")

	rootCmd.AddCommand(startCmd)
}

var (
	devMode bool

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the local console",
		PreRun: func(_ *cobra.Command, _ []string) {
			if devMode {
				cfg.DevMode = true
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := daemon.New(&cfg)
			if err != nil {
				return err //nolint:wrapcheck
			}

			defer func() { _ = d.Close() }()

			return d.Start(cmd.Context()) //nolint:wrapcheck
		},
	}
)
