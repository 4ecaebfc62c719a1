package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rocketpop/rocketpop-sso/internal/config"
)

func init() { //nolint: gochecknoinits
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := config.DumpConfigJSON(&cfg)
			if err != nil {
				return err //nolint:wrapcheck
			}

			_, _ = fmt.Fprint(cmd.OutOrStdout(), out)

			return nil
		},
	}
)
