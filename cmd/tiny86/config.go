package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/tiny86/timing/latency"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect timing configurations",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "default",
			Short: "Print the default timing configuration as JSON",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				data, err := json.MarshalIndent(latency.DefaultTimingConfig(), "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			},
		},
		&cobra.Command{
			Use:   "check file",
			Short: "Load and validate a timing configuration",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				config, err := latency.LoadConfig(args[0])
				if err != nil {
					return err
				}
				if err := config.Validate(); err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%.2f MHz)\n",
					args[0], config.ClockMHz)
				return err
			},
		},
	)

	return cmd
}
