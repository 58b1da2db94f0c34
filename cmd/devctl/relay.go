// cmd/devctl/relay.go
package main

import (
	"github.com/spf13/cobra"
)

func newRelayCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relay",
		Short: "Relay commands",
	}
	addDeviceFlags(cmd)

	switchCmd := func(use string, on bool) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: "Switch the relay " + use,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				r, err := a.openRelay(cmd)
				if err != nil {
					return err
				}
				defer r.Close()

				if err := r.Set(on); err != nil {
					return err
				}
				return printJSONOrText(cmd.OutOrStdout(), a.jsonOut,
					map[string]any{"device": "relay", "on": on},
					"relay "+use)
			},
		}
	}

	cmd.AddCommand(switchCmd("on", true), switchCmd("off", false))
	return cmd
}
