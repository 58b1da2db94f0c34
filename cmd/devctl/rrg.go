// cmd/devctl/rrg.go
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

type flowOutput struct {
	Device string  `json:"device"`
	Flow   float64 `json:"flow_sccm"`
}

func newRRGCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rrg",
		Short: "Gas-flow regulator commands",
	}
	addDeviceFlags(cmd)

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set-flow <sccm>",
			Short: "Write the flow setpoint",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				sccm, err := strconv.ParseFloat(args[0], 64)
				if err != nil {
					return fmt.Errorf("invalid setpoint %q: %w", args[0], err)
				}

				r, err := a.openRRG(cmd)
				if err != nil {
					return err
				}
				defer r.Close()

				if err := r.SetFlow(sccm); err != nil {
					return err
				}
				return printJSONOrText(cmd.OutOrStdout(), a.jsonOut,
					map[string]any{"device": "rrg", "setpoint_sccm": sccm},
					fmt.Sprintf("setpoint %.3f sccm", sccm))
			},
		},
		&cobra.Command{
			Use:   "get-flow",
			Short: "Read the measured flow",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				r, err := a.openRRG(cmd)
				if err != nil {
					return err
				}
				defer r.Close()

				flow, err := r.GetFlow()
				if err != nil {
					return err
				}
				return printJSONOrText(cmd.OutOrStdout(), a.jsonOut,
					flowOutput{Device: "rrg", Flow: flow},
					fmt.Sprintf("%.3f", flow))
			},
		},
		&cobra.Command{
			Use:   "set-gas <id>",
			Short: "Select the calibration gas",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid gas id %q: %w", args[0], err)
				}

				r, err := a.openRRG(cmd)
				if err != nil {
					return err
				}
				defer r.Close()

				if err := r.SetGas(id); err != nil {
					return err
				}
				return printJSONOrText(cmd.OutOrStdout(), a.jsonOut,
					map[string]any{"device": "rrg", "gas": id},
					fmt.Sprintf("gas %d", id))
			},
		},
		&cobra.Command{
			Use:   "tare",
			Short: "Zero the flow sensor",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				r, err := a.openRRG(cmd)
				if err != nil {
					return err
				}
				defer r.Close()

				if err := r.Tare(); err != nil {
					return err
				}
				return printJSONOrText(cmd.OutOrStdout(), a.jsonOut,
					map[string]any{"device": "rrg", "tare": true},
					"tare triggered")
			},
		},
		newWatchCmd(a),
	)

	return cmd
}
