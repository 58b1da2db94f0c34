// cmd/devctl/main.go
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tamzrod/modbus-devctl/internal/fault"
	"github.com/tamzrod/modbus-devctl/internal/transport/rtu"
)

var (
	version   = "dev"
	gitCommit = "unknown"
)

func main() {
	a := &app{factory: rtu.NewFactory}
	root := newRootCmd(a)

	err := root.Execute()
	a.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, exitMessage(err))
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "devctl",
		Short:         "Control an RRG flow regulator and a relay over MODBUS-RTU",
		Version:       fmt.Sprintf("%s (commit: %s)", version, gitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	// Global flags
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default: search /etc/devctl, $HOME/.devctl, .)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging, including MODBUS frames")
	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "JSON output and JSON logs")

	root.AddCommand(
		newRRGCmd(a),
		newRelayCmd(a),
		newConfigCmd(a),
	)
	return root
}

// exitMessage renders err for the terminal. Device failures lead with the
// fixed description of their kind.
func exitMessage(err error) string {
	var fe *fault.Error
	if errors.As(err, &fe) {
		return fmt.Sprintf("%s (%v)", fault.Describe(fe.Kind), err)
	}
	return "Error: " + err.Error()
}

func printJSONOrText(w io.Writer, asJSON bool, v any, text string) error {
	if asJSON {
		return writeJSON(w, v)
	}
	_, err := fmt.Fprintln(w, text)
	return err
}
