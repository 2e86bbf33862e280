// Command eslcli is an outbound ESL client for interactive and
// scripted use against a FreeSWITCH event socket.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "eslcli",
		Short:        "Talk to a FreeSWITCH event socket",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringP("address", "a", "127.0.0.1:8021", "FreeSWITCH ESL address")
	root.PersistentFlags().StringP("password", "p", "ClueCon", "ESL password")
	root.PersistentFlags().String("config", "", "path to a YAML config file (overrides --address/--password)")

	root.AddCommand(newAPICmd())
	root.AddCommand(newEventsCmd())
	root.AddCommand(newFilterCmd())
	root.AddCommand(newListenCmd())
	return root
}
