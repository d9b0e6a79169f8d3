package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the pylonconf release.
const Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pylonconf version %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
