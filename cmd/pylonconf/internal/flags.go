package internal

import (
	"github.com/spf13/cobra"
)

var flagsCFlags bool
var flagsLibs bool

var flagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "Print compiler and linker flags",
	Long:  `Flags prints the compiler flags, the linker flags or both on one line, like pkg-config.`,
	Args:  cobra.NoArgs,
	RunE:  runFlags,
}

func init() {
	flagsCmd.Flags().BoolVar(&flagsCFlags, "cflags", false, "print compiler flags")
	flagsCmd.Flags().BoolVar(&flagsLibs, "libs", false, "print linker flags")
	rootCmd.AddCommand(flagsCmd)
}

func runFlags(cmd *cobra.Command, args []string) error {
	_, set, err := configure()
	if err != nil {
		return err
	}
	cflags, libs := flagsCFlags, flagsLibs
	if !cflags && !libs {
		cflags, libs = true, true
	}
	return set.WriteFlags(cmd.OutOrStdout(), cflags, libs)
}
