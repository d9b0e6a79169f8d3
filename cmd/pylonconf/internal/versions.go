package internal

import (
	"fmt"

	"github.com/goplus/pylonconf/internal/platform"
	"github.com/goplus/pylonconf/internal/resolve"
	"github.com/goplus/pylonconf/internal/scan"
	"github.com/spf13/cobra"
)

var versionsLibs []string

var versionsCmd = &cobra.Command{
	Use:   "versions [dir]",
	Short: "List the installed GenICam library versions",
	Long: `Versions lists every version of the GenICam libraries found in dir (default
<root>/lib, or <root>/lib64 for pylon 5), then the newest version common to all of them.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVersions,
}

func init() {
	versionsCmd.Flags().StringSliceVarP(&versionsLibs, "lib", "l", platform.GenICamLibs, "libraries to look for")
	rootCmd.AddCommand(versionsCmd)
}

func runVersions(cmd *cobra.Command, args []string) error {
	var dir string
	if len(args) > 0 {
		dir = args[0]
	} else {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if dir, err = platform.LinuxLibDir(cfg); err != nil {
			return err
		}
	}

	s := scan.New(dir)
	w := cmd.OutOrStdout()
	for _, inv := range s.Inventory(versionsLibs) {
		fmt.Fprintln(w, inv)
	}
	res, err := resolve.Common(s, versionsLibs)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "common: %v\n", res)
	return nil
}
