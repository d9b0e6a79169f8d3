package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resolveFormat string
var resolveEnvPrefix string

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Print every build directive",
	Long: `Resolve runs the discovery pass and prints all resulting directives: search
paths, libraries, flags, defines and the inputs that invalidate them.

Formats: yaml, json, env (shell export statements).`,
	Args: cobra.NoArgs,
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringVarP(&resolveFormat, "format", "f", "yaml", "output format: yaml, json or env")
	resolveCmd.Flags().StringVar(&resolveEnvPrefix, "env-prefix", "CGO_", "variable prefix for the env format")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	switch resolveFormat {
	case "yaml", "json", "env":
	default:
		return fmt.Errorf("unknown format %q", resolveFormat)
	}
	_, set, err := configure()
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	switch resolveFormat {
	case "json":
		return set.WriteJSON(w)
	case "env":
		return set.WriteEnv(w, resolveEnvPrefix)
	}
	return set.WriteYAML(w)
}
