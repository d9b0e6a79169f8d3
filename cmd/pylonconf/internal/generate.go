package internal

import (
	"bytes"
	"fmt"
	"os"
	"runtime"

	"github.com/goplus/pylonconf/internal/directive"
	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"
)

var genOutput string
var genPackage string
var genNoTag bool
var genAllowLDFlags bool

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a Go file carrying the #cgo directives",
	Long: `Generate writes a Go source file whose #cgo directives build the package it
belongs to against the pylon SDK. It is meant to be run by go generate:

	//go:generate pylonconf generate -o zz_pylon_cgo.go

Linker flags that go build refuses in #cgo directives are left out and listed
in the file header as a CGO_LDFLAGS value. With --allow-ldflags they are kept
and the header names the CGO_LDFLAGS_ALLOW value to build with.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "", "output file (default stdout)")
	generateCmd.Flags().StringVarP(&genPackage, "package", "p", "", "package name (default $GOPACKAGE)")
	generateCmd.Flags().BoolVar(&genNoTag, "no-build-tag", false, "omit the //go:build constraint")
	generateCmd.Flags().BoolVar(&genAllowLDFlags, "allow-ldflags", false, "keep linker flags that need CGO_LDFLAGS_ALLOW in #cgo LDFLAGS")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	pkg := genPackage
	if pkg == "" {
		pkg = os.Getenv("GOPACKAGE")
	}
	if pkg == "" {
		return fmt.Errorf("no package name: use -p or run from go generate")
	}

	cfg, set, err := configure()
	if err != nil {
		return err
	}
	opts := directive.CgoOptions{Package: pkg, AllowLinkArgs: genAllowLDFlags}
	if !genNoTag {
		opts.GOOS = cfg.Target
		if opts.GOOS == "" {
			opts.GOOS = runtime.GOOS
		}
	}

	var buf bytes.Buffer
	if err := set.WriteCgo(&buf, opts); err != nil {
		return err
	}
	if genOutput == "" || genOutput == "-" {
		_, err = cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(genOutput, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", genOutput, err)
	}
	log.Infof("generated %s", genOutput)
	return nil
}
