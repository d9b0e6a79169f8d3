package internal

import (
	"os"

	"github.com/goplus/pylonconf/internal/directive"
	"github.com/goplus/pylonconf/internal/env"
	"github.com/goplus/pylonconf/internal/platform"
	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"
)

var (
	cfgFile      string
	target       string
	pylonVersion string
	pylonRoot    string
	devDir       string
	frameworkDir string
	features     []string
	verbose      bool
	quiet        bool
)

var rootCmd = &cobra.Command{
	Use:   "pylonconf",
	Short: "pylonconf locates the Basler pylon SDK and prints build flags for it",
	Long: `pylonconf locates the Basler pylon SDK, selects the newest GenICam library
version installed consistently, and prints the compiler and linker flags needed
to build a cgo package against it.

The SDK location is read from PYLON_VERSION, PYLON_ROOT, PYLON_DEV_DIR and
PYLONFRAMEWORKDIR, from pylonconf.yaml, or from the flags below.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLog,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		log.Fatal(err)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./"+env.FileName+")")
	flags.StringVar(&target, "target", "", "target OS: linux, darwin or windows (default is the host OS)")
	flags.StringVar(&pylonVersion, "pylon-version", "", "pylon major version, overrides "+env.VersionKey)
	flags.StringVar(&pylonRoot, "root", "", "pylon installation root, overrides "+env.RootKey)
	flags.StringVar(&devDir, "dev-dir", "", "pylon development directory, overrides "+env.DevDirKey)
	flags.StringVar(&frameworkDir, "framework-dir", "", "directory containing pylon.framework, overrides "+env.FrameworkDirKey)
	flags.StringSliceVar(&features, "feature", nil, "enable a shim feature (stream)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "print debug diagnostics")
	flags.BoolVarP(&quiet, "quiet", "q", false, "print warnings and errors only")
}

func setupLog(cmd *cobra.Command, args []string) error {
	log.SetOutput(cmd.ErrOrStderr())
	switch {
	case verbose:
		log.SetOutputLevel(log.Ldebug)
	case quiet:
		log.SetOutputLevel(log.Lwarn)
	default:
		log.SetOutputLevel(log.Linfo)
	}
	return nil
}

// loadConfig reads the configuration file and the environment, then applies
// the command line flags.
func loadConfig() (*env.Config, error) {
	cfg, err := env.Load(cfgFile, os.LookupEnv)
	if err != nil {
		return nil, err
	}
	if pylonVersion != "" {
		if err := cfg.SetVersion(pylonVersion); err != nil {
			return nil, err
		}
	}
	if pylonRoot != "" {
		cfg.Root = pylonRoot
	}
	if devDir != "" {
		cfg.DevDir = devDir
	}
	if frameworkDir != "" {
		cfg.FrameworkDir = frameworkDir
	}
	if target != "" {
		cfg.Target = target
	}
	for _, f := range features {
		if !cfg.HasFeature(f) {
			cfg.Features = append(cfg.Features, f)
		}
	}
	return cfg, nil
}

// configure runs a discovery pass with the effective configuration.
func configure() (*env.Config, *directive.Set, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	set, err := platform.Configure(cfg, log.Std)
	if err != nil {
		return nil, nil, err
	}
	return cfg, set, nil
}
