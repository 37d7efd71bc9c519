package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/thruflo/whirl/internal/config"
	"github.com/thruflo/whirl/internal/logging"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	configPath string
	verbose    bool
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:   "whirl",
	Short: "Run labeled jobs concurrently with per-job terminal spinners",
	Long: `Whirl executes batches of labeled jobs on a worker pool, rendering one
animated spinner line per job. Finished jobs freeze on a success or
failure icon, and results are collected once the batch completes.`,
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("whirl version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to config file (default "+config.DefaultConfigFile+" if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable color output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig resolves the effective configuration for one invocation and
// applies the global flags.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}
	if noColor {
		cfg.NoColor = true
	}
	if verbose {
		logging.SetLevel(logging.LevelDebug)
	}
	if cfg.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	return cfg, nil
}
