package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"storeprobe/internal/config"
	"storeprobe/internal/logging"
)

var (
	// Global flags
	configPath string
	verbose    bool
	headless   bool
	baseURL    string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "storeprobe",
	Short: "storeprobe - scripted browser probes for the Mientior storefront",
	Long: `storeprobe drives a headless Chrome through a fixed set of storefront
scenarios (homepage, search, authentication, user journey, input debugging),
narrating each step and capturing screenshots along the way.

The captured screenshots can then be packaged into a standalone HTML report:

  storeprobe run search
  storeprobe report`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}
		if cmd.Flags().Changed("headless") {
			cfg.Browser.Headless = headless
		}
		if baseURL != "" {
			cfg.Target.BaseURL = baseURL
		}

		logger, err = logging.New(cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "storeprobe.yaml", "Configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&headless, "headless", true, "Run Chrome headless")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Storefront base URL (overrides config)")

	// Add commands to root
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(reportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
