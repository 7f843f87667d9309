package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kozaktomas/celebrity-twin/internal/config"
	"github.com/kozaktomas/celebrity-twin/internal/logger"
	"github.com/spf13/cobra"
)

var (
	captureDir string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "celebrity-twin",
	Short: "Render celebrity look-alike matches with photos from Wikipedia",
	Long: `Celebrity Twin renders a list of look-alike matches (name + similarity
percent) into a results page. Each celebrity gets a photo looked up on
Wikipedia: exact title first, then the top search hit, then the page-images
API. Lookups run one at a time to keep the load on Wikipedia polite.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&captureDir, "capture", "", "Directory to save Wikipedia API responses for testing")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}

// loadConfig loads the configuration and installs the logger. Logs go to
// stderr so rendered output on stdout stays clean.
func loadConfig() *config.Config {
	cfg := config.Load()
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	logger.Init(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	return cfg
}
