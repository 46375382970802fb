package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tmoller/trialscope/bungie"
	"github.com/tmoller/trialscope/config"
)

var (
	cfgFile      string
	cfg          *config.Config
	logger       zerolog.Logger
	bungieClient *bungie.Client

	// Command flags
	platformName string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "trialscope",
	Short: "Look up Destiny 2 players and their Trials of Osiris history",
	Long: `trialscope is a CLI tool for the Destiny 2 API. It can look up player
profiles with character progressions, search for players by name across
platforms, and fetch per-character Trials of Osiris match history with
optional filter expressions.`,
	PersistentPreRunE: initializeApp,
}

// SetVersion sets the version string displayed by --version
func SetVersion(version, buildTime string) {
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&platformName, "platform", "p", "steam", "platform (xbox, psn, steam, all)")
}

// initializeApp initializes the configuration and the Bungie client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Create Bungie client
	bungieClient, err = bungie.NewClient(cfg.Bungie.APIKey, cfg.Bungie.AppID, cfg.Bungie.AppVersion, logger)
	if err != nil {
		return fmt.Errorf("failed to create Bungie client: %w", err)
	}

	return nil
}

// resolvePlatform maps the --platform flag to a membership type. The "all"
// sentinel only makes sense for search; every other command rejects it.
func resolvePlatform(allowAll bool) (bungie.MembershipType, error) {
	platform := bungie.MembershipTypeFromName(strings.ToLower(platformName))
	if platform == bungie.MembershipTypeNone {
		return platform, fmt.Errorf("unknown platform: %s (expected xbox, psn, steam or all)", platformName)
	}
	if platform == bungie.MembershipTypeAll && !allowAll {
		return platform, fmt.Errorf("platform 'all' is only valid for search")
	}
	return platform, nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; only color when stderr is a terminal
	color := cfg.Color && isatty.IsTerminal(os.Stderr.Fd())
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !color,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
