package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/al26p/statusctl/config"
	"github.com/al26p/statusctl/statuspage"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *statuspage.Client

	appVersion   = "dev"
	appBuildTime = "unknown"
)

// SetVersion records the build metadata reported by the version command.
func SetVersion(version, buildTime string) {
	appVersion = version
	appBuildTime = buildTime
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "statusctl",
	Short: "Manage a status page from the command line",
	Long: `statusctl is a CLI tool for managing a statuspage.io style status page:
components, incidents, subscribers and metrics, driven by a typed API
client that understands the API's envelope conventions.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that never talk to the API run without configuration.
		switch cmd.Name() {
		case "version", "selfupdate", "help", "completion":
			return nil
		}
		return initializeApp(cmd, args)
	},
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

	rootCmd.AddCommand(testCmd)
}

// initializeApp initializes the configuration and the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	opts := []statuspage.Option{
		statuspage.WithTimeout(time.Duration(cfg.StatusPage.Timeout * float64(time.Second))),
		statuspage.WithUserAgent("statusctl/" + appVersion),
	}
	if !cfg.StatusPage.VerifySSL {
		opts = append(opts, statuspage.WithInsecureSkipVerify())
	}

	client, err = statuspage.NewClient(cfg.StatusPage.URL, cfg.StatusPage.APIKey, cfg.StatusPage.PageID, logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create status page client: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test the connection to the status page API",
	Long:  `Test the connection to the status page API and display basic page information.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	fmt.Printf("Testing connection to %s...\n", cfg.StatusPage.URL)

	ctx := context.Background()
	page, err := client.GetPage(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch page: %w", err)
	}

	fmt.Println("✓ Connection successful!")
	fmt.Printf("\nPage: %s\n", page.Name)
	if page.URL != "" {
		fmt.Printf("- URL: %s\n", page.URL)
	}
	if page.TimeZone != "" {
		fmt.Printf("- Time zone: %s\n", page.TimeZone)
	}

	return nil
}
