package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/nfu-tools/nfu-announcements/internal/fetcher"
	"github.com/nfu-tools/nfu-announcements/internal/logger"
	"github.com/nfu-tools/nfu-announcements/internal/output"
	"github.com/nfu-tools/nfu-announcements/internal/pipeline"
	"github.com/nfu-tools/nfu-announcements/internal/site"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagOutputDir string
	flagDelay     time.Duration
	flagLogFormat string
	flagVerbose   bool
	flagSites     []string
	flagFormat    string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nfu-announcements",
		Short: "Scrape NFU department announcements into HTML fragments",
		Long: `Fetches the announcement listings of the configured NFU department
websites and writes each site's latest announcements to public/{SITE}.html,
replacing the previous output on every run.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runScrape,
	}

	cmd.Flags().StringVar(&flagOutputDir, "output-dir", "", "Output directory (default: public/ next to the executable)")
	cmd.Flags().DurationVar(&flagDelay, "delay", pipeline.DefaultDelay, "Pause after each site")
	cmd.Flags().StringSliceVar(&flagSites, "site", nil, "Only process these sites (repeatable)")
	cmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format: text or json")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	cmd.AddCommand(newSitesCmd())

	return cmd
}

func newSitesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sites",
		Short: "List the configured sites",
		Args:  cobra.NoArgs,
		RunE:  runSites,
	}
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	return cmd
}

func setupLogger(cmd *cobra.Command) (*logger.Logger, error) {
	format, err := logger.ParseFormat(flagLogFormat)
	if err != nil {
		return nil, err
	}
	level := logger.LevelInfo
	if flagVerbose {
		level = logger.LevelDebug
	}
	l := logger.New(level, format, cmd.OutOrStdout())
	logger.SetDefault(l)
	return l, nil
}

// runScrape is the main command logic
func runScrape(cmd *cobra.Command, args []string) error {
	log, err := setupLogger(cmd)
	if err != nil {
		return err
	}

	registry, err := site.Default()
	if err != nil {
		return fmt.Errorf("loading site registry: %w", err)
	}
	registry, err = registry.Filter(flagSites)
	if err != nil {
		return err
	}

	dir := flagOutputDir
	if dir == "" {
		dir, err = output.DefaultDir()
		if err != nil {
			return err
		}
	}
	store, err := output.New(dir)
	if err != nil {
		return err
	}
	log.Debug("output directory", logger.Fields{"dir": store.Dir()})

	delay := flagDelay
	if delay == 0 {
		delay = -1
	}

	runner := pipeline.New(registry, fetcher.New(), store, pipeline.Options{
		Delay:  delay,
		Logger: log,
	})
	runner.Run(cmd.Context())

	log.Debug("run metrics", logger.Fields{"metrics": runner.Metrics().GetSnapshot()})
	return nil
}

func runSites(cmd *cobra.Command, args []string) error {
	format, err := ParseOutputFormat(flagFormat)
	if err != nil {
		return err
	}

	registry, err := site.Default()
	if err != nil {
		return fmt.Errorf("loading site registry: %w", err)
	}

	return WriteSites(cmd.OutOrStdout(), registry, format)
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
