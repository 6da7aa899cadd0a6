package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/events-refresh/internal/cache"
	"github.com/pfrederiksen/events-refresh/internal/config"
	"github.com/pfrederiksen/events-refresh/internal/logger"
	"github.com/pfrederiksen/events-refresh/internal/refresh"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// Version is set at build time via -ldflags.
var Version = "dev"

type rootOptions struct {
	cfgFile string
	verbose bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "events-refresh",
		Short: "Fetch the remote events document into the site's data directory",
		Long: `Fetch the events JSON from the remote API and overwrite the local data file
with the raw response body. Intended to run once at the start of a site build;
a non-zero exit code means the build should fail.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRefresh(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "Path to a YAML config file (optional)")
	cmd.PersistentFlags().String("dest", refresh.DefaultDestPath, "Destination file; its directory must already exist")
	cmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")

	cmd.Flags().String("url", refresh.DefaultSourceURL, "Source URL of the events document")
	cmd.Flags().Duration("timeout", 0, "HTTP client timeout (0 = none)")
	cmd.Flags().Bool("reject-non-success", false, "Fail instead of writing when the response status is not 2xx")
	cmd.Flags().Bool("validate", false, "Fail instead of writing when the body is not well-formed JSON")
	cmd.Flags().Bool("atomic", false, "Replace the destination via temp file and rename")

	cmd.AddCommand(newStatusCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// loadConfig reads configuration and installs the default logger.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if opts.verbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))

	return cfg, nil
}

// runRefresh is the main command logic
func runRefresh(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	fields := logger.Fields{
		"url":  cfg.SourceURL,
		"dest": cfg.DestPath,
	}

	result, err := refresh.FetchAndCacheEvents(ctx, cfg.RefreshOptions())
	if err != nil {
		logger.Error("Events refresh failed", fields, err)
		return fmt.Errorf("refreshing events: %w", err)
	}

	fields["status"] = result.StatusCode
	fields["bytes"] = result.Bytes
	fields["duration_ms"] = result.Duration.Milliseconds()
	logger.Info("Events refreshed", fields)
	logger.Debug("Run metrics", logger.Fields{"metrics": logger.GetMetricsSnapshot()})

	return nil
}

func newStatusCmd(root *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the state of the local events file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := OutputFormat(strings.ToLower(format))
			if f != FormatText && f != FormatJSON {
				return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", format)
			}

			cfg, err := loadConfig(cmd, root)
			if err != nil {
				return err
			}

			info, err := cache.New(cfg.DestPath).Stat()
			if err != nil {
				return err
			}

			return WriteStatus(cmd.OutOrStdout(), &StatusResult{
				CheckedAt: time.Now().UTC(),
				SourceURL: cfg.SourceURL,
				File:      info,
			}, f)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "events-refresh %s\n", Version)
		},
	}
}

// Run executes the CLI with args and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}

// Execute runs the CLI
func Execute() {
	os.Exit(Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
