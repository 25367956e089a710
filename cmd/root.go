// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-dashboard/internal/config"
	"github.com/naka-gawa/github-dashboard/internal/gateway"
	"github.com/naka-gawa/github-dashboard/internal/locale"
	"github.com/naka-gawa/github-dashboard/internal/usecase"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "github-dashboard",
		Short: "A dashboard for a single GitHub repository.",
		Long: `github-dashboard searches GitHub for a repository and shows its stars,
forks and watchers, its language mix and its commit activity over the last
four weeks. It runs as a one-shot or interactive CLI, or as an HTTP API.`,
		SilenceUsage: true,
	}

	// Persistent flags override the .env file and GITHUB_DASHBOARD_* variables.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("api-url", config.DefaultAPIURL, "Base URL of the GitHub REST API")
	rootCmd.PersistentFlags().String("default-repo", config.DefaultRepository, "Repository (owner/name) shown for an empty search")
	rootCmd.PersistentFlags().String("locale", config.DefaultLocale, "Message language (en, pt-BR)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Timeout for each GitHub request (0 disables it)")

	rootCmd.AddCommand(newShowCmd(), newServeCmd())
	return rootCmd
}

// Execute builds the command tree and runs it.
// This is called by main.main(). SIGINT and SIGTERM cancel the command's context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig layers explicitly set flags over the environment configuration.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.APIURL, _ = flags.GetString("api-url")
	}
	if flags.Changed("default-repo") {
		cfg.DefaultRepository, _ = flags.GetString("default-repo")
	}
	if flags.Changed("locale") {
		cfg.Locale, _ = flags.GetString("locale")
	}
	if flags.Changed("timeout") {
		cfg.Timeout, _ = flags.GetDuration("timeout")
	}
	if flags.Lookup("addr") != nil && flags.Changed("addr") {
		cfg.ListenAddr, _ = flags.GetString("addr")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger discards everything unless --verbose is set.
func newLogger(cmd *cobra.Command) zerolog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return zerolog.Nop()
	}
	writer := zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.RFC3339}
	return zerolog.New(writer).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}

// newDashboard wires the gateway and the use case for one session.
func newDashboard(cmd *cobra.Command) (*usecase.Dashboard, *config.Config, zerolog.Logger, error) {
	logger := newLogger(cmd)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, logger, err
	}
	if !locale.Supported(cfg.Locale) {
		logger.Warn().Str("locale", cfg.Locale).Msg("Unsupported locale, falling back to English")
	}

	fetcher, err := gateway.NewGitHubGateway(cfg, logger)
	if err != nil {
		return nil, nil, logger, err
	}
	return usecase.NewDashboard(fetcher, logger, locale.For(cfg.Locale)), cfg, logger, nil
}
