// Package main is the insights command line tool. It fetches a snapshot from
// the Transaction Store and prints the derived dashboard views.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Income, expense and category reports from the Transaction Store",
		Long: `insights fetches transactions, categories and the monthly report from the
Transaction Store and prints the same views the dashboard shows.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
	}

	// Global flags
	cmd.PersistentFlags().String("store-url", "http://localhost:8080", "Transaction Store base URL")
	cmd.PersistentFlags().Duration("timeout", 10*time.Second, "per-request timeout")
	cmd.PersistentFlags().StringP("output", "o", "text", "output format (text, json)")
	cmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")

	// Bind flags to viper
	_ = viper.BindPFlag("store.url", cmd.PersistentFlags().Lookup("store-url"))
	_ = viper.BindPFlag("store.timeout", cmd.PersistentFlags().Lookup("timeout"))
	_ = viper.BindPFlag("output", cmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("logging.level", cmd.PersistentFlags().Lookup("log-level"))

	cmd.AddCommand(summaryCmd())
	cmd.AddCommand(categoriesCmd())
	cmd.AddCommand(monthlyCmd())
	cmd.AddCommand(viewsCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	// Environment variables, e.g. INSIGHTS_STORE_URL
	viper.SetEnvPrefix("INSIGHTS")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := setupLogging(viper.GetString("logging.level")); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	switch format := viper.GetString("output"); format {
	case outputText, outputJSON:
	default:
		return fmt.Errorf("invalid output format: %s", format)
	}

	return nil
}

func setupLogging(level string) error {
	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		return fmt.Errorf("invalid log level: %s", level)
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slogLevel})
	slog.SetDefault(slog.New(handler))

	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "insights %s\n", version)
		},
	}
}
