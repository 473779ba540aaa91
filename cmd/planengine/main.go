package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	logLevel string
	rootCmd  = &cobra.Command{
		Use:   "planengine",
		Short: "Deterministic allocation and net-worth projection engine",
		Long: `planengine splits net income into needs/wants/savings under a bounded
monthly shift, distributes the savings budget across a fixed priority
stack, and projects account balances and debt paydown across a
multi-decade monthly horizon.`,
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(simulateCmd())
	rootCmd.AddCommand(allocateCmd())
	rootCmd.AddCommand(checkinCmd())
	rootCmd.AddCommand(exampleCmd())
}

func newLogger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
