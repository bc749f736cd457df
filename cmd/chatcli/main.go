// Package main provides the chatcli entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/chatcli/chatcli/cli"
)

var opts cli.Options

func main() {
	// Load .env file if present (ignore "file not found" errors)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
		}
	}

	// Interrupts cancel the context so a retry wait aborts cleanly
	// without persisting a partial exchange.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := &cobra.Command{
		Use:   "chatcli",
		Short: "Chat with an LLM from the terminal",
		Long: `A command-line client for conversing with LLM completion services.

Running with no subcommand starts an interactive session. Every
successful exchange is recorded in a local history database; the
history subcommands inspect and manage it without touching the model
provider.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.Interactive(cmd.Context(), opts)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&opts.Provider, "provider", "p", "", "LLM provider (openai, anthropic, deepseek, gemini)")
	rootCmd.PersistentFlags().StringVar(&opts.Model, "model", "", "Model identifier (overrides the provider default)")
	rootCmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "History database path")
	rootCmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(askCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(lastCmd())
	rootCmd.AddCommand(deleteLastCmd())
	rootCmd.AddCommand(clearCmd())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a single question and exit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.Ask(cmd.Context(), strings.Join(args, " "), opts)
		},
	}
}

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "View the entire message history",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.History(cmd.Context(), opts)
		},
	}
}

func lastCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "last",
		Short: "Show the most recent exchange",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.Last(cmd.Context(), opts)
		},
	}
}

func deleteLastCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-last",
		Short: "Delete the most recent exchange",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.DeleteLast(cmd.Context(), opts)
		},
	}
}

func clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the entire message history",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.Clear(cmd.Context(), opts)
		},
	}
}
