// Package cmd defines and implements the CLI commands for the
// firecrawl-integration executable.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "firecrawl-integration",
		Short: "Submits a page to the Firecrawl API and saves the extracted fields.",
		Long: `firecrawl-integration is a one-shot client for the Firecrawl
crawl/extraction API. It submits a single listing page with an
llm-extraction directive, polls the job until it finishes, and writes the
extracted company fields to the configured sinks.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file")
	cmd.AddCommand(newExtractCmd())
	return cmd
}

// Execute runs the CLI with a signal-aware context. Any error exits nonzero.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
