package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/w-vac/wikipedia-webscraper1.0/internal/log"
)

// NewRootCmd creates the root command for wikiwalk. Without a subcommand it
// runs a walk, so "wikiwalk" and "wikiwalk walk" behave the same.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wikiwalk [start-url]",
		Short: "Random walk across Wikipedia articles",
		Long: `wikiwalk follows one randomly chosen article link per page, starting from
a given Wikipedia article or a random one, until it reaches an already visited
page, a page without usable links, or an error.

Every visited page is exported as wiki_urls.csv and wiki_urls.xlsx, sorted by
title. Press Ctrl+C at any time to stop; the pages collected so far are still
exported.`,
		Version:       getVersion(),
		Args:          cobra.MaximumNArgs(1),
		RunE:          runWalkCmd,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().String("log-format", string(log.FormatText),
		"Log output format (text or json)")

	addWalkFlags(cmd)

	// Add subcommands
	cmd.AddCommand(NewWalkCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
