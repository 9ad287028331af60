package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/w-vac/wikipedia-webscraper1.0/internal/config"
	"github.com/w-vac/wikipedia-webscraper1.0/internal/database"
	"github.com/w-vac/wikipedia-webscraper1.0/internal/report"
)

// defaultHistoryLimit is the number of walks listed by default.
const defaultHistoryLimit = 20

// errConflictingFormats is returned when both --json and --markdown are set.
var errConflictingFormats = errors.New("--json and --markdown are mutually exclusive")

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [walk-id]",
		Short: "List past walks or show the pages of one walk",
		Long: `History shows the walks recorded in the history database.

Without arguments it lists the most recent walks: when they ran, how many
pages they visited, and why they stopped. With a walk ID (or a unique prefix
of one) it shows every page of that walk in visiting order.

Examples:
  # List the last 20 walks
  wikiwalk history

  # Show one walk
  wikiwalk history 3f2a9c1e

  # Render the history as Markdown
  wikiwalk history --markdown > walks.md

  # Delete a walk
  wikiwalk history --delete 3f2a9c1e`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .wikiwalk in current or home directory)")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")
	cmd.Flags().IntP("limit", "l", defaultHistoryLimit,
		"Maximum number of walks to list (0 lists all)")
	cmd.Flags().Bool("full-ids", false,
		"Show complete walk IDs instead of short prefixes")
	cmd.Flags().BoolP("delete", "d", false,
		"Delete the walk given as argument")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output in JSON format (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output in Markdown format (mutually exclusive with --json)")

	return cmd
}

// historyOptions holds the parsed history flags.
type historyOptions struct {
	dbDir    string
	limit    int
	fullIDs  bool
	remove   bool
	json     bool
	markdown bool
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	opts, err := buildHistoryOptions(cmd)
	if err != nil {
		return err
	}
	if opts.remove && len(args) == 0 {
		return errors.New("walk ID is required with --delete")
	}

	db, err := database.Open(opts.dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	switch {
	case opts.remove:
		if err := db.DeleteWalk(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted walk %s\n", args[0])
		return nil
	case len(args) == 1:
		walk, err := db.GetWalk(ctx, args[0])
		if err != nil {
			return err
		}
		_, err = newReportWriter(out, opts).WriteWalk(walk)
		return err
	default:
		walks, err := db.ListWalks(ctx, opts.limit)
		if err != nil {
			return err
		}
		_, err = newReportWriter(out, opts).WriteHistory(walks)
		return err
	}
}

// buildHistoryOptions reads the history flags. The database directory comes
// from --db-dir, then the configuration file, then the XDG default.
func buildHistoryOptions(cmd *cobra.Command) (*historyOptions, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if _, err := config.Load(cfg); err != nil {
		return nil, err
	}

	opts := &historyOptions{dbDir: cfg.DBDir}
	if err := stringFlag(cmd, "db-dir", &opts.dbDir); err != nil {
		return nil, err
	}
	if opts.limit, err = cmd.Flags().GetInt("limit"); err != nil {
		return nil, err
	}
	if opts.fullIDs, err = cmd.Flags().GetBool("full-ids"); err != nil {
		return nil, err
	}
	if opts.remove, err = cmd.Flags().GetBool("delete"); err != nil {
		return nil, err
	}
	if opts.json, err = cmd.Flags().GetBool("json"); err != nil {
		return nil, err
	}
	if opts.markdown, err = cmd.Flags().GetBool("markdown"); err != nil {
		return nil, err
	}
	if opts.json && opts.markdown {
		return nil, errConflictingFormats
	}
	return opts, nil
}

// newReportWriter selects the writer for the requested output format.
func newReportWriter(out io.Writer, opts *historyOptions) report.Writer {
	switch {
	case opts.json:
		return report.NewJSONWriter(out, report.WithPrettyPrint())
	case opts.markdown:
		return report.NewMarkdownWriter(out)
	default:
		return report.NewSimpleWriter(out, report.WithFullIDs(opts.fullIDs))
	}
}
