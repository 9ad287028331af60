package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/w-vac/wikipedia-webscraper1.0/internal/config"
	"github.com/w-vac/wikipedia-webscraper1.0/internal/crawler"
	"github.com/w-vac/wikipedia-webscraper1.0/internal/database"
	"github.com/w-vac/wikipedia-webscraper1.0/internal/export"
	"github.com/w-vac/wikipedia-webscraper1.0/internal/fetch"
	"github.com/w-vac/wikipedia-webscraper1.0/internal/log"
	"github.com/w-vac/wikipedia-webscraper1.0/internal/model"
	"github.com/w-vac/wikipedia-webscraper1.0/internal/opener"
	"github.com/w-vac/wikipedia-webscraper1.0/internal/prompt"
	"github.com/w-vac/wikipedia-webscraper1.0/internal/wiki"
)

// User-facing prompts.
const (
	startURLPrompt  = "Enter the initial Wikipedia URL to start scraping (press Enter to start on a random page): "
	openCSVPrompt   = "Would you like to open the CSV file now? (y/n): "
	openExcelPrompt = "Would you like to open the Excel file now? (y/n): "
)

// openPrompts maps each export format to the question offering to open it.
var openPrompts = map[export.Format]string{
	export.FormatCSV:  openCSVPrompt,
	export.FormatXLSX: openExcelPrompt,
}

// NewWalkCmd creates the walk command.
func NewWalkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "walk [start-url]",
		Short: "Walk Wikipedia by following random article links",
		Long: `Walk starts at the given article, the article entered at the prompt, or a
random article, and keeps following one randomly chosen article link per page.

The walk stops when:
- the chosen link leads to a page that was already visited
- a page has no heading or no usable article link
- a page cannot be fetched
- you press Ctrl+C

The visited pages are then written to wiki_urls.csv and wiki_urls.xlsx,
sorted by title, and the run is recorded in the history database.

Examples:
  # Ask for a start page interactively
  wikiwalk walk

  # Start from a given article
  wikiwalk walk https://en.wikipedia.org/wiki/Alan_Turing

  # Start on a random page without any questions
  wikiwalk walk --no-prompt

  # Walk the German Wikipedia and write files to ./out
  wikiwalk walk --base-url https://de.wikipedia.org -o out`,
		Args: cobra.MaximumNArgs(1),
		RunE: runWalkCmd,
	}

	addWalkFlags(cmd)

	return cmd
}

// addWalkFlags registers the walk flags on cmd. The root command shares them
// so that a bare "wikiwalk" runs a walk.
func addWalkFlags(cmd *cobra.Command) {
	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .wikiwalk in current or home directory)")

	// Walk behavior flags
	cmd.Flags().String("base-url", config.DefaultBaseURL,
		"Wiki origin that links are resolved against")
	cmd.Flags().Duration("min-delay", config.DefaultMinDelay,
		"Shortest pause between pages")
	cmd.Flags().Duration("max-delay", config.DefaultMaxDelay,
		"Longest pause between pages")
	cmd.Flags().BoolP("no-prompt", "n", false,
		"Do not ask any questions (random start page, no file opening)")

	// HTTP flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each request")
	cmd.Flags().String("user-agent", config.DefaultUserAgent,
		"User-Agent header sent with each request")
	cmd.Flags().Int64("max-body-size", config.DefaultMaxBodySize,
		"Maximum response body size in bytes")
	cmd.Flags().StringToStringP("header", "H", nil,
		"Extra request header as key=value (repeatable)")
	cmd.Flags().String("proxy", "",
		"SOCKS5 proxy address (e.g., 127.0.0.1:9050)")

	// Output flags
	cmd.Flags().StringP("output-dir", "o", config.DefaultOutputDir,
		"Directory for the CSV and XLSX files")
	cmd.Flags().String("output-name", config.DefaultOutputBase,
		"File name of the exported files, without extension")
	cmd.Flags().Bool("no-history", false,
		"Do not record this walk in the history database")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")
}

// runWalkCmd executes the walk command.
func runWalkCmd(cmd *cobra.Command, args []string) error {
	// Build config from defaults, the configuration file, and flags
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	format, err := log.ParseFormat(cfg.LogFormat)
	if err != nil {
		return err
	}
	logger := log.NewLogger(cmd.ErrOrStderr(), cfg.Verbose, format)
	slog.SetDefault(logger)

	client, err := newFetchClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to create HTTP client: %w", err)
	}
	logClientSettings(logger, cfg, client)

	app := newWalkApp(cfg, logger, cmd.InOrStdin(), cmd.OutOrStdout(), client)
	return app.run(cmd.Context())
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from defaults, the configuration file, and
// cobra command flags. Only flags set on the command line override the file.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user named a config file explicitly, it must exist.
	// Otherwise a missing .wikiwalk is not an error.
	if _, err := config.Load(cfg); err != nil {
		return nil, err
	}

	if len(args) > 0 {
		cfg.StartURL = args[0]
	}

	if err := stringFlag(cmd, "base-url", &cfg.BaseURL); err != nil {
		return nil, err
	}
	if err := durationFlag(cmd, "min-delay", &cfg.MinDelay); err != nil {
		return nil, err
	}
	if err := durationFlag(cmd, "max-delay", &cfg.MaxDelay); err != nil {
		return nil, err
	}
	if err := durationFlag(cmd, "timeout", &cfg.Timeout); err != nil {
		return nil, err
	}
	if err := stringFlag(cmd, "user-agent", &cfg.UserAgent); err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("max-body-size") {
		if cfg.MaxBodySize, err = cmd.Flags().GetInt64("max-body-size"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("header") {
		headers, err := cmd.Flags().GetStringToString("header")
		if err != nil {
			return nil, err
		}
		maps.Copy(cfg.Headers, headers)
	}
	if err := stringFlag(cmd, "proxy", &cfg.ProxyAddress); err != nil {
		return nil, err
	}
	if err := stringFlag(cmd, "output-dir", &cfg.OutputDir); err != nil {
		return nil, err
	}
	if err := stringFlag(cmd, "output-name", &cfg.OutputBase); err != nil {
		return nil, err
	}
	if err := stringFlag(cmd, "db-dir", &cfg.DBDir); err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("no-history") {
		noHistory, err := cmd.Flags().GetBool("no-history")
		if err != nil {
			return nil, err
		}
		cfg.SaveHistory = !noHistory
	}
	if cfg.NoPrompt, err = cmd.Flags().GetBool("no-prompt"); err != nil {
		return nil, err
	}
	if err := stringFlag(cmd, "log-format", &cfg.LogFormat); err != nil {
		return nil, err
	}
	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// stringFlag copies the flag name into dst if it was set on the command line.
func stringFlag(cmd *cobra.Command, name string, dst *string) error {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// durationFlag copies the flag name into dst if it was set on the command line.
func durationFlag(cmd *cobra.Command, name string, dst *time.Duration) error {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetDuration(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// newFetchClient creates the HTTP client described by cfg.
func newFetchClient(cfg *config.Config) (*fetch.Client, error) {
	opts := []fetch.Option{
		fetch.WithTimeout(cfg.Timeout),
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
		fetch.WithHeaders(cfg.Headers),
	}
	if cfg.ProxyAddress != "" {
		opts = append(opts, fetch.WithProxy(cfg.ProxyAddress))
	}
	return fetch.NewClient(opts...)
}

// logClientSettings records how pages will be requested. Header values from
// the configuration file go through the redacting handler.
func logClientSettings(logger *slog.Logger, cfg *config.Config, client *fetch.Client) {
	proxy := client.ProxyAddress()
	if proxy == "" {
		proxy = "direct"
	}
	logger.Debug("http client ready",
		"user_agent", cfg.UserAgent,
		"timeout", cfg.Timeout,
		"proxy", proxy,
		log.Headers("headers", cfg.Headers))
}

// walkApp runs one walk from the start prompt to the open prompts.
type walkApp struct {
	cfg     *config.Config
	logger  *slog.Logger
	in      io.Reader
	out     io.Writer
	fetcher crawler.Fetcher
	opener  opener.Opener

	// sleeper pauses between pages. nil uses crawler.Sleep.
	sleeper crawler.Sleeper

	// notify derives the context that is cancelled on Ctrl+C.
	notify func(context.Context) (context.Context, context.CancelFunc)

	now   func() time.Time
	newID func() string
}

// newWalkApp creates a walkApp wired to the real system.
func newWalkApp(cfg *config.Config, logger *slog.Logger, in io.Reader, out io.Writer, fetcher crawler.Fetcher) *walkApp {
	return &walkApp{
		cfg:     cfg,
		logger:  logger,
		in:      in,
		out:     out,
		fetcher: fetcher,
		opener:  opener.NewSystem(),
		sleeper: spinnerSleeper(out),
		notify:  interruptContext,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// interruptContext returns a context cancelled by SIGINT or SIGTERM.
func interruptContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

// run performs the walk, then always exports, records, prints the banner and
// offers to open the files, whatever ended the walk. It returns an error only
// if the configuration is unusable or no file could be written.
func (a *walkApp) run(ctx context.Context) error {
	base, err := a.cfg.ParsedBaseURL()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	p := prompt.New(a.in, a.out)

	// From the start prompt on, Ctrl+C only stops the walk. Export and the
	// open prompts run after the handler is released, so a second Ctrl+C
	// exits as usual.
	walkCtx, stop := a.notify(ctx)
	start, err := a.startURL(walkCtx, p, base)
	if err != nil && walkCtx.Err() == nil {
		stop()
		return err
	}

	walk := &model.Walk{ID: a.newID(), StartedAt: a.now()}
	rec := model.NewRecorder()

	var walkErr error
	if err != nil {
		walk.Reason, walkErr = model.ReasonInterrupted, err
	} else {
		walk.StartURL, walk.Reason, walkErr = a.walk(walkCtx, base, start, rec)
	}
	stop()

	walk.FinishedAt = a.now()
	walk.Pages = rec.Pages()
	if walkErr != nil && walk.Reason.IsError() {
		walk.Error = walkErr.Error()
	}
	a.reportOutcome(walk, rec, walkErr)

	artifacts, exportErr := export.Files(a.cfg.OutputDir, a.cfg.OutputBase, walk.Pages)
	for _, art := range artifacts {
		if art.Err != nil {
			a.logger.Error("export failed", "path", art.Path, "error", art.Err)
			fmt.Fprintf(a.out, "Failed to save %s: %v\n", art.Path, art.Err)
			continue
		}
		fmt.Fprintf(a.out, "Data saved to %s\n", art.Path)
	}

	a.saveHistory(context.WithoutCancel(ctx), walk)
	printBanner(a.out)

	if !a.cfg.NoPrompt {
		a.offerToOpen(context.WithoutCancel(ctx), p, artifacts)
	}

	if exportErr != nil && !anyWritten(artifacts) {
		return exportErr
	}
	return nil
}

// startURL returns the configured start URL, or asks for one. An empty
// result means a random page. Paths like "/wiki/Go" are resolved against base.
// If ctx is done while waiting for an answer, the error wraps ctx.Err().
func (a *walkApp) startURL(ctx context.Context, p *prompt.Prompter, base *url.URL) (string, error) {
	start := a.cfg.StartURL
	if start == "" && !a.cfg.NoPrompt {
		answer, err := p.AskContext(ctx, startURLPrompt)
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read start URL: %w", err)
		}
		start = answer
	}
	if strings.HasPrefix(start, "/") {
		return wiki.ResolveURL(base, start)
	}
	return start, nil
}

// walk resolves a seed if needed and runs the walker. It returns the URL the
// walk started from, why it ended, and the error behind that, if any.
func (a *walkApp) walk(ctx context.Context, base *url.URL, start string, rec *model.Recorder) (string, model.TerminationReason, error) {
	if start == "" {
		seed, err := crawler.ResolveSeed(ctx, a.fetcher, base)
		if err != nil {
			if ctx.Err() != nil {
				return "", model.ReasonInterrupted, ctx.Err()
			}
			return "", model.ReasonSeedFailed, err
		}
		a.logger.Debug("random start page", "url", seed)
		start = seed
	}

	w := crawler.NewWalker(a.fetcher,
		crawler.WithBaseURL(base),
		crawler.WithDelayRange(a.cfg.MinDelay, a.cfg.MaxDelay),
		crawler.WithSleeper(a.sleeper),
		crawler.WithObserver(&progress{out: a.out, logger: a.logger}),
		crawler.WithLogger(a.logger),
	)
	res := w.Walk(ctx, start, rec)
	return start, res.Reason, res.Err
}

// reportOutcome prints why the walk ended.
func (a *walkApp) reportOutcome(walk *model.Walk, rec *model.Recorder, err error) {
	switch walk.Reason {
	case model.ReasonInterrupted:
		fmt.Fprintln(a.out, "\nProcess interrupted. Exiting...")
	case model.ReasonSeedFailed:
		fmt.Fprintf(a.out, "Failed to get random Wikipedia page: %v\n", err)
		fmt.Fprintln(a.out, "Failed to get a random Wikipedia page. Exiting...")
	case model.ReasonFetchFailed:
		fmt.Fprintf(a.out, "An error occurred: %v\n", err)
	}
	attrs := []any{
		"id", walk.ID,
		"reason", walk.Reason.String(),
		"pages", len(walk.Pages),
		"duration", walk.Duration().Round(time.Millisecond),
	}
	if last, ok := rec.Last(); ok {
		attrs = append(attrs, "last_title", last.Title)
	}
	a.logger.Info("walk finished", attrs...)
}

// saveHistory records walk in the history database. Failures are logged only.
func (a *walkApp) saveHistory(ctx context.Context, walk *model.Walk) {
	if !a.cfg.SaveHistory {
		return
	}

	db, err := database.Open(a.cfg.DBDir, database.DefaultOptions())
	if err != nil {
		a.logger.Warn("failed to open history database", "dir", a.cfg.DBDir, "error", err)
		return
	}
	defer func() {
		if err := db.Close(); err != nil {
			a.logger.Warn("failed to close history database", "error", err)
		}
	}()

	if err := db.SaveWalk(ctx, walk); err != nil {
		a.logger.Warn("failed to save walk to history", "id", walk.ID, "error", err)
		return
	}
	a.logger.Debug("walk saved to history", "id", walk.ID, "db", db.Path())
}

// offerToOpen asks, per written file, whether to open it now.
func (a *walkApp) offerToOpen(ctx context.Context, p *prompt.Prompter, artifacts []export.Artifact) {
	for _, art := range artifacts {
		question, ok := openPrompts[art.Format]
		if !ok || art.Err != nil {
			continue
		}

		yes, err := p.Confirm(question)
		if err != nil {
			a.logger.Warn("failed to read answer", "error", err)
			return
		}
		if !yes {
			continue
		}

		if err := a.opener.Open(ctx, art.Path); err != nil {
			if errors.Is(err, opener.ErrUnsupportedPlatform) {
				fmt.Fprintln(a.out, "Unsupported OS. Please open the file manually.")
				continue
			}
			a.logger.Debug("failed to open file", "path", art.Path, "error", err)
			fmt.Fprintf(a.out, "Failed to open file: %v\n", err)
		}
	}
}

// anyWritten reports whether at least one artifact was written.
func anyWritten(artifacts []export.Artifact) bool {
	for _, art := range artifacts {
		if art.Err == nil {
			return true
		}
	}
	return false
}

// progress prints each visited page.
type progress struct {
	out    io.Writer
	logger *slog.Logger
}

// OnVisit prints the page that was just recorded.
func (p *progress) OnVisit(_ int, page model.VisitedPage) {
	fmt.Fprintf(p.out, "Scraping: %s\n", page.Title)
	fmt.Fprintf(p.out, "URL: %s\n", page.URL)
}

// OnDelay logs the pause before the next page.
func (p *progress) OnDelay(d time.Duration) {
	p.logger.Debug("waiting before next page", "delay", d)
}

// spinnerSleeper returns a Sleeper that shows a spinner while it waits if out
// is an *os.File, and nil for other writers. The spinner draws nothing when
// that file is not a terminal, such as stdout redirected to a file.
func spinnerSleeper(out io.Writer) crawler.Sleeper {
	f, ok := out.(*os.File)
	if !ok {
		return nil
	}
	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriterFile(f))
	return func(ctx context.Context, d time.Duration) error {
		s.Suffix = fmt.Sprintf(" waiting %s before the next page", d.Round(100*time.Millisecond))
		s.Start()
		defer s.Stop()
		return crawler.Sleep(ctx, d)
	}
}
