package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"launchmeta/internal/artifacts"
	"launchmeta/internal/catalog"
	"launchmeta/internal/catalog/launchbox"
	"launchmeta/internal/catalog/mobygames"
	"launchmeta/internal/catalog/respcache"
	"launchmeta/internal/config"
	"launchmeta/internal/dirlist"
	"launchmeta/internal/funnel"
	"launchmeta/internal/logging"
	"launchmeta/internal/prompt"
	"launchmeta/internal/transcode"
	"launchmeta/internal/workflow"
)

type runOptions struct {
	provider string
	list     string
	output   string
	platform string
	answers  string
	tables   bool
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Walk the directory list and write metadata for each title",
		Long: "Reads one directory per line from the input list, guesses a title for each,\n" +
			"and asks which catalog record, companies, genre and screenshots to use.\n" +
			"Titles that already have a metadata file are skipped.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyRunOverrides(cfg, opts); err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return executeRun(runCtx, cmd, cfg, opts, logger)
		},
	}

	cmd.Flags().StringVar(&opts.provider, "provider", "", "Catalog provider: remote or local (overrides catalog.provider)")
	cmd.Flags().StringVarP(&opts.list, "list", "l", "", "Directory list to process (overrides paths.input_list)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output root (overrides paths.output_dir)")
	cmd.Flags().StringVar(&opts.platform, "platform", "", "Target platform name (overrides catalog.platform)")
	cmd.Flags().StringVar(&opts.answers, "answers", "", "Read answers from this file instead of the terminal")
	cmd.Flags().BoolVar(&opts.tables, "tables", false, "Render menus as tables (default when stdout is a terminal)")
	return cmd
}

func applyRunOverrides(cfg *config.Config, opts runOptions) error {
	if value := strings.TrimSpace(opts.provider); value != "" {
		cfg.Catalog.Provider = strings.ToLower(value)
	}
	if value := strings.TrimSpace(opts.platform); value != "" {
		cfg.Catalog.Platform = value
	}
	if value := strings.TrimSpace(opts.list); value != "" {
		expanded, err := config.ExpandPath(value)
		if err != nil {
			return fmt.Errorf("resolve --list: %w", err)
		}
		cfg.Paths.InputList = expanded
	}
	if value := strings.TrimSpace(opts.output); value != "" {
		expanded, err := config.ExpandPath(value)
		if err != nil {
			return fmt.Errorf("resolve --output: %w", err)
		}
		cfg.Paths.OutputDir = expanded
	}
	return cfg.Validate()
}

func executeRun(ctx context.Context, cmd *cobra.Command, cfg *config.Config, opts runOptions, logger *slog.Logger) error {
	entries, bad, err := dirlist.Load(cfg.Paths.InputList)
	if err != nil {
		return err
	}
	for _, lineErr := range bad {
		logging.WarnWithContext(logger, "directory list line ignored", "dirlist_line_invalid",
			logging.Error(lineErr),
			logging.String(logging.FieldErrorHint, "use drive-qualified paths such as D:\\GAMES\\Title"),
		)
	}
	if len(entries) == 0 {
		return fmt.Errorf("no directories listed in %s", cfg.Paths.InputList)
	}

	input, err := answerSource(cmd, opts.answers)
	if err != nil {
		return err
	}
	tables := opts.tables
	if !cmd.Flags().Changed("tables") {
		tables = isTerminal(cmd.OutOrStdout())
	}
	prompter := prompt.New(input, cmd.OutOrStdout(), prompt.WithTables(tables))

	provider, closeProvider, err := openProvider(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeProvider()

	converter, err := transcode.New(cfg.Artifacts.Transcoder, cfg.Artifacts.Width, cfg.Artifacts.Height, cfg.Artifacts.BMPSubtype)
	if err != nil {
		return err
	}
	layout := artifacts.Layout{MetadataFile: cfg.Artifacts.MetadataFile, ImagePrefix: cfg.Artifacts.ImagePrefix}
	pipeline := artifacts.New(layout, nil, cfg.ImageFetchTimeout(), converter, logger)

	runner := workflow.NewRunner(
		workflow.Options{OutputRoot: cfg.Paths.OutputDir, Layout: layout, LockPath: cfg.LockPath()},
		funnel.New(provider, prompter, cfg.Catalog.Platform, logger),
		pipeline,
		prompter,
		logger,
	)

	summary, runErr := runner.Run(ctx, entries)
	printSummary(cmd.OutOrStdout(), summary)
	if errors.Is(runErr, context.Canceled) {
		fmt.Fprintln(cmd.OutOrStdout(), "Interrupted; finished titles were kept.")
	}
	return runErr
}

func answerSource(cmd *cobra.Command, path string) (prompt.LineReader, error) {
	if strings.TrimSpace(path) == "" {
		return prompt.NewConsole(cmd.InOrStdin()), nil
	}
	script, err := prompt.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("load answers: %w", err)
	}
	return script, nil
}

// openProvider builds the configured catalog. The returned close func is
// always non-nil.
func openProvider(ctx context.Context, cfg *config.Config, logger *slog.Logger) (catalog.Provider, func(), error) {
	noop := func() {}
	if !cfg.UseRemote() {
		fetcher := launchbox.NewFetcher(cfg.LaunchBox.MetadataPath, cfg.LaunchBox.DownloadURL, cfg.DatasetMaxAge(), cfg.DatasetDownloadTimeout(), logger)
		if err := fetcher.Ensure(ctx); err != nil {
			return nil, noop, err
		}
		dataset, err := launchbox.Load(cfg.LaunchBox.MetadataPath)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("local dataset loaded",
			logging.String("path", cfg.LaunchBox.MetadataPath),
			logging.Int("games", len(dataset.Games())),
		)
		return launchbox.NewProvider(dataset, cfg.Catalog.Platform, cfg.LaunchBox.ImageBaseURL), noop, nil
	}

	opts := []mobygames.Option{
		mobygames.WithHTTPClient(&http.Client{Timeout: cfg.RemoteTimeout()}),
		mobygames.WithLogger(logger),
	}
	closer := noop
	if cfg.MobyGames.CacheEnabled {
		store, err := respcache.Open(cfg.ResponseCachePath(), cfg.CacheTTL())
		if err != nil {
			logging.WarnWithContext(logger, "response cache unavailable", "response_cache_unavailable",
				logging.Error(err),
				logging.String(logging.FieldImpact, "every lookup goes to the network"),
			)
		} else {
			opts = append(opts, mobygames.WithCache(store))
			closer = func() {
				if err := store.Close(); err != nil {
					logger.Warn("close response cache", logging.Error(err))
				}
			}
		}
	}
	client, err := mobygames.New(cfg.MobyGames.APIKey, cfg.MobyGames.BaseURL, cfg.Catalog.Platform, cfg.Catalog.GenreCategories, cfg.RequestDelay(), opts...)
	if err != nil {
		closer()
		return nil, noop, err
	}
	return client, closer, nil
}

func printSummary(out io.Writer, summary workflow.Summary) {
	rows := [][]string{
		{"Total titles", strconv.Itoa(summary.Titles)},
		{"+ metadata", strconv.Itoa(summary.WithMetadata)},
		{"+ images", strconv.Itoa(summary.WithImages)},
		{"Written this run", strconv.Itoa(summary.Written)},
		{"Already complete", strconv.Itoa(summary.Skipped)},
		{"Abandoned", strconv.Itoa(summary.Abandoned)},
		{"Incomplete", strconv.Itoa(summary.Incomplete)},
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderTable([]string{"Summary", "Count"}, rows, []columnAlignment{alignLeft, alignRight}))
}
