package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"launchmeta/internal/artifacts"
	"launchmeta/internal/catalog"
	"launchmeta/internal/dirlist"
	"launchmeta/internal/fileutil"
	"launchmeta/internal/funnel"
	"launchmeta/internal/logging"
	"launchmeta/internal/metadata"
	"launchmeta/internal/prompt"
)

// Resolver turns a title guess into confirmed selections.
type Resolver interface {
	Resolve(ctx context.Context, guess string) (funnel.Resolution, error)
}

// Artifacts produces images and commits the sidecar for one title.
type Artifacts interface {
	Run(ctx context.Context, dir, sidecar string, images []catalog.Image) (artifacts.Result, error)
}

// Options locate the output tree.
type Options struct {
	OutputRoot string
	Layout     artifacts.Layout
	// LockPath defaults to a hidden file in OutputRoot.
	LockPath string
}

// Runner processes directory entries sequentially.
type Runner struct {
	opts     Options
	resolver Resolver
	pipeline Artifacts
	prompter *prompt.Prompter
	logger   *slog.Logger
}

// NewRunner wires a runner.
func NewRunner(opts Options, resolver Resolver, pipeline Artifacts, prompter *prompt.Prompter, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	if strings.TrimSpace(opts.LockPath) == "" {
		opts.LockPath = filepath.Join(opts.OutputRoot, ".launchmeta.lock")
	}
	return &Runner{
		opts:     opts,
		resolver: resolver,
		pipeline: pipeline,
		prompter: prompter,
		logger:   logging.NewComponentLogger(logger, "workflow"),
	}
}

// Run processes every entry in order. Abandoned or incomplete titles are
// counted and the run continues; errors are returned only when the run itself
// cannot proceed.
func (r *Runner) Run(ctx context.Context, entries []dirlist.Entry) (Summary, error) {
	var summary Summary
	if err := os.MkdirAll(r.opts.OutputRoot, 0o755); err != nil {
		return summary, fmt.Errorf("create output root: %w", err)
	}

	lock := flock.New(r.opts.LockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return summary, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return summary, fmt.Errorf("another launchmeta run is writing to %s (lock %s)", r.opts.OutputRoot, r.opts.LockPath)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			r.logger.Warn("failed to release run lock", logging.Error(err))
		}
	}()

	logger := r.logger.With(logging.String(logging.FieldRunID, uuid.NewString()))
	logger.Info("run started", logging.Int("titles", len(entries)), logging.String("output", r.opts.OutputRoot))

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.Titles++
		outcome, err := r.processTitle(ctx, logger, entry, &summary)
		if err != nil {
			return summary, err
		}
		summary.record(outcome)
	}

	logger.Info("run complete",
		logging.Int("titles", summary.Titles),
		logging.Int("with_metadata", summary.WithMetadata),
		logging.Int("with_images", summary.WithImages),
		logging.Int("written", summary.Written),
		logging.Int("abandoned", summary.Abandoned),
		logging.Int("incomplete", summary.Incomplete),
	)
	return summary, nil
}

func (r *Runner) processTitle(ctx context.Context, logger *slog.Logger, entry dirlist.Entry, summary *Summary) (titleOutcome, error) {
	dir := entry.OutputDir(r.opts.OutputRoot)
	logger = logger.With(
		logging.String(logging.FieldTitle, entry.InferredTitle),
		logging.String(logging.FieldDirectory, dir),
	)

	r.prompter.Say("======================================")
	r.prompter.Say("Title:  %s", entry.InferredTitle)
	r.prompter.Say("Subdir: %s", entry.Subdir)
	r.prompter.Say("Drive:  %s", entry.DriveLabel)
	r.prompter.Say("Path:   %s", entry.UnixPath)

	hasImages, err := fileutil.Exists(filepath.Join(dir, r.opts.Layout.ImageName(1)))
	if err != nil {
		return outcomeIncomplete, fmt.Errorf("check images for %s: %w", dir, err)
	}
	if hasImages {
		r.prompter.Say("Images already exist")
		summary.WithImages++
	}
	hasMetadata, err := fileutil.Exists(filepath.Join(dir, r.opts.Layout.MetadataFile))
	if err != nil {
		return outcomeIncomplete, fmt.Errorf("check metadata for %s: %w", dir, err)
	}
	if hasMetadata {
		r.prompter.Say("Metadata file already exists")
		logger.Debug("title already complete")
		return outcomeSkipped, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return outcomeIncomplete, fmt.Errorf("create output directory: %w", err)
	}

	res, err := r.resolver.Resolve(ctx, entry.InferredTitle)
	if err != nil {
		if errors.Is(err, prompt.ErrAbandoned) {
			return outcomeAbandoned, nil
		}
		return outcomeIncomplete, err
	}

	sidecar := metadata.Render(RecordFrom(res))
	r.prompter.Say("")
	r.prompter.Say("%s", strings.TrimRight(sidecar, "\n"))
	for _, image := range res.Images {
		r.prompter.Say("image=%s", image.SourceURL)
	}
	confirmed, err := r.prompter.Confirm("Are you happy with this data?")
	if err != nil {
		return outcomeIncomplete, err
	}
	if !confirmed {
		logger.Info("title abandoned", logging.String(logging.FieldStep, "confirm_metadata"), logging.String("reason", "metadata rejected"))
		r.prompter.Say("Skipping to next game")
		return outcomeAbandoned, nil
	}

	if len(res.Images) > 0 {
		r.prompter.Say("Downloading %d image(s)...", len(res.Images))
	}
	result, err := r.pipeline.Run(ctx, dir, sidecar, res.Images)
	if err != nil {
		logging.ErrorWithContext(logger, "metadata write failed", "metadata_write_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check permissions on the output directory"),
		)
		r.prompter.Say("Could not write metadata: %v", err)
		return outcomeIncomplete, nil
	}
	if !result.Committed {
		r.prompter.Say("Not writing metadata, %d image(s) failed", result.Failures)
		return outcomeIncomplete, nil
	}
	r.prompter.Say("Wrote metadata!")
	return outcomeWritten, nil
}

// RecordFrom converts confirmed selections into a renderable record. The
// year comes from the platform's first release date, falling back to the
// release date.
func RecordFrom(res funnel.Resolution) metadata.Record {
	date := res.Release.FirstReleaseDate
	if strings.TrimSpace(date) == "" {
		date = res.Release.ReleaseDate
	}
	return metadata.Record{
		Title:     res.Game.Title,
		Year:      metadata.Year(date),
		Genre:     res.Genre.Name,
		Companies: res.Companies,
		Source:    res.Source,
	}
}
