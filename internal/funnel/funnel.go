// Package funnel narrows a title guess to one confirmed catalog record through
// an ordered sequence of interactive selections.
//
// Steps, in order:
//
//	confirm_title     accept the guessed title or type another
//	search            query the provider
//	select_game       pick one candidate
//	details           load the candidate's record
//	select_platform   pick a platform release (skipped when the provider
//	                  already binds hits to the target platform)
//	release           load release dates and companies
//	select_companies  pick zero or more companies
//	select_genre      pick one genre
//	select_images     pick zero or more screenshots, in display order
//
// Any required step that comes back empty, unavailable or with an invalid
// answer abandons the title. Companies and images are optional.
package funnel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"launchmeta/internal/catalog"
	"launchmeta/internal/logging"
	"launchmeta/internal/prompt"
)

// Step names used in logs and abandonment errors.
const (
	StepConfirmTitle    = "confirm_title"
	StepSearch          = "search"
	StepSelectGame      = "select_game"
	StepDetails         = "details"
	StepSelectPlatform  = "select_platform"
	StepRelease         = "release"
	StepSelectCompanies = "select_companies"
	StepSelectGenre     = "select_genre"
	StepSelectImages    = "select_images"
)

// AbandonedError ends processing of one title without failing the run.
type AbandonedError struct {
	Step   string
	Reason string
	Err    error
}

func (e *AbandonedError) Error() string {
	if e.Err != nil && !errors.Is(e.Err, prompt.ErrAbandoned) {
		return fmt.Sprintf("%s abandoned: %s: %v", e.Step, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s abandoned: %s", e.Step, e.Reason)
}

// Unwrap exposes prompt.ErrAbandoned and the underlying cause.
func (e *AbandonedError) Unwrap() []error {
	if e.Err == nil {
		return []error{prompt.ErrAbandoned}
	}
	return []error{prompt.ErrAbandoned, e.Err}
}

// Resolution is the set of confirmed selections for one title.
type Resolution struct {
	SearchTitle string
	Game        catalog.Game
	Release     catalog.PlatformRelease
	Companies   []catalog.Company
	Genre       catalog.Genre
	Images      []catalog.Image
	Source      string
}

// Funnel drives the selection steps against one provider.
type Funnel struct {
	provider catalog.Provider
	prompter *prompt.Prompter
	platform string
	logger   *slog.Logger
}

// New creates a funnel. platform is the target platform name used to pick the
// implied release for providers that resolve platforms themselves.
func New(provider catalog.Provider, prompter *prompt.Prompter, platform string, logger *slog.Logger) *Funnel {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Funnel{
		provider: provider,
		prompter: prompter,
		platform: platform,
		logger:   logging.NewComponentLogger(logger, "funnel"),
	}
}

// Resolve walks every step for guess. It returns an *AbandonedError when the
// title is skipped and other errors only for input or context failures.
func (f *Funnel) Resolve(ctx context.Context, guess string) (Resolution, error) {
	logger := f.logger.With(logging.String(logging.FieldTitle, guess), logging.String(logging.FieldProvider, f.provider.Name()))
	res := Resolution{Source: f.provider.Source()}

	title, err := f.confirmTitle(guess)
	if err != nil {
		return f.abandon(logger, err)
	}
	res.SearchTitle = title

	if err := ctx.Err(); err != nil {
		return Resolution{}, err
	}
	f.prompter.Say("Searching %s for %q...", f.provider.Name(), title)
	candidates := f.provider.Search(ctx, title)
	if !candidates.OK() {
		return f.abandon(logger, outcomeAbandon(StepSearch, "no matching games", candidates.Status, candidates.Err))
	}
	logger.Debug("search complete", logging.Int("candidates", len(candidates.Value)))

	candidate, err := prompt.SelectOne(f.prompter, f.candidateMenu(candidates.Value))
	if err != nil {
		return f.abandon(logger, selectAbandon(StepSelectGame, err))
	}

	details := f.provider.Details(ctx, candidate.Value)
	if !details.OK() {
		return f.abandon(logger, outcomeAbandon(StepDetails, "game details missing", details.Status, details.Err))
	}
	res.Game = details.Value

	platform, err := f.selectPlatform(res.Game)
	if err != nil {
		return f.abandon(logger, err)
	}

	release := f.provider.PlatformRelease(ctx, res.Game, platform)
	if !release.OK() {
		return f.abandon(logger, outcomeAbandon(StepRelease, "release information missing", release.Status, release.Err))
	}
	res.Release = release.Value

	if res.Companies, err = f.selectCompanies(ctx, logger, res.Release); err != nil {
		return Resolution{}, err
	}

	genre, err := f.selectGenre(ctx, res.Game)
	if err != nil {
		return f.abandon(logger, err)
	}
	res.Genre = genre

	if res.Images, err = f.selectImages(ctx, logger, res.Release); err != nil {
		return Resolution{}, err
	}

	logger.Info("title resolved",
		logging.String("game", res.Game.Title),
		logging.String("genre", res.Genre.Name),
		logging.Int("companies", len(res.Companies)),
		logging.Int(logging.FieldImageCount, len(res.Images)),
	)
	return res, nil
}

func (f *Funnel) confirmTitle(guess string) (string, error) {
	answer, err := f.prompter.Ask(fmt.Sprintf("Use [%s] for search? (y/n)", guess))
	if err != nil {
		return "", err
	}
	switch answer {
	case "y", "Y":
		return guess, nil
	case "n", "N":
	default:
		return "", &AbandonedError{Step: StepConfirmTitle, Reason: "not a valid answer"}
	}
	alternative, err := f.prompter.Ask("Enter the title to search for:")
	if err != nil {
		return "", err
	}
	if alternative == "" {
		return "", &AbandonedError{Step: StepConfirmTitle, Reason: "no title entered"}
	}
	return alternative, nil
}

func (f *Funnel) candidateMenu(candidates []catalog.Candidate) prompt.Menu[catalog.Candidate] {
	if f.provider.ResolvesPlatform() {
		return prompt.NewMenu("Choose a game:", []string{"ID", "Title", "Platform", "Year", "Genre"}, candidates,
			func(c catalog.Candidate) []string {
				return []string{c.ID, c.Title, strings.Join(c.PlatformNames(), ", "), c.Year, c.Genre}
			})
	}
	return prompt.NewMenu("Choose a game:", []string{"ID", "Title", "Platforms"}, candidates,
		func(c catalog.Candidate) []string {
			return []string{c.ID, c.Title, strings.Join(c.PlatformNames(), ", ")}
		})
}

func (f *Funnel) selectPlatform(game catalog.Game) (catalog.Platform, error) {
	if len(game.Platforms) == 0 {
		return catalog.Platform{}, &AbandonedError{Step: StepSelectPlatform, Reason: "game lists no platforms"}
	}
	if f.provider.ResolvesPlatform() {
		for _, p := range game.Platforms {
			if p.Name == f.platform {
				return p, nil
			}
		}
		return game.Platforms[0], nil
	}
	menu := prompt.NewMenu("Choose a platform release:", []string{"ID", "Platform", "First release"}, game.Platforms,
		func(p catalog.Platform) []string {
			return []string{fmt.Sprint(p.ID), p.Name, p.FirstReleaseDate}
		})
	option, err := prompt.SelectOne(f.prompter, menu)
	if err != nil {
		return catalog.Platform{}, selectAbandon(StepSelectPlatform, err)
	}
	return option.Value, nil
}

func (f *Funnel) selectCompanies(ctx context.Context, logger *slog.Logger, release catalog.PlatformRelease) ([]catalog.Company, error) {
	out := f.provider.Companies(ctx, release)
	if !out.OK() {
		logger.Info("no companies offered", logging.String(logging.FieldStep, StepSelectCompanies), logging.String("status", out.Status.String()))
		return nil, nil
	}
	menu := prompt.NewMenu("Choose companies:", []string{"Company", "Role", "Release date"}, out.Value,
		func(c catalog.Company) []string {
			return []string{c.Name, c.Role, c.ReleaseDate}
		})
	selected, err := prompt.SelectMany(f.prompter, menu)
	if errors.Is(err, prompt.ErrAbandoned) {
		logger.Info("no companies selected", logging.String(logging.FieldStep, StepSelectCompanies))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	companies := make([]catalog.Company, 0, len(selected))
	for _, option := range selected {
		companies = append(companies, option.Value)
	}
	return companies, nil
}

func (f *Funnel) selectGenre(ctx context.Context, game catalog.Game) (catalog.Genre, error) {
	out := f.provider.Genres(ctx, game)
	if !out.OK() {
		return catalog.Genre{}, outcomeAbandon(StepSelectGenre, "no genres offered", out.Status, out.Err)
	}
	menu := prompt.NewMenu("Choose a genre:", []string{"Genre", "Category"}, out.Value,
		func(g catalog.Genre) []string {
			return []string{g.Name, g.Category}
		})
	option, err := prompt.SelectOne(f.prompter, menu)
	if err != nil {
		return catalog.Genre{}, selectAbandon(StepSelectGenre, err)
	}
	return option.Value, nil
}

func (f *Funnel) selectImages(ctx context.Context, logger *slog.Logger, release catalog.PlatformRelease) ([]catalog.Image, error) {
	out := f.provider.Images(ctx, release)
	if !out.OK() {
		logger.Info("no images offered", logging.String(logging.FieldStep, StepSelectImages), logging.String("status", out.Status.String()))
		return nil, nil
	}
	f.prompter.Say("The order you enter the numbers is the order the images are shown in the launcher.")
	menu := prompt.NewMenu("Choose screenshots:", []string{"Caption", "Image"}, out.Value,
		func(i catalog.Image) []string {
			return []string{i.Caption, i.SourceURL}
		})
	selected, err := prompt.SelectMany(f.prompter, menu)
	if errors.Is(err, prompt.ErrAbandoned) {
		logger.Info("no images selected", logging.String(logging.FieldStep, StepSelectImages))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	images := make([]catalog.Image, 0, len(selected))
	for _, option := range selected {
		images = append(images, option.Value)
	}
	return images, nil
}

// abandon logs err when it is an abandonment and passes it through.
func (f *Funnel) abandon(logger *slog.Logger, err error) (Resolution, error) {
	var abandoned *AbandonedError
	if errors.As(err, &abandoned) {
		attrs := []any{
			logging.String(logging.FieldStep, abandoned.Step),
			logging.String("reason", abandoned.Reason),
		}
		if abandoned.Err != nil && !errors.Is(abandoned.Err, prompt.ErrAbandoned) {
			attrs = append(attrs, logging.Error(abandoned.Err))
		}
		logger.Info("title abandoned", attrs...)
		f.prompter.Say("Skipping this game: %s.", abandoned.Reason)
	}
	return Resolution{}, err
}

func outcomeAbandon(step, reason string, status catalog.Status, err error) error {
	if status == catalog.StatusUnavailable {
		reason = "source unavailable"
	}
	return &AbandonedError{Step: step, Reason: reason, Err: err}
}

func selectAbandon(step string, err error) error {
	if errors.Is(err, prompt.ErrAbandoned) {
		return &AbandonedError{Step: step, Reason: "no valid selection", Err: err}
	}
	return err
}
