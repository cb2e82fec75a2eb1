package launchbox

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/text/cases"

	"launchmeta/internal/catalog"
)

// SourceLabel is written to the sidecar's source field for records resolved
// from the local dataset.
const SourceLabel = "gamesdb.launchbox-app.com"

// Provider answers catalog queries from a loaded Dataset. Search hits are
// restricted to one platform, so the platform release is implied.
type Provider struct {
	dataset      *Dataset
	platform     string
	imageBaseURL string
	fold         cases.Caser
}

var _ catalog.Provider = (*Provider)(nil)

// NewProvider wraps dataset for the given platform. imageBaseURL is prefixed
// to every GameImage file name.
func NewProvider(dataset *Dataset, platform, imageBaseURL string) *Provider {
	return &Provider{
		dataset:      dataset,
		platform:     strings.TrimSpace(platform),
		imageBaseURL: imageBaseURL,
		fold:         cases.Fold(),
	}
}

// Name implements catalog.Provider.
func (p *Provider) Name() string { return "local" }

// Source implements catalog.Provider.
func (p *Provider) Source() string { return SourceLabel }

// ResolvesPlatform implements catalog.Provider.
func (p *Provider) ResolvesPlatform() bool { return true }

// Search returns games on the target platform whose name contains title,
// compared case-insensitively.
func (p *Provider) Search(_ context.Context, title string) catalog.Outcome[[]catalog.Candidate] {
	if p.dataset == nil {
		return catalog.Unavailable[[]catalog.Candidate](errors.New("launchbox dataset not loaded"))
	}
	needle := p.fold.String(strings.TrimSpace(title))
	if needle == "" {
		return catalog.Empty[[]catalog.Candidate]()
	}
	var candidates []catalog.Candidate
	for _, game := range p.dataset.Games() {
		if game.Platform != p.platform {
			continue
		}
		if !strings.Contains(p.fold.String(game.Name), needle) {
			continue
		}
		candidates = append(candidates, catalog.Candidate{
			ID:        game.DatabaseID,
			Title:     game.Name,
			Platforms: []catalog.Platform{p.platformOf(game)},
			Year:      yearOf(game.Released()),
			Genre:     game.Genres,
		})
	}
	return catalog.FoundList(candidates)
}

// Details projects the stored record for a candidate.
func (p *Provider) Details(_ context.Context, candidate catalog.Candidate) catalog.Outcome[catalog.Game] {
	game, ok := p.dataset.Game(candidate.ID)
	if !ok {
		return catalog.Empty[catalog.Game]()
	}
	return catalog.Found(catalog.Game{
		ID:        game.DatabaseID,
		Title:     game.Name,
		Platforms: []catalog.Platform{p.platformOf(game)},
		Genres:    catalog.SplitGenres(game.Genres),
	})
}

// PlatformRelease projects release date and companies from the stored
// record. Companies are listed developer first, then publisher.
func (p *Provider) PlatformRelease(_ context.Context, game catalog.Game, platform catalog.Platform) catalog.Outcome[catalog.PlatformRelease] {
	record, ok := p.dataset.Game(game.ID)
	if !ok {
		return catalog.Empty[catalog.PlatformRelease]()
	}
	released := record.Released()
	release := catalog.PlatformRelease{
		GameID:           record.DatabaseID,
		PlatformName:     platform.Name,
		ReleaseDate:      released,
		FirstReleaseDate: released,
	}
	if name := strings.TrimSpace(record.Developer); name != "" {
		release.Companies = append(release.Companies, catalog.Company{Name: name, Role: catalog.RoleDeveloper, ReleaseDate: released})
	}
	if name := strings.TrimSpace(record.Publisher); name != "" {
		release.Companies = append(release.Companies, catalog.Company{Name: name, Role: catalog.RolePublisher, ReleaseDate: released})
	}
	return catalog.Found(release)
}

// Companies implements catalog.Provider.
func (p *Provider) Companies(_ context.Context, release catalog.PlatformRelease) catalog.Outcome[[]catalog.Company] {
	return catalog.FoundList(append([]catalog.Company(nil), release.Companies...))
}

// Genres implements catalog.Provider. Local genres carry no category and are
// offered unfiltered.
func (p *Provider) Genres(_ context.Context, game catalog.Game) catalog.Outcome[[]catalog.Genre] {
	return catalog.FoundList(append([]catalog.Genre(nil), game.Genres...))
}

// Images lists every GameImage for the release's game. The caption is the
// image type.
func (p *Provider) Images(_ context.Context, release catalog.PlatformRelease) catalog.Outcome[[]catalog.Image] {
	var images []catalog.Image
	for _, image := range p.dataset.Images(release.GameID) {
		images = append(images, catalog.Image{
			Caption:   image.Type,
			SourceURL: p.imageBaseURL + strings.TrimSpace(image.FileName),
		})
	}
	return catalog.FoundList(images)
}

func (p *Provider) platformOf(game Game) catalog.Platform {
	return catalog.Platform{Name: game.Platform, FirstReleaseDate: game.Released()}
}

func yearOf(date string) string {
	year, _, _ := strings.Cut(date, "-")
	return strings.TrimSpace(year)
}
