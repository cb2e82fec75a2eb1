// Package catalog defines the query surface shared by every metadata source.
//
// A Provider answers the same sequence of questions regardless of where its
// data lives: search by title, fetch game details, resolve a platform release,
// and project the companies, genres, and screenshots that belong to it. Every
// query returns an Outcome so callers can tell a reachable-but-empty source
// from an unavailable one, even though the funnel treats both alike.
package catalog

import (
	"context"
	"strings"
)

// Company roles as labelled by the remote title database.
const (
	RoleDeveloper = "Developed by"
	RolePublisher = "Published by"
	RolePorter    = "Ported by"
)

// Platform is one platform a game was released on.
type Platform struct {
	ID               int64
	Name             string
	FirstReleaseDate string
}

// Candidate is a single search hit.
type Candidate struct {
	ID        string
	Title     string
	Platforms []Platform
	SourceURL string
	// Year and Genre are populated by sources that carry them on the search
	// record itself; they are only used to label menu options.
	Year  string
	Genre string
}

// PlatformNames returns the candidate's platform names in source order.
func (c Candidate) PlatformNames() []string {
	names := make([]string, 0, len(c.Platforms))
	for _, p := range c.Platforms {
		names = append(names, p.Name)
	}
	return names
}

// HasPlatform reports whether the candidate lists the named platform.
func (c Candidate) HasPlatform(name string) bool {
	for _, p := range c.Platforms {
		if p.Name == name {
			return true
		}
	}
	return false
}

// Game is the detailed record for a chosen candidate.
type Game struct {
	ID        string
	Title     string
	SourceURL string
	Platforms []Platform
	Genres    []Genre
}

// PlatformRelease fixes the release context used by later queries.
type PlatformRelease struct {
	GameID           string
	PlatformID       int64
	PlatformName     string
	ReleaseDate      string
	FirstReleaseDate string
	Companies        []Company
}

// Company credits a company with a role on a release.
type Company struct {
	Name        string
	Role        string
	ReleaseDate string
}

// Genre is a classification tag with its category.
type Genre struct {
	Name     string
	Category string
}

// Image is a screenshot candidate.
type Image struct {
	Caption   string
	SourceURL string
}

// Provider is the capability implemented by each metadata source.
type Provider interface {
	// Name identifies the provider in logs ("remote" or "local").
	Name() string
	// Source is written to the sidecar's source field.
	Source() string
	// ResolvesPlatform reports whether search hits are already bound to the
	// target platform, so no platform choice is needed.
	ResolvesPlatform() bool

	Search(ctx context.Context, title string) Outcome[[]Candidate]
	Details(ctx context.Context, candidate Candidate) Outcome[Game]
	PlatformRelease(ctx context.Context, game Game, platform Platform) Outcome[PlatformRelease]
	Companies(ctx context.Context, release PlatformRelease) Outcome[[]Company]
	Genres(ctx context.Context, game Game) Outcome[[]Genre]
	Images(ctx context.Context, release PlatformRelease) Outcome[[]Image]
}

// FilterGenres keeps genres whose category is in allowed, preserving order.
func FilterGenres(genres []Genre, allowed []string) []Genre {
	out := make([]Genre, 0, len(genres))
	for _, g := range genres {
		for _, category := range allowed {
			if g.Category == category {
				out = append(out, g)
				break
			}
		}
	}
	return out
}

// SplitGenres splits a semicolon-delimited genre string into trimmed,
// non-empty genres without a category.
func SplitGenres(text string) []Genre {
	var out []Genre
	for _, part := range strings.Split(text, ";") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		out = append(out, Genre{Name: name})
	}
	return out
}
