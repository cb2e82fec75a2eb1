package launchbox_test

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"launchmeta/internal/catalog"
	"launchmeta/internal/catalog/launchbox"
)

const sampleXML = `<?xml version="1.0" standalone="yes"?>
<LaunchBox>
  <Platform><Name>Sharp X68000</Name></Platform>
  <Game>
    <Name>Super Foo 2</Name>
    <DatabaseID>101</DatabaseID>
    <Platform>Sharp X68000</Platform>
    <ReleaseYear>1990</ReleaseYear>
    <ReleaseDate>1991-03-01T00:00:00-05:00</ReleaseDate>
    <Developer>Foo Soft</Developer>
    <Publisher>Bar Co</Publisher>
    <Genres>Action; Platform</Genres>
  </Game>
  <Game>
    <Name>SUPER FOO 2</Name>
    <DatabaseID>102</DatabaseID>
    <Platform>MS-DOS</Platform>
  </Game>
  <Game>
    <Name>Foo Racer</Name>
    <DatabaseID>103</DatabaseID>
    <Platform>Sharp X68000</Platform>
    <ReleaseYear>1993</ReleaseYear>
  </Game>
  <GameImage>
    <DatabaseID>101</DatabaseID>
    <FileName>a.png</FileName>
    <Type>Screenshot - Game Title</Type>
  </GameImage>
  <GameImage>
    <DatabaseID>101</DatabaseID>
    <FileName>b.png</FileName>
    <Type>Box - Front</Type>
  </GameImage>
  <GameImage>
    <DatabaseID>102</DatabaseID>
    <FileName>c.png</FileName>
    <Type>Screenshot</Type>
  </GameImage>
</LaunchBox>`

const x68k = "Sharp X68000"

func loadSample(t *testing.T) *launchbox.Dataset {
	t.Helper()
	dataset, err := launchbox.Decode(strings.NewReader(sampleXML))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	return dataset
}

func TestDecodeIndexesGamesAndImages(t *testing.T) {
	dataset := loadSample(t)
	if len(dataset.Games()) != 3 {
		t.Fatalf("expected 3 games, got %d", len(dataset.Games()))
	}
	game, ok := dataset.Game("101")
	if !ok || game.Developer != "Foo Soft" {
		t.Fatalf("unexpected game: %#v", game)
	}
	if game.Released() != "1991-03-01T00:00:00-05:00" {
		t.Fatalf("expected release date to win over year, got %q", game.Released())
	}
	if images := dataset.Images("101"); len(images) != 2 || images[1].FileName != "b.png" {
		t.Fatalf("unexpected images: %#v", images)
	}
}

func TestDecodeRejectsMalformedXML(t *testing.T) {
	if _, err := launchbox.Decode(strings.NewReader("<LaunchBox><Game><Name>x</Game>")); err == nil {
		t.Fatal("expected error for malformed xml")
	}
}

func TestSearchFoldsCaseAndFiltersPlatform(t *testing.T) {
	provider := launchbox.NewProvider(loadSample(t), x68k, "https://images.example/")
	out := provider.Search(context.Background(), "super foo")
	if !out.OK() {
		t.Fatalf("expected found, got %s", out.Status)
	}
	if len(out.Value) != 1 || out.Value[0].ID != "101" {
		t.Fatalf("unexpected candidates: %#v", out.Value)
	}
	if out.Value[0].Year != "1991" {
		t.Fatalf("unexpected year: %q", out.Value[0].Year)
	}

	if miss := provider.Search(context.Background(), "Nothing Like It"); miss.Status != catalog.StatusEmpty {
		t.Fatalf("expected empty, got %s", miss.Status)
	}
}

func TestSearchWithoutDatasetIsUnavailable(t *testing.T) {
	provider := launchbox.NewProvider(nil, x68k, "")
	if out := provider.Search(context.Background(), "x"); out.Status != catalog.StatusUnavailable {
		t.Fatalf("expected unavailable, got %s", out.Status)
	}
}

func TestProjectionSequence(t *testing.T) {
	ctx := context.Background()
	provider := launchbox.NewProvider(loadSample(t), x68k, "https://images.example/")
	if !provider.ResolvesPlatform() || provider.Source() != "gamesdb.launchbox-app.com" {
		t.Fatal("unexpected provider identity")
	}

	game := provider.Details(ctx, catalog.Candidate{ID: "101"})
	if !game.OK() || len(game.Value.Genres) != 2 || game.Value.Genres[1].Name != "Platform" {
		t.Fatalf("unexpected game: %#v", game.Value)
	}

	release := provider.PlatformRelease(ctx, game.Value, game.Value.Platforms[0])
	if !release.OK() || release.Value.FirstReleaseDate != "1991-03-01T00:00:00-05:00" {
		t.Fatalf("unexpected release: %#v", release.Value)
	}

	companies := provider.Companies(ctx, release.Value)
	if !companies.OK() || len(companies.Value) != 2 {
		t.Fatalf("unexpected companies: %#v", companies.Value)
	}
	if companies.Value[0].Role != catalog.RoleDeveloper || companies.Value[1].Role != catalog.RolePublisher {
		t.Fatalf("expected developer then publisher, got %#v", companies.Value)
	}

	genres := provider.Genres(ctx, game.Value)
	if !genres.OK() || genres.Value[0].Name != "Action" {
		t.Fatalf("unexpected genres: %#v", genres.Value)
	}

	images := provider.Images(ctx, release.Value)
	if !images.OK() || len(images.Value) != 2 {
		t.Fatalf("unexpected images: %#v", images.Value)
	}
	if images.Value[0].SourceURL != "https://images.example/a.png" || images.Value[0].Caption != "Screenshot - Game Title" {
		t.Fatalf("unexpected first image: %#v", images.Value[0])
	}
}

func TestSparseRecordYieldsEmptyOptionalData(t *testing.T) {
	ctx := context.Background()
	provider := launchbox.NewProvider(loadSample(t), x68k, "https://images.example/")
	game := provider.Details(ctx, catalog.Candidate{ID: "103"})
	release := provider.PlatformRelease(ctx, game.Value, game.Value.Platforms[0])
	if release.Value.FirstReleaseDate != "1993" {
		t.Fatalf("expected release year fallback, got %q", release.Value.FirstReleaseDate)
	}
	if out := provider.Companies(ctx, release.Value); out.Status != catalog.StatusEmpty {
		t.Fatalf("expected no companies, got %s", out.Status)
	}
	if out := provider.Genres(ctx, game.Value); out.Status != catalog.StatusEmpty {
		t.Fatalf("expected no genres, got %s", out.Status)
	}
	if out := provider.Images(ctx, release.Value); out.Status != catalog.StatusEmpty {
		t.Fatalf("expected no images, got %s", out.Status)
	}
}

func zipArchive(t *testing.T, name, content string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(name)
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(content)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestEnsureDownloadsMissingMetadata(t *testing.T) {
	archive := zipArchive(t, "Metadata/Metadata.xml", sampleXML)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(archive)
	}))
	t.Cleanup(server.Close)

	path := filepath.Join(t.TempDir(), "data", "Metadata.xml")
	fetcher := launchbox.NewFetcher(path, server.URL, 0, time.Second, nil)
	if err := fetcher.Ensure(context.Background()); err != nil {
		t.Fatalf("Ensure returned error: %v", err)
	}
	dataset, err := launchbox.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(dataset.Games()) != 3 {
		t.Fatalf("expected downloaded dataset, got %d games", len(dataset.Games()))
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected temp file removed, stat err=%v", err)
	}
}

func TestEnsureMissingWithoutURLFails(t *testing.T) {
	fetcher := launchbox.NewFetcher(filepath.Join(t.TempDir(), "Metadata.xml"), "", 0, 0, nil)
	if err := fetcher.Ensure(context.Background()); err == nil {
		t.Fatal("expected error for missing metadata without download url")
	}
}

func TestEnsureArchiveWithoutMetadataFails(t *testing.T) {
	archive := zipArchive(t, "Other.xml", "<x/>")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(archive)
	}))
	t.Cleanup(server.Close)

	fetcher := launchbox.NewFetcher(filepath.Join(t.TempDir(), "Metadata.xml"), server.URL, 0, 0, nil)
	if err := fetcher.Ensure(context.Background()); err == nil {
		t.Fatal("expected error when archive lacks Metadata.xml")
	}
}

func TestEnsureKeepsFreshAndStaleFiles(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	path := filepath.Join(t.TempDir(), "Metadata.xml")
	if err := os.WriteFile(path, []byte(sampleXML), 0o644); err != nil {
		t.Fatalf("write metadata: %v", err)
	}

	fresh := launchbox.NewFetcher(path, server.URL, 24*time.Hour, 0, nil)
	if err := fresh.Ensure(context.Background()); err != nil {
		t.Fatalf("Ensure fresh: %v", err)
	}
	if requests != 0 {
		t.Fatalf("expected no download for fresh file, got %d", requests)
	}

	old := time.Now().Add(-72 * time.Hour)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	if err := fresh.Ensure(context.Background()); err != nil {
		t.Fatalf("stale refresh failure should not be fatal: %v", err)
	}
	if requests != 1 {
		t.Fatalf("expected one refresh attempt, got %d", requests)
	}
	if data, err := os.ReadFile(path); err != nil || string(data) != sampleXML {
		t.Fatalf("expected stale copy kept, err=%v", err)
	}
}
