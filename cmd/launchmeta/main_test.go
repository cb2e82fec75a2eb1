package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunLocalProviderWritesSidecar(t *testing.T) {
	env := setupCLITestEnv(t)

	answers := strings.Join([]string{"y", "1", "2 1", "2", "1", "y"}, "\n") + "\n"
	out, _, err := runCLI(t, []string{"run"}, env.configPath, answers)
	if err != nil {
		t.Fatalf("run returned error: %v\n%s", err, out)
	}
	requireContains(t, out, "Use [Super Foo 2] for search? (y/n)")
	requireContains(t, out, "Wrote metadata!")
	requireContains(t, out, "Total titles")

	dir := filepath.Join(env.outputDir, "A", "SuperFoo2")
	sidecar, err := os.ReadFile(filepath.Join(dir, "launch.dat"))
	if err != nil {
		t.Fatalf("read sidecar: %v", err)
	}
	want := "[default]\nname=Super Foo 2\nyear=1992\ngenre=Shooter\npublisher=Bar Co\ndeveloper=Foo Soft\nsource=gamesdb.launchbox-app.com\nimages=launch01.bmp,"
	if string(sidecar) != want {
		t.Fatalf("unexpected sidecar:\n%q\nwant\n%q", sidecar, want)
	}
	image, err := os.ReadFile(filepath.Join(dir, "launch01.bmp"))
	if err != nil || string(image) != "image-A" {
		t.Fatalf("unexpected image %q %v", image, err)
	}
}

func TestRunSecondPassSkipsCompletedTitle(t *testing.T) {
	env := setupCLITestEnv(t)
	answers := strings.Join([]string{"y", "1", "", "1", "", "y"}, "\n") + "\n"
	if out, _, err := runCLI(t, []string{"run"}, env.configPath, answers); err != nil {
		t.Fatalf("first run: %v\n%s", err, out)
	}

	out, _, err := runCLI(t, []string{"run"}, env.configPath, "")
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	requireContains(t, out, "Metadata file already exists")
	if strings.Contains(out, "(y/n)") {
		t.Fatalf("expected no prompts on second pass, got:\n%s", out)
	}
}

func TestRunAnswersFileAndOverrides(t *testing.T) {
	env := setupCLITestEnv(t)
	answersPath := filepath.Join(env.baseDir, "answers.txt")
	if err := os.WriteFile(answersPath, []byte("n\n\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(env.baseDir, "elsewhere")

	out, _, err := runCLI(t, []string{"run", "--answers", answersPath, "--output", output}, env.configPath, "")
	if err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	requireContains(t, out, "Skipping this game: no title entered.")
	if _, err := os.Stat(filepath.Join(output, ".launchmeta.lock")); err != nil {
		t.Fatalf("expected lock file under overridden output: %v", err)
	}
	if _, err := os.Stat(filepath.Join(output, "A", "SuperFoo2", "launch.dat")); !os.IsNotExist(err) {
		t.Fatalf("expected no sidecar for abandoned title, got %v", err)
	}
}

func TestRunRemoteWithoutKeyFails(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"run", "--provider", "remote"}, env.configPath, "")
	if err == nil || !strings.Contains(err.Error(), "mobygames.api_key") {
		t.Fatalf("expected missing key error, got %v", err)
	}
}

func TestRunEmptyListFails(t *testing.T) {
	env := setupCLITestEnv(t)
	empty := filepath.Join(env.baseDir, "empty.txt")
	if err := os.WriteFile(empty, []byte("not a path\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err := runCLI(t, []string{"run", "--list", empty}, env.configPath, "")
	if err == nil || !strings.Contains(err.Error(), "no directories listed") {
		t.Fatalf("expected empty list error, got %v", err)
	}
}

func TestDepsReportsTranscoder(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"deps"}, env.configPath, "")
	if err != nil {
		t.Fatalf("deps returned error: %v", err)
	}
	requireContains(t, out, "ImageMagick")
	requireContains(t, out, "yes")
}

func TestCachePrune(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"cache", "prune"}, env.configPath, "")
	if err != nil {
		t.Fatalf("cache prune returned error: %v", err)
	}
	requireContains(t, out, "Pruned 0 cached response(s)")
	if _, err := os.Stat(filepath.Join(env.baseDir, "cache", "mobygames.db")); err != nil {
		t.Fatalf("expected cache database: %v", err)
	}
}

func TestRootShowsHelp(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, nil, env.configPath, "")
	if err != nil {
		t.Fatalf("root returned error: %v", err)
	}
	requireContains(t, out, "launchmeta")
	requireContains(t, out, "run")
}
