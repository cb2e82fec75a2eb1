package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	outputDir  string
	listPath   string
	server     *httptest.Server
}

const testMetadataXML = `<LaunchBox>
  <Game><Name>Super Foo 2</Name><DatabaseID>9</DatabaseID><Platform>Sharp X68000</Platform>
    <ReleaseDate>1992-01-01T00:00:00</ReleaseDate><Developer>Foo Soft</Developer><Publisher>Bar Co</Publisher>
    <Genres>Action;Shooter</Genres></Game>
  <GameImage><DatabaseID>9</DatabaseID><FileName>A</FileName><Type>Screenshot - Gameplay</Type></GameImage>
</LaunchBox>`

// setupCLITestEnv writes a config for the local provider backed by a
// Metadata.xml on disk, an image server and a copying transcoder stub.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("transcoder stub requires a POSIX shell")
	}

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("MOBYGAMES_API_KEY", "")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/img/A" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("image-A"))
	}))
	t.Cleanup(server.Close)

	stub := filepath.Join(base, "fake-convert")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\nfor last; do :; done\ncp \"$7\" \"$last\"\n"), 0o755); err != nil {
		t.Fatalf("write transcoder stub: %v", err)
	}
	metadataPath := filepath.Join(base, "Metadata.xml")
	if err := os.WriteFile(metadataPath, []byte(testMetadataXML), 0o644); err != nil {
		t.Fatalf("write metadata: %v", err)
	}
	listPath := filepath.Join(base, "launcher.txt")
	if err := os.WriteFile(listPath, []byte("A:\\SuperFoo2\n"), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}

	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "launchmeta.toml"),
		outputDir:  filepath.Join(base, "out"),
		listPath:   listPath,
		server:     server,
	}
	config := fmt.Sprintf(`[paths]
input_list = %q
output_dir = %q
log_dir = %q
cache_dir = %q

[catalog]
provider = "local"
platform = "Sharp X68000"

[launchbox]
metadata_path = %q
download_url = ""
image_base_url = %q

[artifacts]
metadata_file = "launch.dat"
image_prefix = "launch"
width = 256
height = 256
transcoder = %q

[logging]
format = "json"
level = "error"
`, listPath, env.outputDir, filepath.Join(base, "logs"), filepath.Join(base, "cache"), metadataPath, server.URL+"/img/", stub)
	if err := os.WriteFile(env.configPath, []byte(config), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func runCLI(t *testing.T, args []string, configPath, stdin string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
