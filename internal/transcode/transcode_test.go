package transcode_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"

	"launchmeta/internal/transcode"
)

func TestArgs(t *testing.T) {
	c, err := transcode.New("convert", 256, 256, "RGB565")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := c.Args("launch01", "launch01.bmp")
	want := []string{"-resize", "256x256", "-type", "truecolor", "-define", "bmp:subtype=RGB565", "launch01", "launch01.bmp"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected args:\n got %v\nwant %v", got, want)
	}

	magick, err := transcode.New("magick convert", 128, 96, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got = magick.Args("a", "b")
	want = []string{"convert", "-resize", "128x96", "-type", "truecolor", "a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected args:\n got %v\nwant %v", got, want)
	}
}

func TestNewValidates(t *testing.T) {
	if _, err := transcode.New(" ", 1, 1, ""); err == nil {
		t.Fatal("expected error for empty command")
	}
	if _, err := transcode.New("convert", 0, 1, ""); err == nil {
		t.Fatal("expected error for zero width")
	}
}

func TestConvertRemovesScratchOnSuccess(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "launch01")
	dst := filepath.Join(dir, "launch01.bmp")
	if err := os.WriteFile(src, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	var gotName string
	c, _ := transcode.New("convert", 256, 256, "RGB565", transcode.WithRunner(func(_ context.Context, name string, args ...string) ([]byte, error) {
		gotName = name
		return nil, os.WriteFile(args[len(args)-1], []byte("bmp"), 0o644)
	}))
	if err := c.Convert(context.Background(), src, dst); err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if gotName != "convert" {
		t.Fatalf("unexpected binary %q", gotName)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatalf("expected scratch removed, stat err=%v", err)
	}
	if _, err := os.Stat(dst); err != nil {
		t.Fatalf("expected output: %v", err)
	}
}

func TestConvertKeepsScratchOnFailure(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "launch01")
	if err := os.WriteFile(src, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, _ := transcode.New("convert", 256, 256, "RGB565", transcode.WithRunner(func(context.Context, string, ...string) ([]byte, error) {
		return []byte("convert: no decode delegate"), errors.New("exit status 1")
	}))
	err := c.Convert(context.Background(), src, filepath.Join(dir, "launch01.bmp"))
	if err == nil {
		t.Fatal("expected error")
	}
	if _, statErr := os.Stat(src); statErr != nil {
		t.Fatalf("expected scratch kept: %v", statErr)
	}
}

func TestConvertWithShellStub(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stub requires a POSIX shell")
	}
	dir := t.TempDir()
	stub := filepath.Join(dir, "fake-convert")
	script := "#!/bin/sh\nfor last; do :; done\ncp \"$7\" \"$last\"\n"
	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	src := filepath.Join(dir, "launch01")
	dst := filepath.Join(dir, "launch01.bmp")
	if err := os.WriteFile(src, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, _ := transcode.New(stub, 256, 256, "RGB565")
	if err := c.Convert(context.Background(), src, dst); err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if data, err := os.ReadFile(dst); err != nil || string(data) != "png" {
		t.Fatalf("unexpected output %q %v", data, err)
	}
}
