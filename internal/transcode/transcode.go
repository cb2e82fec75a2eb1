// Package transcode wraps the ImageMagick command line used to turn fetched
// screenshots into fixed-size launcher bitmaps.
package transcode

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Runner executes name with args and returns combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Converter normalizes images to one size and BMP subtype.
type Converter struct {
	command []string
	width   int
	height  int
	subtype string
	run     Runner
}

// Option configures a Converter.
type Option func(*Converter)

// WithRunner replaces command execution, mainly for tests.
func WithRunner(run Runner) Option {
	return func(c *Converter) {
		if run != nil {
			c.run = run
		}
	}
}

// New creates a converter. command may include leading arguments, such as
// "magick convert".
func New(command string, width, height int, subtype string, opts ...Option) (*Converter, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, errors.New("transcoder command required")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid target size %dx%d", width, height)
	}
	c := &Converter{
		command: fields,
		width:   width,
		height:  height,
		subtype: strings.TrimSpace(subtype),
		run:     execRunner,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Args returns the full argument list, excluding the binary, for converting
// src into dst.
func (c *Converter) Args(src, dst string) []string {
	args := append([]string(nil), c.command[1:]...)
	args = append(args,
		"-resize", strconv.Itoa(c.width)+"x"+strconv.Itoa(c.height),
		"-type", "truecolor",
	)
	if c.subtype != "" {
		args = append(args, "-define", "bmp:subtype="+c.subtype)
	}
	return append(args, src, dst)
}

// Convert transcodes src into dst and removes src on success. On failure src
// is left in place.
func (c *Converter) Convert(ctx context.Context, src, dst string) error {
	if strings.TrimSpace(src) == "" || strings.TrimSpace(dst) == "" {
		return errors.New("transcode: empty path")
	}
	output, err := c.run(ctx, c.command[0], c.Args(src, dst)...)
	if err != nil {
		return fmt.Errorf("transcode %s: %w: %s", src, err, strings.TrimSpace(string(output)))
	}
	if err := os.Remove(src); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove scratch file: %w", err)
	}
	return nil
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}
