// Package artifacts downloads and converts a title's selected screenshots and
// commits its sidecar only when every image was produced.
package artifacts

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"launchmeta/internal/catalog"
	"launchmeta/internal/fileutil"
	"launchmeta/internal/logging"
	"launchmeta/internal/metadata"
)

// Transcoder converts a scratch image into a launcher bitmap and removes the
// scratch file on success.
type Transcoder interface {
	Convert(ctx context.Context, src, dst string) error
}

// Layout names the files written into a title directory.
type Layout struct {
	MetadataFile string
	ImagePrefix  string
}

// ScratchName returns the raw download name for the 1-based image index.
func (l Layout) ScratchName(index int) string {
	return fmt.Sprintf("%s%02d", l.ImagePrefix, index)
}

// ImageName returns the final bitmap name for the 1-based image index.
func (l Layout) ImageName(index int) string {
	return l.ScratchName(index) + ".bmp"
}

// Result describes one pipeline run.
type Result struct {
	Images       []string
	Failures     int
	Committed    bool
	MetadataPath string
}

// Pipeline performs the fetch, transcode and commit sequence.
type Pipeline struct {
	layout     Layout
	client     *http.Client
	transcoder Transcoder
	logger     *slog.Logger
}

// New creates a pipeline. A nil client uses a client with fetchTimeout.
func New(layout Layout, client *http.Client, fetchTimeout time.Duration, transcoder Transcoder, logger *slog.Logger) *Pipeline {
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		layout:     layout,
		client:     client,
		transcoder: transcoder,
		logger:     logging.NewComponentLogger(logger, "artifacts"),
	}
}

// Run attempts every image in order, then writes the sidecar to dir only when
// no image failed. Images already produced are left on disk when the commit is
// withheld. The returned error reports only a failed sidecar write.
func (p *Pipeline) Run(ctx context.Context, dir, sidecar string, images []catalog.Image) (Result, error) {
	result := Result{MetadataPath: filepath.Join(dir, p.layout.MetadataFile)}
	for i, image := range images {
		index := i + 1
		name, err := p.produce(ctx, dir, index, image)
		if err != nil {
			result.Failures++
			logging.WarnWithContext(p.logger, "image failed", "image_failed",
				logging.Int(logging.FieldImageIndex, index),
				logging.Int(logging.FieldImageCount, len(images)),
				logging.String("url", image.SourceURL),
				logging.Error(err),
				logging.String(logging.FieldImpact, "metadata not written for this title"),
				logging.String(logging.FieldErrorHint, "rerun the title to retry"),
			)
			continue
		}
		result.Images = append(result.Images, name)
	}

	if result.Failures > 0 {
		p.logger.Info("metadata withheld",
			logging.String(logging.FieldDirectory, dir),
			logging.Int("failures", result.Failures),
		)
		return result, nil
	}

	text := metadata.AppendImages(sidecar, result.Images)
	if err := fileutil.WriteFileAtomic(result.MetadataPath, []byte(text), 0o644); err != nil {
		return result, fmt.Errorf("write metadata %s: %w", result.MetadataPath, err)
	}
	result.Committed = true
	p.logger.Info("metadata written",
		logging.String(logging.FieldDirectory, dir),
		logging.Int(logging.FieldImageCount, len(result.Images)),
	)
	return result, nil
}

func (p *Pipeline) produce(ctx context.Context, dir string, index int, image catalog.Image) (string, error) {
	scratch := filepath.Join(dir, p.layout.ScratchName(index))
	if err := p.fetch(ctx, image.SourceURL, scratch); err != nil {
		return "", err
	}
	name := p.layout.ImageName(index)
	if err := p.transcoder.Convert(ctx, scratch, filepath.Join(dir, name)); err != nil {
		return "", err
	}
	p.logger.Debug("image produced", logging.Int(logging.FieldImageIndex, index), logging.String("file", name))
	return name, nil
}

func (p *Pipeline) fetch(ctx context.Context, url, dst string) error {
	if strings.TrimSpace(url) == "" {
		return fmt.Errorf("image has no url")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch image: unexpected status %d", resp.StatusCode)
	}
	if _, err := fileutil.WriteStream(dst, resp.Body, 0o644); err != nil {
		return fmt.Errorf("save image: %w", err)
	}
	return nil
}
