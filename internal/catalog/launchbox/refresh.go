package launchbox

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"launchmeta/internal/logging"
)

const (
	defaultDownloadTimeout = 10 * time.Minute
	metadataEntry          = "Metadata.xml"
)

// Fetcher keeps a local Metadata.xml present and, when maxAge is set, fresh.
type Fetcher struct {
	path        string
	downloadURL string
	maxAge      time.Duration
	client      *http.Client
	logger      *slog.Logger
	now         func() time.Time
}

// NewFetcher creates a fetcher for the Metadata.xml at path. An empty
// downloadURL disables downloads.
func NewFetcher(path, downloadURL string, maxAge, timeout time.Duration, logger *slog.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = defaultDownloadTimeout
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Fetcher{
		path:        strings.TrimSpace(path),
		downloadURL: strings.TrimSpace(downloadURL),
		maxAge:      maxAge,
		client:      &http.Client{Timeout: timeout},
		logger:      logging.NewComponentLogger(logger, "launchbox"),
		now:         time.Now,
	}
}

// Ensure downloads Metadata.xml when it is missing or older than maxAge. A
// failed refresh of an existing file is logged and the stale copy is kept.
func (f *Fetcher) Ensure(ctx context.Context) error {
	info, err := os.Stat(f.path)
	switch {
	case err == nil:
		if f.maxAge <= 0 || f.now().Sub(info.ModTime()) <= f.maxAge {
			return nil
		}
		if f.downloadURL == "" {
			return nil
		}
		if err := f.download(ctx); err != nil {
			logging.WarnWithContext(f.logger, "launchbox refresh failed; using stale metadata", "launchbox_refresh_failed",
				logging.String("path", f.path),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check network access or launchbox.download_url"),
			)
		}
		return nil
	case errors.Is(err, fs.ErrNotExist):
		if f.downloadURL == "" {
			return fmt.Errorf("launchbox metadata %s missing and no download url configured", f.path)
		}
		if err := f.download(ctx); err != nil {
			return fmt.Errorf("launchbox metadata %s missing: %w", f.path, err)
		}
		return nil
	default:
		return fmt.Errorf("stat launchbox metadata: %w", err)
	}
}

func (f *Fetcher) download(ctx context.Context) error {
	f.logger.Info("downloading launchbox metadata", logging.String("url", f.downloadURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.downloadURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("download launchbox metadata: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download launchbox metadata: unexpected status %d", resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create launchbox directory: %w", err)
	}

	archivePath := f.path + ".zip.tmp"
	defer os.Remove(archivePath)
	archive, err := os.Create(archivePath)
	if err != nil {
		return fmt.Errorf("create archive temp file: %w", err)
	}
	if _, err := io.Copy(archive, resp.Body); err != nil {
		archive.Close()
		return fmt.Errorf("download launchbox metadata: %w", err)
	}
	if err := archive.Close(); err != nil {
		return fmt.Errorf("close archive temp file: %w", err)
	}

	written, err := f.extract(archivePath)
	if err != nil {
		return err
	}
	f.logger.Info("launchbox metadata refreshed", logging.String("path", f.path), logging.Int64("bytes", written))
	return nil
}

func (f *Fetcher) extract(archivePath string) (int64, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return 0, fmt.Errorf("open launchbox archive: %w", err)
	}
	defer zr.Close()

	for _, file := range zr.File {
		if !strings.EqualFold(path.Base(file.Name), metadataEntry) {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return 0, fmt.Errorf("open archive entry: %w", err)
		}
		defer rc.Close()

		tempPath := f.path + ".tmp"
		out, err := os.Create(tempPath)
		if err != nil {
			return 0, fmt.Errorf("write launchbox temp file: %w", err)
		}
		written, err := io.Copy(out, rc)
		if closeErr := out.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			os.Remove(tempPath)
			return 0, fmt.Errorf("extract %s: %w", metadataEntry, err)
		}
		if err := os.Rename(tempPath, f.path); err != nil {
			os.Remove(tempPath)
			return 0, fmt.Errorf("replace launchbox metadata: %w", err)
		}
		return written, nil
	}
	return 0, fmt.Errorf("launchbox archive missing %s", metadataEntry)
}
