package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Provider names accepted by catalog.provider.
const (
	ProviderRemote = "remote"
	ProviderLocal  = "local"
)

// Paths contains input and output locations.
type Paths struct {
	InputList string `toml:"input_list"`
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
	CacheDir  string `toml:"cache_dir"`
}

// Catalog selects the metadata source and the platform being catalogued.
type Catalog struct {
	Provider        string   `toml:"provider"`
	Platform        string   `toml:"platform"`
	GenreCategories []string `toml:"genre_categories"`
}

// MobyGames contains configuration for the remote title database.
type MobyGames struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	RequestDelayMS int    `toml:"request_delay_ms"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	CacheEnabled   bool   `toml:"cache_enabled"`
	CacheTTLHours  int    `toml:"cache_ttl_hours"`
}

// LaunchBox contains configuration for the locally cached metadata dataset.
type LaunchBox struct {
	MetadataPath    string `toml:"metadata_path"`
	DownloadURL     string `toml:"download_url"`
	ImageBaseURL    string `toml:"image_base_url"`
	DownloadTimeout int    `toml:"download_timeout"`
	MaxAgeDays      int    `toml:"max_age_days"`
}

// Artifacts describes the sidecar and image files produced per title.
type Artifacts struct {
	MetadataFile string `toml:"metadata_file"`
	ImagePrefix  string `toml:"image_prefix"`
	Width        int    `toml:"width"`
	Height       int    `toml:"height"`
	BMPSubtype   string `toml:"bmp_subtype"`
	Transcoder   string `toml:"transcoder"`
	FetchTimeout int    `toml:"fetch_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for launchmeta.
//
// Configuration sections by subsystem:
//   - Paths: input list, output root, logs and caches
//   - Catalog: provider selection, target platform, genre allow-list
//   - MobyGames: remote API credentials, courtesy delay and response cache
//   - LaunchBox: local Metadata.xml location and refresh source
//   - Artifacts: sidecar name, image naming and transcoder constraints
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Catalog   Catalog   `toml:"catalog"`
	MobyGames MobyGames `toml:"mobygames"`
	LaunchBox LaunchBox `toml:"launchbox"`
	Artifacts Artifacts `toml:"artifacts"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("launchmeta.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the output root and log/cache directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.LogDir, c.Paths.CacheDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// UseRemote reports whether the remote title database is the active provider.
func (c *Config) UseRemote() bool {
	return c.Catalog.Provider == ProviderRemote
}

// RequestDelay returns the courtesy delay applied before each remote call.
func (c *Config) RequestDelay() time.Duration {
	return time.Duration(c.MobyGames.RequestDelayMS) * time.Millisecond
}

// RemoteTimeout returns the HTTP timeout for remote catalog calls.
func (c *Config) RemoteTimeout() time.Duration {
	return time.Duration(c.MobyGames.TimeoutSeconds) * time.Second
}

// CacheTTL returns how long cached remote responses stay valid.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.MobyGames.CacheTTLHours) * time.Hour
}

// ResponseCachePath returns the SQLite file used for cached remote responses.
func (c *Config) ResponseCachePath() string {
	return filepath.Join(c.Paths.CacheDir, "mobygames.db")
}

// DatasetMaxAge returns the age after which the local dataset is re-downloaded.
// Zero disables refreshing an existing file.
func (c *Config) DatasetMaxAge() time.Duration {
	return time.Duration(c.LaunchBox.MaxAgeDays) * 24 * time.Hour
}

// DatasetDownloadTimeout returns the timeout for fetching the dataset archive.
func (c *Config) DatasetDownloadTimeout() time.Duration {
	return time.Duration(c.LaunchBox.DownloadTimeout) * time.Second
}

// ImageFetchTimeout returns the HTTP timeout used for screenshot downloads.
func (c *Config) ImageFetchTimeout() time.Duration {
	return time.Duration(c.Artifacts.FetchTimeout) * time.Second
}

// LockPath returns the lock file guarding the output root during a run.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.OutputDir, ".launchmeta.lock")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
