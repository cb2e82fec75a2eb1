package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeCatalog()
	c.normalizeMobyGames()
	if err := c.normalizeLaunchBox(); err != nil {
		return err
	}
	c.normalizeArtifacts()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.InputList) == "" {
		c.Paths.InputList = defaultInputList
	}
	if c.Paths.InputList, err = expandPath(c.Paths.InputList); err != nil {
		return fmt.Errorf("paths.input_list: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		c.Paths.CacheDir = defaultCacheDir
	}
	if c.Paths.CacheDir, err = expandPath(c.Paths.CacheDir); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeCatalog() {
	c.Catalog.Provider = strings.ToLower(strings.TrimSpace(c.Catalog.Provider))
	if c.Catalog.Provider == "" {
		c.Catalog.Provider = defaultProvider
	}
	c.Catalog.Platform = strings.TrimSpace(c.Catalog.Platform)
	if c.Catalog.Platform == "" {
		c.Catalog.Platform = defaultPlatform
	}
	categories := make([]string, 0, len(c.Catalog.GenreCategories))
	for _, category := range c.Catalog.GenreCategories {
		if trimmed := strings.TrimSpace(category); trimmed != "" {
			categories = append(categories, trimmed)
		}
	}
	if len(categories) == 0 {
		categories = []string{defaultGenreCategoryBasic, defaultGenreCategoryPlayed}
	}
	c.Catalog.GenreCategories = categories
}

func (c *Config) normalizeMobyGames() {
	if c.MobyGames.APIKey == "" {
		if value, ok := os.LookupEnv("MOBYGAMES_API_KEY"); ok {
			c.MobyGames.APIKey = value
		}
	}
	c.MobyGames.APIKey = strings.TrimSpace(c.MobyGames.APIKey)
	c.MobyGames.BaseURL = strings.TrimRight(strings.TrimSpace(c.MobyGames.BaseURL), "/")
	if c.MobyGames.BaseURL == "" {
		c.MobyGames.BaseURL = defaultMobyGamesBaseURL
	}
	if c.MobyGames.TimeoutSeconds <= 0 {
		c.MobyGames.TimeoutSeconds = defaultRemoteTimeout
	}
	if c.MobyGames.CacheTTLHours <= 0 {
		c.MobyGames.CacheTTLHours = defaultCacheTTLHours
	}
}

func (c *Config) normalizeLaunchBox() error {
	var err error
	if strings.TrimSpace(c.LaunchBox.MetadataPath) == "" {
		c.LaunchBox.MetadataPath = defaultLaunchBoxPath
	}
	if c.LaunchBox.MetadataPath, err = expandPath(c.LaunchBox.MetadataPath); err != nil {
		return fmt.Errorf("launchbox.metadata_path: %w", err)
	}
	c.LaunchBox.DownloadURL = strings.TrimSpace(c.LaunchBox.DownloadURL)
	c.LaunchBox.ImageBaseURL = strings.TrimSpace(c.LaunchBox.ImageBaseURL)
	if c.LaunchBox.ImageBaseURL == "" {
		c.LaunchBox.ImageBaseURL = defaultLaunchBoxImageURL
	}
	if !strings.HasSuffix(c.LaunchBox.ImageBaseURL, "/") {
		c.LaunchBox.ImageBaseURL += "/"
	}
	if c.LaunchBox.DownloadTimeout <= 0 {
		c.LaunchBox.DownloadTimeout = defaultLaunchBoxTimeout
	}
	return nil
}

func (c *Config) normalizeArtifacts() {
	c.Artifacts.MetadataFile = strings.TrimSpace(c.Artifacts.MetadataFile)
	c.Artifacts.ImagePrefix = strings.TrimSpace(c.Artifacts.ImagePrefix)
	c.Artifacts.BMPSubtype = strings.TrimSpace(c.Artifacts.BMPSubtype)
	if c.Artifacts.BMPSubtype == "" {
		c.Artifacts.BMPSubtype = defaultBMPSubtype
	}
	c.Artifacts.Transcoder = strings.TrimSpace(c.Artifacts.Transcoder)
	if c.Artifacts.Transcoder == "" {
		c.Artifacts.Transcoder = defaultTranscoder
	}
	if c.Artifacts.FetchTimeout <= 0 {
		c.Artifacts.FetchTimeout = defaultImageFetchTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
