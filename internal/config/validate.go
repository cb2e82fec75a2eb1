package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateMobyGames(); err != nil {
		return err
	}
	if err := c.validateArtifacts(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateCatalog() error {
	switch c.Catalog.Provider {
	case ProviderRemote, ProviderLocal:
	default:
		return fmt.Errorf("catalog.provider must be %q or %q, got %q", ProviderRemote, ProviderLocal, c.Catalog.Provider)
	}
	if c.Catalog.Platform == "" {
		return errors.New("catalog.platform must be set")
	}
	return nil
}

func (c *Config) validateMobyGames() error {
	if c.MobyGames.RequestDelayMS < 0 {
		return errors.New("mobygames.request_delay_ms must be zero or positive")
	}
	if !c.UseRemote() {
		return nil
	}
	if c.MobyGames.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = defaultConfigPath
		}
		return fmt.Errorf("mobygames.api_key is required for the remote provider. Set MOBYGAMES_API_KEY env var or edit %s (create with 'launchmeta config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateArtifacts() error {
	if c.Artifacts.MetadataFile == "" {
		return errors.New("artifacts.metadata_file must be set")
	}
	if strings.ContainsAny(c.Artifacts.MetadataFile, `/\`) {
		return fmt.Errorf("artifacts.metadata_file must be a bare file name, got %q", c.Artifacts.MetadataFile)
	}
	if c.Artifacts.ImagePrefix == "" {
		return errors.New("artifacts.image_prefix must be set")
	}
	if strings.ContainsAny(c.Artifacts.ImagePrefix, `/\`) {
		return fmt.Errorf("artifacts.image_prefix must not contain path separators, got %q", c.Artifacts.ImagePrefix)
	}
	if c.Artifacts.Width <= 0 || c.Artifacts.Height <= 0 {
		return fmt.Errorf("artifacts.width and artifacts.height must be positive, got %dx%d", c.Artifacts.Width, c.Artifacts.Height)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
