package config

const (
	defaultConfigPath          = "~/.config/launchmeta/config.toml"
	defaultInputList           = "launcher.txt"
	defaultOutputDir           = "out"
	defaultLogDir              = "~/.local/share/launchmeta/logs"
	defaultCacheDir            = "~/.cache/launchmeta"
	defaultProvider            = ProviderLocal
	defaultPlatform            = "Sharp X68000"
	defaultMobyGamesBaseURL    = "https://api.mobygames.com/v1"
	defaultRequestDelayMS      = 1000
	defaultRemoteTimeout       = 30
	defaultCacheTTLHours       = 24 * 7
	defaultLaunchBoxPath       = "Metadata.xml"
	defaultLaunchBoxURL        = "https://gamesdb.launchbox-app.com/Metadata.zip"
	defaultLaunchBoxImageURL   = "https://images.launchbox-app.com/"
	defaultLaunchBoxTimeout    = 600
	defaultMetadataFile        = "launch.dat"
	defaultImagePrefix         = "launch"
	defaultImageWidth          = 256
	defaultImageHeight         = 256
	defaultBMPSubtype          = "RGB565"
	defaultTranscoder          = "convert"
	defaultImageFetchTimeout   = 60
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultGenreCategoryBasic  = "Basic Genres"
	defaultGenreCategoryPlayed = "Gameplay"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputList: defaultInputList,
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
			CacheDir:  defaultCacheDir,
		},
		Catalog: Catalog{
			Provider:        defaultProvider,
			Platform:        defaultPlatform,
			GenreCategories: []string{defaultGenreCategoryBasic, defaultGenreCategoryPlayed},
		},
		MobyGames: MobyGames{
			BaseURL:        defaultMobyGamesBaseURL,
			RequestDelayMS: defaultRequestDelayMS,
			TimeoutSeconds: defaultRemoteTimeout,
			CacheEnabled:   true,
			CacheTTLHours:  defaultCacheTTLHours,
		},
		LaunchBox: LaunchBox{
			MetadataPath:    defaultLaunchBoxPath,
			DownloadURL:     defaultLaunchBoxURL,
			ImageBaseURL:    defaultLaunchBoxImageURL,
			DownloadTimeout: defaultLaunchBoxTimeout,
		},
		Artifacts: Artifacts{
			MetadataFile: defaultMetadataFile,
			ImagePrefix:  defaultImagePrefix,
			Width:        defaultImageWidth,
			Height:       defaultImageHeight,
			BMPSubtype:   defaultBMPSubtype,
			Transcoder:   defaultTranscoder,
			FetchTimeout: defaultImageFetchTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
