package mobygames

// Response shapes consumed from the MobyGames v1 API. Fields not listed here
// are ignored.

type wirePlatform struct {
	PlatformID       int64  `json:"platform_id"`
	PlatformName     string `json:"platform_name"`
	FirstReleaseDate string `json:"first_release_date"`
}

type wireGenre struct {
	GenreCategory string `json:"genre_category"`
	GenreName     string `json:"genre_name"`
}

type wireGame struct {
	GameID    int64          `json:"game_id"`
	Title     string         `json:"title"`
	MobyURL   string         `json:"moby_url"`
	Platforms []wirePlatform `json:"platforms"`
	Genres    []wireGenre    `json:"genres"`
}

type wireCompany struct {
	CompanyID   int64  `json:"company_id"`
	CompanyName string `json:"company_name"`
	Role        string `json:"role"`
}

type wireRelease struct {
	ReleaseDate string        `json:"release_date"`
	Companies   []wireCompany `json:"companies"`
}

type wirePlatformDetail struct {
	PlatformID       int64         `json:"platform_id"`
	PlatformName     string        `json:"platform_name"`
	FirstReleaseDate string        `json:"first_release_date"`
	Releases         []wireRelease `json:"releases"`
}

type wireScreenshot struct {
	Caption string `json:"caption"`
	Image   string `json:"image"`
}
