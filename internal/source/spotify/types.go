package spotify

// artistResponse is the /artists/{id} payload.
type artistResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Genres     []string `json:"genres"`
	Popularity int      `json:"popularity"`
	Followers  struct {
		Total int `json:"total"`
	} `json:"followers"`
}

// albumItem is one entry of an /artists/{id}/albums page.
type albumItem struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	AlbumType            string `json:"album_type"`
	TotalTracks          int    `json:"total_tracks"`
	ReleaseDate          string `json:"release_date"`
	ReleaseDatePrecision string `json:"release_date_precision"`
	Artists              []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"artists"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
}

// albumsPage is one page of /artists/{id}/albums.
type albumsPage struct {
	Items []albumItem `json:"items"`
	Next  string      `json:"next"`
}

// albumDetail is the /albums/{id} payload (fields beyond albumItem).
type albumDetail struct {
	ID         string `json:"id"`
	Popularity int    `json:"popularity"`
	Label      string `json:"label"`
}

// trackItem is one entry of an /albums/{id}/tracks page.
type trackItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TrackNumber int    `json:"track_number"`
	DiscNumber  int    `json:"disc_number"`
	DurationMS  int    `json:"duration_ms"`
	Explicit    bool   `json:"explicit"`
}

// tracksPage is one page of /albums/{id}/tracks.
type tracksPage struct {
	Items []trackItem `json:"items"`
	Next  string      `json:"next"`
}
