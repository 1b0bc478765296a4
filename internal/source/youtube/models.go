package youtube

// PlaylistItemsResponse represents the Data API v3 playlistItems payload.
type PlaylistItemsResponse struct {
	Items         []APIPlaylistItem `json:"items"`
	NextPageToken string            `json:"nextPageToken"`
}

type APIPlaylistItem struct {
	Snippet *PlaylistSnippet `json:"snippet"`
}

type PlaylistSnippet struct {
	Title      string     `json:"title"`
	ResourceID ResourceID `json:"resourceId"`
}

type ResourceID struct {
	Kind    string `json:"kind"`
	VideoID string `json:"videoId"`
}

// VideosResponse represents the Data API v3 videos payload.
type VideosResponse struct {
	Items []APIVideo `json:"items"`
}

type APIVideo struct {
	ID      string       `json:"id"`
	Snippet VideoSnippet `json:"snippet"`
}

type VideoSnippet struct {
	Title string `json:"title"`
}
