package youtube

import (
	"net/url"
	"strings"
)

// ExtractVideoID resolves a video id from either URL shape YouTube uses:
// the short-link form https://youtu.be/<id> and the canonical form
// https://www.youtube.com/watch?v=<id>. Host matching is case-insensitive.
// Any other host, a malformed URL, or a missing id yields ("", false).
func ExtractVideoID(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	host := strings.ToLower(u.Hostname())

	if host == "youtu.be" {
		if id := strings.TrimPrefix(u.Path, "/"); id != "" {
			return id, true
		}
		return "", false
	}

	if strings.HasSuffix(host, "youtube.com") {
		if v := u.Query().Get("v"); v != "" {
			return v, true
		}
	}

	return "", false
}

// ExtractPlaylistID resolves a playlist id from the canonical host's "list"
// query parameter; any other shape yields ("", false).
func ExtractPlaylistID(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	if strings.HasSuffix(strings.ToLower(u.Hostname()), "youtube.com") {
		if list := u.Query().Get("list"); list != "" {
			return list, true
		}
	}

	return "", false
}

// WatchURL builds the canonical watch URL stored for a video id.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + url.QueryEscape(videoID)
}
