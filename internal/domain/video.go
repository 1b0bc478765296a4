package domain

import (
	"strings"
	"time"
)

// Video is a cataloged reference to an externally hosted video. URL is the
// natural key: no two videos ever share one.
type Video struct {
	ID        int64     `db:"id"`
	Title     string    `db:"title"`
	URL       string    `db:"url"`
	TagsText  string    `db:"tags_text"`
	CreatedAt time.Time `db:"created_at"`
}

// Tags splits the stored comma separated tag text into an ordered list,
// trimming whitespace and dropping empty entries.
func (v Video) Tags() []string {
	tags := make([]string, 0)
	for _, t := range strings.Split(v.TagsText, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// VideoSnippet is the metadata the external source returns for one video id.
type VideoSnippet struct {
	ID    string
	Title string
}

// RegisterResult reports the outcome of registering a single video URL.
type RegisterResult struct {
	Video          Video
	AlreadyExisted bool
}
