package domain

import "time"

// ItemKind discriminates playlist entries; only videos are reconciled.
type ItemKind int

const (
	ItemKindOther ItemKind = iota
	ItemKindVideo
)

// PlaylistItem is one entry of a playlist page as returned by the source.
type PlaylistItem struct {
	Kind    ItemKind
	VideoID string
	Title   string
}

// PlaylistPage is one page of playlist entries. An empty NextPageToken means
// the source has no further pages.
type PlaylistPage struct {
	Items         []PlaylistItem
	NextPageToken string
}

// Outcome is the result of reconciling one playlist item against the store.
type Outcome int

const (
	// OutcomeIgnored means the item was not a video and never reached the store.
	OutcomeIgnored Outcome = iota
	// OutcomeInserted means a new record was created for the item's url.
	OutcomeInserted
	// OutcomeSkipped means a record with the item's url already existed.
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInserted:
		return "inserted"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "ignored"
	}
}

// ImportStats accumulates counts across all pages of one playlist import.
// For a completed run Fetched = Inserted + Skipped + ignored non-video items.
type ImportStats struct {
	PlaylistID string
	Fetched    int
	Inserted   int
	Skipped    int
	Duration   time.Duration
}

// ImportState is the per-playlist bookkeeping row updated after each
// successful import; tracked playlists are refreshed periodically.
type ImportState struct {
	ID             int64     `db:"id"`
	PlaylistID     string    `db:"playlist_id"`
	LastImportedAt time.Time `db:"last_imported_at"`
	TotalImported  int64     `db:"total_imported"`
}
