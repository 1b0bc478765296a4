package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"video_catalog/internal/domain"
)

const (
	// MaxPageSize is the upstream playlistItems limit per request.
	MaxPageSize = 50

	kindVideo = "youtube#video"
)

// Config holds YouTube Data API client configuration.
type Config struct {
	APIKey   string
	BaseURL  string
	PageSize int
	Timeout  time.Duration
}

// Client fetches playlist pages and single-video metadata from the YouTube
// Data API v3. It performs exactly one request per call; retry policy, if
// any, belongs to the caller.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	pageSize   int
	logger     *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Client {
	pageSize := cfg.PageSize
	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		pageSize: pageSize,
		logger:   logger.With("source", "youtube"),
	}
}

// FetchPlaylistPage fetches one page of playlist entries. An empty pageToken
// requests the first page.
func (c *Client) FetchPlaylistPage(ctx context.Context, playlistID, pageToken string) (*domain.PlaylistPage, error) {
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("maxResults", strconv.Itoa(c.pageSize))
	q.Set("playlistId", playlistID)
	q.Set("key", c.apiKey)
	if pageToken != "" {
		q.Set("pageToken", pageToken)
	}

	var resp PlaylistItemsResponse
	if err := c.get(ctx, "/playlistItems", q, &resp); err != nil {
		return nil, err
	}

	page := &domain.PlaylistPage{
		Items:         make([]domain.PlaylistItem, 0, len(resp.Items)),
		NextPageToken: resp.NextPageToken,
	}

	for _, item := range resp.Items {
		page.Items = append(page.Items, transformItem(item))
	}

	c.logger.Debug("fetched playlist page",
		"playlist_id", playlistID,
		"items", len(page.Items),
		"has_next", page.NextPageToken != "",
	)

	return page, nil
}

// FetchVideo fetches metadata for a single video id. A response with no
// items yields domain.ErrNotFound.
func (c *Client) FetchVideo(ctx context.Context, videoID string) (*domain.VideoSnippet, error) {
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("id", videoID)
	q.Set("key", c.apiKey)

	var resp VideosResponse
	if err := c.get(ctx, "/videos", q, &resp); err != nil {
		return nil, err
	}

	if len(resp.Items) == 0 {
		return nil, domain.ErrNotFound
	}

	return &domain.VideoSnippet{
		ID:    resp.Items[0].ID,
		Title: resp.Items[0].Snippet.Title,
	}, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	reqURL := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "VideoCatalog/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.SourceUnavailableError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &domain.SourceUnavailableError{
			Status: resp.StatusCode,
			Body:   string(body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func transformItem(item APIPlaylistItem) domain.PlaylistItem {
	// Entries without a snippet, or whose resource is not a video, stay in
	// the page (they count as fetched) but are never reconciled.
	if item.Snippet == nil || item.Snippet.ResourceID.Kind != kindVideo {
		return domain.PlaylistItem{Kind: domain.ItemKindOther}
	}

	return domain.PlaylistItem{
		Kind:    domain.ItemKindVideo,
		VideoID: item.Snippet.ResourceID.VideoID,
		Title:   item.Snippet.Title,
	}
}
