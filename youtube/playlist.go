package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	ythttp "github.com/AugusDogus/ytpl/http"
	"github.com/AugusDogus/ytpl/retry"
	"github.com/AugusDogus/ytpl/youtube/innertube"
)

// basePlaylistURL is the playlist page endpoint, query-string driven.
const basePlaylistURL = "https://www.youtube.com/playlist?"

// errNoInitialData signals a page with no extractable initial data; it is
// retried and surfaces as ErrUnsupportedPlaylist once retries run out.
var errNoInitialData = errors.New("no initial data in playlist page")

// Client fetches playlists. The zero retry config retries the whole
// pipeline three times, mirroring the page's flakiness under consent and
// A/B-test variations.
type Client struct {
	http  ythttp.Doer
	api   *innertube.Client
	retry retry.Config
	log   zerolog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient supplies the transport used for page and API fetches.
func WithHTTPClient(doer ythttp.Doer) ClientOption {
	return func(c *Client) {
		c.http = doer
	}
}

// WithRetries sets how many times a failed fetch pipeline is re-run.
func WithRetries(n int) ClientOption {
	return func(c *Client) {
		c.retry.MaxRetries = n
	}
}

// WithRetryConfig sets the full retry configuration.
func WithRetryConfig(cfg retry.Config) ClientOption {
	return func(c *Client) {
		c.retry = cfg
	}
}

// WithLogger sets the logger; the default logs nothing.
func WithLogger(log zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// New creates a playlist client.
func New(opts ...ClientOption) *Client {
	c := &Client{
		retry: retry.Config{
			MaxRetries:     3,
			InitialBackoff: 250 * time.Millisecond,
			MaxBackoff:     5 * time.Second,
			Multiplier:     2.0,
			JitterFraction: 0.2,
		},
		log: zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		c.http = ythttp.New(nil)
	}
	c.api = innertube.NewClient(c.http)

	return c
}

// Fetch resolves a playlist reference, scrapes the playlist page, and
// paginates through continuations until the item limit is reached or the
// playlist is exhausted. The whole pipeline is retried on transient
// failures; resolution errors, ErrUnknownPlaylist and upstream alert errors
// are terminal. After exhaustion the last failure is surfaced as-is.
func (c *Client) Fetch(ctx context.Context, linkOrID string, opts *Options) (*Playlist, error) {
	var result *Playlist
	attempt := 0

	err := retry.Do(ctx, c.retry, fetchRetryable, func(ctx context.Context) error {
		attempt++

		id, err := c.ResolveID(ctx, linkOrID)
		if err != nil {
			return err
		}
		normalized, err := normalizeOptions(id, opts)
		if err != nil {
			return err
		}

		playlist, err := c.fetchOnce(ctx, id, normalized)
		if err != nil {
			c.log.Warn().Err(err).Int("attempt", attempt).Str("playlist", id).
				Msg("playlist fetch attempt failed")
			return err
		}

		result = playlist
		return nil
	})
	if err != nil {
		if errors.Is(err, errNoInitialData) {
			return nil, ErrUnsupportedPlaylist
		}
		return nil, err
	}

	return result, nil
}

// fetchRetryable classifies pipeline failures. Reference/option errors, a
// structurally absent sidebar, and explicit upstream alerts are permanent;
// extraction and traversal failures are scrape glitches worth retrying.
func fetchRetryable(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidReference),
		errors.Is(err, ErrUnsupportedHost),
		errors.Is(err, ErrUnsupportedReference),
		errors.Is(err, ErrMixNotSupported),
		errors.Is(err, ErrChannelUnresolvable),
		errors.Is(err, ErrMissingPlaylistID):
		return false
	case isTerminal(err):
		return false
	}
	return retry.IsRetryable(err)
}

// fetchOnce runs one pass of the pipeline: page fetch, body extraction with
// browse fallback, alert handling, and playlist assembly.
func (c *Client) fetchOnce(ctx context.Context, id string, opts *normalizedOptions) (*Playlist, error) {
	resp, err := c.http.Do(ctx, http.MethodGet, basePlaylistURL+opts.query.Encode(), nil, opts.headers)
	if err != nil {
		return nil, fmt.Errorf("fetch playlist page: %w", err)
	}

	body := string(resp.Body)
	parsed := innertube.ParseBody(body, opts.context)

	if parsed.Data == nil {
		// The fallback masks its own failures: a fallback that also comes up
		// empty leaves the "still no json" condition in place rather than
		// surfacing a secondary error.
		if data, err := c.browseFallback(ctx, body, id, parsed, opts); err == nil {
			parsed.Data = data
		}
	}
	if parsed.Data == nil {
		return nil, errNoInitialData
	}

	data := parsed.Data

	// A sidebar-less page is YouTube serving its main page for a playlist
	// that does not render, not a scrape glitch.
	if data.Sidebar == nil {
		return nil, ErrUnknownPlaylist
	}

	if len(data.Alerts) > 0 && data.Contents == nil {
		for _, alert := range data.Alerts {
			if alert.AlertRenderer != nil && alert.AlertRenderer.Type == "ERROR" {
				return nil, &AlertError{Message: alert.AlertRenderer.Text.String()}
			}
		}
	}

	return c.buildPlaylist(ctx, id, data, parsed, opts)
}

// browseFallback attempts one internal-API call when the page embedded no
// initial data, using a scraped or synthesized browse id.
func (c *Client) browseFallback(ctx context.Context, body, id string, parsed innertube.ParsedBody, opts *normalizedOptions) (*innertube.InitialData, error) {
	if parsed.APIKey == "" || parsed.Context.Client.ClientVersion == "" {
		return nil, errors.New("missing api key")
	}

	browseID := innertube.Between(body, `"key":"browse_id","value":"`, `"`)
	if browseID == "" {
		browseID = "VL" + id
	}

	return c.api.Browse(ctx, parsed.APIKey, innertube.BrowseRequest{
		Context:  parsed.Context,
		BrowseID: browseID,
	}, opts.headers)
}

// buildPlaylist assembles the domain playlist from the initial data: sidebar
// metadata, the first page of items, and whatever continuation pagination
// still fits the budget. Any missing field in the nested structure comes
// back as an error the retry loop treats as transient.
func (c *Client) buildPlaylist(ctx context.Context, id string, data *innertube.InitialData, parsed innertube.ParsedBody, opts *normalizedOptions) (*Playlist, error) {
	info, err := sidebarPrimaryInfo(data)
	if err != nil {
		return nil, err
	}

	thumbnail, err := playlistThumbnail(info)
	if err != nil {
		return nil, err
	}

	if len(info.Stats) == 0 {
		return nil, errors.New("missing playlist stats")
	}
	totalItems := info.Stats[0].Integer()
	views := 0
	if len(info.Stats) == 3 {
		views = info.Stats[1].Integer()
	}

	playlist := &Playlist{
		ID:          id,
		URL:         basePlaylistURL + "list=" + id,
		Title:       info.Title.String(),
		Description: info.Description.String(),
		Thumbnail:   thumbnail,
		TotalItems:  totalItems,
		Views:       views,
		Items:       []PlaylistItem{},
	}

	raw, err := firstPageItems(data)
	if err != nil {
		return nil, err
	}

	remaining := opts.limit
	page := innertube.ParsePage(raw, remaining)
	for _, item := range page {
		playlist.Items = append(playlist.Items, itemToDomain(item))
	}
	remaining -= len(page)

	token := innertube.FindContinuation(raw)
	if token == "" || remaining < 1 {
		return playlist, nil
	}

	if parsed.APIKey == "" {
		return nil, errors.New("missing API key for pagination")
	}
	more, err := c.api.Continue(ctx, parsed.APIKey, token, parsed.Context, opts.headers, remaining)
	if err != nil {
		return nil, err
	}
	for _, item := range more {
		playlist.Items = append(playlist.Items, itemToDomain(item))
	}

	return playlist, nil
}

// sidebarPrimaryInfo locates the sidebar's primary info renderer.
func sidebarPrimaryInfo(data *innertube.InitialData) (*innertube.SidebarPrimaryInfo, error) {
	renderer := data.Sidebar.PlaylistSidebarRenderer
	if renderer == nil {
		return nil, errors.New("missing playlist sidebar renderer")
	}
	for _, item := range renderer.Items {
		if item.PlaylistSidebarPrimaryInfoRenderer != nil {
			return item.PlaylistSidebarPrimaryInfoRenderer, nil
		}
	}
	return nil, errors.New("missing playlist sidebar info")
}

// playlistThumbnail picks the maximum-width playlist thumbnail from the
// sidebar, which wraps it under one of two renderer keys.
func playlistThumbnail(info *innertube.SidebarPrimaryInfo) (Image, error) {
	if info.ThumbnailRenderer == nil {
		return Image{}, errors.New("missing playlist thumbnail renderer")
	}

	box := info.ThumbnailRenderer.PlaylistVideoThumbnailRenderer
	if box == nil {
		box = info.ThumbnailRenderer.PlaylistCustomThumbnailRenderer
	}
	if box == nil || box.Thumbnail == nil {
		return Image{}, errors.New("missing playlist thumbnail")
	}

	best := box.Thumbnail.Best()
	if best == nil {
		return Image{}, errors.New("missing playlist thumbnail")
	}
	return Image{URL: best.URL, Width: best.Width, Height: best.Height}, nil
}

// firstPageItems walks the browse layout down to the playlist's raw video
// list. Missing steps mean the playlist rendered without content.
func firstPageItems(data *innertube.InitialData) ([]innertube.RawItem, error) {
	if data.Contents == nil || data.Contents.TwoColumnBrowseResultsRenderer == nil {
		return nil, errors.New("missing playlist contents")
	}
	tabs := data.Contents.TwoColumnBrowseResultsRenderer.Tabs
	if len(tabs) == 0 || tabs[0].TabRenderer == nil || tabs[0].TabRenderer.Content == nil {
		return nil, errors.New("missing playlist tab")
	}
	sectionList := tabs[0].TabRenderer.Content.SectionListRenderer
	if sectionList == nil {
		return nil, errors.New("missing playlist section list")
	}

	var itemSection *innertube.ItemSectionRenderer
	for _, section := range sectionList.Contents {
		if section.ItemSectionRenderer != nil {
			itemSection = section.ItemSectionRenderer
			break
		}
	}
	if itemSection == nil {
		return nil, errors.New("empty playlist")
	}

	for _, content := range itemSection.Contents {
		if content.PlaylistVideoListRenderer != nil {
			return content.PlaylistVideoListRenderer.Contents, nil
		}
	}
	return nil, errors.New("empty playlist")
}

// itemToDomain converts an innertube item to the domain model.
func itemToDomain(item innertube.Item) PlaylistItem {
	return PlaylistItem{
		ID:        item.ID,
		Title:     item.Title,
		URL:       item.URL,
		ShortURL:  item.ShortURL,
		Thumbnail: item.Thumbnail,
		Author: Author{
			Name:      item.AuthorName,
			ChannelID: item.AuthorChannelID,
			URL:       item.AuthorURL,
		},
		IsLive:   item.IsLive,
		Duration: item.Duration,
	}
}
