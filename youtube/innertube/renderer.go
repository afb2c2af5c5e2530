package innertube

import (
	"net/url"
	"strconv"
	"strings"
)

// BaseVideoURL prefixes watch URLs and resolves relative renderer URLs.
const BaseVideoURL = "https://www.youtube.com/watch?v="

// Text is YouTube's union text format: either a flat string or a list of
// run segments. Unrecognized shapes collapse to the empty string.
type Text struct {
	SimpleText string    `json:"simpleText,omitempty"`
	Runs       []TextRun `json:"runs,omitempty"`
}

// TextRun is one segment of a runs-style text.
type TextRun struct {
	Text               string              `json:"text,omitempty"`
	NavigationEndpoint *NavigationEndpoint `json:"navigationEndpoint,omitempty"`
}

// String concatenates the text content, preferring the flat form.
func (t *Text) String() string {
	if t == nil {
		return ""
	}
	if t.SimpleText != "" {
		return t.SimpleText
	}
	var b strings.Builder
	for _, run := range t.Runs {
		b.WriteString(run.Text)
	}
	return b.String()
}

// Integer parses the first integer out of the text, stripping every
// non-digit character ("1,012 videos" -> 1012). Unparseable text yields 0.
func (t *Text) Integer() int {
	var digits strings.Builder
	for _, r := range t.String() {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return n
}

// NavigationEndpoint carries the target of a rendered link.
type NavigationEndpoint struct {
	BrowseEndpoint  *BrowseEndpoint  `json:"browseEndpoint,omitempty"`
	CommandMetadata *CommandMetadata `json:"commandMetadata,omitempty"`
}

// BrowseEndpoint identifies a channel or playlist browse target.
type BrowseEndpoint struct {
	BrowseID string `json:"browseId,omitempty"`
}

// CommandMetadata wraps web navigation metadata.
type CommandMetadata struct {
	WebCommandMetadata *WebCommandMetadata `json:"webCommandMetadata,omitempty"`
}

// WebCommandMetadata carries the (usually relative) target URL.
type WebCommandMetadata struct {
	URL string `json:"url,omitempty"`
}

// ThumbnailList contains thumbnail candidates.
type ThumbnailList struct {
	Thumbnails []Thumbnail `json:"thumbnails,omitempty"`
}

// Thumbnail is a single thumbnail candidate.
type Thumbnail struct {
	URL    string `json:"url,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Best returns the maximum-width candidate; ties keep the earlier entry.
func (t *ThumbnailList) Best() *Thumbnail {
	if t == nil || len(t.Thumbnails) == 0 {
		return nil
	}
	best := &t.Thumbnails[0]
	for i := 1; i < len(t.Thumbnails); i++ {
		if t.Thumbnails[i].Width > best.Width {
			best = &t.Thumbnails[i]
		}
	}
	return best
}

// ThumbnailOverlay is an overlay badge on a video thumbnail.
type ThumbnailOverlay struct {
	ThumbnailOverlayTimeStatusRenderer *TimeStatusRenderer `json:"thumbnailOverlayTimeStatusRenderer,omitempty"`
}

// TimeStatusRenderer marks the duration badge; style "LIVE" flags a live
// stream.
type TimeStatusRenderer struct {
	Style string `json:"style,omitempty"`
}

// RawItem is one upstream playlist entry, tagged by its renderer key:
// either a video or a continuation marker.
type RawItem struct {
	PlaylistVideoRenderer    *PlaylistVideoRenderer    `json:"playlistVideoRenderer,omitempty"`
	ContinuationItemRenderer *ContinuationItemRenderer `json:"continuationItemRenderer,omitempty"`
}

// PlaylistVideoRenderer describes one video entry of a playlist.
type PlaylistVideoRenderer struct {
	VideoID            string              `json:"videoId,omitempty"`
	Title              *Text               `json:"title,omitempty"`
	ShortBylineText    *Text               `json:"shortBylineText,omitempty"`
	Thumbnail          *ThumbnailList      `json:"thumbnail,omitempty"`
	ThumbnailOverlays  []ThumbnailOverlay  `json:"thumbnailOverlays,omitempty"`
	LengthText         *Text               `json:"lengthText,omitempty"`
	NavigationEndpoint *NavigationEndpoint `json:"navigationEndpoint,omitempty"`
	IsPlayable         *bool               `json:"isPlayable,omitempty"`
	UpcomingEventData  map[string]any      `json:"upcomingEventData,omitempty"`
}

// ContinuationItemRenderer holds the next page's continuation token.
type ContinuationItemRenderer struct {
	ContinuationEndpoint *ContinuationEndpoint `json:"continuationEndpoint,omitempty"`
}

// ContinuationEndpoint wraps the continuation command.
type ContinuationEndpoint struct {
	ContinuationCommand *ContinuationCommand `json:"continuationCommand,omitempty"`
}

// ContinuationCommand carries the opaque token.
type ContinuationCommand struct {
	Token string `json:"token,omitempty"`
}

// Item is a fully parsed playlist entry.
type Item struct {
	ID              string
	Title           string
	URL             string
	ShortURL        string
	Thumbnail       string
	AuthorName      string
	AuthorChannelID string
	AuthorURL       string
	IsLive          bool
	Duration        *string
}

// ParseItem maps one raw entry to an Item. It returns nil - meaning "skip
// this entry" - for anything that is not a playable playlist video: wrong
// renderer tag, missing byline or author, upcoming premieres, entries
// flagged not playable, or a malformed renderer. It never fails the page.
func ParseItem(item RawItem) *Item {
	info := item.PlaylistVideoRenderer
	if info == nil || item.ContinuationItemRenderer != nil {
		return nil
	}

	if info.ShortBylineText == nil ||
		info.UpcomingEventData != nil ||
		(info.IsPlayable != nil && !*info.IsPlayable) {
		return nil
	}
	if len(info.ShortBylineText.Runs) == 0 {
		return nil
	}

	author := info.ShortBylineText.Runs[0]
	if author.NavigationEndpoint == nil || author.NavigationEndpoint.BrowseEndpoint == nil {
		return nil
	}
	authorURL := webURL(author.NavigationEndpoint)
	if authorURL == "" {
		return nil
	}

	if info.VideoID == "" {
		return nil
	}
	itemURL := webURL(info.NavigationEndpoint)
	if itemURL == "" {
		return nil
	}

	isLive := false
	for _, overlay := range info.ThumbnailOverlays {
		if overlay.ThumbnailOverlayTimeStatusRenderer != nil &&
			overlay.ThumbnailOverlayTimeStatusRenderer.Style == "LIVE" {
			isLive = true
			break
		}
	}

	thumbnail := ""
	if best := info.Thumbnail.Best(); best != nil {
		thumbnail = best.URL
	}

	var duration *string
	if info.LengthText != nil {
		text := info.LengthText.String()
		duration = &text
	}

	return &Item{
		ID:              info.VideoID,
		Title:           info.Title.String(),
		URL:             itemURL,
		ShortURL:        BaseVideoURL + info.VideoID,
		Thumbnail:       thumbnail,
		AuthorName:      author.Text,
		AuthorChannelID: author.NavigationEndpoint.BrowseEndpoint.BrowseID,
		AuthorURL:       authorURL,
		IsLive:          isLive,
		Duration:        duration,
	}
}

// webURL resolves an endpoint's relative web URL against the video base.
// Any gap in the nesting yields "".
func webURL(endpoint *NavigationEndpoint) string {
	if endpoint == nil || endpoint.CommandMetadata == nil ||
		endpoint.CommandMetadata.WebCommandMetadata == nil {
		return ""
	}
	raw := endpoint.CommandMetadata.WebCommandMetadata.URL
	if raw == "" {
		return ""
	}

	base, err := url.Parse(BaseVideoURL)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
