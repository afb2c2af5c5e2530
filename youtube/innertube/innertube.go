// Package innertube extracts playlist data embedded in YouTube's web pages
// and talks to the Innertube browse API for continuation token-based
// pagination.
package innertube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	ythttp "github.com/AugusDogus/ytpl/http"
)

const (
	// browseAPIURL is the Innertube browse endpoint; the scraped API key is
	// appended to the query string.
	browseAPIURL = "https://www.youtube.com/youtubei/v1/browse?key="

	// defaultClientName identifies web requests.
	defaultClientName = "WEB"
	// defaultUTCOffsetMinutes is the offset the web client reports by default.
	defaultUTCOffsetMinutes = -300
)

// Context is the client/user/request descriptor the browse API requires.
type Context struct {
	Client  ClientInfo `json:"client"`
	User    struct{}   `json:"user"`
	Request struct{}   `json:"request"`
}

// ClientInfo identifies the client making a browse request. ClientVersion is
// scraped from the playlist page.
type ClientInfo struct {
	UTCOffsetMinutes int    `json:"utcOffsetMinutes"`
	GL               string `json:"gl"`
	HL               string `json:"hl"`
	ClientName       string `json:"clientName"`
	ClientVersion    string `json:"clientVersion"`
}

// ContextOptions carries caller locale/timezone overrides into the context.
type ContextOptions struct {
	GL string
	HL string
	// UTCOffsetMinutes overrides the default offset when non-zero.
	UTCOffsetMinutes int
}

// BuildContext assembles a request context from defaults, the scraped client
// version, and caller overrides.
func BuildContext(clientVersion string, opts ContextOptions) Context {
	ctx := Context{
		Client: ClientInfo{
			UTCOffsetMinutes: defaultUTCOffsetMinutes,
			GL:               "US",
			HL:               "en",
			ClientName:       defaultClientName,
			ClientVersion:    clientVersion,
		},
	}

	if opts.GL != "" {
		ctx.Client.GL = opts.GL
	}
	if opts.HL != "" {
		ctx.Client.HL = opts.HL
	}
	if opts.UTCOffsetMinutes != 0 {
		ctx.Client.UTCOffsetMinutes = opts.UTCOffsetMinutes
	}

	return ctx
}

// BrowseRequest is the JSON body posted to the browse endpoint: a context
// plus either a browse id (first page fallback) or a continuation token.
type BrowseRequest struct {
	Context      Context `json:"context"`
	BrowseID     string  `json:"browseId,omitempty"`
	Continuation string  `json:"continuation,omitempty"`
}

// Client issues Innertube browse requests over a caller-supplied transport.
type Client struct {
	http ythttp.Doer
}

// NewClient creates a browse API client.
func NewClient(httpClient ythttp.Doer) *Client {
	return &Client{http: httpClient}
}

// Browse posts a request to the browse endpoint and decodes the response.
// The caller's headers are forwarded so consent cookie and user-agent match
// the page fetch.
func (c *Client) Browse(ctx context.Context, apiKey string, req BrowseRequest, headers map[string]string) (*InitialData, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal browse request: %w", err)
	}

	reqHeaders := make(map[string]string, len(headers)+1)
	for k, v := range headers {
		reqHeaders[k] = v
	}
	reqHeaders["Content-Type"] = "application/json"

	resp, err := c.http.Do(ctx, "POST", browseAPIURL+apiKey, bytes.NewReader(body), reqHeaders)
	if err != nil {
		return nil, fmt.Errorf("browse request: %w", err)
	}

	var data InitialData
	if err := json.Unmarshal(resp.Body, &data); err != nil {
		return nil, fmt.Errorf("unmarshal browse response: %w", err)
	}

	return &data, nil
}

// InitialData is the page-level payload, either embedded in the playlist
// page as ytInitialData or returned by the browse API. Everything is
// optional: absent branches signal specific fallback paths, not errors.
type InitialData struct {
	Alerts                    []Alert          `json:"alerts,omitempty"`
	Sidebar                   *Sidebar         `json:"sidebar,omitempty"`
	Contents                  *PageContents    `json:"contents,omitempty"`
	OnResponseReceivedActions []ResponseAction `json:"onResponseReceivedActions,omitempty"`
}

// Alert is a page-level notice; an ERROR alert replaces playlist content.
type Alert struct {
	AlertRenderer *AlertRenderer `json:"alertRenderer,omitempty"`
}

// AlertRenderer carries the alert type and message.
type AlertRenderer struct {
	Type string `json:"type,omitempty"`
	Text *Text  `json:"text,omitempty"`
}

// Sidebar wraps the playlist sidebar.
type Sidebar struct {
	PlaylistSidebarRenderer *PlaylistSidebarRenderer `json:"playlistSidebarRenderer,omitempty"`
}

// PlaylistSidebarRenderer holds the sidebar's item list.
type PlaylistSidebarRenderer struct {
	Items []SidebarItem `json:"items,omitempty"`
}

// SidebarItem is one sidebar entry, tagged by its renderer key.
type SidebarItem struct {
	PlaylistSidebarPrimaryInfoRenderer *SidebarPrimaryInfo `json:"playlistSidebarPrimaryInfoRenderer,omitempty"`
}

// SidebarPrimaryInfo carries playlist metadata: title, description, stats
// (item count, view count, last updated) and the thumbnail.
type SidebarPrimaryInfo struct {
	ThumbnailRenderer *ThumbnailRenderer `json:"thumbnailRenderer,omitempty"`
	Title             *Text              `json:"title,omitempty"`
	Description       *Text              `json:"description,omitempty"`
	Stats             []Text             `json:"stats,omitempty"`
}

// ThumbnailRenderer wraps the playlist thumbnail under one of two keys.
type ThumbnailRenderer struct {
	PlaylistVideoThumbnailRenderer  *ThumbnailBox `json:"playlistVideoThumbnailRenderer,omitempty"`
	PlaylistCustomThumbnailRenderer *ThumbnailBox `json:"playlistCustomThumbnailRenderer,omitempty"`
}

// ThumbnailBox wraps a thumbnail candidate list.
type ThumbnailBox struct {
	Thumbnail *ThumbnailList `json:"thumbnail,omitempty"`
}

// PageContents holds the main browse layout.
type PageContents struct {
	TwoColumnBrowseResultsRenderer *TwoColumnBrowseResultsRenderer `json:"twoColumnBrowseResultsRenderer,omitempty"`
}

// TwoColumnBrowseResultsRenderer is the main layout renderer.
type TwoColumnBrowseResultsRenderer struct {
	Tabs []Tab `json:"tabs,omitempty"`
}

// Tab represents a browse tab.
type Tab struct {
	TabRenderer *TabRenderer `json:"tabRenderer,omitempty"`
}

// TabRenderer contains tab content.
type TabRenderer struct {
	Content *TabContent `json:"content,omitempty"`
}

// TabContent holds the content within a tab.
type TabContent struct {
	SectionListRenderer *SectionListRenderer `json:"sectionListRenderer,omitempty"`
}

// SectionListRenderer displays content in sections.
type SectionListRenderer struct {
	Contents []SectionContent `json:"contents,omitempty"`
}

// SectionContent holds section items.
type SectionContent struct {
	ItemSectionRenderer *ItemSectionRenderer `json:"itemSectionRenderer,omitempty"`
}

// ItemSectionRenderer renders a section of items.
type ItemSectionRenderer struct {
	Contents []ItemSectionContent `json:"contents,omitempty"`
}

// ItemSectionContent is one section entry, tagged by its renderer key.
type ItemSectionContent struct {
	PlaylistVideoListRenderer *PlaylistVideoListRenderer `json:"playlistVideoListRenderer,omitempty"`
}

// PlaylistVideoListRenderer holds the raw playlist video list.
type PlaylistVideoListRenderer struct {
	Contents []RawItem `json:"contents,omitempty"`
}

// ResponseAction represents an action in a continuation response.
type ResponseAction struct {
	AppendContinuationItemsAction *AppendContinuationItemsAction `json:"appendContinuationItemsAction,omitempty"`
}

// AppendContinuationItemsAction contains one continuation page's items.
type AppendContinuationItemsAction struct {
	ContinuationItems []RawItem `json:"continuationItems,omitempty"`
}
