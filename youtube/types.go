// Package youtube resolves playlist references and scrapes playlist contents
// from YouTube's web frontend and Innertube browse API.
package youtube

// Image is a thumbnail candidate, selected from a renderer's list by
// maximum width.
type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Author identifies the channel that uploaded a playlist item.
type Author struct {
	Name      string `json:"name"`
	ChannelID string `json:"channelID"`
	URL       string `json:"url"`
}

// PlaylistItem is one video entry of a playlist. ID is always a valid video
// id; malformed source renderers never produce a partially-filled item.
type PlaylistItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	ShortURL  string `json:"shortUrl"`
	Thumbnail string `json:"thumbnail"`
	Author    Author `json:"author"`
	IsLive    bool   `json:"isLive"`
	// Duration is the length text ("3:32"), nil for live streams and other
	// entries without one.
	Duration *string `json:"duration"`
}

// Playlist is the scraped playlist: metadata plus the ordered items.
// TotalItems and Views reflect upstream-reported totals, independent of how
// many items were actually fetched.
type Playlist struct {
	ID          string         `json:"id"`
	URL         string         `json:"url"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Thumbnail   Image          `json:"thumbnail"`
	TotalItems  int            `json:"total_items"`
	Views       int            `json:"views"`
	Items       []PlaylistItem `json:"items"`
}
