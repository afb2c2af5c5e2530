package ytpl

import (
	"context"
	"sync"

	"github.com/AugusDogus/ytpl/youtube"
)

// Type aliases re-exported for library users.
type (
	// Playlist is the scraped playlist: metadata plus ordered items.
	Playlist = youtube.Playlist
	// PlaylistItem is one video entry of a playlist.
	PlaylistItem = youtube.PlaylistItem
	// Author identifies the channel behind a playlist item.
	Author = youtube.Author
	// Image is a thumbnail selected by maximum width.
	Image = youtube.Image
	// Options are the caller-facing fetch options.
	Options = youtube.Options
	// AlertError carries an upstream error message verbatim.
	AlertError = youtube.AlertError
)

// Sentinel errors re-exported from the youtube package.
var (
	// ErrInvalidReference indicates an empty playlist reference.
	ErrInvalidReference = youtube.ErrInvalidReference
	// ErrUnsupportedHost indicates a URL on a non-YouTube host.
	ErrUnsupportedHost = youtube.ErrUnsupportedHost
	// ErrUnsupportedReference indicates an unrecognizable reference shape.
	ErrUnsupportedReference = youtube.ErrUnsupportedReference
	// ErrMixNotSupported indicates a radio/mix list reference.
	ErrMixNotSupported = youtube.ErrMixNotSupported
	// ErrChannelUnresolvable indicates a channel page without an embedded id.
	ErrChannelUnresolvable = youtube.ErrChannelUnresolvable
	// ErrMissingPlaylistID indicates an empty playlist id.
	ErrMissingPlaylistID = youtube.ErrMissingPlaylistID
	// ErrUnsupportedPlaylist indicates a page with no extractable data.
	ErrUnsupportedPlaylist = youtube.ErrUnsupportedPlaylist
	// ErrUnknownPlaylist indicates a missing or removed playlist.
	ErrUnknownPlaylist = youtube.ErrUnknownPlaylist
)

var (
	defaultClient     *youtube.Client
	defaultClientOnce sync.Once
)

func client() *youtube.Client {
	defaultClientOnce.Do(func() {
		defaultClient = youtube.New()
	})
	return defaultClient
}

// Get fetches a playlist by reference using the default client.
func Get(ctx context.Context, linkOrID string, opts *Options) (*Playlist, error) {
	return client().Fetch(ctx, linkOrID, opts)
}

// GetPlaylistID resolves a reference to a canonical playlist id. User and
// custom channel URLs trigger a page fetch to discover the channel id.
func GetPlaylistID(ctx context.Context, linkOrID string) (string, error) {
	return client().ResolveID(ctx, linkOrID)
}

// ValidateID reports whether a reference could resolve to a playlist,
// without touching the network.
func ValidateID(linkOrID string) bool {
	return youtube.ValidateID(linkOrID)
}
