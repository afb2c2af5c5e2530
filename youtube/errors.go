package youtube

import (
	"errors"
	"fmt"
)

// Sentinel errors for reference resolution. These are never retried and
// surface immediately to the caller.
var (
	// ErrInvalidReference indicates an empty playlist reference.
	ErrInvalidReference = errors.New("the linkOrId has to be a non-empty string")
	// ErrUnsupportedHost indicates a URL whose host is not a known YouTube host.
	ErrUnsupportedHost = errors.New("not a known youtube link")
	// ErrUnsupportedReference indicates a reference matching no recognized
	// ID pattern or URL shape.
	ErrUnsupportedReference = errors.New("unable to find a id")
	// ErrMixNotSupported indicates a radio/mix list reference.
	ErrMixNotSupported = errors.New("mixes not supported")
	// ErrChannelUnresolvable indicates a user/custom channel page that did not
	// expose a channel id.
	ErrChannelUnresolvable = errors.New("unable to resolve the ref")
)

// Sentinel errors for playlist fetching.
var (
	// ErrMissingPlaylistID indicates an empty playlist id passed to the
	// options normalizer.
	ErrMissingPlaylistID = errors.New("playlist ID is mandatory")
	// ErrUnsupportedPlaylist indicates no initial data could be extracted
	// from the playlist page, even via the API fallback, after all retries.
	ErrUnsupportedPlaylist = errors.New("unsupported playlist")
	// ErrUnknownPlaylist indicates the page rendered without a sidebar,
	// meaning the playlist is missing or removed. Never retried.
	ErrUnknownPlaylist = errors.New("unknown playlist")
)

// AlertError carries an explicit error message served by YouTube in place of
// playlist content (e.g. "This playlist does not exist."). Never retried.
type AlertError struct {
	Message string
}

// Error returns the upstream message verbatim.
func (e *AlertError) Error() string {
	return e.Message
}

// isTerminal reports whether a fetch error must not be retried.
func isTerminal(err error) bool {
	var alertErr *AlertError
	return errors.Is(err, ErrUnknownPlaylist) || errors.As(err, &alertErr)
}

// resolveError wraps resolver failures with the offending reference.
func resolveError(sentinel error, ref string) error {
	return fmt.Errorf("%w: %q", sentinel, ref)
}
