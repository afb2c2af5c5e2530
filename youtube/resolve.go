package youtube

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	// playlistRegex matches clean playlist IDs. The RD prefix is included
	// for completeness, but genuine mix lists are shorter and rejected by
	// the mix check below.
	playlistRegex = regexp.MustCompile(`^(FL|PL|UU|LL|RD)[a-zA-Z0-9-_]{16,41}$`)
	// albumRegex matches YouTube Music album IDs.
	albumRegex = regexp.MustCompile(`^OLAK5uy_[a-zA-Z0-9-_]{33}$`)
	// channelRegex matches channel IDs, convertible to uploads playlists.
	channelRegex = regexp.MustCompile(`^UC[a-zA-Z0-9-_]{22,32}$`)
	// channelOnPageRegex locates the channel id embedded in a user/custom
	// channel page.
	channelOnPageRegex = regexp.MustCompile(`channel_id=UC([\w-]{22,32})"`)
)

// ytHosts are the hosts recognized as YouTube links.
var ytHosts = map[string]bool{
	"www.youtube.com":   true,
	"youtube.com":       true,
	"music.youtube.com": true,
}

// ResolveID normalizes a playlist reference - a clean playlist, album or
// channel ID, or any supported URL shape - into a canonical playlist id.
// Channel references resolve to the channel's uploads playlist; user/ and c/
// URLs require a secondary page fetch to discover the channel id.
func (c *Client) ResolveID(ctx context.Context, linkOrID string) (string, error) {
	if linkOrID == "" {
		return "", ErrInvalidReference
	}

	if playlistRegex.MatchString(linkOrID) || albumRegex.MatchString(linkOrID) {
		return linkOrID, nil
	}
	if channelRegex.MatchString(linkOrID) {
		return uploadsList(linkOrID), nil
	}

	parsed, err := parseReferenceURL(linkOrID)
	if err != nil {
		return "", resolveError(ErrUnsupportedReference, linkOrID)
	}
	if !ytHosts[parsed.Host] {
		return "", resolveError(ErrUnsupportedHost, linkOrID)
	}

	if parsed.Query().Has("list") {
		listParam := parsed.Query().Get("list")
		if playlistRegex.MatchString(listParam) || albumRegex.MatchString(listParam) {
			return listParam, nil
		}
		if strings.HasPrefix(listParam, "RD") {
			return "", ErrMixNotSupported
		}
		return "", resolveError(ErrUnsupportedReference, linkOrID)
	}

	segments, ok := pathSegments(parsed)
	if !ok {
		return "", resolveError(ErrUnsupportedReference, linkOrID)
	}
	refType := segments[len(segments)-2]
	refID := segments[len(segments)-1]

	switch refType {
	case "channel":
		if channelRegex.MatchString(refID) {
			return uploadsList(refID), nil
		}
	case "user":
		return c.toUploadsList(ctx, "https://www.youtube.com/user/"+refID)
	case "c":
		return c.toUploadsList(ctx, "https://www.youtube.com/c/"+refID)
	}

	return "", resolveError(ErrUnsupportedReference, linkOrID)
}

// ValidateID reports whether a reference could resolve to a playlist. It is
// a purely syntactic check: user/ and c/ URLs, which would need a network
// fetch to resolve, are optimistically valid.
func ValidateID(linkOrID string) bool {
	if linkOrID == "" {
		return false
	}

	if playlistRegex.MatchString(linkOrID) || albumRegex.MatchString(linkOrID) ||
		channelRegex.MatchString(linkOrID) {
		return true
	}

	parsed, err := parseReferenceURL(linkOrID)
	if err != nil || !ytHosts[parsed.Host] {
		return false
	}

	if parsed.Query().Has("list") {
		listParam := parsed.Query().Get("list")
		return playlistRegex.MatchString(listParam) || albumRegex.MatchString(listParam)
	}

	segments, ok := pathSegments(parsed)
	if !ok {
		return false
	}

	switch segments[len(segments)-2] {
	case "channel":
		return channelRegex.MatchString(segments[len(segments)-1])
	case "user", "c":
		return true
	}
	return false
}

// toUploadsList fetches a user/custom channel page and scrapes the embedded
// channel id to derive the uploads playlist.
func (c *Client) toUploadsList(ctx context.Context, ref string) (string, error) {
	resp, err := c.http.Do(ctx, "GET", ref, nil, nil)
	if err != nil {
		return "", fmt.Errorf("fetch channel page: %w", err)
	}

	match := channelOnPageRegex.FindSubmatch(resp.Body)
	if match == nil {
		return "", resolveError(ErrChannelUnresolvable, ref)
	}
	return "UU" + string(match[1]), nil
}

// uploadsList substitutes the uploads-playlist prefix onto a channel id.
func uploadsList(channelID string) string {
	return "UU" + channelID[2:]
}

// parseReferenceURL parses a reference as a URL, resolving relative input
// against the playlist base the way browsers do.
func parseReferenceURL(linkOrID string) (*url.URL, error) {
	base, err := url.Parse(basePlaylistURL)
	if err != nil {
		return nil, err
	}
	u, err := url.Parse(linkOrID)
	if err != nil {
		return nil, err
	}
	return base.ResolveReference(u), nil
}

// pathSegments splits a URL path into its segments and verifies the last
// two are usable as a <type>/<id> pair.
func pathSegments(u *url.URL) ([]string, bool) {
	segments := strings.Split(strings.TrimPrefix(u.Path, "/"), "/")
	if len(segments) < 2 {
		return nil, false
	}
	for _, s := range segments {
		if s == "" {
			return nil, false
		}
	}
	return segments, true
}
