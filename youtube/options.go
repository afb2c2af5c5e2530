package youtube

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/AugusDogus/ytpl/youtube/innertube"
)

const (
	// DefaultLimit is the item budget applied when the caller supplies no
	// usable limit.
	DefaultLimit = 100

	// consentCookie bypasses YouTube's legal-consent interstitial, which is
	// served instead of content to non-consenting clients.
	consentCookie = "SOCS=CAI"

	// defaultUserAgent mimics a desktop browser; YouTube serves the consent
	// interstitial to unrecognized clients.
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/87.0.4280.101 Safari/537.36"
)

// Options are the caller-facing fetch options.
type Options struct {
	// Limit caps the number of items fetched across all pages. Values <= 0
	// fall back to DefaultLimit.
	Limit int
	// GL overrides the geolocation query parameter and request context.
	GL string
	// HL overrides the language query parameter and request context.
	HL string
	// UTCOffsetMinutes overrides the request context's timezone offset when
	// non-zero.
	UTCOffsetMinutes int
	// Headers are extra headers applied to every outbound request.
	Headers map[string]string
}

// normalizedOptions is the validated fetch configuration. The item budget is
// threaded through the call tree as explicit remaining counts, never shared
// mutable state.
type normalizedOptions struct {
	limit   int
	query   url.Values
	headers map[string]string
	context innertube.ContextOptions
}

// normalizeOptions merges caller options with defaults, repairs the limit,
// and builds the outbound query and headers.
func normalizeOptions(id string, opts *Options) (*normalizedOptions, error) {
	if id == "" {
		return nil, ErrMissingPlaylistID
	}
	if opts == nil {
		opts = &Options{}
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	query := url.Values{}
	query.Set("gl", "US")
	query.Set("hl", "en")
	query.Set("list", id)
	if opts.GL != "" {
		query.Set("gl", opts.GL)
	}
	if opts.HL != "" {
		query.Set("hl", opts.HL)
	}

	headers := normalizeHeaders(opts.Headers)

	return &normalizedOptions{
		limit:   limit,
		query:   query,
		headers: headers,
		context: innertube.ContextOptions{
			GL:               opts.GL,
			HL:               opts.HL,
			UTCOffsetMinutes: opts.UTCOffsetMinutes,
		},
	}, nil
}

// normalizeHeaders copies the caller's headers under canonical keys and
// injects the browser user-agent and consent cookie YouTube needs to serve
// real content. An existing cookie keeps its values, with the consent token
// appended when missing.
func normalizeHeaders(extra map[string]string) map[string]string {
	headers := make(map[string]string, len(extra)+2)
	for k, v := range extra {
		headers[http.CanonicalHeaderKey(k)] = v
	}

	if headers["User-Agent"] == "" {
		headers["User-Agent"] = defaultUserAgent
	}

	cookie := headers["Cookie"]
	switch {
	case cookie == "":
		headers["Cookie"] = consentCookie
	case !strings.Contains(cookie, "SOCS="):
		headers["Cookie"] = cookie + "; " + consentCookie
	}

	return headers
}
