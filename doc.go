// Package ytpl resolves YouTube playlist references and scrapes playlist
// contents without an API key.
//
// It accepts a playlist, album or channel ID, or any of the usual URL
// shapes, fetches the playlist page, extracts the embedded ytInitialData
// payload, and paginates through YouTube's Innertube browse API until a
// caller-specified item limit is reached.
//
// # Quick start
//
// Fetch a playlist:
//
//	ctx := context.Background()
//	playlist, err := ytpl.Get(ctx, "https://www.youtube.com/playlist?list=PL...", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, item := range playlist.Items {
//		fmt.Println(item.Title)
//	}
//
// Resolve a reference without fetching:
//
//	id, err := ytpl.GetPlaylistID(ctx, "https://www.youtube.com/channel/UC...")
//
// Cheaply check a reference first:
//
//	if ytpl.ValidateID(ref) { ... }
//
// # Options
//
// Get takes *Options to cap the item count and override locale:
//
//	playlist, err := ytpl.Get(ctx, id, &ytpl.Options{Limit: 50, GL: "DE", HL: "de"})
//
// # Error handling
//
// Failures are sentinel errors usable with errors.Is:
//
//	if errors.Is(err, ytpl.ErrMixNotSupported) { ... }
//
// Upstream alert messages (for deleted or private playlists) surface as
// *AlertError carrying the message verbatim.
//
// For more control - custom transports, retry policy, logging - use the
// youtube sub-package directly:
//
//	client := youtube.New(youtube.WithRetries(5))
//	playlist, err := client.Fetch(ctx, ref, nil)
//
// Setting YTPL_DISABLE_KEEPALIVE=true disables HTTP keep-alives, which
// helps behind proxies that mishandle pooled connections.
package ytpl
