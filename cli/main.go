// Command ytpl fetches a YouTube playlist and prints its items.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/rs/zerolog"

	"github.com/AugusDogus/ytpl/config"
	ythttp "github.com/AugusDogus/ytpl/http"
	"github.com/AugusDogus/ytpl/youtube"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ytpl: %v\n", err)
		os.Exit(1)
	}

	limit := flag.Int("limit", cfg.Limit, "maximum number of items to fetch")
	retries := flag.Int("retries", cfg.Retries, "retry attempts for the whole fetch pipeline")
	gl := flag.String("gl", cfg.GL, "geolocation override (e.g. US)")
	hl := flag.String("hl", cfg.HL, "language override (e.g. en)")
	asJSON := flag.Bool("json", false, "print the playlist as JSON")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() != 1 {
		printUsage()
		os.Exit(1)
	}
	ref := flag.Arg(0)

	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	httpCfg := ythttp.DefaultConfig()
	httpCfg.Timeout = cfg.Timeout
	httpCfg.Logger = log

	client := youtube.New(
		youtube.WithHTTPClient(ythttp.New(httpCfg)),
		youtube.WithRetries(*retries),
		youtube.WithLogger(log),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	playlist, err := client.Fetch(ctx, ref, &youtube.Options{
		Limit: *limit,
		GL:    *gl,
		HL:    *hl,
	})
	if err != nil {
		log.Error().Err(err).Str("ref", ref).Msg("fetch failed")
		os.Exit(1)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(playlist); err != nil {
			log.Error().Err(err).Msg("encode failed")
			os.Exit(1)
		}
		return
	}

	fmt.Printf("%s (%d videos, %d views)\n%s\n\n", playlist.Title, playlist.TotalItems, playlist.Views, playlist.URL)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tTITLE\tDURATION\tCHANNEL")
	for i, item := range playlist.Items {
		duration := "-"
		if item.IsLive {
			duration = "LIVE"
		} else if item.Duration != nil {
			duration = *item.Duration
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, item.Title, duration, item.Author.Name)
	}
	w.Flush()
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `ytpl - fetch a YouTube playlist without an API key

Usage:
  ytpl [flags] <playlist-url-or-id>

Examples:
  ytpl https://www.youtube.com/playlist?list=PLxxxx
  ytpl -limit 10 PLxxxx
  ytpl -json UCxxxx > playlist.json

Flags:
`)
	flag.PrintDefaults()
}
