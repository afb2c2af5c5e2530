package innertube

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func videoRendererJSON(videoID string) string {
	return `{
		"playlistVideoRenderer": {
			"videoId": "` + videoID + `",
			"title": {"runs": [{"text": "A "}, {"text": "Title"}]},
			"shortBylineText": {"runs": [{
				"text": "Some Channel",
				"navigationEndpoint": {
					"browseEndpoint": {"browseId": "UCabcdefghijklmnopqrstuv"},
					"commandMetadata": {"webCommandMetadata": {"url": "/channel/UCabcdefghijklmnopqrstuv"}}
				}
			}]},
			"thumbnail": {"thumbnails": [
				{"url": "https://i.ytimg.com/small.jpg", "width": 120, "height": 90},
				{"url": "https://i.ytimg.com/big.jpg", "width": 336, "height": 188}
			]},
			"lengthText": {"simpleText": "10:01"},
			"navigationEndpoint": {
				"commandMetadata": {"webCommandMetadata": {"url": "/watch?v=` + videoID + `&list=PLx&index=1"}}
			}
		}
	}`
}

func parseRawItem(t *testing.T, raw string) RawItem {
	t.Helper()
	var item RawItem
	require.NoError(t, json.Unmarshal([]byte(raw), &item))
	return item
}

func TestParseItemComplete(t *testing.T) {
	item := ParseItem(parseRawItem(t, videoRendererJSON("dQw4w9WgXcQ")))
	require.NotNil(t, item)

	assert.Equal(t, "dQw4w9WgXcQ", item.ID)
	assert.Equal(t, "A Title", item.Title)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLx&index=1", item.URL)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", item.ShortURL)
	assert.Equal(t, "https://i.ytimg.com/big.jpg", item.Thumbnail)
	assert.Equal(t, "Some Channel", item.AuthorName)
	assert.Equal(t, "UCabcdefghijklmnopqrstuv", item.AuthorChannelID)
	assert.Equal(t, "https://www.youtube.com/channel/UCabcdefghijklmnopqrstuv", item.AuthorURL)
	assert.False(t, item.IsLive)
	require.NotNil(t, item.Duration)
	assert.Equal(t, "10:01", *item.Duration)
}

func TestParseItemSkipped(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"wrong renderer tag", `{"continuationItemRenderer": {}}`},
		{"empty entry", `{}`},
		{
			"missing byline",
			`{"playlistVideoRenderer": {"videoId": "a", "title": {"simpleText": "t"}}}`,
		},
		{
			"upcoming premiere",
			`{"playlistVideoRenderer": {
				"videoId": "a",
				"shortBylineText": {"runs": [{"text": "c"}]},
				"upcomingEventData": {"startTime": "1700000000"}
			}}`,
		},
		{
			"explicitly not playable",
			`{"playlistVideoRenderer": {
				"videoId": "a",
				"shortBylineText": {"runs": [{"text": "c"}]},
				"isPlayable": false
			}}`,
		},
		{
			"byline without navigation endpoint",
			`{"playlistVideoRenderer": {
				"videoId": "a",
				"shortBylineText": {"runs": [{"text": "c"}]}
			}}`,
		},
		{
			"missing video id",
			`{"playlistVideoRenderer": {
				"shortBylineText": {"runs": [{
					"text": "c",
					"navigationEndpoint": {
						"browseEndpoint": {"browseId": "UCx"},
						"commandMetadata": {"webCommandMetadata": {"url": "/channel/UCx"}}
					}
				}]}
			}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, ParseItem(parseRawItem(t, tt.raw)))
		})
	}
}

func TestParseItemLiveStream(t *testing.T) {
	raw := `{"playlistVideoRenderer": {
		"videoId": "live123",
		"title": {"simpleText": "Live Now"},
		"shortBylineText": {"runs": [{
			"text": "c",
			"navigationEndpoint": {
				"browseEndpoint": {"browseId": "UCx"},
				"commandMetadata": {"webCommandMetadata": {"url": "/channel/UCx"}}
			}
		}]},
		"thumbnailOverlays": [
			{"thumbnailOverlayTimeStatusRenderer": {"style": "LIVE"}}
		],
		"navigationEndpoint": {
			"commandMetadata": {"webCommandMetadata": {"url": "/watch?v=live123"}}
		}
	}}`

	item := ParseItem(parseRawItem(t, raw))
	require.NotNil(t, item)
	assert.True(t, item.IsLive)
	assert.Nil(t, item.Duration, "live streams carry no duration")
}

func TestTextString(t *testing.T) {
	tests := []struct {
		name string
		text *Text
		want string
	}{
		{"nil", nil, ""},
		{"simple", &Text{SimpleText: "hello"}, "hello"},
		{"runs", &Text{Runs: []TextRun{{Text: "a"}, {Text: "b"}}}, "ab"},
		{"simple wins over runs", &Text{SimpleText: "s", Runs: []TextRun{{Text: "r"}}}, "s"},
		{"empty", &Text{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.text.String())
		})
	}
}

func TestTextInteger(t *testing.T) {
	tests := []struct {
		name string
		text Text
		want int
	}{
		{"plain", Text{SimpleText: "42"}, 42},
		{"thousands separator", Text{SimpleText: "1,012 videos"}, 1012},
		{"runs form", Text{Runs: []TextRun{{Text: "2,694,352"}, {Text: " views"}}}, 2694352},
		{"no digits", Text{SimpleText: "No views"}, 0},
		{"empty", Text{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.text.Integer())
		})
	}
}

func TestThumbnailListBest(t *testing.T) {
	var nilList *ThumbnailList
	assert.Nil(t, nilList.Best())
	assert.Nil(t, (&ThumbnailList{}).Best())

	list := &ThumbnailList{Thumbnails: []Thumbnail{
		{URL: "mid", Width: 336},
		{URL: "small", Width: 120},
		{URL: "big", Width: 640},
	}}
	require.NotNil(t, list.Best())
	assert.Equal(t, "big", list.Best().URL)

	tied := &ThumbnailList{Thumbnails: []Thumbnail{
		{URL: "first", Width: 336},
		{URL: "second", Width: 336},
	}}
	assert.Equal(t, "first", tied.Best().URL)
}
