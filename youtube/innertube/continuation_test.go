package innertube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ythttp "github.com/AugusDogus/ytpl/http"
)

// scriptedDoer replays canned response bodies in order.
type scriptedDoer struct {
	bodies []string
	calls  int
	err    error
}

func (d *scriptedDoer) Do(ctx context.Context, method, url string, body io.Reader, headers map[string]string) (*ythttp.Response, error) {
	if d.err != nil {
		return nil, d.err
	}
	if d.calls >= len(d.bodies) {
		return nil, fmt.Errorf("unexpected request %d to %s", d.calls, url)
	}
	resp := &ythttp.Response{StatusCode: 200, Body: []byte(d.bodies[d.calls])}
	d.calls++
	return resp, nil
}

func continuationPage(t *testing.T, ids []string, nextToken string) string {
	t.Helper()
	var items []json.RawMessage
	for _, id := range ids {
		items = append(items, json.RawMessage(videoRendererJSON(id)))
	}
	if nextToken != "" {
		items = append(items, json.RawMessage(`{
			"continuationItemRenderer": {
				"continuationEndpoint": {"continuationCommand": {"token": "`+nextToken+`"}}
			}
		}`))
	}
	page, err := json.Marshal(map[string]any{
		"onResponseReceivedActions": []map[string]any{
			{"appendContinuationItemsAction": map[string]any{"continuationItems": items}},
		},
	})
	require.NoError(t, err)
	return string(page)
}

func TestContinuationToken(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"full nesting", `{"continuationItemRenderer": {"continuationEndpoint": {"continuationCommand": {"token": "tok"}}}}`, "tok"},
		{"missing command", `{"continuationItemRenderer": {"continuationEndpoint": {}}}`, ""},
		{"missing endpoint", `{"continuationItemRenderer": {}}`, ""},
		{"video entry", `{"playlistVideoRenderer": {"videoId": "a"}}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContinuationToken(parseRawItem(t, tt.raw)))
		})
	}
}

func TestFindContinuation(t *testing.T) {
	items := []RawItem{
		parseRawItem(t, videoRendererJSON("a")),
		parseRawItem(t, `{"continuationItemRenderer": {"continuationEndpoint": {"continuationCommand": {"token": "next"}}}}`),
	}
	assert.Equal(t, "next", FindContinuation(items))
	assert.Equal(t, "", FindContinuation(items[:1]))
	assert.Equal(t, "", FindContinuation(nil))
}

func TestParsePageTruncatesAndSkips(t *testing.T) {
	raw := []RawItem{
		parseRawItem(t, videoRendererJSON("a")),
		parseRawItem(t, `{"continuationItemRenderer": {}}`),
		parseRawItem(t, videoRendererJSON("b")),
		parseRawItem(t, videoRendererJSON("c")),
	}

	items := ParsePage(raw, 2)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "b", items[1].ID)

	assert.Len(t, ParsePage(raw, 10), 3)
	assert.Empty(t, ParsePage(raw, 0))
}

func TestContinueBudgetBoundsFetches(t *testing.T) {
	doer := &scriptedDoer{bodies: []string{
		continuationPage(t, []string{"p1a", "p1b"}, "tok2"),
		continuationPage(t, []string{"p2a", "p2b"}, "tok3"),
		continuationPage(t, []string{"p3a", "p3b"}, ""),
	}}
	client := NewClient(doer)

	items, err := client.Continue(context.Background(), "key", "tok1", BuildContext("1.0", ContextOptions{}), nil, 3)
	require.NoError(t, err)

	require.Len(t, items, 3)
	assert.Equal(t, "p1a", items[0].ID)
	assert.Equal(t, "p1b", items[1].ID)
	assert.Equal(t, "p2a", items[2].ID)
	// The third page's token is never followed: budget spent after page two.
	assert.Equal(t, 2, doer.calls)
}

func TestContinueStopsAtLastPage(t *testing.T) {
	doer := &scriptedDoer{bodies: []string{
		continuationPage(t, []string{"a", "b"}, ""),
	}}
	client := NewClient(doer)

	items, err := client.Continue(context.Background(), "key", "tok", BuildContext("1.0", ContextOptions{}), nil, 100)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 1, doer.calls)
}

func TestContinueMalformedResponse(t *testing.T) {
	doer := &scriptedDoer{bodies: []string{`{"unexpected": true}`}}
	client := NewClient(doer)

	items, err := client.Continue(context.Background(), "key", "tok", BuildContext("1.0", ContextOptions{}), nil, 100)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestContinueZeroBudget(t *testing.T) {
	doer := &scriptedDoer{}
	client := NewClient(doer)

	items, err := client.Continue(context.Background(), "key", "tok", BuildContext("1.0", ContextOptions{}), nil, 0)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, doer.calls, "no request is made once the budget is spent")
}

func TestContinuePropagatesTransportError(t *testing.T) {
	doer := &scriptedDoer{err: fmt.Errorf("connection reset")}
	client := NewClient(doer)

	_, err := client.Continue(context.Background(), "key", "tok", BuildContext("1.0", ContextOptions{}), nil, 10)
	require.Error(t, err)
}
