package innertube

import (
	"context"
)

// ContinuationToken extracts the opaque next-page token from a raw entry.
// Missing or malformed nesting at any depth yields "", meaning "no token".
func ContinuationToken(item RawItem) string {
	r := item.ContinuationItemRenderer
	if r == nil || r.ContinuationEndpoint == nil || r.ContinuationEndpoint.ContinuationCommand == nil {
		return ""
	}
	return r.ContinuationEndpoint.ContinuationCommand.Token
}

// FindContinuation locates the continuation entry among a page's raw items
// and returns its token, or "" when the page is the last one.
func FindContinuation(items []RawItem) string {
	for _, item := range items {
		if item.ContinuationItemRenderer != nil {
			return ContinuationToken(item)
		}
	}
	return ""
}

// ParsePage maps a page's raw entries to items, dropping unparseable ones
// and truncating to the remaining budget.
func ParsePage(raw []RawItem, limit int) []Item {
	items := make([]Item, 0, len(raw))
	for _, r := range raw {
		if len(items) >= limit {
			break
		}
		if item := ParseItem(r); item != nil {
			items = append(items, *item)
		}
	}
	return items
}

// continuationItems pulls one continuation page's raw entries out of a
// browse response. A response without the expected action shape means "no
// more data", not failure, and yields nil.
func continuationItems(data *InitialData) []RawItem {
	if data == nil || len(data.OnResponseReceivedActions) == 0 {
		return nil
	}
	action := data.OnResponseReceivedActions[0].AppendContinuationItemsAction
	if action == nil {
		return nil
	}
	return action.ContinuationItems
}

// Continue drives continuation pagination: starting from token, it fetches
// page after page, parsing items up to limit. The loop carries
// (token, remaining) explicitly, so the limit strictly bounds fetch volume -
// no token is followed once the budget is spent. Items come back in
// upstream order.
func (c *Client) Continue(ctx context.Context, apiKey, token string, reqCtx Context, headers map[string]string, limit int) ([]Item, error) {
	var items []Item
	remaining := limit

	for token != "" && remaining >= 1 {
		data, err := c.Browse(ctx, apiKey, BrowseRequest{
			Context:      reqCtx,
			Continuation: token,
		}, headers)
		if err != nil {
			return nil, err
		}

		raw := continuationItems(data)
		if len(raw) == 0 {
			break
		}

		page := ParsePage(raw, remaining)
		items = append(items, page...)
		remaining -= len(page)

		token = FindContinuation(raw)
	}

	return items, nil
}
