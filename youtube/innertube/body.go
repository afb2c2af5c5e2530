package innertube

import (
	"encoding/json"
	"strings"
)

// Between returns the substring strictly between the first occurrence of
// left and the next occurrence of right after it. Either delimiter missing
// yields "", never an error; callers treat "" as "not found".
func Between(haystack, left, right string) string {
	pos := strings.Index(haystack, left)
	if pos == -1 {
		return ""
	}
	haystack = haystack[pos+len(left):]

	pos = strings.Index(haystack, right)
	if pos == -1 {
		return ""
	}
	return haystack[:pos]
}

// delimiter pairs for locating the embedded initial-data JSON, tried in
// order. The "};"-terminated forms chop the closing brace and restore it.
var initialDataDelimiters = []struct {
	left, right string
	addEndCurly bool
}{
	{"var ytInitialData = ", "};", true},
	{`window["ytInitialData"] = `, "};", true},
	{"var ytInitialData = ", ";</script>", false},
	{`window["ytInitialData"] = `, ";</script>", false},
}

// tryParseBetween extracts and decodes the JSON between two delimiters.
// Missing delimiters or malformed JSON yield nil.
func tryParseBetween(body, left, right string, addEndCurly bool) *InitialData {
	data := Between(body, left, right)
	if data == "" {
		return nil
	}
	if addEndCurly {
		data += "}"
	}

	var parsed InitialData
	if err := json.Unmarshal([]byte(data), &parsed); err != nil {
		return nil
	}
	return &parsed
}

// ParsedBody is the result of scanning a playlist page body. Data is nil
// when no embedded JSON was found, which signals the browse API fallback.
type ParsedBody struct {
	Data    *InitialData
	APIKey  string
	Context Context
}

// ParseBody scans a fetched page body for the embedded initial data, the
// Innertube API key and client version, and assembles the request context.
// It always succeeds; absent fields are zero values.
func ParseBody(body string, opts ContextOptions) ParsedBody {
	var data *InitialData
	for _, d := range initialDataDelimiters {
		if data = tryParseBetween(body, d.left, d.right, d.addEndCurly); data != nil {
			break
		}
	}

	apiKey := Between(body, `INNERTUBE_API_KEY":"`, `"`)
	if apiKey == "" {
		apiKey = Between(body, `innertubeApiKey":"`, `"`)
	}

	clientVersion := Between(body, `INNERTUBE_CONTEXT_CLIENT_VERSION":"`, `"`)
	if clientVersion == "" {
		clientVersion = Between(body, `innertube_context_client_version":"`, `"`)
	}

	return ParsedBody{
		Data:    data,
		APIKey:  apiKey,
		Context: BuildContext(clientVersion, opts),
	}
}
