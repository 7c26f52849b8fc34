package transport

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// NormalizeResponse normalizes the body of resp. The body is consumed but not
// closed.
func NormalizeResponse(resp *http.Response) ParsedBody {
	if resp == nil || resp.Body == nil {
		return EmptyBody()
	}
	return Normalize(resp.Header.Get("Content-Type"), resp.Body)
}

// Normalize turns a raw response body into a ParsedBody. The declared content
// type is advisory: a body that parses as JSON is returned as JSON even when
// the server labels it otherwise. Normalize never fails.
func Normalize(contentType string, body io.Reader) ParsedBody {
	if body == nil {
		return EmptyBody()
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return EmptyBody()
	}

	if strings.Contains(strings.ToLower(contentType), "json") {
		if value, ok := parseJSON(data); ok {
			return JSONValue(value)
		}
	}

	// Servers mislabel JSON as text/html often enough that a second attempt
	// is made regardless of the header. A falsy document (null, false, 0, "")
	// counts as a miss here and stays text.
	if value, ok := parseJSON(data); ok && !falsy(value) {
		return JSONValue(value)
	}

	return TextValue(string(data))
}

func parseJSON(data []byte) (any, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, false
	}
	var value any
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return nil, false
	}
	return value, true
}

func falsy(v any) bool {
	switch value := v.(type) {
	case nil:
		return true
	case bool:
		return !value
	case float64:
		return value == 0
	case string:
		return value == ""
	default:
		return false
	}
}
