package transfer

import (
	"fmt"
	"net/url"
	"strings"
)

// QueryParam is the query parameter carrying the handoff key.
const QueryParam = "gl-window"

// BuildHandoffURL appends the handoff key to baseURL, starting a query
// string when baseURL has none.
func BuildHandoffURL(baseURL, key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("handoff key cannot be empty")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	sep := "?"
	if strings.Contains(baseURL, "?") {
		sep = "&"
	}
	return baseURL + sep + QueryParam + "=" + url.QueryEscape(key), nil
}

// KeyFromURL extracts the handoff key from a popout URL.
func KeyFromURL(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	key := u.Query().Get(QueryParam)
	return key, key != ""
}
