package validators

import (
	"net/http"
	"strings"
)

// QueryString returns the trimmed value of a query parameter, or the
// fallback when the parameter is absent or blank.
func QueryString(r *http.Request, key, fallback string) string {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return fallback
	}
	return value
}
