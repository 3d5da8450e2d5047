package http

import (
	"net/http"
	"strconv"
	"strings"
)

// parseWeekOffset extracts the week offset from the request (query or
// form), defaulting to the current week. Offsets are clamped to a sane
// browsing range.
func parseWeekOffset(r *http.Request) int {
	v := strings.TrimSpace(r.URL.Query().Get("offset"))
	if v == "" {
		v = strings.TrimSpace(r.FormValue("offset"))
	}
	if v == "" {
		return 0
	}

	offset, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	if offset < -520 {
		offset = -520
	}
	if offset > 0 {
		// Future weeks are always empty; don't browse past the current one.
		offset = 0
	}
	return offset
}
