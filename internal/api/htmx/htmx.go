package htmx

import (
	"net/http"
	"strings"
)

func IsRequest(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("HX-Request"), "true")
}

// IsAJAX reports whether r was issued by script: either an htmx request or a
// classic XMLHttpRequest carrying the X-Requested-With header.
func IsAJAX(r *http.Request) bool {
	return IsRequest(r) || strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest")
}
