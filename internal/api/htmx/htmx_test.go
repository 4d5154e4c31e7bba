package htmx

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsAJAX(t *testing.T) {
	cases := []struct {
		name   string
		header string
		value  string
		want   bool
	}{
		{name: "plain", want: false},
		{name: "htmx", header: "HX-Request", value: "true", want: true},
		{name: "xhr", header: "X-Requested-With", value: "XMLHttpRequest", want: true},
		{name: "xhr lowercase", header: "X-Requested-With", value: "xmlhttprequest", want: true},
		{name: "htmx false", header: "HX-Request", value: "false", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set(tc.header, tc.value)
			}
			if got := IsAJAX(req); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
