package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTranslatesKnownKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "lv-LV, en;q=0.5")

	if got := T(req, "teams.delete.success"); got != "Team deleted." {
		t.Fatalf("unexpected translation %q", got)
	}
}

func TestTranslatesWithArgs(t *testing.T) {
	got := T(nil, "teams.validation.error", "team name is required")
	if got != "Please check the team details: team name is required" {
		t.Fatalf("unexpected translation %q", got)
	}
}

func TestCatalogCoversKeys(t *testing.T) {
	for key, want := range english {
		if key == "teams.validation.error" {
			continue
		}
		if got := T(nil, key); got != want {
			t.Fatalf("key %s: expected %q, got %q", key, want, got)
		}
	}
}
