package teams

import (
	"context"
	"strings"
	"testing"

	"github.com/codr1/accresults/internal/teams"
)

func TestIndexParamsURL(t *testing.T) {
	cases := []struct {
		params IndexParams
		want   string
	}{
		{params: IndexParams{}, want: "/teams"},
		{params: IndexParams{Page: 1}, want: "/teams"},
		{params: IndexParams{Name: "red fox", Page: 3}, want: "/teams?name=red+fox&page=3"},
		{params: IndexParams{Sort: "members", Type: "desc"}, want: "/teams?sort=members&type=desc"},
	}
	for _, tc := range cases {
		if got := tc.params.URL(); got != tc.want {
			t.Fatalf("URL(%+v) = %q, want %q", tc.params, got, tc.want)
		}
	}
}

func TestSortURLTogglesDirection(t *testing.T) {
	p := IndexParams{Name: "x", Sort: "name", Page: 4}
	if got := p.SortURL(teams.SortName); got != "/teams?name=x&sort=name&type=desc" {
		t.Fatalf("unexpected toggle url %q", got)
	}
	p.Type = "desc"
	if got := p.SortURL(teams.SortName); got != "/teams?name=x&sort=name" {
		t.Fatalf("unexpected toggle-back url %q", got)
	}
	if got := p.SortURL(teams.SortMembers); got != "/teams?name=x&sort=members" {
		t.Fatalf("unexpected new-column url %q", got)
	}
}

func TestIndexEscapesTeamNames(t *testing.T) {
	data := IndexData{
		Page: teams.Page{
			Items:    []teams.TeamListItem{{Team: teams.Team{ID: 1, Name: "<b>Hawks</b>", Year: 2024}, Profiles: 2}},
			Total:    1,
			Page:     1,
			PerPage:  teams.PerPage,
			LastPage: 1,
		},
		Years: []int64{2023, 2024},
	}

	var b strings.Builder
	if err := Index(data).Render(context.Background(), &b); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := b.String()
	if strings.Contains(out, "<b>Hawks</b>") || !strings.Contains(out, "&lt;b&gt;Hawks&lt;/b&gt;") {
		t.Fatalf("expected escaped team name, got %s", out)
	}
	if !strings.Contains(out, "Season years: 2023, 2024") {
		t.Fatalf("expected years label, got %s", out)
	}
	if strings.Contains(out, `rel="next"`) {
		t.Fatal("expected no next link on last page")
	}
}

func TestIndexFormatsLargeTotals(t *testing.T) {
	data := IndexData{
		Params: IndexParams{Page: 2},
		Page:   teams.Page{Total: 1234, Page: 2, PerPage: teams.PerPage, LastPage: 124},
	}

	var b strings.Builder
	if err := Index(data).Render(context.Background(), &b); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, "Page 2 of 124 (1,234 teams)") {
		t.Fatalf("expected grouped total, got %s", out)
	}
	if !strings.Contains(out, `rel="prev"`) || !strings.Contains(out, `rel="next"`) {
		t.Fatalf("expected both pagination links, got %s", out)
	}
}

func TestFormSelectsCurrentSeason(t *testing.T) {
	seasons := []teams.Season{{ID: 1, Year: 2023, Discipline: "Rogaining"}, {ID: 2, Year: 2024, Discipline: "Orienteering"}}
	data := FormData{TeamID: 9, TeamName: "Owls", Year: 2024, Seasons: NewSeasonOptions(seasons, 2)}

	var b strings.Builder
	if err := Form(data).Render(context.Background(), &b); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := b.String()
	for _, want := range []string{
		`action="/teams/9"`,
		`name="_method" value="PUT"`,
		`<option value="2" selected>2024 Orienteering</option>`,
		`<option value="1">2023 Rogaining</option>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in form, got %s", want, out)
		}
	}
}
