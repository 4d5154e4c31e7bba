package teams

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/codr1/accresults/internal/testutil"
)

func newTestRepository(t *testing.T) (*SQLRepository, int64) {
	t.Helper()

	database := testutil.NewTestDB(t)
	repo, err := NewSQLRepository(database)
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	season := testutil.CreateSeason(t, database, 2024, "Orienteering")
	return repo, season.SeasonID
}

func TestListTeamsSortsByMembersDescending(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo, _ := NewSQLRepository(database)
	season := testutil.CreateSeason(t, database, 2024, "Orienteering")

	small := testutil.CreateTeam(t, database, "Small", season.SeasonID)
	big := testutil.CreateTeam(t, database, "Big", season.SeasonID)
	empty := testutil.CreateTeam(t, database, "Empty", season.SeasonID)
	tieA := testutil.CreateTeam(t, database, "TieA", season.SeasonID)
	testutil.CreateMembers(t, database, small.TeamID, 1)
	testutil.CreateMembers(t, database, big.TeamID, 3)
	testutil.CreateMembers(t, database, tieA.TeamID, 1)

	page, err := repo.ListTeams(context.Background(), ListQuery{Sort: SortMembers, Desc: true, Page: 1})
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}

	wantOrder := []int64{big.TeamID, small.TeamID, tieA.TeamID, empty.TeamID}
	if len(page.Items) != len(wantOrder) {
		t.Fatalf("expected %d teams, got %d", len(wantOrder), len(page.Items))
	}
	for i, id := range wantOrder {
		if page.Items[i].ID != id {
			t.Fatalf("position %d: expected team %d, got %d", i, id, page.Items[i].ID)
		}
	}
	if page.Items[0].Profiles != 3 || page.Items[3].Profiles != 0 {
		t.Fatalf("unexpected member counts: %+v", page.Items)
	}
}

func TestListTeamsPaginates(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo, _ := NewSQLRepository(database)
	season := testutil.CreateSeason(t, database, 2024, "Orienteering")
	for i := 0; i < 12; i++ {
		testutil.CreateTeam(t, database, fmt.Sprintf("Team %02d", i), season.SeasonID)
	}

	page, err := repo.ListTeams(context.Background(), ListQuery{Page: 2})
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if page.Total != 12 || page.LastPage != 2 || len(page.Items) != 2 {
		t.Fatalf("unexpected page: total=%d last=%d items=%d", page.Total, page.LastPage, len(page.Items))
	}
	if page.Items[0].Name != "Team 10" {
		t.Fatalf("expected page 2 to start at Team 10, got %q", page.Items[0].Name)
	}

	page, err = repo.ListTeams(context.Background(), ListQuery{Page: 0})
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if page.Page != 1 || len(page.Items) != PerPage {
		t.Fatalf("expected first full page, got page=%d items=%d", page.Page, len(page.Items))
	}
}

func TestListTeamsFiltersByNameLiterally(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo, _ := NewSQLRepository(database)
	season := testutil.CreateSeason(t, database, 2024, "Orienteering")
	testutil.CreateTeam(t, database, "Red Foxes", season.SeasonID)
	testutil.CreateTeam(t, database, "Blue 100% Club", season.SeasonID)
	testutil.CreateTeam(t, database, "Green", season.SeasonID)

	cases := []struct {
		name  string
		want  int64
		first string
	}{
		{name: "fox", want: 1, first: "Red Foxes"},
		{name: "%", want: 1, first: "Blue 100% Club"},
		{name: "_", want: 0},
		{name: "", want: 3},
	}
	for _, tc := range cases {
		page, err := repo.ListTeams(context.Background(), ListQuery{Name: tc.name, Page: 1})
		if err != nil {
			t.Fatalf("list teams %q: %v", tc.name, err)
		}
		if page.Total != tc.want || int64(len(page.Items)) != tc.want {
			t.Fatalf("name %q: expected %d teams, got total=%d items=%d", tc.name, tc.want, page.Total, len(page.Items))
		}
		if tc.first != "" && page.Items[0].Name != tc.first {
			t.Fatalf("name %q: expected %q, got %q", tc.name, tc.first, page.Items[0].Name)
		}
	}
}

func TestListTeamsIncludesCaptainName(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo, _ := NewSQLRepository(database)
	season := testutil.CreateSeason(t, database, 2024, "Orienteering")
	team := testutil.CreateTeam(t, database, "Hawks", season.SeasonID)
	user := testutil.CreateUser(t, database, "Grace", "Hopper", "grace@example.com")

	if _, err := repo.AssignCaptain(context.Background(), team.TeamID, user.ID); err != nil {
		t.Fatalf("assign captain: %v", err)
	}

	page, err := repo.ListTeams(context.Background(), ListQuery{Sort: SortCaptain, Page: 1})
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if page.Items[0].CaptainName != "Grace Hopper" || page.Items[0].CaptainUserID != user.ID {
		t.Fatalf("unexpected captain: %+v", page.Items[0])
	}
}

func TestAssignCaptainRejectsSecondTeam(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo, _ := NewSQLRepository(database)
	season := testutil.CreateSeason(t, database, 2024, "Orienteering")
	first := testutil.CreateTeam(t, database, "First", season.SeasonID)
	second := testutil.CreateTeam(t, database, "Second", season.SeasonID)
	user := testutil.CreateUser(t, database, "Ada", "Lovelace", "ada@example.com")
	ctx := context.Background()

	if _, err := repo.AssignCaptain(ctx, first.TeamID, user.ID); err != nil {
		t.Fatalf("assign captain: %v", err)
	}
	if _, err := repo.AssignCaptain(ctx, second.TeamID, user.ID); !errors.Is(err, ErrCaptainConflict) {
		t.Fatalf("expected ErrCaptainConflict for second team, got %v", err)
	}
	if _, err := repo.AssignCaptain(ctx, first.TeamID, user.ID); !errors.Is(err, ErrCaptainConflict) {
		t.Fatalf("expected ErrCaptainConflict when re-assigning, got %v", err)
	}

	got, err := repo.FindTeam(ctx, second.TeamID)
	if err != nil {
		t.Fatalf("find team: %v", err)
	}
	if got.HasCaptain() {
		t.Fatalf("expected second team to stay without captain, got %d", got.CaptainUserID)
	}
}

func TestAssignCaptainMissingRows(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo, _ := NewSQLRepository(database)
	season := testutil.CreateSeason(t, database, 2024, "Orienteering")
	team := testutil.CreateTeam(t, database, "Hawks", season.SeasonID)
	user := testutil.CreateUser(t, database, "Ada", "Lovelace", "ada@example.com")

	if _, err := repo.AssignCaptain(context.Background(), 999, user.ID); !errors.Is(err, ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}
	if _, err := repo.AssignCaptain(context.Background(), team.TeamID, 999); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCreateTeamUnknownSeason(t *testing.T) {
	repo, _ := newTestRepository(t)

	if _, err := repo.CreateTeam(context.Background(), "Ghosts", 2024, 999); !errors.Is(err, ErrSeasonNotFound) {
		t.Fatalf("expected ErrSeasonNotFound, got %v", err)
	}
}

func TestSearchUsersLimitsAndMatchesCaseInsensitively(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo, _ := NewSQLRepository(database)
	for i := 0; i < 4; i++ {
		testutil.CreateUser(t, database, "Jo", fmt.Sprintf("Smith%d", i), fmt.Sprintf("jo%d@example.com", i))
	}
	testutil.CreateUser(t, database, "Smithy", "Jones", "sj@example.com")
	testutil.CreateUser(t, database, "Al", "Brown", "al.SMITH@example.com")
	testutil.CreateUser(t, database, "No", "Match", "nobody@example.com")

	users, err := repo.SearchUsers(context.Background(), "smith", 5)
	if err != nil {
		t.Fatalf("search users: %v", err)
	}
	if len(users) != 5 {
		t.Fatalf("expected 5 users, got %d", len(users))
	}
	for _, u := range users {
		if u.Email == "nobody@example.com" {
			t.Fatalf("unexpected match %+v", u)
		}
	}
}

func TestSearchFoldsNonASCIICase(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo, _ := NewSQLRepository(database)
	season := testutil.CreateSeason(t, database, 2024, "Orienteering")
	testutil.CreateTeam(t, database, "Équipe Rapide", season.SeasonID)
	testutil.CreateTeam(t, database, "Ozols", season.SeasonID)
	elodie := testutil.CreateUser(t, database, "Élodie", "Müller", "elodie@example.com")
	testutil.CreateUser(t, database, "Jānis", "Bērziņš", "janis@example.com")

	for _, query := range []string{"élodie", "ÉLODIE", "MÜLLER", "müll"} {
		users, err := repo.SearchUsers(context.Background(), query, 5)
		if err != nil {
			t.Fatalf("search users %q: %v", query, err)
		}
		if len(users) != 1 || users[0].ID != elodie.ID {
			t.Fatalf("query %q: expected only Élodie, got %+v", query, users)
		}
	}

	for _, name := range []string{"équipe", "ÉQUIPE"} {
		page, err := repo.ListTeams(context.Background(), ListQuery{Name: name, Page: 1})
		if err != nil {
			t.Fatalf("list teams %q: %v", name, err)
		}
		if page.Total != 1 || len(page.Items) != 1 || page.Items[0].Name != "Équipe Rapide" {
			t.Fatalf("name %q: expected Équipe Rapide only, got total=%d items=%+v", name, page.Total, page.Items)
		}
	}
}
