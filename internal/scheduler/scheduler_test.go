package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/codr1/accresults/internal/testutil"
)

func TestAddJobValidation(t *testing.T) {
	s, err := New()
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	t.Cleanup(func() { _ = s.Stop() })

	if _, err := s.AddJob(" ", "* * * * *", func() {}); !errors.Is(err, ErrEmptyJobName) {
		t.Fatalf("expected ErrEmptyJobName, got %v", err)
	}
	if _, err := s.AddJob("job", "", func() {}); !errors.Is(err, ErrEmptyCronExpr) {
		t.Fatalf("expected ErrEmptyCronExpr, got %v", err)
	}
	if _, err := s.AddJob("job", "not a cron", func() {}); err == nil {
		t.Fatal("expected invalid cron expression to fail")
	}
	if _, err := s.AddJob("job", "0 3 * * *", func() {}); err != nil {
		t.Fatalf("expected valid job, got %v", err)
	}
}

func TestNilSchedulerReportsNotInitialized(t *testing.T) {
	var s *Scheduler
	if err := s.Stop(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
	if _, err := s.AddJob("job", "* * * * *", func() {}); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
}

func TestAuditRosterCountsProfilesOfDeletedTeams(t *testing.T) {
	database := testutil.NewTestDB(t)
	season := testutil.CreateSeason(t, database, 2024, "Orienteering")
	kept := testutil.CreateTeam(t, database, "Kept", season.SeasonID)
	doomed := testutil.CreateTeam(t, database, "Doomed", season.SeasonID)
	testutil.CreateMembers(t, database, kept.TeamID, 1)
	testutil.CreateMembers(t, database, doomed.TeamID, 2)
	ctx := context.Background()

	if _, err := database.Queries.DeleteTeam(ctx, doomed.TeamID); err != nil {
		t.Fatalf("delete team: %v", err)
	}

	orphaned, err := AuditRoster(ctx, database)
	if err != nil {
		t.Fatalf("audit roster: %v", err)
	}
	if orphaned != 2 {
		t.Fatalf("expected 2 orphaned profiles, got %d", orphaned)
	}
}

func TestRegisterRosterAuditJob(t *testing.T) {
	s, err := New()
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	t.Cleanup(func() { _ = s.Stop() })

	if err := RegisterRosterAuditJob(s, nil, "0 3 * * *"); err == nil {
		t.Fatal("expected error without database")
	}
	if err := RegisterRosterAuditJob(s, testutil.NewTestDB(t), "0 3 * * *"); err != nil {
		t.Fatalf("register job: %v", err)
	}
}
