package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/codr1/accresults/internal/db"
	dbgen "github.com/codr1/accresults/internal/db/generated"
)

// NewTestDB creates a temporary SQLite database with migrations applied.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	database, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("create test db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	return database
}

// CreateSeason inserts a discipline and a season for it.
func CreateSeason(t *testing.T, database *db.DB, year int64, discipline string) dbgen.Season {
	t.Helper()

	ctx := context.Background()
	d, err := database.Queries.CreateDiscipline(ctx, discipline)
	if err != nil {
		t.Fatalf("insert discipline: %v", err)
	}
	season, err := database.Queries.CreateSeason(ctx, dbgen.CreateSeasonParams{Year: year, DisciplineID: d.DisciplineID})
	if err != nil {
		t.Fatalf("insert season: %v", err)
	}
	return season
}

// CreateUser inserts a non-admin user with no password.
func CreateUser(t *testing.T, database *db.DB, first, last, email string) dbgen.User {
	t.Helper()

	user, err := database.Queries.CreateUser(context.Background(), dbgen.CreateUserParams{
		FirstName: first,
		LastName:  last,
		Email:     email,
	})
	if err != nil {
		t.Fatalf("insert user %s: %v", email, err)
	}
	return user
}

// CreateTeam inserts a team for the given season.
func CreateTeam(t *testing.T, database *db.DB, name string, seasonID int64) dbgen.Team {
	t.Helper()

	team, err := database.Queries.CreateTeam(context.Background(), dbgen.CreateTeamParams{
		TeamName: name,
		Year:     2024,
		SeasonID: seasonID,
	})
	if err != nil {
		t.Fatalf("insert team %s: %v", name, err)
	}
	return team
}

// CreateProfile inserts a profile for userID, optionally attached to teamID (0 = free agent).
func CreateProfile(t *testing.T, database *db.DB, userID, teamID int64) dbgen.UserProfile {
	t.Helper()

	profile, err := database.Queries.CreateUserProfile(context.Background(), dbgen.CreateUserProfileParams{
		UserID: userID,
		TeamID: sql.NullInt64{Int64: teamID, Valid: teamID > 0},
	})
	if err != nil {
		t.Fatalf("insert profile for user %d: %v", userID, err)
	}
	return profile
}

// CreateMembers attaches n new users to teamID and returns their profiles.
func CreateMembers(t *testing.T, database *db.DB, teamID int64, n int) []dbgen.UserProfile {
	t.Helper()

	profiles := make([]dbgen.UserProfile, 0, n)
	for i := 0; i < n; i++ {
		email := fmt.Sprintf("member-%d-%d@example.com", teamID, i)
		user := CreateUser(t, database, "Member", fmt.Sprintf("%d", i), email)
		profiles = append(profiles, CreateProfile(t, database, user.ID, teamID))
	}
	return profiles
}
