package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	dbgen "github.com/codr1/accresults/internal/db/generated"
)

func TestWithSQLiteDefaults(t *testing.T) {
	cases := []struct {
		name string
		dsn  string
		want string
	}{
		{
			name: "plain path",
			dsn:  "teams.db",
			want: "teams.db?_fk=1&_busy_timeout=5000&_txlock=immediate",
		},
		{
			name: "existing params kept",
			dsn:  "teams.db?_fk=0&cache=shared",
			want: "teams.db?_fk=0&cache=shared&_busy_timeout=5000&_txlock=immediate",
		},
		{
			name: "all set",
			dsn:  "teams.db?_txlock=deferred&_busy_timeout=1&_fk=1",
			want: "teams.db?_txlock=deferred&_busy_timeout=1&_fk=1",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := withSQLiteDefaults(tc.dsn); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestRunInTxRollsBackOnError(t *testing.T) {
	database, err := New(filepath.Join(t.TempDir(), "tx.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	ctx := context.Background()
	sentinel := errors.New("boom")

	err = database.RunInTx(ctx, func(tx *DB) error {
		if _, err := tx.Queries.CreateDiscipline(ctx, "Rogaining"); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}

	var count int
	if err := database.QueryRowContext(ctx, "SELECT COUNT(*) FROM disciplines").Scan(&count); err != nil {
		t.Fatalf("count disciplines: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback to discard insert, found %d rows", count)
	}
}

func TestRunInTxCommits(t *testing.T) {
	database, err := New(filepath.Join(t.TempDir(), "tx.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	ctx := context.Background()
	var season dbgen.Season
	err = database.RunInTx(ctx, func(tx *DB) error {
		discipline, err := tx.Queries.CreateDiscipline(ctx, "Orienteering")
		if err != nil {
			return err
		}
		season, err = tx.Queries.CreateSeason(ctx, dbgen.CreateSeasonParams{Year: 2024, DisciplineID: discipline.DisciplineID})
		return err
	})
	if err != nil {
		t.Fatalf("run in tx: %v", err)
	}

	row, err := database.Queries.GetSeason(ctx, season.SeasonID)
	if err != nil {
		t.Fatalf("get season: %v", err)
	}
	if row.DisciplineTitle != "Orienteering" || row.Year != 2024 {
		t.Fatalf("unexpected season row: %+v", row)
	}
}

func TestFoldFunctionRegistered(t *testing.T) {
	database, err := New(filepath.Join(t.TempDir(), "fold.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	cases := []struct {
		in   string
		want string
	}{
		{in: "ÉLODIE", want: "élodie"},
		{in: "Müller", want: "müller"},
		{in: "BĒRZIŅŠ", want: "bērziņš"},
		{in: "plain", want: "plain"},
	}
	for _, tc := range cases {
		var got string
		if err := database.QueryRowContext(context.Background(), "SELECT fold(?)", tc.in).Scan(&got); err != nil {
			t.Fatalf("fold(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("fold(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
