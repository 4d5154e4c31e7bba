//go:build smoke

package smoke

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/codr1/accresults/internal/testutil"
)

const smokeConfig = `app:
  name: "AccResults"
  environment: "development"
  port: %d
  base_url: "http://127.0.0.1:%d"
database:
  driver: "sqlite"
  filename: %q
jobs:
  roster_audit_schedule: "*/5 * * * *"
features:
  enable_metrics: true
`

// startServer builds cmd/server, boots it against a fresh database and
// returns its base URL once /health answers.
func startServer(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	bin := filepath.Join(dir, "accresults")
	build := exec.Command("go", "build", "-o", bin, "./cmd/server")
	build.Dir = moduleRoot(t)
	if out, err := build.CombinedOutput(); err != nil {
		t.Fatalf("build server: %v\n%s", err, out)
	}

	port := freePort(t)
	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := fmt.Sprintf(smokeConfig, port, port, filepath.Join(dir, "data", "smoke.db"))
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var logs bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, bin, "-config", cfgPath)
	cmd.Env = append(os.Environ(), "APP_SECRET_KEY=smoke-secret")
	cmd.Stdout, cmd.Stderr = &logs, &logs
	cmd.Cancel = func() error { return cmd.Process.Signal(os.Interrupt) }
	cmd.WaitDelay = 5 * time.Second
	if err := cmd.Start(); err != nil {
		cancel()
		t.Fatalf("start server: %v", err)
	}
	var waitErr error
	exited := make(chan struct{})
	go func() {
		waitErr = cmd.Wait()
		close(exited)
	}()
	t.Cleanup(func() {
		cancel()
		<-exited
	})

	base := fmt.Sprintf("http://127.0.0.1:%d", port)
	deadline := time.After(10 * time.Second)
	for {
		select {
		case <-exited:
			t.Fatalf("server exited during start-up: %v\n%s", waitErr, logs.String())
		case <-deadline:
			t.Fatalf("server never became healthy\n%s", logs.String())
		case <-time.After(100 * time.Millisecond):
		}
		if resp, err := http.Get(base + "/health"); err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return base
			}
		}
	}
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("reserve port: %v", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func moduleRoot(t *testing.T) string {
	t.Helper()
	out, err := exec.Command("go", "env", "GOMOD").Output()
	if err != nil {
		t.Fatalf("go env GOMOD: %v", err)
	}
	return filepath.Dir(strings.TrimSpace(string(out)))
}

func TestServerRoutes(t *testing.T) {
	base := startServer(t)
	client := &http.Client{
		Timeout:       2 * time.Second,
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}

	cases := []struct {
		path     string
		status   int
		location string
	}{
		{path: "/teams", status: http.StatusSeeOther, location: "/login?next=%2Fteams"},
		{path: "/teams/1/captain-form", status: http.StatusSeeOther, location: "/login?next=%2Fteams%2F1%2Fcaptain-form"},
		{path: "/login", status: http.StatusOK},
		{path: "/metrics", status: http.StatusOK},
	}
	for _, tc := range cases {
		resp, err := client.Get(base + tc.path)
		if err != nil {
			t.Fatalf("GET %s: %v", tc.path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != tc.status {
			t.Fatalf("GET %s: expected %d, got %d", tc.path, tc.status, resp.StatusCode)
		}
		if tc.location != "" && resp.Header.Get("Location") != tc.location {
			t.Fatalf("GET %s: expected location %q, got %q", tc.path, tc.location, resp.Header.Get("Location"))
		}
	}
}

func TestSchemaConstraints(t *testing.T) {
	database := testutil.NewTestDB(t)
	season := testutil.CreateSeason(t, database, 2024, "Orienteering")
	user := testutil.CreateUser(t, database, "Ada", "Lovelace", "ada@example.com")
	first := testutil.CreateTeam(t, database, "Foxes", season.SeasonID)
	second := testutil.CreateTeam(t, database, "Owls", season.SeasonID)

	if _, err := database.Exec(`INSERT INTO teams (team_name, year, season_id) VALUES ('Ghosts', 2024, 9999)`); err == nil {
		t.Fatal("expected foreign key failure for unknown season")
	}

	setCaptain := `UPDATE teams SET captain_user_id = ? WHERE team_id = ?`
	if _, err := database.Exec(setCaptain, user.ID, first.TeamID); err != nil {
		t.Fatalf("set first captain: %v", err)
	}
	if _, err := database.Exec(setCaptain, user.ID, second.TeamID); err == nil {
		t.Fatal("expected unique captain index to reject a second team")
	}
}
