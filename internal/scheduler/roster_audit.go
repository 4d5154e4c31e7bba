package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/accresults/internal/db"
	"github.com/codr1/accresults/internal/metrics"
)

const (
	rosterAuditJobName = "roster_audit"
	rosterAuditTimeout = time.Minute
)

// RegisterRosterAuditJob reports member profiles whose team has been
// deleted. Nothing is modified; deleting a team intentionally leaves its
// profiles in place.
func RegisterRosterAuditJob(s *Scheduler, database *db.DB, cronExpr string) error {
	if database == nil {
		return fmt.Errorf("roster audit job requires database")
	}

	jobLogger := log.With().
		Str("component", "roster_audit_job").
		Str("job_name", rosterAuditJobName).
		Logger()

	_, err := s.AddJob(rosterAuditJobName, cronExpr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), rosterAuditTimeout)
		defer cancel()
		ctx = jobLogger.WithContext(ctx)

		if _, err := AuditRoster(ctx, database); err != nil {
			jobLogger.Error().Err(err).Msg("Roster audit failed")
		}
	})
	return err
}

// AuditRoster counts orphaned profiles, logs the result and updates the gauge.
func AuditRoster(ctx context.Context, database *db.DB) (int64, error) {
	orphaned, err := database.Queries.CountOrphanedProfiles(ctx)
	if err != nil {
		return 0, fmt.Errorf("count orphaned profiles: %w", err)
	}
	metrics.SetOrphanedProfiles(orphaned)

	logger := log.Ctx(ctx)
	if orphaned > 0 {
		logger.Warn().Int64("orphaned_profiles", orphaned).Msg("Profiles reference deleted teams")
	} else {
		logger.Info().Msg("Roster audit found no orphaned profiles")
	}
	return orphaned, nil
}
