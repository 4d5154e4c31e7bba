package teams

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/codr1/accresults/internal/db"
	dbgen "github.com/codr1/accresults/internal/db/generated"
)

// Repository is the data access the team service needs.
type Repository interface {
	ListTeams(ctx context.Context, q ListQuery) (Page, error)
	ListSeasonYears(ctx context.Context) ([]int64, error)
	ListSeasons(ctx context.Context) ([]Season, error)
	FindSeason(ctx context.Context, seasonID int64) (Season, error)
	FindTeam(ctx context.Context, teamID int64) (Team, error)
	FindUser(ctx context.Context, userID int64) (User, error)
	FindProfile(ctx context.Context, profileID int64) (Profile, error)
	FindProfileInTeam(ctx context.Context, profileID, teamID int64) (Profile, error)
	ListMembers(ctx context.Context, teamID int64) ([]Member, error)
	CreateTeam(ctx context.Context, name string, year, seasonID int64) (Team, error)
	SaveTeam(ctx context.Context, team Team) (Team, error)
	DeleteTeam(ctx context.Context, teamID int64) error
	AssignCaptain(ctx context.Context, teamID, userID int64) (Team, error)
	SetProfileTeam(ctx context.Context, profileID, teamID int64) error
	SearchUsers(ctx context.Context, query string, limit int) ([]User, error)
}

type SQLRepository struct {
	db *db.DB
}

func NewSQLRepository(database *db.DB) (*SQLRepository, error) {
	if database == nil {
		return nil, errors.New("team repository requires a database")
	}
	return &SQLRepository{db: database}, nil
}

const listTeamsSelect = `
SELECT
    t.team_id,
    t.team_name,
    t.year,
    t.season_id,
    t.captain_user_id,
    COALESCE(u.first_name || ' ' || u.last_name, '') AS captain_name,
    COUNT(p.profile_id) AS profiles
FROM teams t
LEFT JOIN user_profiles p ON p.team_id = t.team_id
LEFT JOIN users u ON u.id = t.captain_user_id
WHERE (?1 = '' OR fold(t.team_name) LIKE fold(?2) ESCAPE '\')
GROUP BY t.team_id
ORDER BY %s
LIMIT ?3 OFFSET ?4`

const countTeams = `
SELECT COUNT(*)
FROM teams t
WHERE (?1 = '' OR fold(t.team_name) LIKE fold(?2) ESCAPE '\')`

// ListTeams is hand-written rather than generated because the ORDER BY
// column varies. The column always comes from sortColumns.
func (r *SQLRepository) ListTeams(ctx context.Context, q ListQuery) (Page, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	name := strings.TrimSpace(q.Name)
	pattern := containsPattern(name)

	var total int64
	if err := r.db.QueryRowContext(ctx, countTeams, name, pattern).Scan(&total); err != nil {
		return Page{}, fmt.Errorf("count teams: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		fmt.Sprintf(listTeamsSelect, orderBy(q.Sort, q.Desc)),
		name, pattern, PerPage, PerPage*(page-1),
	)
	if err != nil {
		return Page{}, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	items := []TeamListItem{}
	for rows.Next() {
		var (
			item    TeamListItem
			captain sql.NullInt64
		)
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Year,
			&item.SeasonID,
			&captain,
			&item.CaptainName,
			&item.Profiles,
		); err != nil {
			return Page{}, fmt.Errorf("scan team row: %w", err)
		}
		item.CaptainUserID = captain.Int64
		item.CaptainName = strings.TrimSpace(item.CaptainName)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return Page{}, fmt.Errorf("iterate teams: %w", err)
	}

	lastPage := int((total + PerPage - 1) / PerPage)
	if lastPage < 1 {
		lastPage = 1
	}

	return Page{
		Items:    items,
		Total:    total,
		Page:     page,
		PerPage:  PerPage,
		LastPage: lastPage,
	}, nil
}

func (r *SQLRepository) ListSeasonYears(ctx context.Context) ([]int64, error) {
	years, err := r.db.Queries.ListSeasonYears(ctx)
	if err != nil {
		return nil, fmt.Errorf("list season years: %w", err)
	}
	return years, nil
}

func (r *SQLRepository) ListSeasons(ctx context.Context) ([]Season, error) {
	rows, err := r.db.Queries.ListSeasons(ctx)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	seasons := make([]Season, 0, len(rows))
	for _, row := range rows {
		seasons = append(seasons, Season{ID: row.SeasonID, Year: row.Year, Discipline: row.DisciplineTitle})
	}
	return seasons, nil
}

func (r *SQLRepository) FindSeason(ctx context.Context, seasonID int64) (Season, error) {
	row, err := r.db.Queries.GetSeason(ctx, seasonID)
	if err != nil {
		return Season{}, notFound(err, ErrSeasonNotFound, "get season %d", seasonID)
	}
	return Season{ID: row.SeasonID, Year: row.Year, Discipline: row.DisciplineTitle}, nil
}

func (r *SQLRepository) FindTeam(ctx context.Context, teamID int64) (Team, error) {
	row, err := r.db.Queries.GetTeam(ctx, teamID)
	if err != nil {
		return Team{}, notFound(err, ErrTeamNotFound, "get team %d", teamID)
	}
	return teamFromRow(row), nil
}

func (r *SQLRepository) FindUser(ctx context.Context, userID int64) (User, error) {
	row, err := r.db.Queries.GetUserByID(ctx, userID)
	if err != nil {
		return User{}, notFound(err, ErrUserNotFound, "get user %d", userID)
	}
	return userFromRow(row), nil
}

func (r *SQLRepository) FindProfile(ctx context.Context, profileID int64) (Profile, error) {
	row, err := r.db.Queries.GetUserProfile(ctx, profileID)
	if err != nil {
		return Profile{}, notFound(err, ErrProfileNotFound, "get profile %d", profileID)
	}
	return profileFromRow(row), nil
}

func (r *SQLRepository) FindProfileInTeam(ctx context.Context, profileID, teamID int64) (Profile, error) {
	row, err := r.db.Queries.GetUserProfileInTeam(ctx, dbgen.GetUserProfileInTeamParams{
		ProfileID: profileID,
		TeamID:    sql.NullInt64{Int64: teamID, Valid: true},
	})
	if err != nil {
		return Profile{}, notFound(err, ErrProfileNotFound, "get profile %d in team %d", profileID, teamID)
	}
	return profileFromRow(row), nil
}

func (r *SQLRepository) ListMembers(ctx context.Context, teamID int64) ([]Member, error) {
	rows, err := r.db.Queries.ListTeamMembers(ctx, sql.NullInt64{Int64: teamID, Valid: true})
	if err != nil {
		return nil, fmt.Errorf("list members of team %d: %w", teamID, err)
	}
	members := make([]Member, 0, len(rows))
	for _, row := range rows {
		members = append(members, Member{
			ProfileID: row.ProfileID,
			User: User{
				ID:        row.UserID,
				FirstName: row.FirstName,
				LastName:  row.LastName,
				Email:     row.Email,
			},
		})
	}
	return members, nil
}

func (r *SQLRepository) CreateTeam(ctx context.Context, name string, year, seasonID int64) (Team, error) {
	row, err := r.db.Queries.CreateTeam(ctx, dbgen.CreateTeamParams{
		TeamName: name,
		Year:     year,
		SeasonID: seasonID,
	})
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return Team{}, ErrSeasonNotFound
		}
		return Team{}, fmt.Errorf("create team: %w", err)
	}
	return teamFromRow(row), nil
}

// SaveTeam persists the name and season of an existing team.
func (r *SQLRepository) SaveTeam(ctx context.Context, team Team) (Team, error) {
	row, err := r.db.Queries.UpdateTeam(ctx, dbgen.UpdateTeamParams{
		TeamName: team.Name,
		SeasonID: team.SeasonID,
		TeamID:   team.ID,
	})
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return Team{}, ErrSeasonNotFound
		}
		return Team{}, notFound(err, ErrTeamNotFound, "update team %d", team.ID)
	}
	return teamFromRow(row), nil
}

func (r *SQLRepository) DeleteTeam(ctx context.Context, teamID int64) error {
	affected, err := r.db.Queries.DeleteTeam(ctx, teamID)
	if err != nil {
		return fmt.Errorf("delete team %d: %w", teamID, err)
	}
	if affected == 0 {
		return ErrTeamNotFound
	}
	return nil
}

// AssignCaptain makes userID the captain of teamID unless the user already
// captains any team. The check and the write share one immediate
// transaction; the partial unique index catches anything that slips past.
func (r *SQLRepository) AssignCaptain(ctx context.Context, teamID, userID int64) (Team, error) {
	var team Team
	err := r.db.RunInTx(ctx, func(tx *db.DB) error {
		if _, err := tx.Queries.GetTeam(ctx, teamID); err != nil {
			return notFound(err, ErrTeamNotFound, "get team %d", teamID)
		}
		if _, err := tx.Queries.GetUserByID(ctx, userID); err != nil {
			return notFound(err, ErrUserNotFound, "get user %d", userID)
		}

		captain := sql.NullInt64{Int64: userID, Valid: true}
		existing, err := tx.Queries.CountTeamsByCaptain(ctx, captain)
		if err != nil {
			return fmt.Errorf("count teams captained by %d: %w", userID, err)
		}
		if existing > 0 {
			return ErrCaptainConflict
		}

		row, err := tx.Queries.SetTeamCaptain(ctx, dbgen.SetTeamCaptainParams{
			CaptainUserID: captain,
			TeamID:        teamID,
		})
		if err != nil {
			if db.IsUniqueViolation(err) {
				return ErrCaptainConflict
			}
			return fmt.Errorf("set captain of team %d: %w", teamID, err)
		}
		team = teamFromRow(row)
		return nil
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Team{}, ErrCaptainConflict
		}
		return Team{}, err
	}
	return team, nil
}

// SetProfileTeam attaches the profile to teamID, or detaches it when teamID is 0.
func (r *SQLRepository) SetProfileTeam(ctx context.Context, profileID, teamID int64) error {
	affected, err := r.db.Queries.SetUserProfileTeam(ctx, dbgen.SetUserProfileTeamParams{
		TeamID:    sql.NullInt64{Int64: teamID, Valid: teamID > 0},
		ProfileID: profileID,
	})
	if err != nil {
		return fmt.Errorf("set team of profile %d: %w", profileID, err)
	}
	if affected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *SQLRepository) SearchUsers(ctx context.Context, query string, limit int) ([]User, error) {
	rows, err := r.db.Queries.SearchUsers(ctx, dbgen.SearchUsersParams{
		Pattern:    containsPattern(query),
		MaxResults: int64(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	users := make([]User, 0, len(rows))
	for _, row := range rows {
		users = append(users, userFromRow(row))
	}
	return users, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s anywhere, with s taken literally.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func notFound(err error, sentinel error, format string, args ...any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

func teamFromRow(row dbgen.Team) Team {
	return Team{
		ID:            row.TeamID,
		Name:          row.TeamName,
		Year:          row.Year,
		SeasonID:      row.SeasonID,
		CaptainUserID: row.CaptainUserID.Int64,
	}
}

func userFromRow(row dbgen.User) User {
	return User{
		ID:        row.ID,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		Email:     row.Email,
	}
}

func profileFromRow(row dbgen.UserProfile) Profile {
	return Profile{
		ID:     row.ProfileID,
		UserID: row.UserID,
		TeamID: row.TeamID.Int64,
	}
}
