package teams

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/codr1/accresults/internal/metrics"
)

const autocompleteLimit = 5

// CaptainNotifier is told about successful captain assignments. Failures
// are logged and never undo the assignment.
type CaptainNotifier interface {
	NotifyCaptainAssigned(ctx context.Context, assignment CaptainAssignment) error
}

type Service struct {
	repo     Repository
	clock    clockwork.Clock
	validate *validator.Validate
	notifier CaptainNotifier
}

type Option func(*Service)

// WithClock replaces the wall clock used to stamp the team year.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

func WithNotifier(notifier CaptainNotifier) Option {
	return func(s *Service) {
		s.notifier = notifier
	}
}

func NewService(repo Repository, opts ...Option) (*Service, error) {
	if repo == nil {
		return nil, errors.New("team service requires a repository")
	}
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		if name := field.Tag.Get("form"); name != "" {
			return name
		}
		return field.Name
	})

	s := &Service{
		repo:     repo,
		clock:    clockwork.NewRealClock(),
		validate: validate,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Service) List(ctx context.Context, q ListQuery) (Page, error) {
	return s.repo.ListTeams(ctx, q)
}

func (s *Service) SeasonYears(ctx context.Context) ([]int64, error) {
	return s.repo.ListSeasonYears(ctx)
}

func (s *Service) SeasonOptions(ctx context.Context) ([]Season, error) {
	return s.repo.ListSeasons(ctx)
}

func (s *Service) Find(ctx context.Context, teamID int64) (Team, error) {
	return s.repo.FindTeam(ctx, teamID)
}

// Detail loads a team together with its season, captain and roster.
func (s *Service) Detail(ctx context.Context, teamID int64) (TeamDetail, error) {
	team, err := s.repo.FindTeam(ctx, teamID)
	if err != nil {
		return TeamDetail{}, err
	}

	detail := TeamDetail{Team: team}

	season, err := s.repo.FindSeason(ctx, team.SeasonID)
	switch {
	case err == nil:
		detail.Season = season
	case !errors.Is(err, ErrSeasonNotFound):
		return TeamDetail{}, err
	}

	if team.HasCaptain() {
		captain, err := s.repo.FindUser(ctx, team.CaptainUserID)
		switch {
		case err == nil:
			detail.Captain = &captain
		case !errors.Is(err, ErrUserNotFound):
			return TeamDetail{}, err
		}
	}

	detail.Members, err = s.repo.ListMembers(ctx, team.ID)
	if err != nil {
		return TeamDetail{}, err
	}
	return detail, nil
}

// Create stores a new team stamped with the current calendar year.
func (s *Service) Create(ctx context.Context, input TeamInput) (Team, error) {
	input, err := s.validateInput(input)
	if err != nil {
		return Team{}, err
	}
	year := int64(s.clock.Now().Year())
	team, err := s.repo.CreateTeam(ctx, input.TeamName, year, input.SeasonID)
	if err != nil {
		return Team{}, err
	}
	log.Ctx(ctx).Info().Int64("team_id", team.ID).Int64("year", year).Msg("Team created")
	return team, nil
}

// Update applies name and season. The stored year is left as is.
func (s *Service) Update(ctx context.Context, teamID int64, input TeamInput) (Team, error) {
	team, err := s.repo.FindTeam(ctx, teamID)
	if err != nil {
		return Team{}, err
	}
	input, err = s.validateInput(input)
	if err != nil {
		return Team{}, err
	}
	team.Name = input.TeamName
	team.SeasonID = input.SeasonID
	return s.repo.SaveTeam(ctx, team)
}

// Delete hard-deletes the team. Member profiles keep their team_id.
func (s *Service) Delete(ctx context.Context, teamID int64) error {
	if _, err := s.repo.FindTeam(ctx, teamID); err != nil {
		return err
	}
	if err := s.repo.DeleteTeam(ctx, teamID); err != nil {
		return err
	}
	log.Ctx(ctx).Info().Int64("team_id", teamID).Msg("Team deleted")
	return nil
}

func (s *Service) AssignCaptain(ctx context.Context, teamID, userID int64) (Team, error) {
	logger := log.Ctx(ctx).With().Int64("team_id", teamID).Int64("user_id", userID).Logger()

	team, err := s.repo.AssignCaptain(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, ErrCaptainConflict) {
			metrics.CaptainConflict()
			logger.Info().Msg("Captain assignment rejected: user already captains a team")
		}
		return Team{}, err
	}
	logger.Info().Msg("Team captain assigned")

	if s.notifier != nil {
		captain, err := s.repo.FindUser(ctx, userID)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to load captain for notification")
			return team, nil
		}
		if err := s.notifier.NotifyCaptainAssigned(ctx, CaptainAssignment{Team: team, Captain: captain}); err != nil {
			logger.Warn().Err(err).Msg("Failed to send captain notification")
		}
	}
	return team, nil
}

func (s *Service) AddMember(ctx context.Context, teamID, profileID int64) error {
	team, err := s.repo.FindTeam(ctx, teamID)
	if err != nil {
		return err
	}
	if _, err := s.repo.FindProfile(ctx, profileID); err != nil {
		return err
	}
	return s.repo.SetProfileTeam(ctx, profileID, team.ID)
}

// RemoveMember detaches a profile, but only from the team it belongs to.
func (s *Service) RemoveMember(ctx context.Context, teamID, profileID int64) error {
	team, err := s.repo.FindTeam(ctx, teamID)
	if err != nil {
		return err
	}
	if _, err := s.repo.FindProfileInTeam(ctx, profileID, team.ID); err != nil {
		return err
	}
	return s.repo.SetProfileTeam(ctx, profileID, 0)
}

// SearchUsers returns up to five users whose first name, last name or email
// contains query, ignoring case.
func (s *Service) SearchUsers(ctx context.Context, query string) ([]Suggestion, error) {
	users, err := s.repo.SearchUsers(ctx, query, autocompleteLimit)
	if err != nil {
		return nil, err
	}
	suggestions := make([]Suggestion, 0, len(users))
	for _, u := range users {
		suggestions = append(suggestions, Suggestion{
			Value: fmt.Sprintf("%s %s, %s", u.FirstName, u.LastName, u.Email),
			Data:  u.ID,
		})
	}
	return suggestions, nil
}

func (s *Service) validateInput(input TeamInput) (TeamInput, error) {
	input.TeamName = strings.TrimSpace(input.TeamName)
	if err := s.validate.Struct(input); err != nil {
		return input, ValidationError{Err: err}
	}
	return input, nil
}
