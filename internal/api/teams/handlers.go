// internal/api/teams/handlers.go
package teams

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"

	"github.com/codr1/accresults/internal/api/apiutil"
	"github.com/codr1/accresults/internal/api/flash"
	"github.com/codr1/accresults/internal/i18n"
	"github.com/codr1/accresults/internal/teams"
	teamviews "github.com/codr1/accresults/internal/templates/components/teams"
	"github.com/codr1/accresults/internal/templates/layouts"
)

const teamQueryTimeout = 5 * time.Second

var service *teams.Service

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(svc *teams.Service) {
	service = svc
}

type fragmentResponse struct {
	Content string `json:"content,omitempty"`
	Status  bool   `json:"status"`
}

type autocompleteResponse struct {
	Query       string             `json:"query"`
	Suggestions []teams.Suggestion `json:"suggestions"`
	Status      bool               `json:"status"`
}

// GET /teams
func HandleIndex(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	if !serviceReady(w, r) {
		return
	}

	query := r.URL.Query()
	params := teamviews.IndexParams{
		Name: strings.TrimSpace(query.Get("name")),
		Sort: strings.TrimSpace(query.Get("sort")),
		Type: strings.TrimSpace(query.Get("type")),
		Page: apiutil.PageFromQuery(r),
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	page, err := service.List(ctx, teams.ListQuery{
		Name: params.Name,
		Sort: teams.ParseSort(params.Sort),
		Desc: params.Type == "desc",
		Page: params.Page,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list teams")
		http.Error(w, "Failed to load teams", http.StatusInternalServerError)
		return
	}

	years, err := service.SeasonYears(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list season years")
		http.Error(w, "Failed to load teams", http.StatusInternalServerError)
		return
	}

	renderPage(w, r, "Teams", teamviews.Index(teamviews.IndexData{Params: params, Page: page, Years: years}))
}

// GET /teams/create
func HandleCreatePage(w http.ResponseWriter, r *http.Request) {
	if !serviceReady(w, r) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	seasons, err := service.SeasonOptions(ctx)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to list seasons")
		http.Error(w, "Failed to load seasons", http.StatusInternalServerError)
		return
	}

	renderPage(w, r, "New team", teamviews.Form(teamviews.FormData{Seasons: teamviews.NewSeasonOptions(seasons, 0)}))
}

// POST /teams
func HandleStore(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	if !serviceReady(w, r) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	team, err := service.Create(ctx, teamInputFromForm(r))
	if err != nil {
		if msg, ok := validationMessage(r, err); ok {
			flash.Error(w, msg)
		} else {
			logger.Error().Err(err).Msg("Failed to create team")
			flash.Error(w, i18n.T(r, "teams.create.error"))
		}
		http.Redirect(w, r, "/teams/create", http.StatusSeeOther)
		return
	}

	flash.Success(w, i18n.T(r, "teams.create.success"))
	http.Redirect(w, r, teamviews.TeamURL(team.ID), http.StatusSeeOther)
}

// GET /teams/{id}
func HandleShow(w http.ResponseWriter, r *http.Request) {
	teamID, ok := teamIDFromPath(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	detail, err := service.Detail(ctx, teamID)
	if err != nil {
		writeServiceError(w, r, err, "Failed to load team")
		return
	}

	renderPage(w, r, detail.Name, teamviews.Detail(detail))
}

// GET /teams/{id}/edit
func HandleEditPage(w http.ResponseWriter, r *http.Request) {
	teamID, ok := teamIDFromPath(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	team, err := service.Find(ctx, teamID)
	if err != nil {
		writeServiceError(w, r, err, "Failed to load team")
		return
	}

	seasons, err := service.SeasonOptions(ctx)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to list seasons")
		http.Error(w, "Failed to load seasons", http.StatusInternalServerError)
		return
	}

	renderPage(w, r, "Edit "+team.Name, teamviews.Form(teamviews.FormData{
		TeamID:   team.ID,
		TeamName: team.Name,
		Year:     team.Year,
		Seasons:  teamviews.NewSeasonOptions(seasons, team.SeasonID),
	}))
}

// PUT|PATCH /teams/{id}
func HandleUpdate(w http.ResponseWriter, r *http.Request) {
	teamID, ok := teamIDFromPath(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	team, err := service.Update(ctx, teamID, teamInputFromForm(r))
	if err != nil {
		if msg, ok := validationMessage(r, err); ok {
			flash.Error(w, msg)
			http.Redirect(w, r, teamviews.TeamURL(teamID)+"/edit", http.StatusSeeOther)
			return
		}
		writeServiceError(w, r, err, "Failed to update team")
		return
	}

	flash.Success(w, i18n.T(r, "teams.update.success"))
	http.Redirect(w, r, teamviews.TeamURL(team.ID), http.StatusSeeOther)
}

// DELETE /teams/{id}
func HandleDestroy(w http.ResponseWriter, r *http.Request) {
	teamID, ok := teamIDFromPath(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	if err := service.Delete(ctx, teamID); err != nil {
		writeServiceError(w, r, err, "Failed to delete team")
		return
	}

	flash.Success(w, i18n.T(r, "teams.delete.success"))
	http.Redirect(w, r, "/teams", http.StatusSeeOther)
}

// POST /teams/{id}/captain
func HandleUpdateCaptain(w http.ResponseWriter, r *http.Request) {
	teamID, ok := teamIDFromPath(w, r)
	if !ok {
		return
	}

	userID, ok := captainIDFromForm(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	_, err := service.AssignCaptain(ctx, teamID, userID)
	switch {
	case err == nil:
		flash.Success(w, i18n.T(r, "teams.captain.change.success"))
	case errors.Is(err, teams.ErrCaptainConflict):
		flash.Error(w, i18n.T(r, "teams.captain.change.error"))
	default:
		writeServiceError(w, r, err, "Failed to change captain")
		return
	}
	http.Redirect(w, r, teamviews.TeamURL(teamID), http.StatusSeeOther)
}

// POST /teams/{id}/members
func HandleAddMember(w http.ResponseWriter, r *http.Request) {
	teamID, ok := teamIDFromPath(w, r)
	if !ok {
		return
	}

	profileID, err := apiutil.ParsePositiveInt64Field(r.FormValue("profile"), "profile")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	if err := service.AddMember(ctx, teamID, profileID); err != nil {
		writeServiceError(w, r, err, "Failed to add member")
		return
	}

	flash.Success(w, i18n.T(r, "teams.member.add.success"))
	http.Redirect(w, r, teamviews.TeamURL(teamID), http.StatusSeeOther)
}

// DELETE /teams/{id}/members/{profile_id}
func HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	teamID, ok := teamIDFromPath(w, r)
	if !ok {
		return
	}
	profileID, err := apiutil.PathID(r, "profile_id")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	if err := service.RemoveMember(ctx, teamID, profileID); err != nil {
		writeServiceError(w, r, err, "Failed to remove member")
		return
	}

	flash.Success(w, i18n.T(r, "teams.member.delete.success"))
	http.Redirect(w, r, teamviews.TeamURL(teamID), http.StatusSeeOther)
}

// GET /teams/{id}/captain-form
func HandleCaptainForm(w http.ResponseWriter, r *http.Request) {
	handleFragment(w, r, teamviews.CaptainForm)
}

// GET /teams/{id}/member-form
func HandleMemberForm(w http.ResponseWriter, r *http.Request) {
	handleFragment(w, r, teamviews.MemberForm)
}

// GET /users/autocomplete?query=
func HandleAutocomplete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	if !serviceReady(w, r) {
		return
	}

	query := r.URL.Query().Get("query")

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	suggestions, err := service.SearchUsers(ctx, query)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to search users")
		http.Error(w, "Failed to search users", http.StatusInternalServerError)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, autocompleteResponse{
		Query:       query,
		Suggestions: suggestions,
		Status:      true,
	}); err != nil {
		logger.Error().Err(err).Msg("Failed to write autocomplete response")
	}
}

// handleFragment answers a missing or unparsable team with {"status":false}
// rather than 404 so the calling script can ignore it.
func handleFragment(w http.ResponseWriter, r *http.Request, view func(teams.Team) templ.Component) {
	logger := log.Ctx(r.Context())
	if !serviceReady(w, r) {
		return
	}

	teamID, err := apiutil.PathID(r, "id")
	if err != nil {
		writeFragment(w, r, fragmentResponse{Status: false})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	team, err := service.Find(ctx, teamID)
	if err != nil {
		if !errors.Is(err, teams.ErrNotFound) {
			logger.Error().Err(err).Int64("team_id", teamID).Msg("Failed to load team for fragment")
		}
		writeFragment(w, r, fragmentResponse{Status: false})
		return
	}

	content, err := apiutil.RenderToString(ctx, view(team))
	if err != nil {
		logger.Error().Err(err).Int64("team_id", teamID).Msg("Failed to render team fragment")
		http.Error(w, "Failed to render form", http.StatusInternalServerError)
		return
	}
	writeFragment(w, r, fragmentResponse{Content: content, Status: true})
}

func writeFragment(w http.ResponseWriter, r *http.Request, payload fragmentResponse) {
	if err := apiutil.WriteJSON(w, http.StatusOK, payload); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write fragment response")
	}
}

func renderPage(w http.ResponseWriter, r *http.Request, title string, content templ.Component) {
	notice := flash.Pop(w, r)
	page := layouts.Base(title, content, notice)
	apiutil.RenderHTMLComponent(r.Context(), w, page, nil, "Failed to render teams page", "Failed to render page")
}

func serviceReady(w http.ResponseWriter, r *http.Request) bool {
	if service == nil {
		log.Ctx(r.Context()).Error().Msg("Team service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return false
	}
	return true
}

// teamIDFromPath parses {id}. An id that cannot exist is reported as 404.
func teamIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	if !serviceReady(w, r) {
		return 0, false
	}
	teamID, err := apiutil.PathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return 0, false
	}
	return teamID, true
}

func teamInputFromForm(r *http.Request) teams.TeamInput {
	seasonID, _ := strconv.ParseInt(strings.TrimSpace(r.FormValue("season_id")), 10, 64)
	return teams.TeamInput{
		TeamName: r.FormValue("team_name"),
		SeasonID: seasonID,
	}
}

// captainIDFromForm reads captain_user_id. Only a single id is supported;
// for a comma-separated list the first entry is used.
func captainIDFromForm(r *http.Request) (int64, bool) {
	raw := r.FormValue("captain_user_id")
	if first, rest, found := strings.Cut(raw, ","); found {
		log.Ctx(r.Context()).Warn().
			Str("captain_user_id", raw).
			Bool("extra_ids", strings.TrimSpace(rest) != "").
			Msg("Multiple captain ids posted; using the first")
		raw = first
	}
	userID, err := apiutil.ParsePositiveInt64Field(raw, "captain_user_id")
	if err != nil {
		return 0, false
	}
	return userID, true
}

func validationMessage(r *http.Request, err error) (string, bool) {
	var validationErr teams.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return i18n.T(r, "teams.validation.error", validationErr.Error()), true
	case errors.Is(err, teams.ErrSeasonNotFound):
		return i18n.T(r, "teams.validation.error", "season_id does not exist"), true
	default:
		return "", false
	}
}

// writeServiceError maps not-found errors to 404 and logs everything else as a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	if errors.Is(err, teams.ErrNotFound) {
		apiutil.WriteHandlerError(w, r, apiutil.HandlerError{
			Status:  http.StatusNotFound,
			Message: notFoundMessage(err),
			Err:     err,
		})
		return
	}
	apiutil.WriteHandlerError(w, r, apiutil.HandlerError{
		Status:  http.StatusInternalServerError,
		Message: msg,
		Err:     fmt.Errorf("%s: %w", strings.ToLower(msg), err),
	})
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, teams.ErrTeamNotFound):
		return "Team not found"
	case errors.Is(err, teams.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, teams.ErrProfileNotFound):
		return "Profile not found"
	default:
		return "Not found"
	}
}
