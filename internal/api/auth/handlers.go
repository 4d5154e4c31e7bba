package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"

	"github.com/codr1/accresults/internal/api/apiutil"
	"github.com/codr1/accresults/internal/api/authz"
	"github.com/codr1/accresults/internal/api/flash"
	"github.com/codr1/accresults/internal/config"
	dbgen "github.com/codr1/accresults/internal/db/generated"
	"github.com/codr1/accresults/internal/i18n"
	"github.com/codr1/accresults/internal/templates/layouts"
)

const (
	loginQueryTimeout = 5 * time.Second
	afterLoginPath    = "/teams"
)

var (
	queries   *dbgen.Queries
	appConfig *config.Config
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(q *dbgen.Queries, cfg *config.Config) {
	queries = q
	appConfig = cfg
}

// GET /login
func HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	notice := flash.Pop(w, r)
	next := safeNext(r.URL.Query().Get("next"))
	page := layouts.Base("Sign in", loginFormComponent(next), notice)
	apiutil.RenderHTMLComponent(r.Context(), w, page, nil, "Failed to render login page", "Failed to render page")
}

// POST /login
func HandleLogin(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	next := safeNext(r.FormValue("next"))

	if email == "" || password == "" {
		failLogin(w, r, next)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), loginQueryTimeout)
	defer cancel()

	user, err := queries.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			failLogin(w, r, next)
			return
		}
		logger.Error().Err(err).Msg("Failed to look up user for login")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if user.PasswordHash == "" || !VerifyPassword(user.PasswordHash, password) {
		logger.Warn().Int64("user_id", user.ID).Msg("Login rejected: bad password")
		failLogin(w, r, next)
		return
	}

	if !user.IsAdmin {
		logger.Warn().Int64("user_id", user.ID).Msg("Login rejected: not an administrator")
		failLogin(w, r, next)
		return
	}

	if err := SetAuthCookie(w, &authz.AuthUser{ID: user.ID, Email: user.Email, IsAdmin: user.IsAdmin}); err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to issue auth cookie")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("user_id", user.ID).Bool("is_admin", user.IsAdmin).Msg("User signed in")
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// POST /logout
func HandleLogout(w http.ResponseWriter, r *http.Request) {
	ClearAuthCookie(w)
	flash.Success(w, i18n.T(r, "auth.logout.success"))
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func failLogin(w http.ResponseWriter, r *http.Request, next string) {
	flash.Error(w, i18n.T(r, "auth.login.error"))
	target := "/login"
	if next != afterLoginPath {
		target += "?next=" + url.QueryEscape(next)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// safeNext only allows local absolute paths as redirect targets.
func safeNext(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.Contains(raw, "\\") {
		return afterLoginPath
	}
	return raw
}

func loginFormComponent(next string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, fmt.Sprintf(
			`<section style="max-width:24rem">
				<h1>Sign in</h1>
				<form method="post" action="/login">
					<input type="hidden" name="next" value="%s">
					<p><label>Email<br><input type="email" name="email" required autocomplete="username"></label></p>
					<p><label>Password<br><input type="password" name="password" required autocomplete="current-password"></label></p>
					<button type="submit">Sign in</button>
				</form>
			</section>`,
			html.EscapeString(next),
		))
		return err
	})
}
