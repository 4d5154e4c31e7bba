// Package i18n holds the user-facing message catalog keyed by dotted ids
// such as "teams.create.success".
package i18n

import (
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var supported = []language.Tag{
	language.English,
}

var matcher = language.NewMatcher(supported)

var english = map[string]string{
	"teams.create.success":         "Team created.",
	"teams.create.error":           "The team could not be created.",
	"teams.validation.error":       "Please check the team details: %s",
	"teams.update.success":         "Team updated.",
	"teams.delete.success":         "Team deleted.",
	"teams.captain.change.success": "Team captain changed.",
	"teams.captain.change.error":   "This user is already captain of another team.",
	"teams.member.add.success":     "Member added to the team.",
	"teams.member.delete.success":  "Member removed from the team.",
	"auth.login.error":             "Invalid email or password.",
	"auth.logout.success":          "You have been signed out.",
}

func init() {
	for key, text := range english {
		if err := message.SetString(language.English, key, text); err != nil {
			panic(err)
		}
	}
}

// Printer returns a printer for the best supported language in the
// request's Accept-Language header, defaulting to English.
func Printer(r *http.Request) *message.Printer {
	tag := language.English
	if r != nil {
		if prefs, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language")); err == nil && len(prefs) > 0 {
			tag, _, _ = matcher.Match(prefs...)
		}
	}
	return message.NewPrinter(tag)
}

// T translates key for the request. Unknown keys are returned verbatim.
func T(r *http.Request, key string, args ...any) string {
	return Printer(r).Sprintf(key, args...)
}
