package teams

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/codr1/accresults/internal/teams"
)

// IndexParams are the raw listing query parameters, echoed back into links.
type IndexParams struct {
	Name string
	Sort string
	Type string
	Page int
}

// URL builds a /teams link with p's parameters, omitting empty ones.
func (p IndexParams) URL() string {
	values := url.Values{}
	if p.Name != "" {
		values.Set("name", p.Name)
	}
	if p.Sort != "" {
		values.Set("sort", p.Sort)
	}
	if p.Type != "" {
		values.Set("type", p.Type)
	}
	if p.Page > 1 {
		values.Set("page", strconv.Itoa(p.Page))
	}
	if len(values) == 0 {
		return "/teams"
	}
	return "/teams?" + values.Encode()
}

// SortURL links to the first page sorted by key. Clicking the active
// ascending column flips it to descending.
func (p IndexParams) SortURL(key teams.SortKey) string {
	next := IndexParams{Name: p.Name, Sort: string(key)}
	if p.Sort == string(key) && p.Type != "desc" {
		next.Type = "desc"
	}
	return next.URL()
}

func (p IndexParams) PageURL(page int) string {
	p.Page = page
	return p.URL()
}

type IndexData struct {
	Params IndexParams
	Page   teams.Page
	Years  []int64
}

func (d IndexData) YearsLabel() string {
	if len(d.Years) == 0 {
		return "none"
	}
	parts := make([]string, len(d.Years))
	for i, year := range d.Years {
		parts[i] = strconv.FormatInt(year, 10)
	}
	return strings.Join(parts, ", ")
}

type SeasonOption struct {
	ID       int64
	Label    string
	Selected bool
}

func NewSeasonOptions(seasons []teams.Season, selected int64) []SeasonOption {
	options := make([]SeasonOption, len(seasons))
	for i, season := range seasons {
		options[i] = SeasonOption{
			ID:       season.ID,
			Label:    season.Label(),
			Selected: season.ID == selected,
		}
	}
	return options
}

// FormData drives both the create and the edit form. TeamID is 0 on create.
type FormData struct {
	TeamID   int64
	TeamName string
	Year     int64
	Seasons  []SeasonOption
}

func (f FormData) IsEdit() bool {
	return f.TeamID > 0
}

func (f FormData) Action() string {
	if f.IsEdit() {
		return fmt.Sprintf("/teams/%d", f.TeamID)
	}
	return "/teams"
}

func TeamURL(teamID int64) string {
	return fmt.Sprintf("/teams/%d", teamID)
}
