package teams

import (
	"fmt"
	"strings"
)

const PerPage = 10

type Team struct {
	ID            int64
	Name          string
	Year          int64
	SeasonID      int64
	CaptainUserID int64 // 0 when the team has no captain
}

func (t Team) HasCaptain() bool {
	return t.CaptainUserID > 0
}

type TeamListItem struct {
	Team
	CaptainName string
	Profiles    int64
}

type User struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

type Season struct {
	ID         int64
	Year       int64
	Discipline string
}

// Label is the "<year> <discipline>" text shown in season pickers.
func (s Season) Label() string {
	return fmt.Sprintf("%d %s", s.Year, s.Discipline)
}

type Profile struct {
	ID     int64
	UserID int64
	TeamID int64 // 0 for a free agent
}

type Member struct {
	ProfileID int64
	User      User
}

type TeamDetail struct {
	Team
	Season  Season
	Captain *User
	Members []Member
}

type ListQuery struct {
	Name string
	Sort SortKey
	Desc bool
	Page int
}

type Page struct {
	Items    []TeamListItem
	Total    int64
	Page     int
	PerPage  int
	LastPage int
}

func (p Page) HasPrev() bool {
	return p.Page > 1
}

func (p Page) HasNext() bool {
	return p.Page < p.LastPage
}

// TeamInput is the editable part of a team. Year is never client-supplied.
type TeamInput struct {
	TeamName string `form:"team_name" validate:"required,max=255"`
	SeasonID int64  `form:"season_id" validate:"required,gt=0"`
}

// Suggestion is one autocomplete entry: Value is "First Last, email".
type Suggestion struct {
	Value string `json:"value"`
	Data  int64  `json:"data"`
}

type CaptainAssignment struct {
	Team    Team
	Captain User
}
