package teams

import "strings"

type SortKey string

const (
	SortDefault SortKey = "team_id"
	SortName    SortKey = "name"
	SortCaptain SortKey = "captain"
	SortMembers SortKey = "members"
)

// sortColumns is the only source of ORDER BY identifiers in ListTeams.
var sortColumns = map[SortKey]string{
	SortDefault: "t.team_id",
	SortName:    "t.team_name",
	SortCaptain: "t.captain_user_id",
	SortMembers: "profiles",
}

// ParseSort maps a query-string value to a sort key. Matching is
// case-sensitive: "Name" is unknown. Unknown values fall back to
// SortDefault; an empty value yields "" meaning no explicit sort.
func ParseSort(raw string) SortKey {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	key := SortKey(raw)
	if _, ok := sortColumns[key]; ok {
		return key
	}
	return SortDefault
}

// orderBy renders the ORDER BY clause body. Without an explicit key rows
// come back in id order; otherwise team_id breaks ties so paging is stable.
func orderBy(key SortKey, desc bool) string {
	direction := "ASC"
	if desc {
		direction = "DESC"
	}

	column, ok := sortColumns[key]
	switch {
	case !ok:
		return "t.team_id ASC"
	case key == SortDefault:
		return column + " " + direction
	default:
		return column + " " + direction + ", t.team_id ASC"
	}
}
