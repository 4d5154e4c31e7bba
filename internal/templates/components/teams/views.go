package teams

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"

	"github.com/codr1/accresults/internal/teams"
)

var esc = html.EscapeString

func write(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

// Index renders the searchable, sortable team listing.
func Index(data IndexData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder

		b.WriteString(`<section><header style="display:flex;justify-content:space-between;align-items:center">`)
		b.WriteString(`<h1>Teams</h1><a href="/teams/create">New team</a></header>`)
		fmt.Fprintf(&b, `<form method="get" action="/teams" style="margin-bottom:1rem">`+
			`<input type="search" name="name" value="%s" placeholder="Team name">`+
			`<input type="hidden" name="sort" value="%s"><input type="hidden" name="type" value="%s">`+
			`<button type="submit">Search</button></form>`,
			esc(data.Params.Name), esc(data.Params.Sort), esc(data.Params.Type))
		fmt.Fprintf(&b, `<p>Season years: %s</p>`, esc(data.YearsLabel()))

		b.WriteString(`<table><thead><tr>`)
		fmt.Fprintf(&b, `<th><a href="%s">Name</a></th>`, esc(data.Params.SortURL(teams.SortName)))
		b.WriteString(`<th>Year</th>`)
		fmt.Fprintf(&b, `<th><a href="%s">Captain</a></th>`, esc(data.Params.SortURL(teams.SortCaptain)))
		fmt.Fprintf(&b, `<th><a href="%s">Members</a></th>`, esc(data.Params.SortURL(teams.SortMembers)))
		b.WriteString(`</tr></thead><tbody>`)

		if len(data.Page.Items) == 0 {
			b.WriteString(`<tr><td colspan="4">No teams found.</td></tr>`)
		}
		for _, item := range data.Page.Items {
			captain := item.CaptainName
			if captain == "" {
				captain = "none"
			}
			fmt.Fprintf(&b, `<tr><td><a href="%s">%s</a></td><td>%d</td><td>%s</td><td>%d</td></tr>`,
				TeamURL(item.ID), esc(item.Name), item.Year, esc(captain), item.Profiles)
		}
		b.WriteString(`</tbody></table>`)

		fmt.Fprintf(&b, `<nav class="pagination" style="margin-top:1rem">Page %d of %d (%s teams) `,
			data.Page.Page, data.Page.LastPage, humanize.Comma(data.Page.Total))
		if data.Page.HasPrev() {
			fmt.Fprintf(&b, `<a href="%s" rel="prev">Previous</a> `, esc(data.Params.PageURL(data.Page.Page-1)))
		}
		if data.Page.HasNext() {
			fmt.Fprintf(&b, `<a href="%s" rel="next">Next</a>`, esc(data.Params.PageURL(data.Page.Page+1)))
		}
		b.WriteString(`</nav></section>`)

		return write(w, b.String())
	})
}

// Detail renders one team with its captain and roster.
func Detail(detail teams.TeamDetail) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		teamURL := TeamURL(detail.ID)

		fmt.Fprintf(&b, `<section data-team-id="%d"><h1>%s</h1>`, detail.ID, esc(detail.Name))
		fmt.Fprintf(&b, `<p>Year: %d</p>`, detail.Year)
		if detail.Season.ID > 0 {
			fmt.Fprintf(&b, `<p>Season: %s</p>`, esc(detail.Season.Label()))
		}

		captain := "No captain"
		if detail.Captain != nil {
			captain = fmt.Sprintf("%s, %s", detail.Captain.FullName(), detail.Captain.Email)
		}
		fmt.Fprintf(&b, `<p>Captain: %s <button type="button" data-fragment="%s/captain-form">Change captain</button></p>`,
			esc(captain), teamURL)

		fmt.Fprintf(&b, `<p><a href="%s/edit">Edit</a> `, teamURL)
		fmt.Fprintf(&b, `<form method="post" action="%s" style="display:inline" onsubmit="return confirm('Delete this team?')">`+
			`<input type="hidden" name="_method" value="DELETE"><button type="submit">Delete</button></form></p>`, teamURL)

		fmt.Fprintf(&b, `<h2>Members (%d)</h2>`, len(detail.Members))
		fmt.Fprintf(&b, `<button type="button" data-fragment="%s/member-form">Add member</button>`, teamURL)
		b.WriteString(`<div id="team-fragment"></div>`)
		b.WriteString(`<table><thead><tr><th>Name</th><th>Email</th><th></th></tr></thead><tbody>`)
		if len(detail.Members) == 0 {
			b.WriteString(`<tr><td colspan="3">No members yet.</td></tr>`)
		}
		for _, member := range detail.Members {
			fmt.Fprintf(&b, `<tr><td>%s</td><td>%s</td><td>`+
				`<form method="post" action="%s/members/%d" style="margin:0">`+
				`<input type="hidden" name="_method" value="DELETE"><button type="submit">Remove</button></form></td></tr>`,
				esc(member.User.FullName()), esc(member.User.Email), teamURL, member.ProfileID)
		}
		b.WriteString(`</tbody></table></section>`)
		b.WriteString(fragmentScript)

		return write(w, b.String())
	})
}

// fragmentScript loads the captain and member forms over AJAX and fills the
// captain id from autocomplete suggestions.
const fragmentScript = `<script>
document.querySelectorAll('[data-fragment]').forEach(function (btn) {
  btn.addEventListener('click', function () {
    fetch(btn.dataset.fragment, {headers: {'X-Requested-With': 'XMLHttpRequest'}})
      .then(function (res) { return res.json(); })
      .then(function (data) {
        if (!data.status) { return; }
        var target = document.getElementById('team-fragment');
        target.innerHTML = data.content;
        var search = target.querySelector('[data-autocomplete]');
        if (search) { wireAutocomplete(search); }
      });
  });
});
function wireAutocomplete(input) {
  var list = document.getElementById(input.getAttribute('list'));
  var hidden = input.form.querySelector('[name="captain_user_id"]');
  input.addEventListener('input', function () {
    var match = Array.prototype.find.call(list.options, function (o) { return o.value === input.value; });
    if (match) { hidden.value = match.dataset.id; return; }
    fetch(input.dataset.autocomplete + '?query=' + encodeURIComponent(input.value), {headers: {'X-Requested-With': 'XMLHttpRequest'}})
      .then(function (res) { return res.json(); })
      .then(function (data) {
        list.innerHTML = '';
        data.suggestions.forEach(function (s) {
          var opt = document.createElement('option');
          opt.value = s.value;
          opt.dataset.id = s.data;
          list.appendChild(opt);
        });
      });
  });
}
</script>`

// Form renders the create or edit form.
func Form(data FormData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder

		title := "New team"
		if data.IsEdit() {
			title = "Edit team"
		}
		fmt.Fprintf(&b, `<section style="max-width:32rem"><h1>%s</h1><form method="post" action="%s">`, title, esc(data.Action()))
		if data.IsEdit() {
			b.WriteString(`<input type="hidden" name="_method" value="PUT">`)
		}
		fmt.Fprintf(&b, `<p><label>Team name<br><input type="text" name="team_name" value="%s" maxlength="255" required></label></p>`,
			esc(data.TeamName))
		b.WriteString(`<p><label>Season<br><select name="season_id" required><option value="">Select a season</option>`)
		for _, option := range data.Seasons {
			selected := ""
			if option.Selected {
				selected = " selected"
			}
			fmt.Fprintf(&b, `<option value="%d"%s>%s</option>`, option.ID, selected, esc(option.Label))
		}
		b.WriteString(`</select></label></p>`)
		if data.IsEdit() {
			fmt.Fprintf(&b, `<p>Year: %d</p>`, data.Year)
		}

		cancel := "/teams"
		if data.IsEdit() {
			cancel = TeamURL(data.TeamID)
		}
		fmt.Fprintf(&b, `<button type="submit">Save</button> <a href="%s">Cancel</a></form></section>`, cancel)

		return write(w, b.String())
	})
}

// CaptainForm is the fragment returned to the change-captain dialog.
func CaptainForm(team teams.Team) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return write(w, fmt.Sprintf(
			`<form method="post" action="%s/captain" class="captain-form">`+
				`<label>Captain<br><input type="text" list="captain-suggestions-%d" data-autocomplete="/users/autocomplete" placeholder="Name or email" autocomplete="off"></label>`+
				`<datalist id="captain-suggestions-%d"></datalist>`+
				`<input type="hidden" name="captain_user_id" value="">`+
				`<button type="submit">Set captain for %s</button></form>`,
			TeamURL(team.ID), team.ID, team.ID, esc(team.Name),
		))
	})
}

// MemberForm is the fragment returned to the add-member dialog.
func MemberForm(team teams.Team) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return write(w, fmt.Sprintf(
			`<form method="post" action="%s/members" class="member-form">`+
				`<label>Profile id<br><input type="number" name="profile" min="1" required></label>`+
				`<button type="submit">Add to %s</button></form>`,
			TeamURL(team.ID), esc(team.Name),
		))
	})
}
